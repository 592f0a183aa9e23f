package domain

import "github.com/shopspring/decimal"

// MoneyScale — количество знаков после запятой у денежных сумм.
const MoneyScale = 2

// RoundMoney округляет сумму до копеек (half away from zero).
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// FormatMoney возвращает сумму ровно с двумя знаками после запятой: 90 -> "90.00".
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(MoneyScale)
}
