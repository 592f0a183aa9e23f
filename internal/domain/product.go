package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductEntity — имя сущности в сообщениях об ошибках.
const ProductEntity = "Product"

// Product описывает товар с текущей ценой и историей её изменений
type Product struct {
	ID           int64
	Name         string
	Price        decimal.Decimal
	LastUpdated  time.Time
	PriceHistory []PriceHistory // только дописывается, порядок = хронология
}

// PriceHistory — снимок цены на момент изменения
type PriceHistory struct {
	Price decimal.Decimal
	Date  time.Time
}

func NewProduct(id int64, name string, price decimal.Decimal, lastUpdated time.Time) *Product {
	return &Product{
		ID:           id,
		Name:         name,
		Price:        price,
		LastUpdated:  lastUpdated,
		PriceHistory: make([]PriceHistory, 0),
	}
}

func NewPriceHistory(price decimal.Decimal, date time.Time) PriceHistory {
	return PriceHistory{
		Price: price,
		Date:  date,
	}
}

// ChangePrice устанавливает новую цену и дописывает ровно одну запись в историю.
// LastUpdated и дата записи совпадают.
func (p *Product) ChangePrice(price decimal.Decimal, at time.Time) {
	p.Price = price
	p.LastUpdated = at
	p.PriceHistory = append(p.PriceHistory, NewPriceHistory(price, at))
}

// LatestHistory возвращает последнюю запись истории, если она есть.
func (p *Product) LatestHistory() (PriceHistory, bool) {
	if len(p.PriceHistory) == 0 {
		return PriceHistory{}, false
	}
	return p.PriceHistory[len(p.PriceHistory)-1], true
}

// Clone возвращает глубокую копию продукта, не разделяющую слайс истории.
func (p *Product) Clone() *Product {
	history := make([]PriceHistory, len(p.PriceHistory))
	copy(history, p.PriceHistory)

	return &Product{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		LastUpdated:  p.LastUpdated,
		PriceHistory: history,
	}
}
