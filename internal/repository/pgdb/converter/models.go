package converter

import "time"

// ProductModel представляет запись таблицы products в PostgreSQL.
// NUMERIC читается и пишется как текст, чтобы не терять точность.
type ProductModel struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Price       string    `db:"price"`
	LastUpdated time.Time `db:"last_updated"`
}

// PriceHistoryModel представляет запись таблицы price_history в PostgreSQL.
type PriceHistoryModel struct {
	ID         int64     `db:"id"`
	ProductID  int64     `db:"product_id"`
	Price      string    `db:"price"`
	RecordedAt time.Time `db:"recorded_at"`
}
