package converter

import "time"

// ProductSummaryRedisModel — элемент закэшированного списка продуктов.
type ProductSummaryRedisModel struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Price       string    `json:"price"`
	LastUpdated time.Time `json:"last_updated"`
}
