package converter

import "time"

// ProductObjectModel — JSON-документ продукта, хранящийся объектом в бакете.
type ProductObjectModel struct {
	ID           int64                `json:"id"`
	Name         string               `json:"name"`
	Price        string               `json:"price"`
	LastUpdated  time.Time            `json:"last_updated"`
	PriceHistory []PriceHistoryObject `json:"price_history"`
}

type PriceHistoryObject struct {
	Price string    `json:"price"`
	Date  time.Time `json:"date"`
}
