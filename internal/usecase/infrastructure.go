package usecase

import "context"

type EventProducer interface {
	WritePriceChanged(ctx context.Context, event *PriceChangedEvent) error
}
