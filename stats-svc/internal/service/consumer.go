package service

import (
	"context"
	"encoding/json"
	"log"

	"school-meal/stats-svc/internal/domain"

	"github.com/segmentio/kafka-go"
)

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type StoreInterface interface {
	RecordView(ctx context.Context, msg domain.MenuViewedMessage) error
}

type StatsInterface interface {
	DateStats(ctx context.Context, serveDate string) (domain.DateStats, error)
	PopularDates(ctx context.Context, limit int64) ([]domain.DateViews, error)
}

type Consumer struct {
	Reader MessageReader
	Store  StoreInterface
}

func NewConsumer(reader MessageReader, store StoreInterface) *Consumer {
	return &Consumer{
		Reader: reader,
		Store:  store,
	}
}

// Start reads menu view events until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	log.Println("Starting Stats Service consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("Stats Service consumer stopped")
				return
			}
			log.Printf("Error reading message: %v", err)
			continue
		}

		var msg domain.MenuViewedMessage
		if err := json.Unmarshal(message.Value, &msg); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		c.ProcessView(ctx, msg)
	}
}

func (c *Consumer) ProcessView(ctx context.Context, msg domain.MenuViewedMessage) {
	if msg.Type != domain.MenuViewed || msg.ServeDate == "" {
		return
	}

	if err := c.Store.RecordView(ctx, msg); err != nil {
		log.Printf("Error recording view for %s: %v", msg.ServeDate, err)
		return
	}

	log.Printf("Recorded menu view: date=%s meals=%d no_data=%t", msg.ServeDate, msg.MealCount, msg.NoData)
}
