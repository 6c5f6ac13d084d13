package service

import (
	"context"
	"time"

	"school-meal/meal-svc/internal/domain"
)

type MealFetcher interface {
	FetchMeals(ctx context.Context, date string) ([]domain.MealRecord, bool, error)
}

type ChartRenderer interface {
	Pie(title string, series domain.ChartSeries) (string, error)
	Bar(title string, series domain.ChartSeries) (string, error)
	Radar(title string, series domain.ChartSeries) (string, error)
}

type MenuPublisher interface {
	PublishMenuViewed(ctx context.Context, msg domain.MenuViewedMessage) error
}

type SessionStore interface {
	Load(ctx context.Context, sessionID string) (domain.PopupState, error)
	Save(ctx context.Context, sessionID string, state domain.PopupState) error
}

type FactSource interface {
	Facts(ctx context.Context) ([]string, error)
}

type MenuServiceInterface interface {
	BuildPage(ctx context.Context, date time.Time) (*domain.MenuPage, error)
}

type PopupServiceInterface interface {
	Handle(ctx context.Context, sessionID string, events []domain.PopupEvent) (domain.PopupView, error)
}

var (
	_ MenuServiceInterface  = (*MenuService)(nil)
	_ PopupServiceInterface = (*PopupService)(nil)
)
