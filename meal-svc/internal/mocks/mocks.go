// Package mocks holds testify mocks for the meal-svc service interfaces.
package mocks

import (
	"context"
	"time"

	"school-meal/meal-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(m *mock.Mock, t testingT) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

type MealFetcher struct {
	mock.Mock
}

func NewMealFetcher(t testingT) *MealFetcher {
	m := &MealFetcher{}
	register(&m.Mock, t)
	return m
}

func (m *MealFetcher) FetchMeals(ctx context.Context, date string) ([]domain.MealRecord, bool, error) {
	ret := m.Called(ctx, date)
	var meals []domain.MealRecord
	if v := ret.Get(0); v != nil {
		meals = v.([]domain.MealRecord)
	}
	return meals, ret.Bool(1), ret.Error(2)
}

type ChartRenderer struct {
	mock.Mock
}

func NewChartRenderer(t testingT) *ChartRenderer {
	m := &ChartRenderer{}
	register(&m.Mock, t)
	return m
}

func (m *ChartRenderer) Pie(title string, series domain.ChartSeries) (string, error) {
	ret := m.Called(title, series)
	return ret.String(0), ret.Error(1)
}

func (m *ChartRenderer) Bar(title string, series domain.ChartSeries) (string, error) {
	ret := m.Called(title, series)
	return ret.String(0), ret.Error(1)
}

func (m *ChartRenderer) Radar(title string, series domain.ChartSeries) (string, error) {
	ret := m.Called(title, series)
	return ret.String(0), ret.Error(1)
}

type MenuPublisher struct {
	mock.Mock
}

func NewMenuPublisher(t testingT) *MenuPublisher {
	m := &MenuPublisher{}
	register(&m.Mock, t)
	return m
}

func (m *MenuPublisher) PublishMenuViewed(ctx context.Context, msg domain.MenuViewedMessage) error {
	return m.Called(ctx, msg).Error(0)
}

type SessionStore struct {
	mock.Mock
}

func NewSessionStore(t testingT) *SessionStore {
	m := &SessionStore{}
	register(&m.Mock, t)
	return m
}

func (m *SessionStore) Load(ctx context.Context, sessionID string) (domain.PopupState, error) {
	ret := m.Called(ctx, sessionID)
	return ret.Get(0).(domain.PopupState), ret.Error(1)
}

func (m *SessionStore) Save(ctx context.Context, sessionID string, state domain.PopupState) error {
	return m.Called(ctx, sessionID, state).Error(0)
}

type FactSource struct {
	mock.Mock
}

func NewFactSource(t testingT) *FactSource {
	m := &FactSource{}
	register(&m.Mock, t)
	return m
}

func (m *FactSource) Facts(ctx context.Context) ([]string, error) {
	ret := m.Called(ctx)
	var facts []string
	if v := ret.Get(0); v != nil {
		facts = v.([]string)
	}
	return facts, ret.Error(1)
}

type MenuServiceInterface struct {
	mock.Mock
}

func NewMenuServiceInterface(t testingT) *MenuServiceInterface {
	m := &MenuServiceInterface{}
	register(&m.Mock, t)
	return m
}

func (m *MenuServiceInterface) BuildPage(ctx context.Context, date time.Time) (*domain.MenuPage, error) {
	ret := m.Called(ctx, date)
	var page *domain.MenuPage
	if v := ret.Get(0); v != nil {
		page = v.(*domain.MenuPage)
	}
	return page, ret.Error(1)
}

type PopupServiceInterface struct {
	mock.Mock
}

func NewPopupServiceInterface(t testingT) *PopupServiceInterface {
	m := &PopupServiceInterface{}
	register(&m.Mock, t)
	return m
}

func (m *PopupServiceInterface) Handle(ctx context.Context, sessionID string, events []domain.PopupEvent) (domain.PopupView, error) {
	ret := m.Called(ctx, sessionID, events)
	return ret.Get(0).(domain.PopupView), ret.Error(1)
}

type QRGenerator struct {
	mock.Mock
}

func NewQRGenerator(t testingT) *QRGenerator {
	m := &QRGenerator{}
	register(&m.Mock, t)
	return m
}

func (m *QRGenerator) Generate(date string) ([]byte, error) {
	ret := m.Called(date)
	var png []byte
	if v := ret.Get(0); v != nil {
		png = v.([]byte)
	}
	return png, ret.Error(1)
}
