package mocks

import (
	"context"

	"school-meal/stats-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type StoreInterface struct {
	mock.Mock
}

func NewStoreInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *StoreInterface {
	m := &StoreInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *StoreInterface) RecordView(ctx context.Context, msg domain.MenuViewedMessage) error {
	return m.Called(ctx, msg).Error(0)
}

type StatsInterface struct {
	mock.Mock
}

func NewStatsInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *StatsInterface {
	m := &StatsInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *StatsInterface) DateStats(ctx context.Context, serveDate string) (domain.DateStats, error) {
	ret := m.Called(ctx, serveDate)
	return ret.Get(0).(domain.DateStats), ret.Error(1)
}

func (m *StatsInterface) PopularDates(ctx context.Context, limit int64) ([]domain.DateViews, error) {
	ret := m.Called(ctx, limit)
	var dates []domain.DateViews
	if v := ret.Get(0); v != nil {
		dates = v.([]domain.DateViews)
	}
	return dates, ret.Error(1)
}
