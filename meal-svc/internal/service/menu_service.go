package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"school-meal/meal-svc/internal/domain"
)

var ErrMealFetch = errors.New("meal data unavailable")

type MenuService struct {
	fetcher   MealFetcher
	charts    ChartRenderer
	publisher MenuPublisher
	now       func() time.Time
}

func NewMenuService(fetcher MealFetcher, charts ChartRenderer, publisher MenuPublisher) *MenuService {
	return &MenuService{
		fetcher:   fetcher,
		charts:    charts,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *MenuService) BuildPage(ctx context.Context, date time.Time) (*domain.MenuPage, error) {
	page := &domain.MenuPage{
		Date:      NEISDate(date),
		DateInput: date.Format("2006-01-02"),
	}

	meals, ok, err := s.fetcher.FetchMeals(ctx, page.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMealFetch, err)
	}

	if !ok {
		page.NoData = true
	} else {
		for _, meal := range meals {
			page.Meals = append(page.Meals, s.buildMeal(meal))
		}
	}

	s.publishView(ctx, page)
	return page, nil
}

func (s *MenuService) buildMeal(meal domain.MealRecord) domain.MealView {
	view := domain.MealView{
		Type:   meal.Type,
		Dishes: CleanDishText(meal.RawDishText),
	}

	raw := NutritionText(meal.RawNutritionText)
	if raw == "" {
		return view
	}

	nutrients := ParseNutrients(meal.RawNutritionText)
	view.HasNutrition = true
	view.RawNutrition = raw
	view.Nutrients = nutrients.Entries()
	view.Calories, view.HasCalories = EstimateCalories(nutrients)
	view.Macros = MacroSeries(nutrients)
	view.CalorieShares = CalorieSeries(nutrients)
	view.Charts = s.renderCharts(meal.Type, view.Macros, NutrientSeries(nutrients), view.CalorieShares)
	return view
}

func (s *MenuService) renderCharts(mealType domain.MealType, macros, all, calories domain.ChartSeries) []domain.ChartView {
	if s.charts == nil {
		return nil
	}

	defs := []struct {
		kind   domain.ChartKind
		title  string
		series domain.ChartSeries
		render func(string, domain.ChartSeries) (string, error)
	}{
		{domain.ChartPie, "탄수화물 · 단백질 · 지방 비율", macros, s.charts.Pie},
		{domain.ChartBar, "영양 성분", all, s.charts.Bar},
		{domain.ChartCalories, "영양소별 칼로리 (kcal)", calories, s.charts.Bar},
		{domain.ChartRadar, "주요 영양소 균형", macros, s.charts.Radar},
	}

	var views []domain.ChartView
	for _, def := range defs {
		if !hasPositive(def.series) {
			continue
		}
		svg, err := def.render(def.title, def.series)
		if err != nil {
			log.Printf("[meal-svc] failed to render %s chart for %s: %v", def.kind, mealType, err)
			continue
		}
		views = append(views, domain.ChartView{Kind: def.kind, Title: def.title, SVG: svg})
	}
	return views
}

func hasPositive(series domain.ChartSeries) bool {
	for _, v := range series.Values {
		if v > 0 {
			return true
		}
	}
	return false
}

func (s *MenuService) publishView(ctx context.Context, page *domain.MenuPage) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishMenuViewed(ctx, domain.MenuViewedMessage{
		Type:      "menu_viewed",
		ServeDate: page.Date,
		MealCount: len(page.Meals),
		NoData:    page.NoData,
		Timestamp: s.now(),
	})
	if err != nil {
		log.Printf("[meal-svc] failed to publish menu view for %s: %v", page.Date, err)
	}
}
