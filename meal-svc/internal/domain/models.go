package domain

import "time"

type MealType string

const (
	Breakfast MealType = "조식"
	Lunch     MealType = "중식"
	Dinner    MealType = "석식"
)

func (m MealType) Known() bool {
	switch m {
	case Breakfast, Lunch, Dinner:
		return true
	}
	return false
}

// MealRecord is one row of the NEIS response for the selected day.
type MealRecord struct {
	Type             MealType `json:"meal_type"`
	RawDishText      string   `json:"raw_dish_text"`
	RawNutritionText string   `json:"raw_nutrition_text"`
}

type NutrientEntry struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

type ChartSeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

func (s ChartSeries) Len() int {
	return len(s.Labels)
}

func (s *ChartSeries) Add(label string, value float64) {
	s.Labels = append(s.Labels, label)
	s.Values = append(s.Values, value)
}

type ChartKind string

const (
	ChartPie      ChartKind = "pie"
	ChartBar      ChartKind = "bar"
	ChartCalories ChartKind = "calories"
	ChartRadar    ChartKind = "radar"
)

// ChartView holds a rendered chart. SVG is produced by the chart renderer and
// is trusted markup.
type ChartView struct {
	Kind  ChartKind `json:"kind"`
	Title string    `json:"title"`
	SVG   string    `json:"-"`
}

type MealView struct {
	Type          MealType        `json:"meal_type"`
	Dishes        string          `json:"dishes"`
	HasNutrition  bool            `json:"has_nutrition"`
	RawNutrition  string          `json:"raw_nutrition,omitempty"`
	Nutrients     []NutrientEntry `json:"nutrients,omitempty"`
	Calories      int             `json:"calories,omitempty"`
	HasCalories   bool            `json:"has_calories"`
	Macros        ChartSeries     `json:"macros"`
	CalorieShares ChartSeries     `json:"calorie_shares"`
	Charts        []ChartView     `json:"charts,omitempty"`
}

type MenuPage struct {
	Date      string     `json:"date"`
	DateInput string     `json:"date_input"`
	NoData    bool       `json:"no_data"`
	Meals     []MealView `json:"meals"`
}

type PopupState struct {
	Visible bool `json:"visible"`
}

type PopupEvent int

const (
	OpenPopup PopupEvent = iota + 1
	DismissPopup
)

type PopupView struct {
	Visible bool   `json:"visible"`
	Fact    string `json:"fact,omitempty"`
}

type MenuViewedMessage struct {
	Type      string    `json:"type"`
	ServeDate string    `json:"serve_date"`
	MealCount int       `json:"meal_count"`
	NoData    bool      `json:"no_data"`
	Timestamp time.Time `json:"timestamp"`
}
