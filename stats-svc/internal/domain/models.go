package domain

import "time"

const MenuViewed = "menu_viewed"

type MenuViewedMessage struct {
	Type      string    `json:"type"`
	ServeDate string    `json:"serve_date"`
	MealCount int       `json:"meal_count"`
	NoData    bool      `json:"no_data"`
	Timestamp time.Time `json:"timestamp"`
}

type DateStats struct {
	ServeDate   string `json:"serve_date"`
	Views       int64  `json:"views"`
	NoDataViews int64  `json:"no_data_views"`
	LastViewed  int64  `json:"last_viewed"`
}

type DateViews struct {
	ServeDate string `json:"serve_date"`
	Views     int64  `json:"views"`
}
