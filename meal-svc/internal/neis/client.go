// Package neis fetches daily meal rows from the NEIS open API.
package neis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"school-meal/meal-svc/internal/domain"
)

const (
	DefaultBaseURL = "https://open.neis.go.kr/hub/mealServiceDietInfo"
	OfficeCode     = "B10"
	SchoolCode     = "7010806"

	mealInfoKey = "mealServiceDietInfo"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	BaseURL    string
	OfficeCode string
	SchoolCode string
}

func DefaultConfig() Config {
	return Config{
		BaseURL:    DefaultBaseURL,
		OfficeCode: OfficeCode,
		SchoolCode: SchoolCode,
	}
}

type Client struct {
	config Config
	client HTTPClient
}

func NewClient(config Config, client HTTPClient) *Client {
	return &Client{
		config: config,
		client: client,
	}
}

type mealRow struct {
	MealName      string `json:"MMEAL_SC_NM"`
	DishNames     string `json:"DDISH_NM"`
	NutritionInfo string `json:"NTR_INFO"`
}

type mealSection struct {
	Row []mealRow `json:"row"`
}

type apiResult struct {
	Code    string `json:"CODE"`
	Message string `json:"MESSAGE"`
}

// URL returns the request URL for a YYYYMMDD date. Inputs are validated
// digit strings, so no query escaping is applied.
func (c *Client) URL(date string) string {
	return fmt.Sprintf("%s?ATPT_OFCDC_SC_CODE=%s&SD_SCHUL_CODE=%s&Type=json&MLSV_YMD=%s",
		c.config.BaseURL, c.config.OfficeCode, c.config.SchoolCode, date)
}

// FetchMeals returns the meal rows for date. The boolean is false when the API
// reports no meal data for that day, which is not an error.
func (c *Client) FetchMeals(ctx context.Context, date string) ([]domain.MealRecord, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(date), nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create meal request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("failed to request meal data: %w", err)
	}
	defer resp.Body.Close()

	var body map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, false, fmt.Errorf("failed to decode meal data (status %d): %w", resp.StatusCode, err)
	}

	raw, ok := body[mealInfoKey]
	if !ok {
		logResult(date, body["RESULT"])
		return nil, false, nil
	}

	var sections []mealSection
	if err := json.Unmarshal(raw, &sections); err != nil {
		return nil, false, fmt.Errorf("failed to decode %s: %w", mealInfoKey, err)
	}
	if len(sections) < 2 || len(sections[1].Row) == 0 {
		log.Printf("[neis] %s for %s has no rows", mealInfoKey, date)
		return nil, false, nil
	}

	meals := make([]domain.MealRecord, 0, len(sections[1].Row))
	for _, row := range sections[1].Row {
		meals = append(meals, domain.MealRecord{
			Type:             domain.MealType(row.MealName),
			RawDishText:      row.DishNames,
			RawNutritionText: row.NutritionInfo,
		})
	}
	return meals, true, nil
}

func logResult(date string, raw json.RawMessage) {
	if len(raw) == 0 {
		log.Printf("[neis] no meal data for %s", date)
		return
	}
	var result apiResult
	if err := json.Unmarshal(raw, &result); err != nil {
		log.Printf("[neis] no meal data for %s", date)
		return
	}
	log.Printf("[neis] no meal data for %s: %s %s", date, result.Code, result.Message)
}
