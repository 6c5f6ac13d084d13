package tests

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpapi "school-meal/meal-svc/internal/api/http"
	"school-meal/meal-svc/internal/domain"
	"school-meal/meal-svc/internal/mocks"
	"school-meal/meal-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 3, 3, 0, 0, 0, time.UTC)

type handlerMocks struct {
	menus  *mocks.MenuServiceInterface
	popups *mocks.PopupServiceInterface
	qr     *mocks.QRGenerator
}

func setupTestRouter(t *testing.T) (*mux.Router, handlerMocks) {
	m := handlerMocks{
		menus:  mocks.NewMenuServiceInterface(t),
		popups: mocks.NewPopupServiceInterface(t),
		qr:     mocks.NewQRGenerator(t),
	}
	handler := httpapi.NewHandler(m.menus, m.popups, m.qr)
	handler.Now = func() time.Time { return fixedNow }

	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return r, m
}

func onDate(date string) interface{} {
	return mock.MatchedBy(func(d time.Time) bool { return service.NEISDate(d) == date })
}

func TestHandler_healthCheck(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	var body map[string]string
	json.NewDecoder(recorder.Body).Decode(&body)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "meal-svc", body["service"])
}

func TestHandler_menuPage(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		prepareMocks func(m handlerMocks)
		expectedCode int
		contains     []string
		absent       []string
	}{
		{
			name:   "no_data",
			target: "/?date=2025-01-01",
			prepareMocks: func(m handlerMocks) {
				m.popups.On("Handle", mock.Anything, mock.Anything, []domain.PopupEvent(nil)).
					Return(domain.PopupView{}, nil).Once()
				m.menus.On("BuildPage", mock.Anything, onDate("20250101")).
					Return(&domain.MenuPage{Date: "20250101", DateInput: "2025-01-01", NoData: true}, nil).Once()
			},
			expectedCode: http.StatusOK,
			contains:     []string{"해당 날짜에는 급식 정보가 없습니다", `value="2025-01-01"`},
			absent:       []string{"<details", `class="popup"`},
		},
		{
			name:   "defaults_to_today_in_seoul",
			target: "/",
			prepareMocks: func(m handlerMocks) {
				m.popups.On("Handle", mock.Anything, mock.Anything, mock.Anything).
					Return(domain.PopupView{}, nil).Once()
				m.menus.On("BuildPage", mock.Anything, onDate("20250303")).
					Return(&domain.MenuPage{Date: "20250303", DateInput: "2025-03-03", NoData: true}, nil).Once()
			},
			expectedCode: http.StatusOK,
		},
		{
			name:   "meal_sections",
			target: "/?date=20250303",
			prepareMocks: func(m handlerMocks) {
				m.popups.On("Handle", mock.Anything, mock.Anything, mock.Anything).
					Return(domain.PopupView{}, nil).Once()
				m.menus.On("BuildPage", mock.Anything, onDate("20250303")).
					Return(&domain.MenuPage{Date: "20250303", DateInput: "2025-03-03", Meals: []domain.MealView{
						{Type: domain.Lunch, Dishes: "쌀밥\n김치"},
						{
							Type:         domain.Dinner,
							Dishes:       "카레라이스",
							HasNutrition: true,
							RawNutrition: "탄수화물(g) : 70.5",
							Nutrients:    []domain.NutrientEntry{{Name: "탄수화물", Value: 70.5, Unit: "g"}},
							Calories:     282,
							HasCalories:  true,
							Charts:       []domain.ChartView{{Kind: domain.ChartPie, Title: "비율", SVG: "<svg id=\"pie\"></svg>"}},
						},
					}}, nil).Once()
			},
			expectedCode: http.StatusOK,
			contains: []string{
				"쌀밥\n김치",
				"영양 정보가 제공되지 않았습니다",
				"탄수화물: 70.5 g",
				"282 kcal",
				`<svg id="pie"></svg>`,
				"shake-emoji\">",
			},
		},
		{
			name:   "popup_open_and_close",
			target: "/?date=2025-03-03&popup=open&close=",
			prepareMocks: func(m handlerMocks) {
				m.popups.On("Handle", mock.Anything, mock.Anything, []domain.PopupEvent{domain.OpenPopup, domain.DismissPopup}).
					Return(domain.PopupView{}, nil).Once()
				m.menus.On("BuildPage", mock.Anything, mock.Anything).
					Return(&domain.MenuPage{NoData: true}, nil).Once()
			},
			expectedCode: http.StatusOK,
			absent:       []string{`class="popup"`},
		},
		{
			name:   "popup_visible",
			target: "/?popup=open",
			prepareMocks: func(m handlerMocks) {
				m.popups.On("Handle", mock.Anything, mock.Anything, []domain.PopupEvent{domain.OpenPopup}).
					Return(domain.PopupView{Visible: true, Fact: "🍚 탄수화물은 뇌의 주 에너지원이에요."}, nil).Once()
				m.menus.On("BuildPage", mock.Anything, mock.Anything).
					Return(&domain.MenuPage{NoData: true}, nil).Once()
			},
			expectedCode: http.StatusOK,
			contains:     []string{`class="popup"`, "🍚 탄수화물은 뇌의 주 에너지원이에요.", `name="close"`},
		},
		{
			name:         "invalid_date",
			target:       "/?date=yesterday",
			prepareMocks: func(m handlerMocks) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:   "fetch_failure",
			target: "/?date=2025-03-03",
			prepareMocks: func(m handlerMocks) {
				m.menus.On("BuildPage", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("%w: %w", service.ErrMealFetch, errors.New("timeout"))).Once()
			},
			expectedCode: http.StatusBadGateway,
		},
		{
			name:   "session_failure",
			target: "/?date=2025-03-03",
			prepareMocks: func(m handlerMocks) {
				m.menus.On("BuildPage", mock.Anything, mock.Anything).
					Return(&domain.MenuPage{NoData: true}, nil).Once()
				m.popups.On("Handle", mock.Anything, mock.Anything, mock.Anything).
					Return(domain.PopupView{}, errors.New("redis down")).Once()
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, m := setupTestRouter(t)
			testCase.prepareMocks(m)

			req := httptest.NewRequest(http.MethodGet, testCase.target, nil)
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, testCase.expectedCode, recorder.Code)
			body := recorder.Body.String()
			for _, s := range testCase.contains {
				assert.Contains(t, body, s)
			}
			for _, s := range testCase.absent {
				assert.NotContains(t, body, s)
			}
		})
	}
}

func TestHandler_menuPage_fetchFailureKeepsPopupState(t *testing.T) {
	router, m := setupTestRouter(t)

	m.menus.On("BuildPage", mock.Anything, onDate("20250303")).
		Return(nil, fmt.Errorf("%w: %w", service.ErrMealFetch, errors.New("timeout"))).Twice()

	for _, target := range []string{"/?date=2025-03-03&popup=open", "/?date=2025-03-03&close="} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadGateway, recorder.Code)
		assert.Empty(t, recorder.Result().Cookies())
	}

	m.popups.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_sessionCookie(t *testing.T) {
	router, m := setupTestRouter(t)

	var sessions []string
	m.popups.On("Handle", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sessions = append(sessions, args.String(1)) }).
		Return(domain.PopupView{Visible: true}, nil).Twice()

	req := httptest.NewRequest(http.MethodPost, "/api/popup/open", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "meal_session", cookies[0].Name)

	req = httptest.NewRequest(http.MethodPost, "/api/popup/open", nil)
	req.AddCookie(cookies[0])
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Empty(t, recorder.Result().Cookies())
	require.Len(t, sessions, 2)
	assert.Equal(t, sessions[0], sessions[1])
	assert.Equal(t, cookies[0].Value, sessions[0])
}

func TestHandler_popupCommands(t *testing.T) {
	router, m := setupTestRouter(t)

	m.popups.On("Handle", mock.Anything, mock.Anything, []domain.PopupEvent{domain.OpenPopup}).
		Return(domain.PopupView{Visible: true, Fact: "fact"}, nil).Once()
	m.popups.On("Handle", mock.Anything, mock.Anything, []domain.PopupEvent{domain.DismissPopup}).
		Return(domain.PopupView{}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/popup/open", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"visible":true,"fact":"fact"}`, recorder.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/api/popup/dismiss", nil)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"visible":false}`, recorder.Body.String())
}

func TestHandler_getMeals(t *testing.T) {
	router, m := setupTestRouter(t)

	m.menus.On("BuildPage", mock.Anything, onDate("20250303")).
		Return(&domain.MenuPage{Date: "20250303", Meals: []domain.MealView{
			{Type: domain.Lunch, Dishes: "쌀밥", Charts: []domain.ChartView{{Kind: domain.ChartPie, Title: "비율", SVG: "<svg/>"}}},
		}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/meals?date=2025-03-03", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	assert.NotContains(t, recorder.Body.String(), "<svg")

	var page domain.MenuPage
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&page))
	require.Len(t, page.Meals, 1)
	assert.Equal(t, domain.Lunch, page.Meals[0].Type)
}

func TestHandler_getQRCode(t *testing.T) {
	router, m := setupTestRouter(t)

	m.qr.On("Generate", "20250303").Return([]byte("\x89PNG"), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/qrcode?date=2025-03-03", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "image/png", recorder.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(recorder.Body.String(), "\x89PNG"))
}
