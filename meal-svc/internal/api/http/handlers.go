package httpapi

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"school-meal/meal-svc/internal/domain"
	"school-meal/meal-svc/internal/service"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const sessionCookie = "meal_session"

//go:embed templates/menu.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("menu.html").Funcs(template.FuncMap{
	"svg": func(s string) template.HTML { return template.HTML(s) },
	"num": func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
}).ParseFS(templateFS, "templates/menu.html"))

type Handler struct {
	Menus  service.MenuServiceInterface
	Popups service.PopupServiceInterface
	QR     service.QRGenerator
	Now    func() time.Time
}

func NewHandler(menus service.MenuServiceInterface, popups service.PopupServiceInterface, qr service.QRGenerator) *Handler {
	return &Handler{
		Menus:  menus,
		Popups: popups,
		QR:     qr,
		Now:    time.Now,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/", h.menuPage).Methods("GET")
	r.HandleFunc("/api/meals", h.getMeals).Methods("GET")
	r.HandleFunc("/api/qrcode", h.getQRCode).Methods("GET")
	r.HandleFunc("/api/popup/open", h.popupCommand(domain.OpenPopup)).Methods("POST")
	r.HandleFunc("/api/popup/dismiss", h.popupCommand(domain.DismissPopup)).Methods("POST")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "meal-svc",
		"timestamp": h.now().Format(time.RFC3339),
	})
}

type pageData struct {
	Page  *domain.MenuPage
	Popup domain.PopupView
}

func (h *Handler) menuPage(w http.ResponseWriter, r *http.Request) {
	date, ok := h.serveDate(w, r)
	if !ok {
		return
	}

	// Popup events are only persisted for pages that render.
	page, ok := h.buildPage(w, r, date)
	if !ok {
		return
	}

	popup, err := h.Popups.Handle(r.Context(), h.sessionID(w, r), popupEvents(r.URL.Query()))
	if err != nil {
		log.Printf("[meal-svc] popup state error: %v", err)
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, pageData{Page: page, Popup: popup}); err != nil {
		log.Printf("[meal-svc] template error: %v", err)
	}
}

func (h *Handler) getMeals(w http.ResponseWriter, r *http.Request) {
	date, ok := h.serveDate(w, r)
	if !ok {
		return
	}
	page, ok := h.buildPage(w, r, date)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) getQRCode(w http.ResponseWriter, r *http.Request) {
	date, ok := h.serveDate(w, r)
	if !ok {
		return
	}
	png, err := h.QR.Generate(service.NEISDate(date))
	if err != nil {
		log.Printf("[meal-svc] qr code error: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (h *Handler) popupCommand(event domain.PopupEvent) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		popup, err := h.Popups.Handle(r.Context(), h.sessionID(w, r), []domain.PopupEvent{event})
		if err != nil {
			log.Printf("[meal-svc] popup state error: %v", err)
			http.Error(w, "session unavailable", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, popup)
	}
}

func (h *Handler) serveDate(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	date, err := service.ParseServeDate(r.URL.Query().Get("date"), h.now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return time.Time{}, false
	}
	return date, true
}

func (h *Handler) buildPage(w http.ResponseWriter, r *http.Request, date time.Time) (*domain.MenuPage, bool) {
	page, err := h.Menus.BuildPage(r.Context(), date)
	if err != nil {
		log.Printf("[meal-svc] failed to build menu for %s: %v", service.NEISDate(date), err)
		switch {
		case errors.Is(err, service.ErrMealFetch):
			http.Error(w, err.Error(), http.StatusBadGateway)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return nil, false
	}
	return page, true
}

func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if _, err := uuid.Parse(cookie.Value); err == nil {
			return cookie.Value
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (h *Handler) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

// popupEvents maps the page's query parameters to popup commands. The close
// action is applied after open so a dismiss always wins.
func popupEvents(query url.Values) []domain.PopupEvent {
	var events []domain.PopupEvent
	if query.Get("popup") == "open" {
		events = append(events, domain.OpenPopup)
	}
	if _, ok := query["close"]; ok {
		events = append(events, domain.DismissPopup)
	}
	return events
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[meal-svc] failed to encode response: %v", err)
	}
}
