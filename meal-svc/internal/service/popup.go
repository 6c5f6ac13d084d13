package service

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"school-meal/meal-svc/internal/domain"
)

var DefaultFacts = []string{
	"🥦 비타민 C는 면역력을 강화하고 피로 회복에 도움을 줘요!",
	"🥛 칼슘은 뼈 건강에 필수적이며 성장기 학생에게 꼭 필요합니다.",
	"🍚 탄수화물은 뇌의 주 에너지원이에요.",
	"🍗 단백질은 근육 형성과 회복에 중요한 역할을 해요.",
	"🥕 채소에 들어있는 식이섬유는 소화 건강을 도와줘요.",
	"🥩 철분은 혈액 속 산소 운반을 도와 피로를 줄여줍니다.",
}

type StaticFacts []string

func (f StaticFacts) Facts(ctx context.Context) ([]string, error) {
	return f, nil
}

func ApplyPopupEvent(state domain.PopupState, event domain.PopupEvent) domain.PopupState {
	switch event {
	case domain.OpenPopup:
		state.Visible = true
	case domain.DismissPopup:
		state.Visible = false
	}
	return state
}

// PickFact chooses one fact uniformly at random. It returns "" for an empty list.
func PickFact(facts []string, rng *rand.Rand) string {
	if len(facts) == 0 {
		return ""
	}
	return facts[rng.Intn(len(facts))]
}

func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

type PopupService struct {
	store   SessionStore
	facts   FactSource
	newRand func() *rand.Rand
}

func NewPopupService(store SessionStore, facts FactSource, newRand func() *rand.Rand) *PopupService {
	if newRand == nil {
		newRand = NewRand
	}
	return &PopupService{
		store:   store,
		facts:   facts,
		newRand: newRand,
	}
}

// Handle applies events to the session's popup state in order and returns what
// the page should show. A visible popup gets a freshly picked fact every call.
func (s *PopupService) Handle(ctx context.Context, sessionID string, events []domain.PopupEvent) (domain.PopupView, error) {
	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return domain.PopupView{}, fmt.Errorf("failed to load popup state: %w", err)
	}

	if len(events) > 0 {
		for _, event := range events {
			state = ApplyPopupEvent(state, event)
		}
		if err := s.store.Save(ctx, sessionID, state); err != nil {
			return domain.PopupView{}, fmt.Errorf("failed to save popup state: %w", err)
		}
	}

	view := domain.PopupView{Visible: state.Visible}
	if state.Visible {
		view.Fact = PickFact(s.loadFacts(ctx), s.newRand())
	}
	return view, nil
}

func (s *PopupService) loadFacts(ctx context.Context) []string {
	if s.facts == nil {
		return DefaultFacts
	}
	facts, err := s.facts.Facts(ctx)
	if err != nil {
		log.Printf("[meal-svc] failed to load fun facts, using defaults: %v", err)
		return DefaultFacts
	}
	if len(facts) == 0 {
		return DefaultFacts
	}
	return facts
}
