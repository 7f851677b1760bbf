// Package roster supplies the card catalog: a fixed set of curated cards
// followed by generated employees, with admin overrides merged in before
// anything downstream sees a card.
package roster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/liconlabs/corporate-legends/backend/internal/metrics"
	"github.com/liconlabs/corporate-legends/backend/internal/models"
	"github.com/liconlabs/corporate-legends/backend/internal/store"
)

const defaultRosterSize = 250

// Generator produces employee card templates. Satisfied by *GeminiClient.
type Generator interface {
	IsEnabled() bool
	GenerateTemplates(ctx context.Context) ([]cardTemplate, error)
}

// OverrideSource reads persisted admin card overrides. Satisfied by
// *store.BlobStore.
type OverrideSource interface {
	Get(key string) (string, error)
}

// Service resolves the roster once per session and serves it idempotently.
// Generation failures degrade to the deterministic fallback roster, never to
// an empty one.
type Service struct {
	generator Generator
	overrides OverrideSource
	size      int

	mu   sync.Mutex
	base []models.Card // resolved roster before overrides
}

func NewService(generator Generator, overrides OverrideSource, size int) *Service {
	if size <= 0 {
		size = defaultRosterSize
	}
	return &Service{
		generator: generator,
		overrides: overrides,
		size:      size,
	}
}

// Roster returns the full card catalog with admin overrides applied. The
// underlying generated roster is resolved once and reused for the life of
// the process; overrides are re-read on every call so admin edits show up
// without a restart.
func (s *Service) Roster(ctx context.Context) ([]models.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.base == nil {
		s.base = s.resolve(ctx)
		metrics.RosterSize.Set(float64(len(s.base)))
	} else {
		metrics.RosterLoadsTotal.WithLabelValues("cache").Inc()
	}

	return s.applyOverrides(s.base), nil
}

// resolve builds the base roster: fixed starter cards plus generated
// employees expanded to the configured size, or the static fallback.
func (s *Service) resolve(ctx context.Context) []models.Card {
	if s.generator == nil || !s.generator.IsEnabled() {
		log.Printf("Roster: generation unavailable, using fallback roster (%d cards)", s.size)
		metrics.RosterLoadsTotal.WithLabelValues("fallback").Inc()
		return FallbackRoster(s.size)
	}

	templates, err := s.generator.GenerateTemplates(ctx)
	if err != nil {
		log.Printf("Roster generation failed, using fallback roster: %v", err)
		metrics.RosterLoadsTotal.WithLabelValues("fallback").Inc()
		return FallbackRoster(s.size)
	}

	metrics.RosterLoadsTotal.WithLabelValues("generated").Inc()
	return expandTemplates(templates, s.size)
}

// expandTemplates assigns ids and image refs to generated templates,
// cycling through them when fewer templates than slots were generated.
// Cycled clones get a numbered name so no two cards read identically.
func expandTemplates(templates []cardTemplate, size int) []models.Card {
	cards := FixedStarterCards()
	fixed := len(cards)

	for i := 0; len(cards) < size; i++ {
		id := fixed + i + 1
		tpl := templates[i%len(templates)]

		name := tpl.Name
		power := clampPower(tpl.Power)
		if i >= len(templates) {
			name = fmt.Sprintf("%s (%d)", tpl.Name, id)
			power = 1 + (id*53)%99
		}

		seed := strings.ReplaceAll(tpl.Name, " ", "")
		cards = append(cards, models.Card{
			ID:          id,
			Name:        name,
			Role:        tpl.Role,
			Department:  tpl.Department,
			Rarity:      tpl.Rarity,
			ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s%d/300/400", seed, id),
			Description: tpl.Description,
			Power:       power,
		})
	}
	if len(cards) > size {
		cards = cards[:size]
	}
	return cards
}

func clampPower(p int) int {
	if p < 1 {
		return 1
	}
	if p > 99 {
		return 99
	}
	return p
}

// applyOverrides merges persisted admin edits into the roster. A corrupt or
// missing override blob leaves the roster as generated.
func (s *Service) applyOverrides(base []models.Card) []models.Card {
	merged := make([]models.Card, len(base))
	copy(merged, base)

	if s.overrides == nil {
		return merged
	}
	raw, err := s.overrides.Get(store.KeyCardOverrides)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("Roster: failed to load card overrides: %v", err)
		}
		return merged
	}

	var overrides map[int]models.CardOverride
	if err := json.Unmarshal([]byte(raw), &overrides); err != nil {
		log.Printf("Roster: failed to parse card overrides: %v", err)
		return merged
	}

	for i, c := range merged {
		if o, ok := overrides[c.ID]; ok {
			merged[i] = o.Apply(c)
		}
	}
	return merged
}
