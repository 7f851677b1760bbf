package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/liconlabs/corporate-legends/backend/internal/collection"
	"github.com/liconlabs/corporate-legends/backend/internal/metrics"
	"github.com/liconlabs/corporate-legends/backend/internal/models"
	"github.com/liconlabs/corporate-legends/backend/internal/store"
)

// ErrAlreadyRegistered is returned when registration is attempted twice.
var ErrAlreadyRegistered = errors.New("user is already registered")

// RosterProvider supplies the card catalog. Satisfied by *roster.Service.
type RosterProvider interface {
	Roster(ctx context.Context) ([]models.Card, error)
}

// StateStore persists opaque blobs. Satisfied by *store.BlobStore.
type StateStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// AlbumService owns the single user's collection state. Every mutating
// operation runs under one mutex, applies a pure transformation, evaluates
// achievements, and persists the result before the next operation may start.
// A failed save leaves the in-memory state at the last persisted value.
type AlbumService struct {
	store  StateStore
	roster RosterProvider
	cfg    collection.Config
	rng    *rand.Rand

	mu    sync.Mutex
	state collection.State // always the last successfully persisted state
}

func NewAlbumService(st StateStore, rosterSvc RosterProvider, cfg collection.Config) (*AlbumService, error) {
	s := &AlbumService{
		store:  st,
		roster: rosterSvc,
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	loaded, err := loadState(st)
	if err != nil {
		return nil, err
	}
	s.state = loaded
	s.publishGauges(0)
	return s, nil
}

// loadState reads the persisted state blob, falling back to the default
// empty state when nothing was ever saved. A corrupt blob is logged and
// replaced rather than blocking startup.
func loadState(st StateStore) (collection.State, error) {
	raw, err := st.Get(store.KeyUserState)
	if errors.Is(err, store.ErrNotFound) {
		return collection.NewState(), nil
	}
	if err != nil {
		metrics.StorageFailuresTotal.WithLabelValues("load").Inc()
		return collection.State{}, fmt.Errorf("load user state: %w", err)
	}

	state := collection.NewState()
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		log.Printf("User state blob is corrupt, starting fresh: %v", err)
		return collection.NewState(), nil
	}
	if state.Duplicates == nil {
		state.Duplicates = map[int]int{}
	}
	return state, nil
}

// State returns a copy of the current state.
func (s *AlbumService) State() collection.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Config returns the engine configuration.
func (s *AlbumService) Config() collection.Config {
	return s.cfg
}

// Register creates the album: identity fields, registration flag, and the
// starter pack grant.
func (s *AlbumService) Register(name, email string) (collection.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.IsRegistered {
		return collection.State{}, ErrAlreadyRegistered
	}

	next := collection.Register(s.state, name, email, s.cfg)
	if err := s.commit(next, 0); err != nil {
		return collection.State{}, err
	}
	log.Printf("Registered user %q with %d starter pack(s)", name, s.cfg.StarterPackGrant)
	return s.state.Clone(), nil
}

// OpenPack opens one pack, folds the drawn cards into the collection, and
// applies any achievement unlocks the new cards triggered, all as a single
// persisted transition.
func (s *AlbumService) OpenPack(ctx context.Context, now time.Time) ([]models.Card, collection.PackSource, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.IsRegistered {
		return nil, "", nil, collection.ErrNotRegistered
	}

	cards, err := s.roster.Roster(ctx)
	if err != nil {
		return nil, "", nil, fmt.Errorf("roster unavailable: %w", err)
	}

	next, pack, source, err := collection.OpenPack(s.state, cards, s.cfg, now, s.rng)
	if err != nil {
		if errors.Is(err, collection.ErrNotEligible) {
			metrics.PackOpensRejectedTotal.Inc()
		}
		return nil, "", nil, err
	}

	next, unlocks := s.evaluateUnlocks(next, cards)
	if err := s.commit(next, len(cards)); err != nil {
		return nil, "", nil, err
	}

	metrics.PacksOpenedTotal.WithLabelValues(string(source)).Inc()
	for _, c := range pack {
		metrics.CardsDrawnTotal.WithLabelValues(string(c.Rarity)).Inc()
	}
	return pack, source, unlocks, nil
}

// BurnTrade spends duplicates for one missing card and applies any unlocks
// the granted card triggered.
func (s *AlbumService) BurnTrade(ctx context.Context, chosenIDs []int) (models.Card, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.IsRegistered {
		return models.Card{}, nil, collection.ErrNotRegistered
	}

	cards, err := s.roster.Roster(ctx)
	if err != nil {
		return models.Card{}, nil, fmt.Errorf("roster unavailable: %w", err)
	}

	next, granted, err := collection.BurnTrade(s.state, cards, chosenIDs, s.cfg, s.rng)
	if err != nil {
		switch {
		case errors.Is(err, collection.ErrInvalidSelection):
			metrics.BurnTradesTotal.WithLabelValues("invalid_selection").Inc()
		case errors.Is(err, collection.ErrNothingToGrant):
			metrics.BurnTradesTotal.WithLabelValues("nothing_to_grant").Inc()
		}
		return models.Card{}, nil, err
	}

	next, unlocks := s.evaluateUnlocks(next, cards)
	if err := s.commit(next, len(cards)); err != nil {
		return models.Card{}, nil, err
	}

	metrics.BurnTradesTotal.WithLabelValues("granted").Inc()
	return granted, unlocks, nil
}

// Stats summarizes collection progress against the current roster.
func (s *AlbumService) Stats(ctx context.Context) (models.AlbumStats, error) {
	cards, err := s.roster.Roster(ctx)
	if err != nil {
		return models.AlbumStats{}, fmt.Errorf("roster unavailable: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stats := models.AlbumStats{
		OwnedUnique:     len(s.state.OwnedCardIDs),
		RosterSize:      len(cards),
		DuplicatesTotal: s.state.DuplicatesTotal(),
		PacksAvailable:  s.state.PacksAvailable,
		AchievementsWon: len(s.state.UnlockedAchievements),
	}
	if stats.RosterSize > 0 {
		stats.CompletionPercent = 100 * float64(stats.OwnedUnique) / float64(stats.RosterSize)
	}
	s.publishGauges(stats.RosterSize)
	return stats, nil
}

// evaluateUnlocks runs the achievement rules against the post-mutation state
// and folds newly unlocked ids plus their reward packs into the same
// transition. Unlocking without granting the reward would be a correctness
// bug, so both happen before the state is committed.
func (s *AlbumService) evaluateUnlocks(next collection.State, cards []models.Card) (collection.State, []string) {
	unlocks := collection.Evaluate(next, cards)
	if len(unlocks) == 0 {
		return next, nil
	}

	before := next.PacksAvailable
	next = collection.ApplyUnlocks(next, unlocks)

	metrics.AchievementsUnlockedTotal.Add(float64(len(unlocks)))
	metrics.RewardPacksGrantedTotal.Add(float64(next.PacksAvailable - before))
	return next, unlocks
}

// commit persists next and only then makes it the current state. Callers
// must hold the mutex.
func (s *AlbumService) commit(next collection.State, rosterSize int) error {
	if err := next.CheckInvariant(); err != nil {
		return fmt.Errorf("refusing to persist inconsistent state: %w", err)
	}

	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("marshal user state: %w", err)
	}
	if err := s.store.Set(store.KeyUserState, string(raw)); err != nil {
		metrics.StorageFailuresTotal.WithLabelValues("save").Inc()
		return err
	}

	s.state = next
	s.publishGauges(rosterSize)
	return nil
}

func (s *AlbumService) publishGauges(rosterSize int) {
	metrics.CollectionUniqueCards.Set(float64(len(s.state.OwnedCardIDs)))
	metrics.CollectionDuplicates.Set(float64(s.state.DuplicatesTotal()))
	metrics.PacksAvailable.Set(float64(s.state.PacksAvailable))
	if rosterSize > 0 {
		metrics.CollectionCompletionPercent.Set(100 * float64(len(s.state.OwnedCardIDs)) / float64(rosterSize))
	}
}
