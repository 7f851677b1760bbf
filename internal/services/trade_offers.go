package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/liconlabs/corporate-legends/backend/internal/metrics"
	"github.com/liconlabs/corporate-legends/backend/internal/models"
	"github.com/liconlabs/corporate-legends/backend/internal/store"
)

// ErrOfferNotFound is returned when deleting an offer that does not exist.
var ErrOfferNotFound = errors.New("trade offer not found")

// TradeOfferService keeps the market board of peer-declared offers. Offers
// are cosmetic: the engine never moves cards for them, people settle the
// exchange in person. The full board is persisted as one blob.
type TradeOfferService struct {
	store StateStore
	mu    sync.Mutex
}

func NewTradeOfferService(st StateStore) *TradeOfferService {
	return &TradeOfferService{store: st}
}

// List returns all posted offers, newest first.
func (s *TradeOfferService) List() ([]models.TradeOffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Create posts a new offer and returns it with its assigned id.
func (s *TradeOfferService) Create(req models.CreateTradeOfferRequest) (models.TradeOffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	offers, err := s.load()
	if err != nil {
		return models.TradeOffer{}, err
	}

	offer := models.TradeOffer{
		ID:         uuid.New().String(),
		UserName:   req.UserName,
		Offering:   req.Offering,
		Requesting: req.Requesting,
		CreatedAt:  time.Now(),
	}
	offers = append([]models.TradeOffer{offer}, offers...)

	if err := s.save(offers); err != nil {
		return models.TradeOffer{}, err
	}
	return offer, nil
}

// Delete withdraws an offer from the board.
func (s *TradeOfferService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	offers, err := s.load()
	if err != nil {
		return err
	}

	kept := offers[:0]
	for _, o := range offers {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	if len(kept) == len(offers) {
		return ErrOfferNotFound
	}
	return s.save(kept)
}

func (s *TradeOfferService) load() ([]models.TradeOffer, error) {
	raw, err := s.store.Get(store.KeyTradeOffers)
	if errors.Is(err, store.ErrNotFound) {
		return []models.TradeOffer{}, nil
	}
	if err != nil {
		metrics.StorageFailuresTotal.WithLabelValues("load").Inc()
		return nil, err
	}

	var offers []models.TradeOffer
	if err := json.Unmarshal([]byte(raw), &offers); err != nil {
		return nil, fmt.Errorf("parse trade offers: %w", err)
	}
	return offers, nil
}

func (s *TradeOfferService) save(offers []models.TradeOffer) error {
	raw, err := json.Marshal(offers)
	if err != nil {
		return fmt.Errorf("marshal trade offers: %w", err)
	}
	if err := s.store.Set(store.KeyTradeOffers, string(raw)); err != nil {
		metrics.StorageFailuresTotal.WithLabelValues("save").Inc()
		return err
	}
	metrics.TradeOffersActive.Set(float64(len(offers)))
	return nil
}
