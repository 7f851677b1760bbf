// Package metrics provides Prometheus metrics for the card album backend.
// Scrape these at /metrics for Grafana dashboards and alerting.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "album_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// Pack Metrics
	PacksOpenedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "album_packs_opened_total",
			Help: "Packs opened by allowance source",
		},
		[]string{"source"}, // "daily" or "inventory"
	)

	PackOpensRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "album_pack_opens_rejected_total",
			Help: "Pack opens rejected for lack of any allowance",
		},
	)

	CardsDrawnTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "album_cards_drawn_total",
			Help: "Cards drawn from packs by rarity",
		},
		[]string{"rarity"},
	)

	// Trade Metrics
	BurnTradesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "album_burn_trades_total",
			Help: "Burn trades by result",
		},
		[]string{"result"}, // "granted", "invalid_selection", "nothing_to_grant"
	)

	TradeOffersActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "album_trade_offers_active",
			Help: "Peer trade offers currently posted on the market board",
		},
	)

	// Achievement Metrics
	AchievementsUnlockedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "album_achievements_unlocked_total",
			Help: "Total achievements unlocked",
		},
	)

	RewardPacksGrantedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "album_reward_packs_granted_total",
			Help: "Reward packs granted by achievement unlocks",
		},
	)

	// Collection Metrics
	CollectionUniqueCards = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "album_collection_unique_cards",
			Help: "Unique cards owned",
		},
	)

	CollectionDuplicates = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "album_collection_duplicates",
			Help: "Extra copies held beyond the first of each card",
		},
	)

	CollectionCompletionPercent = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "album_collection_completion_percent",
			Help: "Owned unique cards as a percentage of the roster",
		},
	)

	PacksAvailable = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "album_packs_available",
			Help: "Unopened reward packs waiting in inventory",
		},
	)

	// Roster Metrics
	RosterLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "album_roster_loads_total",
			Help: "Roster loads by source",
		},
		[]string{"source"}, // "generated", "fallback", "cache"
	)

	RosterSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "album_roster_size",
			Help: "Number of cards in the active roster",
		},
	)

	GeminiRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "album_gemini_requests_total",
			Help: "Total Gemini roster generation requests",
		},
	)

	GeminiErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "album_gemini_errors_total",
			Help: "Gemini API errors by type",
		},
		[]string{"type"}, // "network", "read", "api", "parse", "empty"
	)

	// Storage Metrics
	StorageFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "album_storage_failures_total",
			Help: "Blob store failures by operation",
		},
		[]string{"op"}, // "load" or "save"
	)
)
