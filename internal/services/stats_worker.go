package services

import (
	"context"
	"log"
	"time"
)

// StatsWorker periodically republishes collection gauges so dashboards stay
// fresh even when no requests arrive between scrapes.
type StatsWorker struct {
	album         *AlbumService
	checkInterval time.Duration
}

func NewStatsWorker(album *AlbumService) *StatsWorker {
	return &StatsWorker{
		album:         album,
		checkInterval: time.Minute,
	}
}

// Start begins the background gauge refresh loop.
func (w *StatsWorker) Start(ctx context.Context) {
	log.Println("Stats worker started: refreshing collection gauges")

	w.refresh(ctx)

	ticker := time.NewTicker(w.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Stats worker stopping...")
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *StatsWorker) refresh(ctx context.Context) {
	if _, err := w.album.Stats(ctx); err != nil {
		log.Printf("Stats worker: failed to refresh gauges: %v", err)
	}
}
