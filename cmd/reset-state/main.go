// Command reset-state wipes persisted album state. Collection progress is
// never deleted by the server itself; this tool is the administrative path
// for starting a user over or clearing admin overrides.
//
// Usage:
//
//	reset-state [-overrides] [-offers] [-all]
//
// With no flags only the user state blob is removed.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/liconlabs/corporate-legends/backend/internal/store"
)

func main() {
	overrides := flag.Bool("overrides", false, "also remove admin card overrides")
	offers := flag.Bool("offers", false, "also remove posted trade offers")
	all := flag.Bool("all", false, "remove every persisted blob, including global assets")
	flag.Parse()

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./album.db"
	}

	blobStore, err := store.Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to open blob store: %v", err)
	}

	keys := []string{store.KeyUserState}
	if *overrides || *all {
		keys = append(keys, store.KeyCardOverrides)
	}
	if *offers || *all {
		keys = append(keys, store.KeyTradeOffers)
	}
	if *all {
		keys = append(keys, store.KeyGlobalAssets)
	}

	for _, key := range keys {
		if err := blobStore.Delete(key); err != nil {
			log.Fatalf("Failed to delete %s: %v", key, err)
		}
		log.Printf("Deleted %s", key)
	}
}
