package store

import (
	"errors"
	"path/filepath"
	"testing"
)

func testStore(t *testing.T) *BlobStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return s
}

func TestGetMissingKey(t *testing.T) {
	s := testStore(t)

	if _, err := s.Get(KeyUserState); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	s := testStore(t)

	if err := s.Set(KeyUserState, `{"name":"Elena"}`); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := s.Get(KeyUserState)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != `{"name":"Elena"}` {
		t.Errorf("Get() = %q", got)
	}
}

// A second Set replaces the blob wholesale.
func TestSetOverwrites(t *testing.T) {
	s := testStore(t)

	if err := s.Set(KeyUserState, "first"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Set(KeyUserState, "second"); err != nil {
		t.Fatalf("second Set() error = %v", err)
	}

	got, err := s.Get(KeyUserState)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "second" {
		t.Errorf("Get() = %q, want %q", got, "second")
	}
}

func TestKeysAreIndependent(t *testing.T) {
	s := testStore(t)

	if err := s.Set(KeyUserState, "state"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Set(KeyTradeOffers, "offers"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if got, _ := s.Get(KeyUserState); got != "state" {
		t.Errorf("Get(user_state) = %q", got)
	}
	if got, _ := s.Get(KeyTradeOffers); got != "offers" {
		t.Errorf("Get(trade_offers) = %q", got)
	}
}

func TestDelete(t *testing.T) {
	s := testStore(t)

	if err := s.Set(KeyCardOverrides, "{}"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Delete(KeyCardOverrides); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(KeyCardOverrides); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}

	// Deleting a missing key is fine.
	if err := s.Delete(KeyCardOverrides); err != nil {
		t.Errorf("Delete() of missing key error = %v", err)
	}
}
