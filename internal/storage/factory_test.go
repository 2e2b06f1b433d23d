package storage

import (
	"context"
	"testing"
)

func TestNewStoreMemory(t *testing.T) {
	store, err := NewStore("memory", "")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, ok := store.(*MemoryStore); !ok {
		t.Fatalf("expected *MemoryStore, got %T", store)
	}
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
}

func TestNewStoreDefaultsToConfiguredKind(t *testing.T) {
	store, err := NewStore("", "")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if store == nil {
		t.Fatal("expected a store for the default kind")
	}
}

func TestNewStoreRejectsUnknownKind(t *testing.T) {
	if _, err := NewStore("etcd", ""); err == nil {
		t.Fatal("expected error for unsupported backend")
	}
}

func TestCloseIfSupportedOnMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	if err := CloseIfSupported(store); err != nil {
		t.Fatalf("close: %v", err)
	}
}
