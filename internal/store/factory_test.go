package store

import (
	"context"
	"testing"
)

func TestNewStore_Memory(t *testing.T) {
	s, err := NewStore(context.Background(), "memory", "")
	if err != nil {
		t.Fatalf("NewStore(memory): %v", err)
	}
	defer s.Close()

	if _, ok := s.(*MemoryStore); !ok {
		t.Fatalf("got %T, want *MemoryStore", s)
	}
}

func TestNewStore_UnsupportedType(t *testing.T) {
	if _, err := NewStore(context.Background(), "cassandra", ""); err == nil {
		t.Fatal("expected error for unsupported store type")
	}
}

func TestNewStore_PostgresBadDSN(t *testing.T) {
	if _, err := NewStore(context.Background(), "postgres", "not-a-dsn://"); err == nil {
		t.Fatal("expected error for malformed DSN")
	}
}
