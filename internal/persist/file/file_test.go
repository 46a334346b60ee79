package file

import (
	"context"
	"testing"
)

func TestSaveLoadRoundtrip(t *testing.T) {
	ctx := context.Background()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Save(ctx, "customers", []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load(ctx, "customers")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != `[{"id":"1"}]` {
		t.Fatalf("load = %s", got)
	}
}

func TestLoadAbsentKey(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	got, err := s.Load(context.Background(), "transactions")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for absent key, got %q", got)
	}
}

func TestSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	s, _ := Open(t.TempDir())
	_ = s.Save(ctx, "k", []byte("one"))
	if err := s.Save(ctx, "k", []byte("two")); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, _ := s.Load(ctx, "k")
	if string(got) != "two" {
		t.Fatalf("load = %q, want two", got)
	}
}
