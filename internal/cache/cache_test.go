package cache

import (
	"strings"
	"testing"
)

func TestGetReturnsStoredValue(t *testing.T) {
	c, err := New(1)
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}

	c.Put("alpha", "rendered output")

	value, hit := c.Get("alpha")
	if !hit || value != "rendered output" {
		t.Fatalf("expected hit with stored value, got hit=%v value=%q", hit, value)
	}

	if _, hit := c.Get("missing"); hit {
		t.Fatal("unexpected hit for missing key")
	}
}

func TestPutUpdatesExistingEntryWithoutGrowingCount(t *testing.T) {
	c, err := New(1)
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}

	c.Put("alpha", strings.Repeat("x", 16))
	before := c.SizeOf()

	c.Put("alpha", strings.Repeat("y", 24))
	if c.SizeOf() != before+8 {
		t.Fatalf("unexpected size after update: got %d, want %d", c.SizeOf(), before+8)
	}

	if value, hit := c.Get("alpha"); !hit || value != strings.Repeat("y", 24) {
		t.Fatalf("expected updated value, got hit=%v", hit)
	}
}

func TestEvictionDropsLeastRecentlyUsed(t *testing.T) {
	c, err := New(1)
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}

	big := strings.Repeat("a", 700*1024)
	c.Put("first", big)
	c.Put("second", big)

	if _, hit := c.Get("first"); hit {
		t.Fatal("expected first entry to be evicted")
	}
	if _, hit := c.Get("second"); !hit {
		t.Fatal("expected second entry to survive")
	}
}

func TestNewRejectsNonPositiveSize(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Fatal("expected error for zero size")
	}
}
