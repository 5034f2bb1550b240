package letterboxd

import (
	"errors"
	"testing"

	"lbx/internal/shared"
)

func TestOperations(t *testing.T) {
	t.Run("every operation has a registry entry", func(t *testing.T) {
		for _, op := range Operations() {
			entry, ok := registry[op]
			if !ok {
				t.Fatalf("operation %d has no registry entry", int(op))
			}
			if entry.name == "" {
				t.Errorf("operation %d has no display name", int(op))
			}
			if entry.apply == nil {
				t.Errorf("operation %q has no handler", entry.name)
			}
		}
	})

	t.Run("display names are unique", func(t *testing.T) {
		seen := make(map[string]bool)
		for _, op := range Operations() {
			name := op.String()
			if seen[name] {
				t.Errorf("duplicate display name %q", name)
			}
			seen[name] = true
		}
	})

	t.Run("ParseOperation", func(t *testing.T) {
		t.Run("round trips every display name", func(t *testing.T) {
			for _, op := range Operations() {
				parsed, err := ParseOperation(op.String())
				if err != nil {
					t.Fatalf("failed to parse %q: %v", op.String(), err)
				}
				if parsed != op {
					t.Errorf("expected %v, got %v", op, parsed)
				}
			}
		})

		t.Run("unknown name fails without dispatch", func(t *testing.T) {
			_, err := ParseOperation("Transmogrify film")
			if !errors.Is(err, shared.ErrUnknownOperation) {
				t.Fatalf("expected ErrUnknownOperation, got %v", err)
			}
		})
	})

	t.Run("String on unregistered value", func(t *testing.T) {
		if got := Operation(99).String(); got != "Operation(99)" {
			t.Errorf("expected Operation(99), got %q", got)
		}
	})

	t.Run("URL builders", func(t *testing.T) {
		base := "https://example.com"
		if got := operationURLByID(base, "12345", "rate"); got != "https://example.com/s/film:12345/rate/" {
			t.Errorf("unexpected rate URL %q", got)
		}
		if got := addWatchlistURL(base, "the-thing"); got != "https://example.com/film/the-thing/add-to-watchlist/" {
			t.Errorf("unexpected add URL %q", got)
		}
		if got := removeWatchlistURL(base, "the-thing"); got != "https://example.com/film/the-thing/remove-from-watchlist/" {
			t.Errorf("unexpected remove URL %q", got)
		}
	})
}
