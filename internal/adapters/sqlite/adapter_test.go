package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/olifog/musejump/backend/internal/core/domain"
)

func newTestAdapter(t *testing.T) *Adapter {
	t.Helper()
	a, err := NewAdapter(":memory:")
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func mustAdd(t *testing.T, a *Adapter, jump domain.Jump) domain.Jump {
	t.Helper()
	created, err := a.AddJump(context.Background(), jump)
	if err != nil {
		t.Fatalf("add jump: %v", err)
	}
	return created
}

func TestAdapter_AddAndList(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	created := mustAdd(t, a, domain.Jump{
		OwnerID:     "user-a",
		TrackID:     "track-1",
		TriggerMs:   14000,
		TargetMs:    20000,
		Description: "Skip chorus",
	})

	if created.ID == "" {
		t.Fatal("expected a generated id")
	}
	if created.CreatedAt.IsZero() {
		t.Fatal("expected a server-side creation time")
	}

	jumps, err := a.ListJumps(ctx, "user-a", "track-1")
	if err != nil {
		t.Fatalf("list jumps: %v", err)
	}
	if len(jumps) != 1 {
		t.Fatalf("got %d jumps, want 1", len(jumps))
	}
	got := jumps[0]
	if got.ID != created.ID || got.TriggerMs != 14000 || got.TargetMs != 20000 {
		t.Fatalf("listed jump mismatch: %+v", got)
	}
	if got.Description != "Skip chorus" {
		t.Fatalf("description: got %q", got.Description)
	}
}

func TestAdapter_ListScoping(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	mustAdd(t, a, domain.Jump{OwnerID: "user-a", TrackID: "track-1", TriggerMs: 1, TargetMs: 2})
	mustAdd(t, a, domain.Jump{OwnerID: "user-a", TrackID: "track-2", TriggerMs: 3, TargetMs: 4})
	mustAdd(t, a, domain.Jump{OwnerID: "user-b", TrackID: "track-1", TriggerMs: 5, TargetMs: 6})

	jumps, err := a.ListJumps(ctx, "user-a", "track-1")
	if err != nil {
		t.Fatalf("list jumps: %v", err)
	}
	if len(jumps) != 1 {
		t.Fatalf("got %d jumps, want 1", len(jumps))
	}
	if jumps[0].OwnerID != "user-a" || jumps[0].TrackID != "track-1" {
		t.Fatalf("scoping leak: %+v", jumps[0])
	}

	empty, err := a.ListJumps(ctx, "user-c", "track-1")
	if err != nil {
		t.Fatalf("list jumps for unknown owner: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty slice, got %+v", empty)
	}
}

func TestAdapter_AddRejectsNegativeOffsets(t *testing.T) {
	a := newTestAdapter(t)

	_, err := a.AddJump(context.Background(), domain.Jump{
		OwnerID: "user-a", TrackID: "track-1", TriggerMs: -1, TargetMs: 0,
	})
	if err == nil {
		t.Fatal("expected error for negative trigger")
	}
}

func TestAdapter_UpdateJump(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	created := mustAdd(t, a, domain.Jump{
		OwnerID: "user-a", TrackID: "track-1", TriggerMs: 1000, TargetMs: 2000,
	})

	if err := a.UpdateJump(ctx, "user-a", created.ID, 5000, 6000, "moved"); err != nil {
		t.Fatalf("update jump: %v", err)
	}

	jumps, err := a.ListJumps(ctx, "user-a", "track-1")
	if err != nil {
		t.Fatalf("list jumps: %v", err)
	}
	got := jumps[0]
	if got.TriggerMs != 5000 || got.TargetMs != 6000 || got.Description != "moved" {
		t.Fatalf("update not applied: %+v", got)
	}
	if got.ID != created.ID || got.TrackID != "track-1" {
		t.Fatalf("identity fields changed: %+v", got)
	}
}

func TestAdapter_CrossOwnerMutationFails(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	created := mustAdd(t, a, domain.Jump{
		OwnerID: "user-a", TrackID: "track-1", TriggerMs: 1000, TargetMs: 2000, Description: "mine",
	})

	if err := a.UpdateJump(ctx, "user-b", created.ID, 0, 0, "stolen"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("cross-owner update: expected ErrNotFound, got %v", err)
	}
	if err := a.DeleteJump(ctx, "user-b", created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("cross-owner delete: expected ErrNotFound, got %v", err)
	}

	// The row must remain readable and unchanged for the real owner.
	jumps, err := a.ListJumps(ctx, "user-a", "track-1")
	if err != nil {
		t.Fatalf("list jumps: %v", err)
	}
	if len(jumps) != 1 {
		t.Fatalf("row disappeared: got %d jumps", len(jumps))
	}
	got := jumps[0]
	if got.TriggerMs != 1000 || got.TargetMs != 2000 || got.Description != "mine" {
		t.Fatalf("row mutated by non-owner: %+v", got)
	}
}

func TestAdapter_DeleteJump(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	created := mustAdd(t, a, domain.Jump{
		OwnerID: "user-a", TrackID: "track-1", TriggerMs: 1000, TargetMs: 2000,
	})

	if err := a.DeleteJump(ctx, "user-a", created.ID); err != nil {
		t.Fatalf("delete jump: %v", err)
	}

	jumps, err := a.ListJumps(ctx, "user-a", "track-1")
	if err != nil {
		t.Fatalf("list jumps: %v", err)
	}
	if len(jumps) != 0 {
		t.Fatalf("expected no jumps after delete, got %+v", jumps)
	}

	if err := a.DeleteJump(ctx, "user-a", created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}
