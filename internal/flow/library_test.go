package flow

import (
	"context"
	"testing"

	"github.com/dgnsrekt/strategy_studio/internal/contract"
)

type stubLibraryBackend struct {
	listRes   contract.Result[[]contract.Strategy]
	deleteRes contract.Result[bool]
	deleted   []string
}

func (s *stubLibraryBackend) GetUserStrategies(ctx context.Context) contract.Result[[]contract.Strategy] {
	return s.listRes
}

func (s *stubLibraryBackend) DeleteStrategy(ctx context.Context, id string) contract.Result[bool] {
	s.deleted = append(s.deleted, id)
	return s.deleteRes
}

func saved(id, name, ticker string) contract.Strategy {
	return contract.Strategy{ID: id, Name: name, Ticker: ticker}
}

func TestLoadReplacesListOnSuccessOnly(t *testing.T) {
	backend := &stubLibraryBackend{
		listRes: contract.Ok([]contract.Strategy{saved("1", "Momentum", "AAPL")}),
	}
	lib := NewLibrary(backend)

	if err := lib.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := lib.Strategies(); len(got) != 1 {
		t.Fatalf("Strategies() returned %d, want 1", len(got))
	}

	backend.listRes = contract.Fail[[]contract.Strategy]("Failed to load strategies")
	if err := lib.Load(context.Background()); err == nil {
		t.Fatal("Load() expected error after backend failure")
	}
	if got := lib.Strategies(); len(got) != 1 {
		t.Fatalf("failed refresh should keep the old list, got %d entries", len(got))
	}
}

func TestFilterMatchesNameDescriptionTicker(t *testing.T) {
	backend := &stubLibraryBackend{
		listRes: contract.Ok([]contract.Strategy{
			{ID: "1", Name: "Momentum Surge", Ticker: "AAPL"},
			{ID: "2", Name: "Mean Reversion", Description: "fades momentum spikes", Ticker: "MSFT"},
			{ID: "3", Name: "Breakout", Ticker: "TSLA"},
		}),
	}
	lib := NewLibrary(backend)
	if err := lib.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := lib.Filter("momentum"); len(got) != 2 {
		t.Fatalf("Filter(momentum) returned %d, want 2", len(got))
	}
	if got := lib.Filter("tsla"); len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("Filter(tsla) = %v, want the TSLA strategy", got)
	}
	if got := lib.Filter("  "); len(got) != 3 {
		t.Fatalf("blank filter returned %d, want all 3", len(got))
	}
	if got := lib.Filter("nothing-here"); len(got) != 0 {
		t.Fatalf("Filter(nothing-here) returned %d, want 0", len(got))
	}
}

func TestDeleteRemovesLocallyAndPreservesOrder(t *testing.T) {
	backend := &stubLibraryBackend{
		listRes: contract.Ok([]contract.Strategy{
			saved("1", "A", ""), saved("2", "B", ""), saved("3", "C", ""),
		}),
		deleteRes: contract.Ok(true),
	}
	lib := NewLibrary(backend)
	if err := lib.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if err := lib.Delete(context.Background(), "2"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	got := lib.Strategies()
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Fatalf("Strategies() after delete = %v, want [1 3] in order", got)
	}
	if len(backend.deleted) != 1 || backend.deleted[0] != "2" {
		t.Fatalf("backend deletes = %v, want [2]", backend.deleted)
	}
}

func TestDeleteFailureKeepsList(t *testing.T) {
	backend := &stubLibraryBackend{
		listRes:   contract.Ok([]contract.Strategy{saved("1", "A", "")}),
		deleteRes: contract.Fail[bool]("Failed to delete strategy"),
	}
	lib := NewLibrary(backend)
	if err := lib.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if err := lib.Delete(context.Background(), "1"); err == nil {
		t.Fatal("Delete() expected error")
	}
	if got := lib.Strategies(); len(got) != 1 {
		t.Fatalf("list changed after failed delete, got %d entries", len(got))
	}
}

func TestStats(t *testing.T) {
	backend := &stubLibraryBackend{
		listRes: contract.Ok([]contract.Strategy{
			{ID: "1", Name: "A", SavedAt: "2026-08-01T10:00:00Z"},
			{ID: "2", Name: "B", SavedAt: "2026-08-20T09:30:00Z"},
			{ID: "3", Name: "C", SavedAt: "2026-07-15T08:00:00Z"},
		}),
	}
	lib := NewLibrary(backend)
	if err := lib.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	count, last := lib.Stats()
	if count != 3 {
		t.Fatalf("Stats() count = %d, want 3", count)
	}
	if last != "2026-08-20T09:30:00Z" {
		t.Fatalf("Stats() last = %q, want the most recent stamp", last)
	}
}
