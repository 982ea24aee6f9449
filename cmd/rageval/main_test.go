package main

import (
	"context"
	"errors"
	"testing"

	"github.com/genieai/rag-eval-agent/internal/models"
	"github.com/genieai/rag-eval-agent/internal/runner"
	"github.com/genieai/rag-eval-agent/internal/store"
)

type fakeSelector struct {
	turns []models.Turn
	err   error
	got   store.Selection
}

func (f *fakeSelector) Select(ctx context.Context, sel store.Selection) ([]models.Turn, error) {
	f.got = sel
	return f.turns, f.err
}

// The dry-run path must return to main rather than exit the process, so
// deferred cleanup still runs.
func TestRunDryRun_ReturnsInsteadOfExiting(t *testing.T) {
	selector := &fakeSelector{
		turns: []models.Turn{{ChatID: "c1", MessageID: "m1"}},
	}
	opts := runner.RunOptions{GuestMode: true, Limit: 5, DateFilter: true}

	if err := runDryRun(context.Background(), selector, opts); err != nil {
		t.Fatalf("runDryRun failed: %v", err)
	}

	if !selector.got.GuestMode || selector.got.Limit != 5 || !selector.got.DateFilter {
		t.Errorf("Selection not built from options: %+v", selector.got)
	}
}

func TestRunDryRun_SelectionError(t *testing.T) {
	wantErr := errors.New("store down")
	selector := &fakeSelector{err: wantErr}

	err := runDryRun(context.Background(), selector, runner.RunOptions{})
	if !errors.Is(err, wantErr) {
		t.Errorf("Expected selection error to propagate, got %v", err)
	}
}
