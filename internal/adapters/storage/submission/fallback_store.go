package submission

import (
	"context"
	"errors"
	"log/slog"

	storage "steppingstones/internal/adapters/storage"
	domain "steppingstones/internal/domain/submission"
)

// FallbackStore routes operations to the primary backend and degrades to the
// fallback tier when the backend errs. Degradation is logged, never surfaced:
// the public submission flow must succeed so no lead is lost even when the
// database is down.
type FallbackStore struct {
	primary  Store
	fallback Store
}

// NewFallbackStore wraps a primary Store with a fallback tier.
// PRE: fallback never returns backend errors (in practice a *MemoryStore)
func NewFallbackStore(primary, fallback Store) *FallbackStore {
	return &FallbackStore{primary: primary, fallback: fallback}
}

// NewFallbackOnly returns a store running permanently in the degraded tier,
// for environments without a reachable backend.
func NewFallbackOnly(fallback Store) *FallbackStore {
	return &FallbackStore{fallback: fallback}
}

// Save persists to the primary tier, degrading to the fallback on any backend
// error. The returned error is always nil; persistence failure is signaled
// only through fallback behavior so the lifecycle controller can proceed to
// notification regardless.
func (f *FallbackStore) Save(ctx context.Context, n domain.NewSubmission) (domain.Submission, error) {
	if f.primary != nil {
		sub, err := f.primary.Save(ctx, n)
		if err == nil {
			return sub, nil
		}
		slog.Warn("storage_degraded", "op", "save", "error", err.Error())
	}
	return f.fallback.Save(ctx, n)
}

// ListAll queries the primary tier first and returns the fallback list only
// when the backend query fails.
func (f *FallbackStore) ListAll(ctx context.Context) ([]domain.Submission, error) {
	if f.primary != nil {
		subs, err := f.primary.ListAll(ctx)
		if err == nil {
			return subs, nil
		}
		slog.Warn("storage_degraded", "op", "list_all", "error", err.Error())
	}
	return f.fallback.ListAll(ctx)
}

// GetByID looks up the primary tier, then the fallback. A record captured
// while the backend was down stays reachable; absence in both tiers is
// storage.ErrNotFound.
func (f *FallbackStore) GetByID(ctx context.Context, id string) (domain.Submission, error) {
	if f.primary != nil {
		sub, err := f.primary.GetByID(ctx, id)
		if err == nil {
			return sub, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Warn("storage_degraded", "op", "get_by_id", "error", err.Error())
		}
	}
	return f.fallback.GetByID(ctx, id)
}

// UpdateStatus applies the transition in the primary tier, consulting the
// fallback when the backend errs or does not hold the record. False means
// the record was not found in either tier.
func (f *FallbackStore) UpdateStatus(ctx context.Context, id, status string, notes *string) (bool, error) {
	if !domain.IsValidStatus(status) {
		return false, domain.ErrInvalidStatus
	}
	if f.primary != nil {
		ok, err := f.primary.UpdateStatus(ctx, id, status, notes)
		if err == nil && ok {
			return true, nil
		}
		if err != nil {
			slog.Warn("storage_degraded", "op", "update_status", "error", err.Error())
		}
	}
	return f.fallback.UpdateStatus(ctx, id, status, notes)
}
