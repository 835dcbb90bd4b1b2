package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-awards/core"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type IdentityStore struct {
	db   *bun.DB
	repo repository.Repository[*identityRecord]
}

func NewIdentityStore(db *bun.DB) (*IdentityStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*identityRecord](db, identityHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid identity repository wiring: %w", err)
		}
	}
	return &IdentityStore{db: db, repo: repo}, nil
}

// Upsert inserts the identity if its hash is unseen and returns the
// stored row either way. Concurrent inserts for the same hash are
// settled by the unique constraint on identity_hash: one insert wins,
// the other observes the winner's row on reselect.
func (s *IdentityStore) Upsert(ctx context.Context, in core.UpsertIdentityInput) (core.IdentityRef, error) {
	if s == nil || s.db == nil {
		return core.IdentityRef{}, fmt.Errorf("sqlstore: identity store is not configured")
	}
	return upsertIdentity(ctx, s.db, in)
}

func (s *IdentityStore) GetByHash(ctx context.Context, identityHash string) (core.IdentityObject, error) {
	if s == nil || s.repo == nil {
		return core.IdentityObject{}, fmt.Errorf("sqlstore: identity store is not configured")
	}
	trimmed := strings.TrimSpace(identityHash)
	if trimmed == "" {
		return core.IdentityObject{}, fmt.Errorf("sqlstore: identity hash is required")
	}

	records, _, err := s.repo.List(ctx,
		repository.SelectBy("identity_hash", "=", trimmed),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return core.IdentityObject{}, err
	}
	if len(records) == 0 {
		return core.IdentityObject{}, fmt.Errorf("sqlstore: identity not found for hash %q", trimmed)
	}
	return records[0].toDomain(), nil
}

// upsertIdentity runs against any bun.IDB so the award workflow can
// reuse it inside its transaction.
func upsertIdentity(ctx context.Context, idb bun.IDB, in core.UpsertIdentityInput) (core.IdentityRef, error) {
	hash := strings.TrimSpace(in.IdentityHash)
	if hash == "" {
		return core.IdentityRef{}, fmt.Errorf("sqlstore: identity hash is required")
	}
	in.IdentityHash = hash

	record := newIdentityRecord(in, uuid.NewString(), time.Now().UTC())
	if _, err := idb.NewInsert().
		Model(record).
		On("CONFLICT (identity_hash) DO NOTHING").
		Exec(ctx); err != nil {
		return core.IdentityRef{}, err
	}

	stored := new(identityRecord)
	if err := idb.NewSelect().
		Model(stored).
		Where("io.identity_hash = ?", hash).
		Scan(ctx); err != nil {
		return core.IdentityRef{}, err
	}
	return stored.toRef(), nil
}

var _ core.IdentityStore = (*IdentityStore)(nil)
