package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-awards/core"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type AchievementStore struct {
	db   *bun.DB
	repo repository.Repository[*achievementRecord]
}

func NewAchievementStore(db *bun.DB) (*AchievementStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*achievementRecord](db, achievementHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid achievement repository wiring: %w", err)
		}
	}
	return &AchievementStore{db: db, repo: repo}, nil
}

func (s *AchievementStore) Create(ctx context.Context, in core.CreateAchievementInput) (core.Achievement, error) {
	if s == nil || s.repo == nil {
		return core.Achievement{}, fmt.Errorf("sqlstore: achievement store is not configured")
	}
	if err := in.Validate(); err != nil {
		return core.Achievement{}, err
	}

	record := newAchievementRecord(core.CreateAchievementInput{
		CreatorID:   strings.TrimSpace(in.CreatorID),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
	}, uuid.NewString(), time.Now().UTC())

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return core.Achievement{}, err
	}
	return created.toDomain(), nil
}

func (s *AchievementStore) Get(ctx context.Context, docID string) (core.Achievement, error) {
	if s == nil || s.db == nil {
		return core.Achievement{}, fmt.Errorf("sqlstore: achievement store is not configured")
	}
	trimmed := strings.TrimSpace(docID)
	if trimmed == "" {
		return core.Achievement{}, fmt.Errorf("sqlstore: achievement doc id is required")
	}

	record := new(achievementRecord)
	err := s.db.NewSelect().
		Model(record).
		Where("ach.doc_id = ?", trimmed).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Achievement{}, fmt.Errorf("%w: doc id %q", core.ErrAchievementNotFound, trimmed)
		}
		return core.Achievement{}, err
	}
	return record.toDomain(), nil
}

var _ core.AchievementStore = (*AchievementStore)(nil)
