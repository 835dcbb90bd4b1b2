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

type AwardStore struct {
	db             *bun.DB
	subjectRepo    repository.Repository[*subjectRecord]
	credentialRepo repository.Repository[*credentialRecord]
}

func NewAwardStore(db *bun.DB) (*AwardStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	subjectRepo := repository.NewRepository[*subjectRecord](db, subjectHandlers())
	if validator, ok := subjectRepo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid subject repository wiring: %w", err)
		}
	}
	credentialRepo := repository.NewRepository[*credentialRecord](db, credentialHandlers())
	if validator, ok := credentialRepo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid credential repository wiring: %w", err)
		}
	}
	return &AwardStore{
		db:             db,
		subjectRepo:    subjectRepo,
		credentialRepo: credentialRepo,
	}, nil
}

// Issue executes the award workflow in one transaction: achievement
// load, identity upsert, subject and profile inserts, credential insert
// with a placeholder URI, and the finalizing URI update. Any failure
// rolls back every step, so no partially-formed credential or orphan
// subject ever commits.
func (s *AwardStore) Issue(ctx context.Context, in core.IssueAwardInput) (core.AchievementCredential, error) {
	if s == nil || s.db == nil {
		return core.AchievementCredential{}, fmt.Errorf("sqlstore: award store is not configured")
	}
	achievementID := strings.TrimSpace(in.AchievementID)
	if achievementID == "" {
		return core.AchievementCredential{}, fmt.Errorf("sqlstore: achievement doc id is required")
	}
	if in.PublicURI == nil {
		return core.AchievementCredential{}, fmt.Errorf("sqlstore: public URI builder is required")
	}
	awardedAt := in.AwardedAt.UTC()
	if awardedAt.IsZero() {
		awardedAt = time.Now().UTC()
	}

	var issued core.AchievementCredential
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		achievement := new(achievementRecord)
		if err := tx.NewSelect().
			Model(achievement).
			Where("ach.doc_id = ?", achievementID).
			Scan(ctx); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: doc id %q", core.ErrAchievementNotFound, achievementID)
			}
			return err
		}
		if strings.TrimSpace(achievement.CreatorID) == "" {
			return fmt.Errorf("%w: achievement %q", core.ErrMissingCreator, achievementID)
		}

		identityRef, err := upsertIdentity(ctx, tx, in.Identity)
		if err != nil {
			return err
		}

		subject, err := s.subjectRepo.CreateTx(ctx, tx, &subjectRecord{
			DocID:         uuid.NewString(),
			IdentityID:    identityRef.ID,
			AchievementID: achievement.DocID,
			SourceID:      achievement.CreatorID,
			Type:          []string{core.TypeAchievementSubject},
			CreatedAt:     awardedAt,
		})
		if err != nil {
			return err
		}

		profile := &subjectProfileRecord{
			ID:         uuid.NewString(),
			SubjectID:  subject.DocID,
			Name:       strings.TrimSpace(in.Profile.Name),
			GivenName:  strings.TrimSpace(in.Profile.GivenName),
			FamilyName: strings.TrimSpace(in.Profile.FamilyName),
			// The caller-supplied profile email is never trusted; the
			// resolved identifier always wins.
			Email:     strings.TrimSpace(in.Email),
			CreatedAt: awardedAt,
		}
		if _, err := tx.NewInsert().Model(profile).Exec(ctx); err != nil {
			return err
		}

		credential, err := s.credentialRepo.CreateTx(ctx, tx, &credentialRecord{
			DocID: uuid.NewString(),
			// Placeholder until the credential's own doc id exists in
			// storage; rewritten before the transaction commits.
			URI:         subject.DocID,
			Type:        []string{core.TypeAchievementCredential},
			Name:        achievement.Name,
			Description: achievement.Description,
			AwardedDate: awardedAt,
			ValidFrom:   awardedAt,
			IssuerID:    achievement.CreatorID,
			SubjectID:   subject.DocID,
			CreatedAt:   awardedAt,
			UpdatedAt:   awardedAt,
		})
		if err != nil {
			return err
		}

		finalURI := strings.TrimSpace(in.PublicURI(credential.DocID))
		if finalURI == "" {
			return fmt.Errorf("sqlstore: public URI builder returned an empty URI for %q", credential.DocID)
		}
		if _, err := tx.NewUpdate().
			Model((*credentialRecord)(nil)).
			Set("uri = ?", finalURI).
			Set("updated_at = ?", time.Now().UTC()).
			Where("doc_id = ?", credential.DocID).
			Exec(ctx); err != nil {
			return err
		}
		credential.URI = finalURI

		identityRow := new(identityRecord)
		if err := tx.NewSelect().
			Model(identityRow).
			Where("io.identity_hash = ?", strings.TrimSpace(in.Identity.IdentityHash)).
			Scan(ctx); err != nil {
			return err
		}

		subject.Profile = profile
		subject.Identity = identityRow
		credential.Subject = subject
		issued = credential.toDomain()
		return nil
	})
	if err != nil {
		return core.AchievementCredential{}, err
	}
	return issued, nil
}

func (s *AwardStore) Get(ctx context.Context, docID string) (core.AchievementCredential, error) {
	if s == nil || s.db == nil {
		return core.AchievementCredential{}, fmt.Errorf("sqlstore: award store is not configured")
	}
	trimmed := strings.TrimSpace(docID)
	if trimmed == "" {
		return core.AchievementCredential{}, fmt.Errorf("sqlstore: credential doc id is required")
	}

	record := new(credentialRecord)
	err := s.db.NewSelect().
		Model(record).
		Relation("Subject").
		Relation("Subject.Profile").
		Relation("Subject.Identity").
		Where("ac.doc_id = ?", trimmed).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.AchievementCredential{}, fmt.Errorf("%w: doc id %q", core.ErrAwardNotFound, trimmed)
		}
		return core.AchievementCredential{}, err
	}
	return record.toDomain(), nil
}

// List returns credentials awarded against one achievement, newest
// first. A non-empty query narrows to subjects whose profile matches
// case-insensitively on one of the enumerated searchable fields.
func (s *AwardStore) List(ctx context.Context, filter core.ListAwardsFilter) ([]core.AchievementCredential, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlstore: award store is not configured")
	}
	achievementID := strings.TrimSpace(filter.AchievementID)
	if achievementID == "" {
		return nil, fmt.Errorf("sqlstore: achievement doc id is required")
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}

	subjects := s.db.NewSelect().
		Model((*subjectRecord)(nil)).
		Column("asub.doc_id").
		Where("asub.achievement_id = ?", achievementID)
	if query := strings.TrimSpace(filter.Query); query != "" {
		pattern := "%" + strings.ToLower(query) + "%"
		subjects = subjects.
			Join("JOIN subject_profiles AS sp ON sp.subject_id = asub.doc_id").
			WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
				for _, field := range core.SearchableProfileFields() {
					q = q.WhereOr("LOWER(sp."+string(field)+") LIKE ?", pattern)
				}
				return q
			})
	}

	var records []*credentialRecord
	err := s.db.NewSelect().
		Model(&records).
		Relation("Subject").
		Relation("Subject.Profile").
		Relation("Subject.Identity").
		Where("ac.subject_id IN (?)", subjects).
		OrderExpr("ac.awarded_date DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	credentials := make([]core.AchievementCredential, 0, len(records))
	for _, record := range records {
		credentials = append(credentials, record.toDomain())
	}
	return credentials, nil
}

var _ core.AwardStore = (*AwardStore)(nil)
