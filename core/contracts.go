package core

import (
	"context"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

// UpsertIdentityInput carries the stored representation of an external
// identifier. Whatever Hashed says, IdentityHash is the exact value the
// uniqueness constraint keys on; callers must derive it consistently.
type UpsertIdentityInput struct {
	Type         string
	IdentityHash string
	IdentityType IdentifierType
	Hashed       bool
}

// IssueAwardInput is the transactional workload handed to the award
// store. Every step runs inside one storage transaction: achievement
// load, identity upsert, subject + profile insert, credential insert
// with the placeholder URI, and the URI finalization update.
type IssueAwardInput struct {
	AchievementID string
	Identity      UpsertIdentityInput
	Profile       Profile
	// Email overrides the profile email with the resolved identifier.
	Email     string
	AwardedAt time.Time
	// PublicURI maps the credential docId to its canonical public URI
	// once storage has assigned the id.
	PublicURI func(docID string) string
}

type ListAwardsFilter struct {
	AchievementID string
	Query         string
	Limit         int
}

type AchievementStore interface {
	Create(ctx context.Context, in CreateAchievementInput) (Achievement, error)
	Get(ctx context.Context, docID string) (Achievement, error)
}

type IdentityStore interface {
	// Upsert is idempotent: repeated calls with the same identity hash
	// return the same stored row and perform at most one insert.
	Upsert(ctx context.Context, in UpsertIdentityInput) (IdentityRef, error)
	GetByHash(ctx context.Context, identityHash string) (IdentityObject, error)
}

type AwardStore interface {
	Issue(ctx context.Context, in IssueAwardInput) (AchievementCredential, error)
	Get(ctx context.Context, docID string) (AchievementCredential, error)
	List(ctx context.Context, filter ListAwardsFilter) ([]AchievementCredential, error)
}

type StoreProvider interface {
	AchievementStore() AchievementStore
	IdentityStore() IdentityStore
	AwardStore() AwardStore
}

type RepositoryStoreFactory interface {
	BuildStores(persistenceClient any) (StoreProvider, error)
}

// IdentityDeriver turns a raw external identifier into the stored
// identity representation. The award workflow uses it to keep the
// upsert inside the issuing transaction.
type IdentityDeriver interface {
	Derive(identifier string) (UpsertIdentityInput, error)
}

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}
