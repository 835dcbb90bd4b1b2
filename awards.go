package awards

import (
	"github.com/goliatone/go-awards/core"
	"github.com/goliatone/go-awards/identity"
)

type Config = core.Config

type Option = core.Option

type Service = core.Service

type ServiceDependencies = core.ServiceDependencies
type AchievementStore = core.AchievementStore
type IdentityStore = core.IdentityStore
type AwardStore = core.AwardStore
type IdentityDeriver = core.IdentityDeriver

type Achievement = core.Achievement
type AchievementCredential = core.AchievementCredential
type AchievementSubject = core.AchievementSubject
type IdentityObject = core.IdentityObject
type Profile = core.Profile
type PublicCredential = core.PublicCredential

type CreateAchievementInput = core.CreateAchievementInput
type IssueAwardRequest = core.IssueAwardRequest
type ListAwardsRequest = core.ListAwardsRequest

type IdentifierType = core.IdentifierType

var (
	WithLogger            = core.WithLogger
	WithLoggerProvider    = core.WithLoggerProvider
	WithMetricsRecorder   = core.WithMetricsRecorder
	WithErrorFactory      = core.WithErrorFactory
	WithErrorMapper       = core.WithErrorMapper
	WithPersistenceClient = core.WithPersistenceClient
	WithRepositoryFactory = core.WithRepositoryFactory
	WithConfigProvider    = core.WithConfigProvider
	WithOptionsResolver   = core.WithOptionsResolver
	WithAchievementStore  = core.WithAchievementStore
	WithIdentityStore     = core.WithIdentityStore
	WithAwardStore        = core.WithAwardStore
	WithIdentityDeriver   = core.WithIdentityDeriver
	WithClock             = core.WithClock
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

// NewService builds the award service with the identity resolver as the
// default identifier deriver. Pass WithIdentityDeriver to override it.
func NewService(cfg Config, opts ...Option) (*Service, error) {
	options := make([]Option, 0, len(opts)+1)
	options = append(options, core.WithIdentityDeriver(identity.NewResolver(identity.Config{})))
	options = append(options, opts...)
	return core.NewService(cfg, options...)
}

func Setup(cfg Config, opts ...Option) (*Service, error) {
	return NewService(cfg, opts...)
}
