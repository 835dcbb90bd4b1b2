package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
)

type Service struct {
	config            Config
	logger            Logger
	loggerProvider    LoggerProvider
	metricsRecorder   MetricsRecorder
	errorFactory      ErrorFactory
	errorMapper       ErrorMapper
	persistenceClient any
	repositoryFactory any
	configProvider    ConfigProvider
	optionsResolver   OptionsResolver
	achievementStore  AchievementStore
	identityStore     IdentityStore
	awardStore        AwardStore
	identityDeriver   IdentityDeriver
	clock             func() time.Time
}

type ServiceDependencies struct {
	Logger            Logger
	LoggerProvider    LoggerProvider
	MetricsRecorder   MetricsRecorder
	ErrorFactory      ErrorFactory
	ErrorMapper       ErrorMapper
	PersistenceClient any
	RepositoryFactory any
	ConfigProvider    ConfigProvider
	OptionsResolver   OptionsResolver
	AchievementStore  AchievementStore
	IdentityStore     IdentityStore
	AwardStore        AwardStore
	IdentityDeriver   IdentityDeriver
}

func NewService(cfg Config, options ...Option) (*Service, error) {
	builder := defaultServiceBuilder(cfg)
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("awards", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("awards"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.errorFactory == nil {
		builder.errorFactory = goerrors.New
	}
	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}
	if builder.identityDeriver == nil {
		builder.identityDeriver = rawIdentityDeriver{}
	}
	if builder.clock == nil {
		builder.clock = func() time.Time {
			return time.Now().UTC()
		}
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	if builder.repositoryFactory != nil && (builder.achievementStore == nil ||
		builder.identityStore == nil || builder.awardStore == nil) {
		var storeProvider StoreProvider
		if storeFactory, ok := builder.repositoryFactory.(RepositoryStoreFactory); ok {
			built, buildErr := storeFactory.BuildStores(builder.persistenceClient)
			if buildErr != nil {
				return nil, mapBuildError(builder.errorMapper, buildErr)
			}
			storeProvider = built
		} else if built, ok := builder.repositoryFactory.(StoreProvider); ok {
			storeProvider = built
		}
		if storeProvider != nil {
			if builder.achievementStore == nil {
				builder.achievementStore = storeProvider.AchievementStore()
			}
			if builder.identityStore == nil {
				builder.identityStore = storeProvider.IdentityStore()
			}
			if builder.awardStore == nil {
				builder.awardStore = storeProvider.AwardStore()
			}
		}
	}

	return &Service{
		config:            finalConfig,
		logger:            logger,
		loggerProvider:    provider,
		metricsRecorder:   builder.metricsRecorder,
		errorFactory:      builder.errorFactory,
		errorMapper:       builder.errorMapper,
		persistenceClient: builder.persistenceClient,
		repositoryFactory: builder.repositoryFactory,
		configProvider:    builder.configProvider,
		optionsResolver:   builder.optionsResolver,
		achievementStore:  builder.achievementStore,
		identityStore:     builder.identityStore,
		awardStore:        builder.awardStore,
		identityDeriver:   builder.identityDeriver,
		clock:             builder.clock,
	}, nil
}

func Setup(cfg Config, options ...Option) (*Service, error) {
	return NewService(cfg, options...)
}

func mapBuildError(mapper ErrorMapper, err error) error {
	if err == nil {
		return nil
	}
	if mapper == nil {
		return err
	}
	mapped := mapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

func (s *Service) Config() Config {
	if s == nil {
		return Config{}
	}
	return s.config
}

func (s *Service) Dependencies() ServiceDependencies {
	if s == nil {
		return ServiceDependencies{}
	}
	return ServiceDependencies{
		Logger:            s.logger,
		LoggerProvider:    s.loggerProvider,
		MetricsRecorder:   s.metricsRecorder,
		ErrorFactory:      s.errorFactory,
		ErrorMapper:       s.errorMapper,
		PersistenceClient: s.persistenceClient,
		RepositoryFactory: s.repositoryFactory,
		ConfigProvider:    s.configProvider,
		OptionsResolver:   s.optionsResolver,
		AchievementStore:  s.achievementStore,
		IdentityStore:     s.identityStore,
		AwardStore:        s.awardStore,
		IdentityDeriver:   s.identityDeriver,
	}
}

// CreateAchievement registers a new achievement definition. The creator
// reference is required here so every definition can later issue awards;
// IssueAward still re-checks it at issuance time.
func (s *Service) CreateAchievement(ctx context.Context, in CreateAchievementInput) (achievement Achievement, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"creator_id": in.CreatorID,
	}
	defer func() {
		s.observeOperation(ctx, startedAt, "achievement_create", err, fields)
	}()

	if s == nil || s.achievementStore == nil {
		err = s.mapError(fmt.Errorf("core: achievement store is required"))
		return Achievement{}, err
	}
	if err = in.Validate(); err != nil {
		err = s.mapError(err)
		return Achievement{}, err
	}

	achievement, err = s.achievementStore.Create(ctx, in)
	if err != nil {
		err = s.mapError(err)
		return Achievement{}, err
	}
	fields["achievement_id"] = achievement.DocID
	return achievement, nil
}

// IssueAward runs the award-issuance workflow: load the achievement,
// resolve the recipient identity, create the subject and credential,
// then finalize the credential's public URI. The store executes every
// step inside one transaction; either all rows persist or none do.
func (s *Service) IssueAward(ctx context.Context, req IssueAwardRequest) (credential PublicCredential, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"achievement_id":  req.CredentialID,
		"identifier_type": string(req.IdentifierType),
	}
	defer func() {
		s.observeOperation(ctx, startedAt, "issue", err, fields)
	}()

	if s == nil || s.awardStore == nil {
		err = s.mapError(fmt.Errorf("core: award store is required"))
		return PublicCredential{}, err
	}
	if err = req.Validate(); err != nil {
		err = s.mapError(err)
		return PublicCredential{}, err
	}

	deriver := s.identityDeriver
	if deriver == nil {
		deriver = rawIdentityDeriver{}
	}
	identityInput, deriveErr := deriver.Derive(req.Identifier)
	if deriveErr != nil {
		err = s.mapError(deriveErr)
		return PublicCredential{}, err
	}
	if strings.TrimSpace(string(req.IdentifierType)) != "" {
		identityInput.IdentityType = req.IdentifierType
	}

	issued, issueErr := s.awardStore.Issue(ctx, IssueAwardInput{
		AchievementID: strings.TrimSpace(req.CredentialID),
		Identity:      identityInput,
		Profile:       req.Profile,
		Email:         strings.TrimSpace(req.Identifier),
		AwardedAt:     s.clock(),
		PublicURI:     s.config.PublicAwardURL,
	})
	if issueErr != nil {
		err = s.mapError(issueErr)
		return PublicCredential{}, err
	}

	fields["credential_id"] = issued.DocID
	return issued.ToPublic(), nil
}

// GetAward loads one credential with its subject, profile and identity
// relations.
func (s *Service) GetAward(ctx context.Context, docID string) (credential AchievementCredential, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"credential_id": docID,
	}
	defer func() {
		s.observeOperation(ctx, startedAt, "get", err, fields)
	}()

	if s == nil || s.awardStore == nil {
		err = s.mapError(fmt.Errorf("core: award store is required"))
		return AchievementCredential{}, err
	}
	trimmed := strings.TrimSpace(docID)
	if trimmed == "" {
		err = s.mapError(fmt.Errorf("core: credential id is required"))
		return AchievementCredential{}, err
	}

	credential, err = s.awardStore.Get(ctx, trimmed)
	if err != nil {
		err = s.mapError(err)
		return AchievementCredential{}, err
	}
	return credential, nil
}

// ListAwards returns the most recently awarded credentials for an
// achievement, newest first. A non-empty query narrows the result to
// subjects whose profile matches case-insensitively on any searchable
// field.
func (s *Service) ListAwards(ctx context.Context, req ListAwardsRequest) (credentials []AchievementCredential, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"achievement_id": req.AchievementID,
	}
	defer func() {
		s.observeOperation(ctx, startedAt, "list", err, fields)
	}()

	if s == nil || s.awardStore == nil {
		err = s.mapError(fmt.Errorf("core: award store is required"))
		return nil, err
	}
	if err = req.Validate(); err != nil {
		err = s.mapError(err)
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 || limit > s.config.listLimit() {
		limit = s.config.listLimit()
	}

	credentials, err = s.awardStore.List(ctx, ListAwardsFilter{
		AchievementID: strings.TrimSpace(req.AchievementID),
		Query:         strings.TrimSpace(req.Query),
		Limit:         limit,
	})
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}
	fields["count"] = len(credentials)
	return credentials, nil
}

func (s *Service) mapError(err error) error {
	if err == nil {
		return nil
	}
	if s == nil || s.errorMapper == nil {
		return err
	}
	mapped := s.errorMapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

// rawIdentityDeriver stores the identifier verbatim with hashed=false,
// matching observed production data. Uniqueness lookups depend on the
// exact stored representation, so the default never rewrites it.
type rawIdentityDeriver struct{}

func (rawIdentityDeriver) Derive(identifier string) (UpsertIdentityInput, error) {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return UpsertIdentityInput{}, fmt.Errorf("%w: identifier is required", ErrInvalidIdentifier)
	}
	return UpsertIdentityInput{
		Type:         TypeIdentityObject,
		IdentityHash: trimmed,
		IdentityType: IdentifierEmailAddress,
		Hashed:       false,
	}, nil
}
