package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-awards/core"
	goerrors "github.com/goliatone/go-errors"
)

var ErrEmptyIdentifier = errors.New("identity: identifier is required")

type EmptyIdentifierError struct {
	Cause error
}

func (e *EmptyIdentifierError) Error() string {
	if e == nil || e.Cause == nil {
		return ErrEmptyIdentifier.Error()
	}
	return ErrEmptyIdentifier.Error() + ": " + e.Cause.Error()
}

func (e *EmptyIdentifierError) Unwrap() error {
	if e == nil {
		return nil
	}
	if e.Cause == nil {
		return ErrEmptyIdentifier
	}
	return errors.Join(ErrEmptyIdentifier, e.Cause)
}

func (e *EmptyIdentifierError) ToServiceError() *goerrors.Error {
	message := ErrEmptyIdentifier.Error()
	if e != nil && e.Cause != nil {
		message = e.Error()
	}
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(core.AwardErrorBadInput)
}

func emptyIdentifier(cause error) error {
	return &EmptyIdentifierError{Cause: cause}
}

// Hasher derives the stored representation of a raw identifier. The
// returned value is what the uniqueness constraint keys on, so a given
// deployment must use one hasher consistently for the lifetime of its
// data.
type Hasher func(identifier string) (value string, hashed bool, err error)

// RawHasher stores the identifier verbatim. This matches the data
// observed in production (rows carry hashed=false); switching a live
// deployment to a hashing strategy would orphan existing rows.
func RawHasher(identifier string) (string, bool, error) {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return "", false, emptyIdentifier(nil)
	}
	return trimmed, false, nil
}

// SaltedSHA256Hasher produces an Open Badges style salted hash of the
// form "sha256$<hex>". Opt-in only; see RawHasher.
func SaltedSHA256Hasher(salt string) Hasher {
	return func(identifier string) (string, bool, error) {
		trimmed := strings.TrimSpace(identifier)
		if trimmed == "" {
			return "", false, emptyIdentifier(nil)
		}
		sum := sha256.Sum256([]byte(trimmed + salt))
		return "sha256$" + hex.EncodeToString(sum[:]), true, nil
	}
}

type Config struct {
	Store          core.IdentityStore
	Hasher         Hasher
	IdentifierType core.IdentifierType
}

// Resolver finds or creates the canonical identity record for an
// external identifier. Resolution is idempotent: duplicate-insert races
// are settled by the storage uniqueness constraint on the identity
// hash, never by application locking.
type Resolver struct {
	store          core.IdentityStore
	hasher         Hasher
	identifierType core.IdentifierType
}

func NewResolver(cfg Config) *Resolver {
	hasher := cfg.Hasher
	if hasher == nil {
		hasher = RawHasher
	}
	identifierType := cfg.IdentifierType
	if strings.TrimSpace(string(identifierType)) == "" {
		identifierType = core.IdentifierEmailAddress
	}
	return &Resolver{
		store:          cfg.Store,
		hasher:         hasher,
		identifierType: identifierType,
	}
}

// Derive builds the stored identity representation without touching the
// store. The award workflow uses it so the identity upsert can run
// inside the issuing transaction.
func (r *Resolver) Derive(identifier string) (core.UpsertIdentityInput, error) {
	if r == nil {
		return core.UpsertIdentityInput{}, fmt.Errorf("identity: resolver is not configured")
	}
	hasher := r.hasher
	if hasher == nil {
		hasher = RawHasher
	}
	value, hashed, err := hasher(identifier)
	if err != nil {
		return core.UpsertIdentityInput{}, err
	}
	return core.UpsertIdentityInput{
		Type:         core.TypeIdentityObject,
		IdentityHash: value,
		IdentityType: r.identifierType,
		Hashed:       hashed,
	}, nil
}

// Resolve returns a reference to the stored identity for identifier,
// creating it on first occurrence. Repeated calls with the same
// identifier yield the same reference; at most one insert ever happens.
func (r *Resolver) Resolve(ctx context.Context, identifier string) (core.IdentityRef, error) {
	if r == nil || r.store == nil {
		return core.IdentityRef{}, fmt.Errorf("identity: identity store is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	input, err := r.Derive(identifier)
	if err != nil {
		return core.IdentityRef{}, err
	}
	return r.store.Upsert(ctx, input)
}

var _ core.IdentityDeriver = (*Resolver)(nil)
