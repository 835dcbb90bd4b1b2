package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/goliatone/go-awards/core"
	goerrors "github.com/goliatone/go-errors"
)

type stubIdentityStore struct {
	rows    map[string]core.IdentityRef
	inserts int
}

func newStubIdentityStore() *stubIdentityStore {
	return &stubIdentityStore{rows: map[string]core.IdentityRef{}}
}

func (s *stubIdentityStore) Upsert(_ context.Context, in core.UpsertIdentityInput) (core.IdentityRef, error) {
	if existing, ok := s.rows[in.IdentityHash]; ok {
		return existing, nil
	}
	s.inserts++
	ref := core.IdentityRef{
		ID:           fmt.Sprintf("idn_%d", s.inserts),
		IdentityHash: in.IdentityHash,
		Hashed:       in.Hashed,
	}
	s.rows[in.IdentityHash] = ref
	return ref, nil
}

func (s *stubIdentityStore) GetByHash(_ context.Context, identityHash string) (core.IdentityObject, error) {
	ref, ok := s.rows[identityHash]
	if !ok {
		return core.IdentityObject{}, fmt.Errorf("identity not found for hash %q", identityHash)
	}
	return core.IdentityObject{ID: ref.ID, IdentityHash: ref.IdentityHash, Hashed: ref.Hashed}, nil
}

func TestResolver_ResolveIsIdempotent(t *testing.T) {
	store := newStubIdentityStore()
	resolver := NewResolver(Config{Store: store})

	first, err := resolver.Resolve(context.Background(), "person@example.com")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	second, err := resolver.Resolve(context.Background(), " person@example.com ")
	if err != nil {
		t.Fatalf("resolve again: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("expected stable identity id, got %q then %q", first.ID, second.ID)
	}
	if store.inserts != 1 {
		t.Fatalf("expected single insert, got %d", store.inserts)
	}
}

func TestResolver_DeriveDefaults(t *testing.T) {
	resolver := NewResolver(Config{})

	input, err := resolver.Derive("person@example.com")
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if input.Type != core.TypeIdentityObject {
		t.Fatalf("expected IdentityObject type tag, got %q", input.Type)
	}
	if input.IdentityType != core.IdentifierEmailAddress {
		t.Fatalf("expected default email identifier type, got %q", input.IdentityType)
	}
	if input.Hashed {
		t.Fatalf("expected hashed=false with raw hasher")
	}
	if input.IdentityHash != "person@example.com" {
		t.Fatalf("expected verbatim identifier, got %q", input.IdentityHash)
	}
}

func TestResolver_ConfiguredIdentifierType(t *testing.T) {
	resolver := NewResolver(Config{IdentifierType: core.IdentifierUsername})

	input, err := resolver.Derive("jdoe")
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if input.IdentityType != core.IdentifierUsername {
		t.Fatalf("expected USERNAME identifier type, got %q", input.IdentityType)
	}
}

func TestResolver_EmptyIdentifier(t *testing.T) {
	resolver := NewResolver(Config{Store: newStubIdentityStore()})

	_, err := resolver.Resolve(context.Background(), "   ")
	if err == nil {
		t.Fatalf("expected empty identifier error")
	}
	if !errors.Is(err, ErrEmptyIdentifier) {
		t.Fatalf("expected ErrEmptyIdentifier, got %v", err)
	}

	var emptyErr *EmptyIdentifierError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("expected EmptyIdentifierError, got %T", err)
	}
	rich := emptyErr.ToServiceError()
	if rich.Category != goerrors.CategoryBadInput {
		t.Fatalf("expected bad input category, got %q", rich.Category)
	}
	if rich.TextCode != core.AwardErrorBadInput {
		t.Fatalf("expected %q text code, got %q", core.AwardErrorBadInput, rich.TextCode)
	}
}

func TestRawHasher_TrimsAndKeepsVerbatim(t *testing.T) {
	value, hashed, err := RawHasher("  person@example.com ")
	if err != nil {
		t.Fatalf("raw hasher: %v", err)
	}
	if hashed {
		t.Fatalf("expected hashed=false")
	}
	if value != "person@example.com" {
		t.Fatalf("expected trimmed identifier, got %q", value)
	}
}

func TestSaltedSHA256Hasher_IsDeterministicPerSalt(t *testing.T) {
	hasher := SaltedSHA256Hasher("pepper")

	first, hashed, err := hasher("person@example.com")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !hashed {
		t.Fatalf("expected hashed=true")
	}
	if !strings.HasPrefix(first, "sha256$") {
		t.Fatalf("expected sha256$ prefix, got %q", first)
	}

	second, _, err := hasher(" person@example.com ")
	if err != nil {
		t.Fatalf("hash again: %v", err)
	}
	if first != second {
		t.Fatalf("expected deterministic hash, got %q then %q", first, second)
	}

	other, _, err := SaltedSHA256Hasher("different")("person@example.com")
	if err != nil {
		t.Fatalf("hash with other salt: %v", err)
	}
	if other == first {
		t.Fatalf("expected salt to change the hash")
	}
}

func TestResolver_UsesConfiguredHasherThroughUpsert(t *testing.T) {
	store := newStubIdentityStore()
	resolver := NewResolver(Config{Store: store, Hasher: SaltedSHA256Hasher("pepper")})

	ref, err := resolver.Resolve(context.Background(), "person@example.com")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !ref.Hashed {
		t.Fatalf("expected hashed reference")
	}
	if !strings.HasPrefix(ref.IdentityHash, "sha256$") {
		t.Fatalf("expected hashed value stored, got %q", ref.IdentityHash)
	}
}
