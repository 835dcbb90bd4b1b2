package core

import (
	"fmt"
	"net/http"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestAwardErrorMapper_MapsDomainSentinels(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		category goerrors.Category
		textCode string
		httpCode int
	}{
		{
			name:     "achievement not found",
			err:      fmt.Errorf("%w: doc id %q", ErrAchievementNotFound, "ach_1"),
			category: goerrors.CategoryNotFound,
			textCode: AwardErrorAchievementNotFound,
			httpCode: http.StatusNotFound,
		},
		{
			name:     "award not found",
			err:      fmt.Errorf("%w: doc id %q", ErrAwardNotFound, "cred_1"),
			category: goerrors.CategoryNotFound,
			textCode: AwardErrorNotFound,
			httpCode: http.StatusNotFound,
		},
		{
			name:     "missing creator",
			err:      fmt.Errorf("%w: achievement %q", ErrMissingCreator, "ach_1"),
			category: goerrors.CategoryConflict,
			textCode: AwardErrorConstraintViolation,
			httpCode: http.StatusConflict,
		},
		{
			name:     "invalid identifier",
			err:      fmt.Errorf("%w: identifier is required", ErrInvalidIdentifier),
			category: goerrors.CategoryBadInput,
			textCode: AwardErrorBadInput,
			httpCode: http.StatusBadRequest,
		},
		{
			name:     "invalid identifier type",
			err:      fmt.Errorf("%w: %q", ErrInvalidIdentifierType, "CARRIERPIGEON"),
			category: goerrors.CategoryBadInput,
			textCode: AwardErrorBadInput,
			httpCode: http.StatusBadRequest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := awardErrorMapper(tc.err)
			if mapped == nil {
				t.Fatalf("expected mapped error")
			}
			if mapped.Category != tc.category {
				t.Fatalf("expected category %q, got %q", tc.category, mapped.Category)
			}
			if mapped.TextCode != tc.textCode {
				t.Fatalf("expected text code %q, got %q", tc.textCode, mapped.TextCode)
			}
			if mapped.Code != tc.httpCode {
				t.Fatalf("expected http code %d, got %d", tc.httpCode, mapped.Code)
			}
		})
	}
}

func TestAwardErrorMapper_MapsStorageMessages(t *testing.T) {
	conflict := awardErrorMapper(fmt.Errorf("UNIQUE constraint failed: identity_objects.identity_hash"))
	if conflict == nil || conflict.Category != goerrors.CategoryConflict {
		t.Fatalf("expected conflict mapping, got %#v", conflict)
	}
	if conflict.TextCode != AwardErrorConstraintViolation {
		t.Fatalf("expected constraint text code, got %q", conflict.TextCode)
	}

	notFound := awardErrorMapper(fmt.Errorf("sqlstore: identity not found for hash \"x\""))
	if notFound == nil || notFound.Category != goerrors.CategoryNotFound {
		t.Fatalf("expected not found mapping, got %#v", notFound)
	}
}

func TestAwardErrorMapper_PreservesRichErrors(t *testing.T) {
	original := goerrors.New("already wrapped", goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(AwardErrorBadInput)

	mapped := awardErrorMapper(original)
	if mapped == nil {
		t.Fatalf("expected mapped error")
	}
	if mapped.TextCode != AwardErrorBadInput || mapped.Code != http.StatusBadRequest {
		t.Fatalf("expected envelope preserved, got %#v", mapped)
	}
}

func TestAwardErrorMapper_FillsMissingEnvelopeFields(t *testing.T) {
	partial := goerrors.New("boom", goerrors.CategoryInternal)
	mapped := awardErrorMapper(partial)
	if mapped == nil {
		t.Fatalf("expected mapped error")
	}
	if mapped.Code != http.StatusInternalServerError {
		t.Fatalf("expected http 500, got %d", mapped.Code)
	}
	if mapped.TextCode != AwardErrorInternal {
		t.Fatalf("expected internal text code, got %q", mapped.TextCode)
	}
}

func TestAwardErrorMapper_NilIsNil(t *testing.T) {
	if mapped := awardErrorMapper(nil); mapped != nil {
		t.Fatalf("expected nil mapping, got %#v", mapped)
	}
}
