package query

import (
	"context"
	"testing"

	"github.com/goliatone/go-awards/core"
	goerrors "github.com/goliatone/go-errors"
)

func TestGetAwardMessage_ValidateReturnsRichError(t *testing.T) {
	err := (GetAwardMessage{}).Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryValidation {
		t.Fatalf("expected validation category, got %q", rich.Category)
	}
	if rich.TextCode != core.AwardErrorBadInput {
		t.Fatalf("expected %q text code, got %q", core.AwardErrorBadInput, rich.TextCode)
	}
}

func TestGetAwardQuery_NilReaderReturnsRichError(t *testing.T) {
	var qry *GetAwardQuery
	_, err := qry.Query(context.Background(), GetAwardMessage{DocID: "cred_1"})
	if err == nil {
		t.Fatalf("expected query dependency error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryInternal {
		t.Fatalf("expected internal category, got %q", rich.Category)
	}
}
