package core

import (
	"errors"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	AwardErrorBadInput            = "AWARD_BAD_INPUT"
	AwardErrorAchievementNotFound = "AWARD_ACHIEVEMENT_NOT_FOUND"
	AwardErrorNotFound            = "AWARD_NOT_FOUND"
	AwardErrorConstraintViolation = "AWARD_CONSTRAINT_VIOLATION"
	AwardErrorInternal            = "AWARD_INTERNAL_ERROR"
)

func awardErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureAwardErrorEnvelope(richErr)
	}

	switch {
	case errors.Is(err, ErrAchievementNotFound):
		return newAwardError(err.Error(), goerrors.CategoryNotFound, AwardErrorAchievementNotFound)
	case errors.Is(err, ErrAwardNotFound):
		return newAwardError(err.Error(), goerrors.CategoryNotFound, AwardErrorNotFound)
	case errors.Is(err, ErrMissingCreator):
		return newAwardError(err.Error(), goerrors.CategoryConflict, AwardErrorConstraintViolation)
	case errors.Is(err, ErrInvalidIdentifierType), errors.Is(err, ErrInvalidIdentifier):
		return newAwardError(err.Error(), goerrors.CategoryBadInput, AwardErrorBadInput)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate") || strings.Contains(msg, "constraint"):
		return newAwardError(err.Error(), goerrors.CategoryConflict, AwardErrorConstraintViolation)
	case strings.Contains(msg, "not found"):
		return newAwardError(err.Error(), goerrors.CategoryNotFound, AwardErrorNotFound)
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"):
		return newAwardError(err.Error(), goerrors.CategoryBadInput, AwardErrorBadInput)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureAwardErrorEnvelope(mapped)
}

func newAwardError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureAwardErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

func ensureAwardErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = awardHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultAwardTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultAwardTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return AwardErrorBadInput
	case goerrors.CategoryNotFound:
		return AwardErrorNotFound
	case goerrors.CategoryConflict:
		return AwardErrorConstraintViolation
	default:
		return AwardErrorInternal
	}
}

func awardHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
