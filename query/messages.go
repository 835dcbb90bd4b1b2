package query

import (
	"strings"

	"github.com/goliatone/go-awards/core"
)

const (
	TypeGetAward   = "awards.query.award.get"
	TypeListAwards = "awards.query.award.list"
)

type GetAwardMessage struct {
	DocID string
}

func (GetAwardMessage) Type() string { return TypeGetAward }

func (m GetAwardMessage) Validate() error {
	if strings.TrimSpace(m.DocID) == "" {
		return queryValidationError("doc_id", "credential doc id is required")
	}
	return nil
}

type ListAwardsMessage struct {
	Request core.ListAwardsRequest
}

func (ListAwardsMessage) Type() string { return TypeListAwards }

func (m ListAwardsMessage) Validate() error {
	if strings.TrimSpace(m.Request.AchievementID) == "" {
		return queryValidationError("achievement_id", "achievement doc id is required")
	}
	if m.Request.Limit < 0 {
		return queryValidationError("limit", "limit must be >= 0")
	}
	return nil
}
