package command

import (
	"strings"

	"github.com/goliatone/go-awards/core"
)

const (
	TypeCreateAchievement = "awards.command.achievement.create"
	TypeIssueAward        = "awards.command.award.issue"
)

type CreateAchievementMessage struct {
	Input core.CreateAchievementInput
}

func (CreateAchievementMessage) Type() string { return TypeCreateAchievement }

func (m CreateAchievementMessage) Validate() error {
	if strings.TrimSpace(m.Input.CreatorID) == "" {
		return commandValidationError("creator_id", "creator id is required")
	}
	if strings.TrimSpace(m.Input.Name) == "" {
		return commandValidationError("name", "achievement name is required")
	}
	return nil
}

type IssueAwardMessage struct {
	Request core.IssueAwardRequest
}

func (IssueAwardMessage) Type() string { return TypeIssueAward }

func (m IssueAwardMessage) Validate() error {
	if strings.TrimSpace(m.Request.CredentialID) == "" {
		return commandValidationError("credential_id", "credential id is required")
	}
	if strings.TrimSpace(m.Request.Identifier) == "" {
		return commandValidationError("identifier", "identifier is required")
	}
	if identifierType := m.Request.IdentifierType; identifierType != "" && !identifierType.Valid() {
		return commandValidationError("identifier_type", "unknown identifier type "+string(identifierType))
	}
	return nil
}
