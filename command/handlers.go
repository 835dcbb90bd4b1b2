package command

import (
	"context"

	"github.com/goliatone/go-awards/core"
	gocmd "github.com/goliatone/go-command"
)

type MutatingService interface {
	CreateAchievement(ctx context.Context, in core.CreateAchievementInput) (core.Achievement, error)
	IssueAward(ctx context.Context, req core.IssueAwardRequest) (core.PublicCredential, error)
}

type CreateAchievementCommand struct {
	service MutatingService
}

func NewCreateAchievementCommand(service MutatingService) *CreateAchievementCommand {
	return &CreateAchievementCommand{service: service}
}

func (c *CreateAchievementCommand) Execute(ctx context.Context, msg CreateAchievementMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: achievement service is required")
	}
	out, err := c.service.CreateAchievement(ctx, msg.Input)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type IssueAwardCommand struct {
	service MutatingService
}

func NewIssueAwardCommand(service MutatingService) *IssueAwardCommand {
	return &IssueAwardCommand{service: service}
}

func (c *IssueAwardCommand) Execute(ctx context.Context, msg IssueAwardMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: award service is required")
	}
	out, err := c.service.IssueAward(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
