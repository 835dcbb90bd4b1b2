package awards

import (
	"fmt"

	awardscommand "github.com/goliatone/go-awards/command"
	awardsquery "github.com/goliatone/go-awards/query"
)

type CommandQueryService interface {
	awardscommand.MutatingService
	awardsquery.AwardReader
}

type Commands struct {
	CreateAchievement *awardscommand.CreateAchievementCommand
	IssueAward        *awardscommand.IssueAwardCommand
}

type Queries struct {
	GetAward   *awardsquery.GetAwardQuery
	ListAwards *awardsquery.ListAwardsQuery
}

// Facade bundles the command and query handlers over one service so
// callers can register them with a dispatcher in a single pass.
type Facade struct {
	service  CommandQueryService
	commands Commands
	queries  Queries
}

func NewFacade(service CommandQueryService) (*Facade, error) {
	if service == nil {
		return nil, fmt.Errorf("awards: command/query service is required")
	}

	facade := &Facade{service: service}
	facade.commands = Commands{
		CreateAchievement: awardscommand.NewCreateAchievementCommand(service),
		IssueAward:        awardscommand.NewIssueAwardCommand(service),
	}
	facade.queries = Queries{
		GetAward:   awardsquery.NewGetAwardQuery(service),
		ListAwards: awardsquery.NewListAwardsQuery(service),
	}

	return facade, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Service() CommandQueryService {
	if f == nil {
		return nil
	}
	return f.service
}
