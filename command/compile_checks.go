package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[CreateAchievementMessage] = (*CreateAchievementCommand)(nil)
	_ gocmd.Commander[IssueAwardMessage]        = (*IssueAwardCommand)(nil)
)
