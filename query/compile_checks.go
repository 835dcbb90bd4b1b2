package query

import (
	"github.com/goliatone/go-awards/core"
	gocmd "github.com/goliatone/go-command"
)

var (
	_ gocmd.Querier[GetAwardMessage, core.AchievementCredential]     = (*GetAwardQuery)(nil)
	_ gocmd.Querier[ListAwardsMessage, []core.AchievementCredential] = (*ListAwardsQuery)(nil)
)
