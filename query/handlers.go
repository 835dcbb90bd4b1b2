package query

import (
	"context"

	"github.com/goliatone/go-awards/core"
)

type AwardReader interface {
	GetAward(ctx context.Context, docID string) (core.AchievementCredential, error)
	ListAwards(ctx context.Context, req core.ListAwardsRequest) ([]core.AchievementCredential, error)
}

type GetAwardQuery struct {
	reader AwardReader
}

func NewGetAwardQuery(reader AwardReader) *GetAwardQuery {
	return &GetAwardQuery{reader: reader}
}

func (q *GetAwardQuery) Query(ctx context.Context, msg GetAwardMessage) (core.AchievementCredential, error) {
	if q == nil || q.reader == nil {
		return core.AchievementCredential{}, queryDependencyError("query: award reader is required")
	}
	return q.reader.GetAward(ctx, msg.DocID)
}

type ListAwardsQuery struct {
	reader AwardReader
}

func NewListAwardsQuery(reader AwardReader) *ListAwardsQuery {
	return &ListAwardsQuery{reader: reader}
}

func (q *ListAwardsQuery) Query(ctx context.Context, msg ListAwardsMessage) ([]core.AchievementCredential, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: award reader is required")
	}
	return q.reader.ListAwards(ctx, msg.Request)
}
