package sqlc

import (
	"context"
	"time"

	"github.com/sqlc-dev/pqtype"
)

const (
	QuerierCtxTimeout = time.Second * 10
)

// DbManager groups the query managers of the server with the
// timeout every query runs under. The zero value records nothing.
type DbManager struct {
	Analytics    *AnalyticsManager
	queryTimeout time.Duration
}

func NewDbManager(queries Querier) DbManager {
	if queries == nil {
		return DbManager{}
	}

	return DbManager{
		Analytics:    NewAnalyticsManager(queries),
		queryTimeout: QuerierCtxTimeout,
	}
}

func (dm DbManager) HasAnalytics() bool {
	return dm.Analytics != nil
}

// RecordAnalytics runs one analytics query for the server ip,
// e.g. (*AnalyticsManager).IncrementGamesCreatedCount
func (dm DbManager) RecordAnalytics(record func(*AnalyticsManager, context.Context, pqtype.Inet) error, serverIpNet pqtype.Inet) error {
	if dm.Analytics == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), dm.queryTimeout)
	defer cancel()
	return record(dm.Analytics, ctx, serverIpNet)
}
