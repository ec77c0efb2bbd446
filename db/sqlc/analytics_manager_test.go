package sqlc

import (
	"context"
	"net"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sqlc-dev/pqtype"
)

var testServerIp = pqtype.Inet{
	IPNet: net.IPNet{IP: net.IPv4(10, 0, 0, 7), Mask: net.CIDRMask(32, 32)},
	Valid: true,
}

func newTestDbManager(t *testing.T) (DbManager, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	return NewDbManager(New(db)), mock
}

func TestAnalyticsIncrements(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		increment func(*AnalyticsManager, context.Context, pqtype.Inet) error
	}{
		{name: "games created", query: incrementGamesCreatedCount, increment: (*AnalyticsManager).IncrementGamesCreatedCount},
		{name: "rematch called", query: incrementRematchCalledCount, increment: (*AnalyticsManager).IncrementRematchCalledCount},
		{name: "games finished", query: incrementGamesFinishedCount, increment: (*AnalyticsManager).IncrementGamesFinishedCount},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dbManager, mock := newTestDbManager(t)

			mock.ExpectExec(regexp.QuoteMeta(test.query)).
				WithArgs(testServerIp).
				WillReturnResult(sqlmock.NewResult(0, 1))

			ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
			defer cancel()
			if err := test.increment(dbManager.Analytics, ctx, testServerIp); err != nil {
				t.Fatal(err)
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("expectations were not met: %v", err)
			}
		})
	}
}

func TestAnalyticsCounts(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		column   string
		expected int64
		get      func(*AnalyticsManager, context.Context, pqtype.Inet) (int64, error)
	}{
		{name: "games created", query: `SELECT games_created FROM game_server_analytics WHERE server_ip = $1`, column: "games_created", expected: 4, get: (*AnalyticsManager).GetGamesCreatedCount},
		{name: "rematch called", query: `SELECT rematch_called FROM game_server_analytics WHERE server_ip = $1`, column: "rematch_called", expected: 2, get: (*AnalyticsManager).GetRematchCalledCount},
		{name: "games finished", query: `SELECT games_finished FROM game_server_analytics WHERE server_ip = $1`, column: "games_finished", expected: 3, get: (*AnalyticsManager).GetGamesFinishedCount},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dbManager, mock := newTestDbManager(t)

			mock.ExpectQuery(regexp.QuoteMeta(test.query)).
				WithArgs(testServerIp).
				WillReturnRows(sqlmock.NewRows([]string{test.column}).AddRow(test.expected))

			ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
			defer cancel()
			got, err := test.get(dbManager.Analytics, ctx, testServerIp)
			if err != nil {
				t.Fatalf("failed to fetch %s: %v", test.name, err)
			}
			if got != test.expected {
				t.Fatalf("expected count: %d\tgot: %d", test.expected, got)
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("expectations were not met: %v", err)
			}
		})
	}
}

func TestRecordAnalytics(t *testing.T) {
	var disabled DbManager
	if disabled.HasAnalytics() || NewDbManager(nil).HasAnalytics() {
		t.Fatal("db manager without querier must have analytics disabled")
	}
	if err := disabled.RecordAnalytics((*AnalyticsManager).IncrementGamesCreatedCount, testServerIp); err != nil {
		t.Fatalf("disabled analytics must record nothing\tgot: %v", err)
	}

	dbManager, mock := newTestDbManager(t)
	if !dbManager.HasAnalytics() {
		t.Fatal("expected analytics enabled")
	}

	mock.ExpectExec(regexp.QuoteMeta(incrementRematchCalledCount)).
		WithArgs(testServerIp).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := dbManager.RecordAnalytics((*AnalyticsManager).IncrementRematchCalledCount, testServerIp); err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations were not met: %v", err)
	}
}
