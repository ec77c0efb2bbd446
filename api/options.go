package api

import (
	"fmt"
	"net/http"

	"github.com/saeidalz13/battleship-board/db/sqlc"
)

const (
	StageProd = "prod"
	StageDev  = "dev"
)

type Option func(*RequestProcessor) error

// Without a querier the server runs with analytics disabled
func WithQuerier(q sqlc.Querier) Option {
	return func(rp *RequestProcessor) error {
		rp.db = sqlc.NewDbManager(q)
		return nil
	}
}

// In prod only the given origins may open a websocket;
// dev accepts any origin.
func WithStage(stage string, allowedOrigins ...string) Option {
	return func(rp *RequestProcessor) error {
		switch stage {
		case StageDev:
			rp.upgrader.CheckOrigin = func(r *http.Request) bool { return true }

		case StageProd:
			allowed := make(map[string]bool, len(allowedOrigins))
			for _, origin := range allowedOrigins {
				if origin == "" {
					continue
				}
				allowed[origin] = true
			}
			rp.upgrader.CheckOrigin = func(r *http.Request) bool {
				return allowed[r.Header.Get("Origin")]
			}

		default:
			return fmt.Errorf("invalid type of development stage: %s", stage)
		}
		return nil
	}
}
