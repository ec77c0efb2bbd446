package sqlc

import (
	"time"

	"github.com/sqlc-dev/pqtype"
)

type GameServerAnalytic struct {
	ServerIp      pqtype.Inet
	GamesCreated  int64
	RematchCalled int64
	GamesFinished int64
	CreatedAt     time.Time
}
