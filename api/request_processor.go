package api

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sqlc-dev/pqtype"

	"github.com/saeidalz13/battleship-board/db/sqlc"
	mb "github.com/saeidalz13/battleship-board/models/battleship"
	mc "github.com/saeidalz13/battleship-board/models/connection"
)

const (
	URLQuerySessionIDKeyword string = "sessionID"
)

type RequestProcessor struct {
	sessionManager mc.SessionManager
	gameManager    mb.GameManager
	db             sqlc.DbManager
	ipnet          net.IPNet
	upgrader       websocket.Upgrader
}

var _ http.Handler = (*RequestProcessor)(nil)

func NewRequestProcessor(sessionManager mc.SessionManager, gameManager mb.GameManager, optFuncs ...Option) *RequestProcessor {
	rp := &RequestProcessor{
		sessionManager: sessionManager,
		gameManager:    gameManager,
		ipnet:          findServerIpNet(),
		upgrader: websocket.Upgrader{
			// good average time since this is not a high-latency operation such as video streaming
			HandshakeTimeout: time.Second * 5,

			// probably more that enough but this is a good average size
			ReadBufferSize:  2048,
			WriteBufferSize: 2048,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}

	for _, opt := range optFuncs {
		if err := opt(rp); err != nil {
			panic(err)
		}
	}
	return rp
}

// First non-loopback IPv4 of an interface that is up. Falls back
// to loopback so the server still runs on an isolated host.
func findServerIpNet() net.IPNet {
	loopback := net.IPNet{IP: net.IPv4(127, 0, 0, 1), Mask: net.CIDRMask(32, 32)}

	ifaces, err := net.Interfaces()
	if err != nil {
		log.Println("failed to list network interfaces:", err)
		return loopback
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if ok && ipnet.IP.To4() != nil && !ipnet.IP.IsLoopback() {
				return *ipnet
			}
		}
	}

	log.Println("no non-loopback interface found; using loopback for analytics")
	return loopback
}

// Expose this method to use it in testing
func (rp *RequestProcessor) GetIpNet() net.IPNet {
	return rp.ipnet
}

func (rp *RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := rp.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		// Upgrade already replied to the client
		return
	}

	// Sessions do not survive a disconnection
	if r.URL.Query().Get(URLQuerySessionIDKeyword) != "" {
		_ = conn.WriteJSON(mc.NewMessage[mc.NoPayload](mc.CodeReceivedInvalidSessionID))
		conn.Close()
		return
	}

	log.Println("a new connection established\tRemote Addr: ", conn.RemoteAddr().String())
	rp.processSessionRequests(rp.sessionManager.GenerateNewSession(conn))
}

// analytics failures never interrupt the game
func (rp *RequestProcessor) recordAnalytics(record func(*sqlc.AnalyticsManager, context.Context, pqtype.Inet) error) {
	if err := rp.db.RecordAnalytics(record, pqtype.Inet{IPNet: rp.ipnet, Valid: true}); err != nil {
		log.Println(err)
	}
}

func (rp *RequestProcessor) processSessionRequests(session *mc.Session) {
	var (
		sessionPlayer *mb.Player
		sessionGame   *mb.Game
		sessionId     = session.Id()
	)

	// The other player may join after this session started
	receiverSessionId := func() string {
		if sessionGame == nil || sessionPlayer == nil {
			return ""
		}
		otherPlayer := sessionGame.GetOtherPlayer(sessionPlayer)
		if otherPlayer == nil {
			return ""
		}
		return otherPlayer.SessionId()
	}

	defer func() {
		if sessionGame != nil {
			if receiverId := receiverSessionId(); receiverId != "" {
				_ = rp.sessionManager.Communicate(receiverId, mc.NewMessage[mc.NoPayload](mc.CodeOtherPlayerDisconnected), mc.MessageTypeJSON)
			}
			rp.gameManager.TerminateGame(sessionGame.Uuid())
		}
		session.Conn().Close()
		rp.sessionManager.TerminateSession(sessionId)
	}()

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: sessionId})
	if err := rp.sessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON); err != nil {
		return
	}

sessionLoop:
	for {
		// A WebSocket frame can be one of 6 types: text=1, binary=2, ping=9, pong=10, close=8 and continuation=0
		// https://www.rfc-editor.org/rfc/rfc6455.html#section-11.8
		_, payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			break sessionLoop
		}

		code, err := mc.FetchCodeFromMsg(payload)
		if err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError(err.Error(), "incoming req payload must contain 'code' field")
			if err = rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		switch code {

		// Initialize the game and create the host player
		case mc.CodeCreateGame:
			if sessionGame != nil {
				respMsg := mc.NewMessage[mc.NoPayload](mc.CodeCreateGame)
				respMsg.AddError("", "session already belongs to a game")
				if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
					break sessionLoop
				}
				continue sessionLoop
			}

			game, hostPlayer, respMsg := NewRequest(payload).HandleCreateGame(rp.gameManager, sessionId)
			if respMsg.Error == nil {
				sessionGame = game
				sessionPlayer = hostPlayer
				rp.recordAnalytics((*sqlc.AnalyticsManager).IncrementGamesCreatedCount)
			}

			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		// Joining a new player to an existing game; both
		// players are then asked to select their grid
		case mc.CodeJoinGame:
			if sessionGame != nil {
				respMsg := mc.NewMessage[mc.NoPayload](mc.CodeJoinGame)
				respMsg.AddError("", "session already belongs to a game")
				if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
					break sessionLoop
				}
				continue sessionLoop
			}

			game, joinPlayer, respMsg := NewRequest(payload).HandleJoinPlayer(rp.gameManager, sessionId)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			// Any invalid join request closes the connection
			if respMsg.Error != nil {
				break sessionLoop
			}

			sessionGame = game
			sessionPlayer = joinPlayer

			selectGridMsg := mc.NewMessage[mc.NoPayload](mc.CodeSelectGrid)
			if err := rp.sessionManager.WriteToSessionConn(session, selectGridMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			if err := rp.sessionManager.Communicate(receiverSessionId(), selectGridMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		case mc.CodePlaceShip:
			respMsg := NewRequest(payload).HandlePlaceShip(sessionGame, sessionPlayer)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		// The player has placed the whole fleet and is ready
		case mc.CodeReady:
			respMsg := NewRequest(payload).HandleReadyPlayer(sessionGame, sessionPlayer)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			if respMsg.Error != nil {
				continue sessionLoop
			}

			if sessionGame.IsReadyToStart() {
				respStartGame := mc.NewMessage[mc.NoPayload](mc.CodeStartGame)
				if err := rp.sessionManager.WriteToSessionConn(session, respStartGame, mc.MessageTypeJSON); err != nil {
					break sessionLoop
				}
				if err := rp.sessionManager.Communicate(receiverSessionId(), respStartGame, mc.MessageTypeJSON); err != nil {
					break sessionLoop
				}
			}

		// After every attack both players get the result. If the
		// defender has no ship left the game ends for both.
		case mc.CodeAttack:
			respMsg, outcome := NewRequest(payload).HandleAttack(sessionGame, sessionPlayer)
			if respMsg.Error == nil && outcome.IsMatchOver {
				rp.recordAnalytics((*sqlc.AnalyticsManager).IncrementGamesFinishedCount)
			}

			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			// This means attack operation did not complete
			if respMsg.Error != nil {
				continue sessionLoop
			}

			// defender turn is set to true
			respMsg.Payload.IsTurn = true
			if err := rp.sessionManager.Communicate(receiverSessionId(), respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

			if outcome.IsMatchOver {
				log.Printf("game over: %s\twinner: %s\n", sessionGame.Uuid(), sessionPlayer.Uuid())

				respAttacker := mc.NewMessage[mc.RespEndGame](mc.CodeEndGame)
				respAttacker.AddPayload(mc.RespEndGame{PlayerMatchStatus: mb.PlayerMatchStatusWon})
				if err := rp.sessionManager.WriteToSessionConn(session, respAttacker, mc.MessageTypeJSON); err != nil {
					break sessionLoop
				}

				respDefender := mc.NewMessage[mc.RespEndGame](mc.CodeEndGame)
				respDefender.AddPayload(mc.RespEndGame{PlayerMatchStatus: mb.PlayerMatchStatusLost})
				if err := rp.sessionManager.Communicate(receiverSessionId(), respDefender, mc.MessageTypeJSON); err != nil {
					break sessionLoop
				}
			}

		case mc.CodeRematchCall:
			respMsg, err := NewRequest().HandleCallRematch(sessionGame)
			if err != nil {
				errMsg := mc.NewMessage[mc.NoPayload](mc.CodeRematchCall)
				errMsg.AddError(err.Error(), "failed to call rematch")
				if err := rp.sessionManager.WriteToSessionConn(session, errMsg, mc.MessageTypeJSON); err != nil {
					break sessionLoop
				}
				continue sessionLoop
			}
			rp.recordAnalytics((*sqlc.AnalyticsManager).IncrementRematchCalledCount)

			if err := rp.sessionManager.Communicate(receiverSessionId(), respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		case mc.CodeRematchCallAccepted:
			// The other player may have accepted first; the
			// game goes on either way.
			msg, err := NewRequest().HandleAcceptRematchCall(sessionGame)
			if err != nil {
				errMsg := mc.NewMessage[mc.NoPayload](mc.CodeRematchCallAccepted)
				errMsg.AddError(err.Error(), "failed to accept rematch")
				if err := rp.sessionManager.WriteToSessionConn(session, errMsg, mc.MessageTypeJSON); err != nil {
					break sessionLoop
				}
				continue sessionLoop
			}

			if err := rp.sessionManager.Communicate(receiverSessionId(), msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			if err := rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		// Notify the other player that no rematch is wanted now
		case mc.CodeRematchCallRejected:
			msg := mc.NewMessage[mc.NoPayload](mc.CodeRematchCallRejected)
			_ = rp.sessionManager.Communicate(receiverSessionId(), msg, mc.MessageTypeJSON)
			break sessionLoop

		default:
			respInvalidSignal := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			respInvalidSignal.AddError("", "invalid code in the incoming payload")
			if err := rp.sessionManager.WriteToSessionConn(session, respInvalidSignal, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
		}
	}
}
