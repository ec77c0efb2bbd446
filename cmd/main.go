package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/saeidalz13/battleship-board/api"
	"github.com/saeidalz13/battleship-board/db"
	"github.com/saeidalz13/battleship-board/db/sqlc"
	mb "github.com/saeidalz13/battleship-board/models/battleship"
	mc "github.com/saeidalz13/battleship-board/models/connection"
)

func main() {
	if os.Getenv("STAGE") != api.StageProd {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("no .env file loaded:", err)
		}
	}

	stage := os.Getenv("STAGE")
	if stage != api.StageDev && stage != api.StageProd {
		panic("stage must be either dev or prod")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	opts := []api.Option{api.WithStage(stage, strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",")...)}

	// analytics are optional; games never touch the database
	if psqlUrl := os.Getenv("DATABASE_URL"); psqlUrl != "" {
		conn := db.MustConnectToDb(psqlUrl, db.DefaultMigrationDir)
		defer conn.Close()
		opts = append(opts, api.WithQuerier(sqlc.New(conn)))
	} else {
		log.Println("DATABASE_URL is not set; analytics disabled")
	}

	sessionManager := mc.NewBattleshipSessionManager()
	go sessionManager.CleanupPeriodically(context.Background())

	rp := api.NewRequestProcessor(sessionManager, mb.NewBattleshipGameManager(), opts...)

	mux := http.NewServeMux()
	mux.Handle("GET /battleship", rp)

	log.Printf("Listening to port %s\n", port)
	log.Fatalln(http.ListenAndServe("0.0.0.0:"+port, mux))
}
