package main

import (
	"os"
	"time"

	"github.com/golang-cafe/jobly/internal/company"
	"github.com/golang-cafe/jobly/internal/config"
	"github.com/golang-cafe/jobly/internal/database"
	"github.com/golang-cafe/jobly/internal/handler"
	"github.com/golang-cafe/jobly/internal/job"
	"github.com/golang-cafe/jobly/internal/server"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().
		Timestamp().
		Logger()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("unable to load config")
	}
	logger = logger.Level(cfg.LogLevel)

	conn, err := database.GetDbConn(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("unable to connect to postgres")
	}
	defer database.CloseDbConn(conn)

	db := database.New(conn, logger, cfg.SlowQueryThreshold)
	svr := server.NewServer(cfg, db, mux.NewRouter(), logger)

	handler.RegisterRoutes(svr, company.NewRepository(db), job.NewRepository(db))

	if err := svr.Run(); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
