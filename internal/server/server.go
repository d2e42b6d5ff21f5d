package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/golang-cafe/jobly/internal/config"
	"github.com/golang-cafe/jobly/internal/database"
	"github.com/golang-cafe/jobly/internal/errs"
	"github.com/golang-cafe/jobly/internal/middleware"

	"github.com/getsentry/raven-go"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type Server struct {
	cfg    config.Config
	DB     database.Handler
	router *mux.Router
	logger zerolog.Logger
}

func NewServer(cfg config.Config, db database.Handler, r *mux.Router, logger zerolog.Logger) Server {
	if cfg.SentryDSN != "" {
		if err := raven.SetDSN(cfg.SentryDSN); err != nil {
			logger.Error().Err(err).Msg("unable to configure sentry")
		}
	}
	return Server{
		cfg:    cfg,
		DB:     db,
		router: r,
		logger: logger,
	}
}

func (s Server) RegisterRoute(path string, handler func(w http.ResponseWriter, r *http.Request), methods []string) {
	s.router.HandleFunc(path, handler).Methods(methods...)
}

func (s Server) GetConfig() config.Config {
	return s.cfg
}

func (s Server) GetJWTSigningKey() []byte {
	return s.cfg.JwtSigningKey
}

func (s Server) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

type errorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// Error writes err as {"error": {"message", "status"}}. Bad requests map to
// 400 and missing records to 404; anything else is logged and hidden behind
// a generic 500.
func (s Server) Error(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	msg := http.StatusText(status)
	switch {
	case errs.IsBadRequest(err):
		status = http.StatusBadRequest
		msg = err.Error()
	case errs.IsNotFound(err):
		status = http.StatusNotFound
		msg = err.Error()
	default:
		s.Log(err, "unhandled error")
	}
	s.JSON(w, status, map[string]errorBody{"error": {Message: msg, Status: status}})
}

func (s Server) Log(err error, msg string) {
	if s.cfg.SentryDSN != "" {
		raven.CaptureErrorAndWait(err, map[string]string{"ctx": msg})
	}
	s.logger.Error().Err(err).Msg(msg)
}

func (s Server) Logger() zerolog.Logger {
	return s.logger
}

// Handler returns the router wrapped in the middleware chain.
func (s Server) Handler() http.Handler {
	return middleware.RequestIDMiddleware(
		middleware.LoggingMiddleware(s.logger, middleware.HeadersMiddleware(s.router, s.cfg.Env)),
	)
}

func (s Server) Run() error {
	addr := fmt.Sprintf(":%s", s.cfg.Port)
	if s.cfg.Env == "dev" {
		s.logger.Info().Msgf("local env http://localhost:%s", s.cfg.Port)
		addr = fmt.Sprintf("localhost:%s", s.cfg.Port)
	}
	return http.ListenAndServe(addr, s.Handler())
}
