package handler

import (
	"net/http"

	"github.com/golang-cafe/jobly/internal/server"
)

func HealthHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svr.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
