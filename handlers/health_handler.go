package handlers

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/lnfurey-oss/pm-exploration/database"
	"github.com/lnfurey-oss/pm-exploration/utils"
)

// HealthCheckResponse represents health check status
type HealthCheckResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database,omitempty"`
}

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	resp := HealthCheckResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Database:  "connected",
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := database.Client.Ping(ctx, readpref.Primary()); err != nil {
		resp.Status = "degraded"
		resp.Database = "unreachable"
		utils.RespondWithJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, resp)
}
