package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

type HealthHandler struct {
	DB                  *sql.DB
	RabbitMQ            *amqp091.Connection
	InstagramConfigured bool
	StartTime           time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(db *sql.DB, rabbitMQ *amqp091.Connection, instagramConfigured bool) *HealthHandler {
	return &HealthHandler{
		DB:                  db,
		RabbitMQ:            rabbitMQ,
		InstagramConfigured: instagramConfigured,
		StartTime:           time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	// Check Database
	if h.DB != nil {
		if err := h.DB.Ping(); err != nil {
			deps["database"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			deps["database"] = "healthy"
		}
	} else {
		deps["database"] = "not configured"
	}

	// Check RabbitMQ
	if h.RabbitMQ != nil {
		if h.RabbitMQ.IsClosed() {
			deps["rabbitmq"] = "unhealthy: connection closed"
		} else {
			deps["rabbitmq"] = "healthy"
		}
	} else {
		deps["rabbitmq"] = "not configured"
	}

	// Check Instagram Graph API
	if h.InstagramConfigured {
		deps["instagram"] = "configured"
	} else {
		deps["instagram"] = "not configured"
	}

	// Determine overall status
	status := "healthy"
	for _, v := range deps {
		if v != "healthy" && v != "configured" && v != "not configured" {
			status = "degraded"
			break
		}
	}

	uptime := time.Since(h.StartTime).Round(time.Second).String()

	response := HealthResponse{
		Status:       status,
		Version:      "1.0.0",
		Uptime:       uptime,
		Dependencies: deps,
	}

	code := http.StatusOK
	if status == "degraded" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, response)
}
