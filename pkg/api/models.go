package api

import (
	"time"

	"github.com/witch49/wedding-invitation/pkg/models"
)

// ListResponse is the body of GET /guestbook: one window of entries plus the
// total entry count, newest first.
type ListResponse struct {
	Posts []models.Post `json:"posts"`
	Total int           `json:"total"`
}

type CreateRequest struct {
	Name     string `json:"name"`
	Content  string `json:"content"`
	Password string `json:"password"`
}

type DeleteRequest struct {
	ID       int64  `json:"id"`
	Password string `json:"password"`
}

// LogEntry is one access-log record shipped to Kafka by the logging
// middleware and indexed downstream by the logkeeper.
type LogEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	IP         string    `json:"ip"`
	StatusCode int       `json:"status_code"`
	RequestID  string    `json:"request_id"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	Duration   float64   `json:"duration_sec"`
	Service    string    `json:"service"`
}
