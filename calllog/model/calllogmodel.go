package model

import (
	"time"

	"github.com/google/uuid"
)

type Outcome string // @Name Outcome

const (
	Succeeded Outcome = "SUCCEEDED"
	Failed    Outcome = "FAILED"
)

type CallLogEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Method    string
	URL       string
	Status    int
	Outcome   Outcome
	Duration  time.Duration
}

type CallLogDTO struct {
	ID         uuid.UUID `json:"id"`         // Identifies the call in the application log
	CreatedAt  time.Time `json:"createdAt"`  // When the call finished
	Method     string    `json:"method"`     // HTTP method
	URL        string    `json:"url"`        // Requested URL including the query string
	Status     int       `json:"status"`     // HTTP status, 0 when no response was received
	Outcome    Outcome   `json:"outcome"`    // Whether the call ended in a success envelope
	DurationMs int64     `json:"durationMs"` // Wall time of the call
} // @Name CallLogDTO
