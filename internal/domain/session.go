package domain

import "time"

// Session is the per-conversation state carried between turns.
type Session struct {
	ConversationID  string           `json:"conversation_id"`
	CurrentEstimate *Estimate        `json:"current_estimate,omitempty"`
	PendingParams   *EventParameters `json:"pending_params,omitempty"`
	Turns           int              `json:"turns"`
	UpdatedAt       time.Time        `json:"updated_at"`
}
