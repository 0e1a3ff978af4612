package repo

import (
	"context"

	"github.com/konigunited/restdelbot/internal/domain"
)

// SessionRepository returns an empty session for an unknown conversation.
type SessionRepository interface {
	Get(ctx context.Context, conversationID string) (domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
}
