package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long an idle session keeps its page
const DefaultTTL = 24 * time.Hour

var ErrInvalidSessionID = errors.New("invalid session id")

// Store keeps the current table page of each browser session
type Store interface {
	// Page returns the stored page, or 1 for a session that has none
	Page(ctx context.Context, sessionID string) (int, error)
	SetPage(ctx context.Context, sessionID string, page int) error
	Delete(ctx context.Context, sessionID string) error
}

// NewID generates a fresh session identifier
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like an identifier issued by NewID
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil && id != ""
}

func checkID(id string) error {
	if !ValidID(id) {
		return ErrInvalidSessionID
	}
	return nil
}
