package contract

import (
	"context"

	"flix-n-chill-be/internal/entity"

	"github.com/google/uuid"
)

type ChatRoomRepository interface {
	// GetOrCreate resolves the room for an unordered participant pair,
	// creating it on first contact. The pair is canonicalized before
	// lookup, so argument order never matters. The returned bool is true
	// when a new row was inserted.
	GetOrCreate(ctx context.Context, userA, userB uuid.UUID) (*entity.ChatRoom, bool, error)

	FindById(ctx context.Context, id uuid.UUID) (*entity.ChatRoom, error)

	// FindLatestByUser returns the room with the most recent updated_at
	// among the user's rooms, nil when the user has none.
	FindLatestByUser(ctx context.Context, userID uuid.UUID) (*entity.ChatRoom, error)

	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*entity.ChatRoom, error)

	// Touch bumps updated_at; called on every message arrival.
	Touch(ctx context.Context, id uuid.UUID) error
}
