package contract

import (
	"context"

	"flix-n-chill-be/internal/entity"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error

	// FindRecentByRoom returns the most recent `limit` messages of the
	// room ordered oldest-first, with senders preloaded.
	FindRecentByRoom(ctx context.Context, roomID uuid.UUID, limit int) ([]*entity.Message, error)

	// FindLatestByRoom returns the newest message of the room, nil when
	// the room is empty.
	FindLatestByRoom(ctx context.Context, roomID uuid.UUID) (*entity.Message, error)

	CountByRoom(ctx context.Context, roomID uuid.UUID) (int64, error)
}
