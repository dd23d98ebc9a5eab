package contract

import (
	"context"

	"flix-n-chill-be/internal/entity"

	"github.com/google/uuid"
)

type UserRepository interface {
	FindById(ctx context.Context, id uuid.UUID) (*entity.User, error)
}
