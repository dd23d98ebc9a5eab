package implementation

import (
	"bytes"
	"context"
	"errors"

	"flix-n-chill-be/internal/entity"
	"flix-n-chill-be/internal/mapper"
	"flix-n-chill-be/internal/model"
	"flix-n-chill-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatRoomRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatRoomRepository(db *gorm.DB) contract.ChatRoomRepository {
	return &ChatRoomRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

// canonicalPair orders an unordered participant pair by the byte order
// of the UUID values, so (A,B) and (B,A) hit the same row.
func canonicalPair(userA, userB uuid.UUID) (uuid.UUID, uuid.UUID) {
	if bytes.Compare(userA[:], userB[:]) > 0 {
		return userB, userA
	}
	return userA, userB
}

func (r *ChatRoomRepositoryImpl) GetOrCreate(ctx context.Context, userA, userB uuid.UUID) (*entity.ChatRoom, bool, error) {
	a, b := canonicalPair(userA, userB)

	room, err := r.findByPair(ctx, a, b)
	if err != nil {
		return nil, false, err
	}
	if room != nil {
		return room, false, nil
	}

	m := &model.ChatRoom{ParticipantAId: a, ParticipantBId: b}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		// A concurrent caller won the insert race; the unique index on
		// the pair guarantees the row now exists.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			room, ferr := r.findByPair(ctx, a, b)
			if ferr != nil {
				return nil, false, ferr
			}
			return room, false, nil
		}
		return nil, false, err
	}

	return r.preloaded(ctx, m.Id, false)
}

func (r *ChatRoomRepositoryImpl) findByPair(ctx context.Context, a, b uuid.UUID) (*entity.ChatRoom, error) {
	var m model.ChatRoom
	err := r.db.WithContext(ctx).
		Preload("ParticipantA").
		Preload("ParticipantB").
		Where("participant_a_id = ? AND participant_b_id = ?", a, b).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.RoomToEntity(&m), nil
}

func (r *ChatRoomRepositoryImpl) preloaded(ctx context.Context, id uuid.UUID, _ bool) (*entity.ChatRoom, bool, error) {
	var m model.ChatRoom
	err := r.db.WithContext(ctx).
		Preload("ParticipantA").
		Preload("ParticipantB").
		First(&m, "id = ?", id).Error
	if err != nil {
		return nil, false, err
	}
	return r.mapper.RoomToEntity(&m), true, nil
}

func (r *ChatRoomRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.ChatRoom, error) {
	var m model.ChatRoom
	err := r.db.WithContext(ctx).
		Preload("ParticipantA").
		Preload("ParticipantB").
		First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.RoomToEntity(&m), nil
}

func (r *ChatRoomRepositoryImpl) FindLatestByUser(ctx context.Context, userID uuid.UUID) (*entity.ChatRoom, error) {
	var m model.ChatRoom
	err := r.db.WithContext(ctx).
		Preload("ParticipantA").
		Preload("ParticipantB").
		Where("participant_a_id = ? OR participant_b_id = ?", userID, userID).
		Order("updated_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.RoomToEntity(&m), nil
}

func (r *ChatRoomRepositoryImpl) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*entity.ChatRoom, error) {
	var models []*model.ChatRoom
	err := r.db.WithContext(ctx).
		Preload("ParticipantA").
		Preload("ParticipantB").
		Where("participant_a_id = ? OR participant_b_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	rooms := make([]*entity.ChatRoom, len(models))
	for i, m := range models {
		rooms[i] = r.mapper.RoomToEntity(m)
	}
	return rooms, nil
}

func (r *ChatRoomRepositoryImpl) Touch(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.ChatRoom{}).
		Where("id = ?", id).
		Update("updated_at", gorm.Expr("NOW()")).Error
}
