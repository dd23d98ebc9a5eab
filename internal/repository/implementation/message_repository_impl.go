package implementation

import (
	"context"
	"errors"

	"flix-n-chill-be/internal/entity"
	"flix-n-chill-be/internal/mapper"
	"flix-n-chill-be/internal/model"
	"flix-n-chill-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewMessageRepository(db *gorm.DB) contract.MessageRepository {
	return &MessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *MessageRepositoryImpl) Create(ctx context.Context, message *entity.Message) error {
	m := r.mapper.MessageToModel(message)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	// Reload with the sender so the caller gets the exact broadcast view
	// (server-assigned id and timestamp included).
	var created model.Message
	if err := r.db.WithContext(ctx).Preload("Sender").First(&created, "id = ?", m.Id).Error; err != nil {
		return err
	}
	*message = *r.mapper.MessageToEntity(&created)
	return nil
}

func (r *MessageRepositoryImpl) FindRecentByRoom(ctx context.Context, roomID uuid.UUID, limit int) ([]*entity.Message, error) {
	var models []*model.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("room_id = ?", roomID).
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	// Query is newest-first to bound the batch; flip to oldest-first for
	// display.
	messages := make([]*entity.Message, len(models))
	for i, m := range models {
		messages[len(models)-1-i] = r.mapper.MessageToEntity(m)
	}
	return messages, nil
}

func (r *MessageRepositoryImpl) FindLatestByRoom(ctx context.Context, roomID uuid.UUID) (*entity.Message, error) {
	var m model.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("room_id = ?", roomID).
		Order("timestamp DESC, id DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.MessageToEntity(&m), nil
}

func (r *MessageRepositoryImpl) CountByRoom(ctx context.Context, roomID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("room_id = ?", roomID).
		Count(&count).Error
	return count, err
}
