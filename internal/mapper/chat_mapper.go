package mapper

import (
	"flix-n-chill-be/internal/entity"
	"flix-n-chill-be/internal/model"
)

type ChatMapper struct {
	users *UserMapper
}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{users: NewUserMapper()}
}

func (m *ChatMapper) RoomToEntity(r *model.ChatRoom) *entity.ChatRoom {
	if r == nil {
		return nil
	}
	return &entity.ChatRoom{
		Id:             r.Id,
		ParticipantAId: r.ParticipantAId,
		ParticipantBId: r.ParticipantBId,
		ParticipantA:   m.users.ToEntity(r.ParticipantA),
		ParticipantB:   m.users.ToEntity(r.ParticipantB),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func (m *ChatMapper) RoomToModel(r *entity.ChatRoom) *model.ChatRoom {
	if r == nil {
		return nil
	}
	return &model.ChatRoom{
		Id:             r.Id,
		ParticipantAId: r.ParticipantAId,
		ParticipantBId: r.ParticipantBId,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func (m *ChatMapper) MessageToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}
	return &entity.Message{
		Id:        msg.Id,
		RoomId:    msg.RoomId,
		SenderId:  msg.SenderId,
		Sender:    m.users.ToEntity(msg.Sender),
		Content:   msg.Content,
		Timestamp: msg.Timestamp,
		IsRead:    msg.IsRead,
	}
}

func (m *ChatMapper) MessageToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}
	return &model.Message{
		Id:        msg.Id,
		RoomId:    msg.RoomId,
		SenderId:  msg.SenderId,
		Content:   msg.Content,
		Timestamp: msg.Timestamp,
		IsRead:    msg.IsRead,
	}
}
