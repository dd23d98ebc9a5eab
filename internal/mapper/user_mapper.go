package mapper

import (
	"flix-n-chill-be/internal/dto"
	"flix-n-chill-be/internal/entity"
	"flix-n-chill-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:              u.Id,
		Username:        u.Username,
		Nickname:        u.Nickname,
		Email:           u.Email,
		ProfileImageURL: u.ProfileImageURL,
		CreatedAt:       u.CreatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:              u.Id,
		Username:        u.Username,
		Nickname:        u.Nickname,
		Email:           u.Email,
		ProfileImageURL: u.ProfileImageURL,
		CreatedAt:       u.CreatedAt,
	}
}

// UserToChatProfile projects the public profile fields carried on chat
// payloads. Fallback rules: nickname falls back to username when empty,
// profile image is null when absent.
func UserToChatProfile(u *entity.User) dto.ChatProfile {
	if u == nil {
		return dto.ChatProfile{}
	}
	nickname := u.Nickname
	if nickname == "" {
		nickname = u.Username
	}
	return dto.ChatProfile{
		Id:              u.Id,
		Nickname:        nickname,
		ProfileImageURL: u.ProfileImageURL,
	}
}
