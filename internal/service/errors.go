package service

import "errors"

var (
	// Chat
	ErrSelfChat       = errors.New("self-chat not allowed")
	ErrUserNotFound   = errors.New("user not found")
	ErrRoomNotFound   = errors.New("room not found")
	ErrNotParticipant = errors.New("user is not a participant of this room")
	ErrEmptyContent   = errors.New("message content must not be empty")

	// Recommendation
	ErrInvalidCount  = errors.New("count must be a positive integer")
	ErrMovieNotFound = errors.New("movie not found")
)
