package services

import "errors"

var (
	ErrNotAuthorized     = errors.New("not authorized")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrDuplicateMatch    = errors.New("match already exists with this creator")
	ErrCreatorNotFound   = errors.New("creator not found")
	ErrMatchNotFound     = errors.New("match not found")
	ErrMatchNotActive    = errors.New("messaging requires an accepted match")
	ErrMessageTooLong    = errors.New("message exceeds maximum length")
	ErrEmptyContent      = errors.New("message content is empty")
	ErrInvalidType       = errors.New("unknown message type")

	// Ошибки хранилища, которые можно безопасно повторить
	ErrTransientStorage = errors.New("temporary storage failure, retry the request")
)
