package model

import "errors"

var (
	// User / auth related errors
	ErrUserNotFound    = errors.New("user not found")
	ErrDuplicateEmail  = errors.New("email already registered")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidToken    = errors.New("invalid token")
	ErrForbidden       = errors.New("forbidden")

	// Resource related errors
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrVocabularyNotFound = errors.New("vocabulary not found")
	ErrTutorialNotFound   = errors.New("tutorial not found")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
