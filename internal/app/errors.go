package app

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUsernameExists    = errors.New("username already exists")
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrInvalidToken      = errors.New("invalid token")
	ErrInvalidRole       = errors.New("role must be User or Admin")
	ErrRoleNotAllowed    = errors.New("role cannot be chosen at registration")
	ErrForbidden         = errors.New("forbidden")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrArticleNotFound   = errors.New("article not found")
	ErrUnknownCategory   = errors.New("category does not exist")
	ErrInvalidFilter     = errors.New("invalid filter")
)
