package domain

import "errors"

// 业务错误哨兵，handler 层统一映射到响应码
var (
	ErrDuplicateEmail  = errors.New("email already registered")
	ErrUserNotFound    = errors.New("user not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrAccountInactive = errors.New("account inactive")
	ErrInvalidRole     = errors.New("invalid role")
)
