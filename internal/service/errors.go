package service

import "errors"

// 错误分类：handler 按此映射 404 / 403 / 409
var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
	ErrConflict  = errors.New("conflict")
)
