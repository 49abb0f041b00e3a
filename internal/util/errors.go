package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user profile not found")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCourseNotFound     = errors.New("course not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrPermissionDenied   = errors.New("permission denied")
)
