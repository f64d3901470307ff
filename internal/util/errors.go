package util

import "errors"

var (
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStudentNotFound    = errors.New("student not found")
	ErrNotLinked          = errors.New("student is not linked to this parent")
	ErrAlreadyLinked      = errors.New("student already linked")
	ErrInvalidGrade       = errors.New("grade must be between 1 and 12")
	ErrInvalidModule      = errors.New("module must be one of s1, s2, s3")
	ErrInvalidSeconds     = errors.New("seconds must be positive")
)
