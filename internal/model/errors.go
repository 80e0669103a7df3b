package model

import "errors"

// 引擎对外的业务错误，handler 层据此映射状态码
var (
	ErrInvalidEventKind   = errors.New("invalid event kind")
	ErrDuplicateEvent     = errors.New("duplicate score event")
	ErrDuplicateLike      = errors.New("already liked")
	ErrGroupFull          = errors.New("group is full")
	ErrAlreadyMember      = errors.New("already a member")
	ErrNotAMember         = errors.New("not a member")
	ErrGroupNotFound      = errors.New("group not found")
	ErrInvalidCapacity    = errors.New("invalid group capacity")
	ErrChallengeNotActive = errors.New("challenge is not active")
	ErrChallengeNotFound  = errors.New("challenge not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrUserNotFound       = errors.New("user not found")
)
