package handler

import (
	"errors"
	"net/http"

	"Sizzle_Season/internal/model"
)

// statusOf 把领域错误映射到 HTTP 状态码，冲突类给 409，缺失类给 404
func statusOf(err error) int {
	switch {
	case errors.Is(err, model.ErrDuplicateEvent),
		errors.Is(err, model.ErrDuplicateLike),
		errors.Is(err, model.ErrGroupFull),
		errors.Is(err, model.ErrAlreadyMember):
		return http.StatusConflict
	case errors.Is(err, model.ErrGroupNotFound),
		errors.Is(err, model.ErrChallengeNotFound),
		errors.Is(err, model.ErrSubmissionNotFound),
		errors.Is(err, model.ErrUserNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}
