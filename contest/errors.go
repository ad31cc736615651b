// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package contest

import (
	"errors"
	"strings"
)

// Guard rejections. Each guarded operation returns exactly one of these
// (possibly as a *ValidationError) or a wrapped infrastructure error.
var (
	ErrNotFound          = errors.New("not found")
	ErrPhaseMismatch     = errors.New("action not allowed in the current phase")
	ErrOriginBlocked     = errors.New("origin is blocked")
	ErrValidationFailed  = errors.New("validation failed")
	ErrQuotaExceeded     = errors.New("post quota exceeded")
	ErrSelfVoteForbidden = errors.New("cannot vote for your own post")
	ErrDuplicateVote     = errors.New("already voted for this post")
	ErrInvalidPoint      = errors.New("point is not permitted in this topic")
	ErrPointLimitReached = errors.New("point tier used up")
	ErrCommentsDisabled  = errors.New("comments are disabled for this topic")
)

// ValidationError carries every reason an input was rejected.
// errors.Is(err, ErrValidationFailed) holds for it.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return ErrValidationFailed.Error() + ": " + strings.Join(e.Reasons, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

func invalid(reasons []string) error {
	if len(reasons) == 0 {
		return nil
	}
	return &ValidationError{Reasons: reasons}
}
