package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		code ErrorCode
		kind Kind
	}{
		{ErrNotFound, KindNotFound},
		{ErrForbidden, KindForbidden},
		{ErrNotGroupMember, KindForbidden},
		{ErrCreatorCannotLeave, KindInvalidState},
		{ErrNotSignedUp, KindInvalidState},
		{ErrInvalidInput, KindValidation},
		{ErrAlreadyExists, KindConflict},
		{ErrGetFailed, KindInternal},
	}
	for _, tc := range cases {
		t.Run(string(tc.code), func(t *testing.T) {
			assert.Equal(t, tc.kind, KindOf(NewAppError(tc.code, "x", nil)))
		})
	}
}

func TestKindOfWrapped(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NewAppError(ErrNotFound, "group not found", nil))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, ErrNotFound, CodeOf(wrapped))

	assert.Equal(t, KindInternal, KindOf(stderrors.New("boom")))
	assert.Equal(t, ErrInternalServer, CodeOf(stderrors.New("boom")))
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := stderrors.New("db down")
	err := NewAppError(ErrGetFailed, "get group failed", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "GET_FAILED")
}

func TestAsAppError(t *testing.T) {
	assert.Nil(t, AsAppError(nil, ErrGetFailed, "x"))

	original := NewAppError(ErrForbidden, "only the creator", nil)
	assert.Same(t, original, AsAppError(fmt.Errorf("tx: %w", original), ErrUpdateFailed, "x"))

	plain := stderrors.New("pq: deadlock detected")
	wrapped := AsAppError(plain, ErrUpdateFailed, "update failed")
	assert.Equal(t, ErrUpdateFailed, wrapped.Code)
	assert.ErrorIs(t, wrapped, plain)
}
