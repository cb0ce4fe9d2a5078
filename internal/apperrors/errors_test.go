package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_ErrorString(t *testing.T) {
	assert.Equal(t, "boom", RequestFailed("boom").Error())

	cause := errors.New("connection refused")
	wrapped := Wrap(cause, ErrCodeRequestFailed, "login")
	assert.Equal(t, "login: connection refused", wrapped.Error())
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := errors.New("underlying")
	err := Wrap(cause, ErrCodeMalformedToken, "decode token")
	require.NotNil(t, err)
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsMalformedToken(err))

	assert.Nil(t, Wrap(nil, ErrCodeInternal, "nope"))
	assert.Nil(t, Wrapf(nil, ErrCodeInternal, "nope %d", 1))
}

func TestCodePredicates(t *testing.T) {
	tests := []struct {
		err  error
		pred func(error) bool
	}{
		{MalformedToken("m"), IsMalformedToken},
		{StaleToken("s"), IsStaleToken},
		{RequestFailed("r"), IsRequestFailed},
		{Conflict("c"), IsConflict},
		{NotFound("n"), IsNotFound},
		{Validation("v"), IsValidation},
	}
	for _, tt := range tests {
		assert.True(t, tt.pred(tt.err))
	}

	// Codes do not bleed into each other.
	assert.False(t, IsConflict(RequestFailed("r")))
	assert.False(t, IsRequestFailed(Conflict("c")))
	assert.False(t, IsStaleToken(MalformedToken("m")))
	assert.False(t, IsMalformedToken(nil))
}

func TestPredicates_SeeThroughWrapping(t *testing.T) {
	inner := Conflict("email taken")
	outer := fmt.Errorf("register: %w", inner)
	assert.True(t, IsConflict(outer))
	assert.Equal(t, ErrCodeConflict, GetCode(outer))
}

func TestGetCodeAndField(t *testing.T) {
	assert.Equal(t, ErrCodeValidation, GetCode(ValidationField("email", "invalid")))
	assert.Equal(t, "email", GetField(ValidationField("email", "invalid")))
	assert.Empty(t, GetField(Validation("invalid")))
	assert.Empty(t, GetCode(errors.New("plain")))
}
