package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneKeepsKind(t *testing.T) {
	err := Clone(ErrNotFound, "subject not found")

	assert.Equal(t, "subject not found", err.Error())
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "resource not found", ErrNotFound.Message)

	assert.Equal(t, "conflict", Clone(ErrConflict, "").Message)
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("unique constraint")
	err := fmt.Errorf("insert: %w", Wrap(ErrInternal, cause, "failed to insert resource"))

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrInternal)
	assert.False(t, IsConflict(err))
	assert.Equal(t, "INTERNAL_ERROR", FromError(err).Code)
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	e := FromError(errors.New("boom"))
	assert.Equal(t, ErrInternal.Code, e.Code)
	assert.Equal(t, ErrInternal.Message, e.Message)

	e = FromError(Clone(ErrInvalidTransition, ""))
	assert.Equal(t, http.StatusConflict, e.Status)
	assert.True(t, IsConflict(e))
}

func TestAuthorizationKinds(t *testing.T) {
	assert.True(t, IsAuthorization(ErrUnauthorized))
	assert.True(t, IsAuthorization(Clone(ErrForbidden, "admins only")))
	assert.False(t, IsAuthorization(ErrInvalidCredential))
	assert.False(t, IsValidation(ErrNotFound))
}
