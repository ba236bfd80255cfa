package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestRecoverable(t *testing.T) {
	assert.True(t, NewFailedLogin().Recoverable())
	assert.True(t, NewIllegalAccessAttempt().Recoverable())
	assert.True(t, NewIllegalFileType([]string{".png"}).Recoverable())

	assert.False(t, NewInternalError("").Recoverable())
	assert.False(t, NewStoreCorrupt(errors.New("bad json")).Recoverable())
	assert.False(t, NewStorageWriteFailure("write", errors.New("disk full")).Recoverable())
}

func TestFromError_PassesThroughAppError(t *testing.T) {
	orig := NewFailedLogin()
	got := FromError(orig)
	assert.Same(t, orig, got)

	wrapped := fmt.Errorf("handler: %w", orig)
	got = FromError(wrapped)
	assert.Equal(t, CodeFailedLogin, got.Code)
}

func TestFromError_WrapsUnknownErrors(t *testing.T) {
	got := FromError(errors.New("boom"))
	assert.Equal(t, CodeInternal, got.Code)
	assert.False(t, got.Recoverable())
	assert.ErrorContains(t, got.Internal, "boom")
}

func TestFromError_FiberError(t *testing.T) {
	got := FromError(fiber.ErrNotFound)
	assert.Equal(t, fiber.StatusNotFound, got.StatusCode)
	assert.False(t, got.Recoverable())
}

func TestFromError_Nil(t *testing.T) {
	assert.Nil(t, FromError(nil))
}

func TestAppError_ErrorIncludesInternal(t *testing.T) {
	err := NewStoreCorrupt(errors.New("unexpected end of JSON input"))
	assert.Contains(t, err.Error(), "StoreCorrupt")
	assert.Contains(t, err.Error(), "unexpected end of JSON input")
}
