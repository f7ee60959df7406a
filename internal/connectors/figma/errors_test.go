package figma

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(&APIError{StatusCode: 404}))
	assert.True(t, IsNotFound(ErrFileNotFound))
	assert.True(t, IsNotFound(fmt.Errorf("fetching file: %w", &APIError{StatusCode: 404})))
	assert.False(t, IsNotFound(&APIError{StatusCode: 500}))
	assert.False(t, IsNotFound(errors.New("other")))
	assert.False(t, IsNotFound(nil))
}

func TestIsUnauthorized(t *testing.T) {
	assert.True(t, IsUnauthorized(&APIError{StatusCode: 401}))
	assert.True(t, IsUnauthorized(fmt.Errorf("wrapped: %w", &APIError{StatusCode: 401})))
	assert.False(t, IsUnauthorized(&APIError{StatusCode: 403}))
	assert.False(t, IsUnauthorized(nil))
}

func TestIsForbidden(t *testing.T) {
	assert.True(t, IsForbidden(&APIError{StatusCode: 403}))
	assert.False(t, IsForbidden(&APIError{StatusCode: 401}))
	assert.False(t, IsForbidden(nil))
}

func TestIsRateLimited(t *testing.T) {
	rlErr := &RateLimitError{ResetAt: time.Now().Add(time.Minute)}
	assert.True(t, IsRateLimited(rlErr))
	assert.True(t, IsRateLimited(fmt.Errorf("request: %w", rlErr)))
	assert.False(t, IsRateLimited(&APIError{StatusCode: 429}))
	assert.False(t, IsRateLimited(nil))
}

func TestAPIError_Error(t *testing.T) {
	err := &APIError{StatusCode: 404, Message: "Not found", URL: "https://api.figma.com/v1/files/x"}
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "Not found")
}
