package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	e := NewHTTP(http.StatusNotFound, "Summary not found")
	assert.Equal(t, "[ApiError] Summary not found (status=404)", e.Error())

	e = New("Stream reader not available")
	assert.Equal(t, "[ApiError] Stream reader not available", e.Error())
}

func TestNewTimeout(t *testing.T) {
	e := NewTimeout()
	assert.Equal(t, http.StatusRequestTimeout, e.Status)
	assert.Equal(t, "Request timeout", e.Message)
	assert.True(t, IsTimeout(e))
}

func TestWrap_PassesThroughAPIError(t *testing.T) {
	orig := NewHTTP(500, "boom")
	assert.Same(t, orig, Wrap(orig))

	// Wrapped deeper in a chain it is still recovered, not re-wrapped.
	chained := fmt.Errorf("call failed: %w", orig)
	assert.Same(t, orig, Wrap(chained))
}

func TestWrap_ForeignError(t *testing.T) {
	orig := errors.New("connection refused")
	e := Wrap(orig)
	assert.Equal(t, "connection refused", e.Message)
	assert.Equal(t, orig, e.Response)
	assert.Zero(t, e.Status)
}

func TestWrap_Nil(t *testing.T) {
	assert.Nil(t, Wrap(nil))
}

func TestAs(t *testing.T) {
	_, ok := As(errors.New("plain"))
	assert.False(t, ok)

	e, ok := As(fmt.Errorf("wrap: %w", New("inner")))
	assert.True(t, ok)
	assert.Equal(t, "inner", e.Message)
}
