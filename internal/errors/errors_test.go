package errors

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorBuilder_Basic(t *testing.T) {
	err := Newf("successes %d exceed trials %d", 12, 10).
		Component("bayes").
		Category(CategoryValidation).
		Context("successes", 12).
		Context("trials", 10).
		Build()

	require.Error(t, err)
	assert.Equal(t, "successes 12 exceed trials 10", err.Error())
	assert.Equal(t, "bayes", err.GetComponent())
	assert.Equal(t, CategoryValidation, err.Category)

	ctx := err.GetContext()
	assert.Equal(t, 12, ctx["successes"])
	assert.Equal(t, 10, ctx["trials"])
	assert.False(t, err.GetTimestamp().IsZero())
}

func TestErrorBuilder_DefaultCategory(t *testing.T) {
	err := Newf("something went sideways").Build()
	assert.Equal(t, CategoryGeneric, err.Category)
}

func TestEnhancedError_Unwrap(t *testing.T) {
	base := fmt.Errorf("read failed: %w", io.ErrUnexpectedEOF)
	err := Wrap(base).Category(CategoryFileIO).Build()

	assert.True(t, Is(err, io.ErrUnexpectedEOF))

	var enhanced *EnhancedError
	require.True(t, As(err, &enhanced))
	assert.Equal(t, CategoryFileIO, enhanced.Category)
}

func TestEnhancedError_IsMatchesCategory(t *testing.T) {
	a := Newf("bad mass").Category(CategoryValidation).Build()
	b := Newf("other problem").Category(CategoryValidation).Build()
	c := Newf("offline").Category(CategoryNetwork).Build()

	assert.True(t, Is(a, b))
	assert.False(t, Is(a, c))
}

func TestCategoryHelpers(t *testing.T) {
	err := ValidationError("alpha must be positive")
	assert.True(t, IsValidation(err))
	assert.False(t, IsNotFound(err))

	wrapped := fmt.Errorf("pipeline: %w", err)
	assert.True(t, IsCategory(wrapped, CategoryValidation))
}

func TestGetContext_ReturnsCopy(t *testing.T) {
	err := Newf("x").Context("k", "v").Build()
	ctx := err.GetContext()
	ctx["k"] = "mutated"
	assert.Equal(t, "v", err.GetContext()["k"])
}
