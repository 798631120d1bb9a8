package svcerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, Validation, KindOf(NewValidation("title is required")))
	assert.Equal(t, NotFound, KindOf(NewNotFound("movie not found")))
	assert.Equal(t, Conflict, KindOf(NewConflict("duplicate season")))
	assert.Equal(t, Unknown, KindOf(errors.New("boom")))
	assert.Equal(t, Unknown, KindOf(nil))
}

func TestKindSurvivesWrapping(t *testing.T) {
	inner := NewNotFound("series not found")
	wrapped := fmt.Errorf("fetching series: %w", inner)

	assert.Equal(t, NotFound, KindOf(wrapped))
	assert.True(t, IsNotFound(wrapped))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("disk on fire")
	err := Wrap(Unknown, "failed to list movies", cause)

	assert.Equal(t, "failed to list movies", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "validation", Validation.String())
	assert.Equal(t, "not_found", NotFound.String())
	assert.Equal(t, "conflict", Conflict.String())
	assert.Equal(t, "unknown", Unknown.String())
}
