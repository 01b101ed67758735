package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("room %s", "r1")))
	assert.Equal(t, KindConflict, KindOf(Conflict("already swiped")))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("handling request: %w", Forbidden("not your room"))
	assert.True(t, IsKind(err, KindForbidden))
}

func TestUpstreamPreservesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Upstream(cause, "uploading %s", "a.png")
	assert.Equal(t, KindUpstream, KindOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "uploading a.png")
	assert.Contains(t, err.Error(), "connection reset")
}
