package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindSurvivesWrapping(t *testing.T) {
	err := Newf(KindUnsupportedFormat, "decode", "bad bytes")
	wrapped := fmt.Errorf("stage failed: %w", err)

	assert.Equal(t, KindUnsupportedFormat, KindOf(wrapped))
	assert.Equal(t, "decode", StageOf(wrapped))
}

func TestKindOfUnclassified(t *testing.T) {
	assert.Equal(t, KindUnexpected, KindOf(errors.New("anything")))
	assert.Equal(t, "unknown", StageOf(errors.New("anything")))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := New(KindWrite, "upload", cause)
	assert.ErrorIs(t, err, cause)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(Newf(KindTransientStore, "fetch", "blip")))

	for _, kind := range []Kind{KindMalformedEvent, KindObjectNotFound, KindUnsupportedFormat, KindWrite, KindUnexpected} {
		assert.False(t, IsRetryable(Newf(kind, "stage", "x")), "kind %s", kind)
	}
}
