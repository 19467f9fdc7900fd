package monitor

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKindsUnwrap(t *testing.T) {
	cause := errors.New("root cause")

	tests := []struct {
		name string
		err  error
		is   func(error) bool
	}{
		{"list", &ListError{Provider: "gmail", Err: cause}, IsListError},
		{"detail fetch", &DetailFetchError{Ref: "m1", Err: cause}, IsDetailFetchError},
		{"delivery", &DeliveryError{Channel: "slack", Err: cause}, IsDeliveryError},
		{"mark", &MarkError{Ref: "m1", Err: cause}, IsMarkError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.is(tt.err))
			assert.ErrorIs(t, tt.err, cause)

			// Detection still works through further wrapping.
			wrapped := fmt.Errorf("processing message: %w", tt.err)
			assert.True(t, tt.is(wrapped))
		})
	}
}

func TestErrorKindsAreDistinct(t *testing.T) {
	err := &DeliveryError{Channel: "slack", Err: errors.New("500")}

	assert.True(t, IsDeliveryError(err))
	assert.False(t, IsListError(err))
	assert.False(t, IsDetailFetchError(err))
	assert.False(t, IsMarkError(err))
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t,
		"mailbox gmail: list unread: quota exceeded",
		(&ListError{Provider: "gmail", Err: errors.New("quota exceeded")}).Error())
	assert.Equal(t,
		"fetch details for message m7: not found",
		(&DetailFetchError{Ref: "m7", Err: errors.New("not found")}).Error())
	assert.Equal(t,
		"deliver via whatsapp: timeout",
		(&DeliveryError{Channel: "whatsapp", Err: errors.New("timeout")}).Error())
	assert.Equal(t,
		"mark message m7 as read: denied",
		(&MarkError{Ref: "m7", Err: errors.New("denied")}).Error())
}
