package monitor

import (
	"errors"
	"fmt"
)

// FailureKind groups per-message failures for the run summary.
type FailureKind string

const (
	FailureDetailFetch FailureKind = "detail_fetch"
	FailureDelivery    FailureKind = "delivery"
	FailureMark        FailureKind = "mark"
)

// ListError reports a failed candidate listing. It is fatal for the
// run: without a candidate list there is nothing to process, but the
// cause must still be surfaced.
type ListError struct {
	Provider string
	Err      error
}

func (e *ListError) Error() string {
	return fmt.Sprintf("mailbox %s: list unread: %v", e.Provider, e.Err)
}

func (e *ListError) Unwrap() error { return e.Err }

// DetailFetchError reports a failed detail fetch for one message.
// Per-message and non-fatal: the dispatcher records it and moves on.
type DetailFetchError struct {
	Ref MessageRef
	Err error
}

func (e *DetailFetchError) Error() string {
	return fmt.Sprintf("fetch details for message %s: %v", e.Ref, e.Err)
}

func (e *DetailFetchError) Unwrap() error { return e.Err }

// DeliveryError reports a failed notification send for one message.
// The message stays unread so the next run reconsiders it.
type DeliveryError struct {
	Channel string
	Err     error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver via %s: %v", e.Channel, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// MarkError reports a failed mark-read after a successful delivery.
// The notification already reached the user, so the message still
// counts as notified; only duplicate suppression is weakened.
type MarkError struct {
	Ref MessageRef
	Err error
}

func (e *MarkError) Error() string {
	return fmt.Sprintf("mark message %s as read: %v", e.Ref, e.Err)
}

func (e *MarkError) Unwrap() error { return e.Err }

// IsListError reports whether err (or any error in its chain) is a ListError.
func IsListError(err error) bool {
	var le *ListError
	return errors.As(err, &le)
}

// IsDetailFetchError reports whether err is a DetailFetchError.
func IsDetailFetchError(err error) bool {
	var de *DetailFetchError
	return errors.As(err, &de)
}

// IsDeliveryError reports whether err is a DeliveryError.
func IsDeliveryError(err error) bool {
	var de *DeliveryError
	return errors.As(err, &de)
}

// IsMarkError reports whether err is a MarkError.
func IsMarkError(err error) bool {
	var me *MarkError
	return errors.As(err, &me)
}
