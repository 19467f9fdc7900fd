package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/inboxping/inboxping/internal/classify"
	"github.com/inboxping/inboxping/internal/instrumentation"
	"github.com/inboxping/inboxping/internal/logging"
)

// DefaultLookback is the candidate window when none is configured.
const DefaultLookback = 24 * time.Hour

// DispatcherConfig holds the collaborators and settings for a Dispatcher.
type DispatcherConfig struct {
	Mailbox  Mailbox
	Sender   Sender
	Renderer Renderer

	// Lookback is the unread-message window passed to the mailbox
	// listing call. Defaults to DefaultLookback.
	Lookback time.Duration

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Metrics may be nil; a no-op recorder is substituted.
	Metrics *instrumentation.Metrics
}

// Dispatcher runs the categorization-and-dispatch pipeline over one
// batch of unread messages. It is the only component that catches the
// per-message error kinds and converts them into outcomes.
type Dispatcher struct {
	mailbox  Mailbox
	sender   Sender
	renderer Renderer
	lookback time.Duration
	logger   *slog.Logger
	metrics  *instrumentation.Metrics
}

// NewDispatcher validates the configuration and returns a Dispatcher.
func NewDispatcher(cfg DispatcherConfig) (*Dispatcher, error) {
	if cfg.Mailbox == nil {
		return nil, fmt.Errorf("dispatcher requires a mailbox")
	}
	if cfg.Sender == nil {
		return nil, fmt.Errorf("dispatcher requires a sender")
	}
	if cfg.Renderer == nil {
		return nil, fmt.Errorf("dispatcher requires a renderer")
	}
	if cfg.Lookback <= 0 {
		cfg.Lookback = DefaultLookback
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = &instrumentation.Metrics{}
	}

	return &Dispatcher{
		mailbox:  cfg.Mailbox,
		sender:   cfg.Sender,
		renderer: cfg.Renderer,
		lookback: cfg.Lookback,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
	}, nil
}

// Run processes one batch. The candidate list is requested exactly once
// and processed sequentially in provider order. A listing failure is
// fatal and returned as a *ListError; all other failures are recorded
// in the returned summary.
func (d *Dispatcher) Run(ctx context.Context) (*Summary, error) {
	ctx, span := instrumentation.StartRunSpan(ctx, d.mailbox.Provider(), d.sender.Channel())
	defer span.End()

	runStart := time.Now()
	logger := logging.WithOperation(d.logger, "run")

	listStart := time.Now()
	refs, err := d.mailbox.ListUnread(ctx, d.lookback)
	if err != nil {
		d.metrics.RecordMailboxOperation(ctx, d.mailbox.Provider(), "list", instrumentation.StatusError, time.Since(listStart))
		d.metrics.RecordRun(ctx, instrumentation.StatusError, time.Since(runStart))
		if !IsListError(err) {
			err = &ListError{Provider: d.mailbox.Provider(), Err: err}
		}
		instrumentation.SetSpanError(span, err)
		return nil, err
	}
	d.metrics.RecordMailboxOperation(ctx, d.mailbox.Provider(), "list", instrumentation.StatusSuccess, time.Since(listStart))

	logger.Info("listed candidate messages",
		slog.Int("count", len(refs)),
		slog.Duration("lookback", d.lookback))

	summary := NewSummary(len(refs))
	for _, ref := range refs {
		outcome := d.processMessage(ctx, ref)
		summary.Add(outcome)
	}

	d.metrics.RecordRun(ctx, instrumentation.StatusSuccess, time.Since(runStart))
	instrumentation.SetSpanSuccess(span)

	logger.Info("run complete",
		slog.Int("total", summary.Total),
		slog.Int("notified", summary.Notified),
		slog.Int("failed", summary.Failed))
	return summary, nil
}

// processMessage takes a single message through the state machine.
// Every return path yields an Outcome; errors never escape.
func (d *Dispatcher) processMessage(ctx context.Context, ref MessageRef) Outcome {
	ctx, span := instrumentation.StartMessageSpan(ctx, string(ref))
	defer span.End()

	logger := d.logger.With(slog.String(logging.KeyMessageID, string(ref)))

	detail, err := d.fetchDetails(ctx, ref)
	if err != nil {
		logger.Warn("detail fetch failed", logging.Err(err))
		instrumentation.SetSpanError(span, err)
		return Outcome{Ref: ref, Kind: FailureDetailFetch, Err: err}
	}

	category := classify.Categorize(detail.Subject)
	payload := d.renderer.Render(category, detail)

	deliveryStart := time.Now()
	deliveryID, err := d.sender.Deliver(ctx, payload)
	if err != nil {
		d.metrics.RecordDelivery(ctx, d.sender.Channel(), instrumentation.StatusError, time.Since(deliveryStart))
		d.metrics.RecordMessage(ctx, string(category), instrumentation.StatusError)
		if !IsDeliveryError(err) {
			err = &DeliveryError{Channel: d.sender.Channel(), Err: err}
		}
		// Deliberately not marked read: the next run retries it.
		logger.Warn("delivery failed, message stays unread",
			slog.String(logging.KeyCategory, string(category)),
			logging.Err(err))
		instrumentation.SetSpanError(span, err)
		return Outcome{Ref: ref, Category: category, Kind: FailureDelivery, Err: err}
	}
	d.metrics.RecordDelivery(ctx, d.sender.Channel(), instrumentation.StatusSuccess, time.Since(deliveryStart))
	d.metrics.RecordMessage(ctx, string(category), instrumentation.StatusSuccess)

	logger.Info("notification delivered",
		slog.String(logging.KeyCategory, string(category)),
		slog.String(logging.KeyChannel, d.sender.Channel()),
		slog.String("delivery_id", deliveryID),
		slog.String("sender", logging.AnonymizeSender(detail.Sender)))

	markStart := time.Now()
	if err := d.mailbox.MarkProcessed(ctx, ref); err != nil {
		d.metrics.RecordMailboxOperation(ctx, d.mailbox.Provider(), "mark", instrumentation.StatusError, time.Since(markStart))
		if !IsMarkError(err) {
			err = &MarkError{Ref: ref, Err: err}
		}
		// The user already got the alert; count as notified and accept
		// a possible duplicate on the next run.
		logger.Warn("mark-read failed after delivery, duplicate alert possible",
			logging.Err(err))
		instrumentation.SetSpanError(span, err)
		return Outcome{Ref: ref, Category: category, Success: true, Kind: FailureMark, Err: err}
	}
	d.metrics.RecordMailboxOperation(ctx, d.mailbox.Provider(), "mark", instrumentation.StatusSuccess, time.Since(markStart))

	instrumentation.SetSpanSuccess(span)
	return Outcome{Ref: ref, Category: category, Success: true}
}

func (d *Dispatcher) fetchDetails(ctx context.Context, ref MessageRef) (*MessageDetail, error) {
	start := time.Now()
	detail, err := d.mailbox.GetDetails(ctx, ref)
	if err != nil {
		d.metrics.RecordMailboxOperation(ctx, d.mailbox.Provider(), "get", instrumentation.StatusError, time.Since(start))
		if !IsDetailFetchError(err) {
			err = &DetailFetchError{Ref: ref, Err: err}
		}
		return nil, err
	}
	d.metrics.RecordMailboxOperation(ctx, d.mailbox.Provider(), "get", instrumentation.StatusSuccess, time.Since(start))
	return detail, nil
}
