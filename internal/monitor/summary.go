package monitor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/inboxping/inboxping/internal/classify"
)

// Outcome records how one message fared in the pipeline.
type Outcome struct {
	Ref      MessageRef
	Category classify.Category

	// Success means the notification reached the user. A message with
	// Success true may still carry a mark-read error.
	Success bool

	// Kind is set when something went wrong, including the non-fatal
	// mark-read case.
	Kind FailureKind
	Err  error
}

// Summary aggregates outcomes for one pipeline run. It is append-only
// and owned by the Dispatcher; nothing survives past the run.
type Summary struct {
	Total    int
	Notified int
	Failed   int

	// MarkFailures counts messages that were notified but could not be
	// marked read. They are included in Notified.
	MarkFailures int

	failureKinds map[FailureKind]int
	outcomes     []Outcome
}

// NewSummary returns an empty summary for a batch of the given size.
func NewSummary(total int) *Summary {
	return &Summary{
		Total:        total,
		failureKinds: make(map[FailureKind]int),
	}
}

// Add records one message outcome.
func (s *Summary) Add(o Outcome) {
	s.outcomes = append(s.outcomes, o)
	if o.Success {
		s.Notified++
		if o.Kind == FailureMark {
			s.MarkFailures++
		}
		return
	}
	s.Failed++
	if o.Kind != "" {
		s.failureKinds[o.Kind]++
	}
}

// Outcomes returns the recorded outcomes in processing order.
func (s *Summary) Outcomes() []Outcome {
	return s.outcomes
}

// FailureCount returns how many messages failed with the given kind.
func (s *Summary) FailureCount(kind FailureKind) int {
	return s.failureKinds[kind]
}

// String renders the console summary block.
func (s *Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Summary:\n")
	fmt.Fprintf(&b, "  total:    %d\n", s.Total)
	fmt.Fprintf(&b, "  notified: %d\n", s.Notified)
	fmt.Fprintf(&b, "  failed:   %d\n", s.Failed)

	kinds := make([]string, 0, len(s.failureKinds))
	for kind := range s.failureKinds {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		fmt.Fprintf(&b, "    %s: %d\n", kind, s.failureKinds[FailureKind(kind)])
	}
	if s.MarkFailures > 0 {
		fmt.Fprintf(&b, "  notified but left unread: %d\n", s.MarkFailures)
	}
	return b.String()
}
