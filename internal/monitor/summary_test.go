package monitor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inboxping/inboxping/internal/classify"
)

func TestSummaryCounting(t *testing.T) {
	s := NewSummary(4)

	s.Add(Outcome{Ref: "m1", Category: classify.CategoryBanking, Success: true})
	s.Add(Outcome{Ref: "m2", Kind: FailureDetailFetch, Err: errors.New("boom")})
	s.Add(Outcome{Ref: "m3", Category: classify.CategoryMisc, Kind: FailureDelivery, Err: errors.New("500")})
	s.Add(Outcome{Ref: "m4", Category: classify.CategoryMisc, Success: true, Kind: FailureMark, Err: errors.New("denied")})

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Notified)
	assert.Equal(t, 2, s.Failed)
	assert.Equal(t, 1, s.MarkFailures)
	assert.Equal(t, 1, s.FailureCount(FailureDetailFetch))
	assert.Equal(t, 1, s.FailureCount(FailureDelivery))
	// Mark failures count as notified, not as failures.
	assert.Equal(t, 0, s.FailureCount(FailureMark))
}

func TestSummaryOutcomesOrder(t *testing.T) {
	s := NewSummary(3)
	s.Add(Outcome{Ref: "a", Success: true})
	s.Add(Outcome{Ref: "b", Success: true})
	s.Add(Outcome{Ref: "c", Success: true})

	outcomes := s.Outcomes()
	assert.Equal(t, MessageRef("a"), outcomes[0].Ref)
	assert.Equal(t, MessageRef("b"), outcomes[1].Ref)
	assert.Equal(t, MessageRef("c"), outcomes[2].Ref)
}

func TestSummaryString(t *testing.T) {
	s := NewSummary(3)
	s.Add(Outcome{Ref: "m1", Success: true})
	s.Add(Outcome{Ref: "m2", Kind: FailureDelivery, Err: errors.New("500")})
	s.Add(Outcome{Ref: "m3", Success: true, Kind: FailureMark, Err: errors.New("denied")})

	out := s.String()
	assert.Contains(t, out, "total:    3")
	assert.Contains(t, out, "notified: 2")
	assert.Contains(t, out, "failed:   1")
	assert.Contains(t, out, "delivery: 1")
	assert.Contains(t, out, "notified but left unread: 1")
}

func TestSummaryStringNoFailures(t *testing.T) {
	s := NewSummary(1)
	s.Add(Outcome{Ref: "m1", Success: true})

	out := s.String()
	assert.Contains(t, out, "notified: 1")
	assert.NotContains(t, out, "left unread")
}

func TestNormalizeSnippet(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{
			name:     "collapses whitespace",
			in:       "  hello\n\tworld  ",
			expected: "hello world",
		},
		{
			name:     "empty input",
			in:       "   \n ",
			expected: "",
		},
		{
			name:     "short snippet unchanged",
			in:       "a short preview",
			expected: "a short preview",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeSnippet(tt.in))
		})
	}

	t.Run("truncates at the rune limit", func(t *testing.T) {
		long := ""
		for i := 0; i < 30; i++ {
			long += "words "
		}
		got := NormalizeSnippet(long)
		assert.Len(t, []rune(got), SnippetLimit+3)
		assert.Equal(t, "...", got[len(got)-3:])
	})

	t.Run("truncation counts runes not bytes", func(t *testing.T) {
		long := ""
		for i := 0; i < 120; i++ {
			long += "ü"
		}
		got := NormalizeSnippet(long)
		assert.Len(t, []rune(got), SnippetLimit+3)
	})
}
