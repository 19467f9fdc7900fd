package classify

import "testing"

func TestCategorize(t *testing.T) {
	tests := []struct {
		name     string
		subject  string
		expected Category
	}{
		{
			name:     "invoice subject",
			subject:  "Invoice #12345 - Payment Due",
			expected: CategoryBanking,
		},
		{
			name:     "interview subject",
			subject:  "Let's schedule your interview",
			expected: CategoryInterviews,
		},
		{
			name:     "job application",
			subject:  "Thank you for applying to Acme Corp",
			expected: CategoryApplications,
		},
		{
			name:     "assessment",
			subject:  "Your HackerRank assessment is ready",
			expected: CategoryAssessments,
		},
		{
			name:     "security alert",
			subject:  "Unauthorized login attempt detected",
			expected: CategorySecurity,
		},
		{
			name:     "newsletter",
			subject:  "Your weekly digest is here",
			expected: CategorySubscriptions,
		},
		{
			name:     "rejection",
			subject:  "We have decided to move forward with another candidate",
			expected: CategoryRejections,
		},
		{
			name:     "case insensitive",
			subject:  "INVOICE OVERDUE",
			expected: CategoryBanking,
		},
		{
			name:     "substring match inside a word",
			subject:  "Remab status update",
			expected: CategoryBanking, // "mab" matches as a substring
		},
		{
			name:     "empty subject falls back to default",
			subject:  "",
			expected: CategoryMisc,
		},
		{
			name:     "no keyword matches",
			subject:  "Lunch tomorrow?",
			expected: CategoryMisc,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(tt.subject); got != tt.expected {
				t.Errorf("Categorize(%q) = %q, want %q", tt.subject, got, tt.expected)
			}
		})
	}
}

// TestCategorizePriorityOrder pins the tie-break: when a subject matches
// keywords from two rules, the rule earlier in the table wins.
func TestCategorizePriorityOrder(t *testing.T) {
	tests := []struct {
		name     string
		subject  string
		expected Category
	}{
		{
			name:     "banking beats offers",
			subject:  "Payment details enclosed",
			expected: CategoryBanking,
		},
		{
			name:     "offers beats interviews",
			subject:  "Offer call scheduled",
			expected: CategoryOffers,
		},
		{
			name:     "applications beats rejections",
			subject:  "Unfortunately your application was not selected",
			expected: CategoryApplications,
		},
		{
			name:     "assessments beats interviews",
			subject:  "Coding interview next week",
			expected: CategoryAssessments,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(tt.subject); got != tt.expected {
				t.Errorf("Categorize(%q) = %q, want %q", tt.subject, got, tt.expected)
			}
		})
	}
}

func TestCategorizeIsPure(t *testing.T) {
	subject := "Invoice #42 and interview invite"
	first := Categorize(subject)
	second := Categorize(subject)
	if first != second {
		t.Errorf("Categorize is not deterministic: %q then %q", first, second)
	}
}

func TestRulesReturnsCopy(t *testing.T) {
	got := Rules()
	if len(got) != len(rules) {
		t.Fatalf("expected %d rules, got %d", len(rules), len(got))
	}
	got[0] = Rule{Category: "mutated"}
	if rules[0].Category != CategoryBanking {
		t.Error("mutating the returned slice must not affect the rule table")
	}
}
