package classify

import "strings"

// Categorize returns the category for the given subject line.
// It never fails; an empty or unmatched subject yields CategoryMisc.
func Categorize(subject string) Category {
	lower := strings.ToLower(subject)
	for _, rule := range rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lower, keyword) {
				return rule.Category
			}
		}
	}
	return CategoryMisc
}
