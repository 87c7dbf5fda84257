package ai

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// MaxKeywords caps the number of keywords kept on a complaint.
	MaxKeywords = 8

	minKeywordLen = 5

	RequestedAction = "Please investigate and resolve the issue promptly with status updates shared to the citizen."

	FallbackSubject = "Citizen Grievance"
	FallbackSummary = "A citizen has reported an issue requiring attention."
	FallbackDetails = "Additional details will be provided upon request."

	CreatedAtLayout = "2006-01-02 15:04 UTC"
)

// FormalComplaint is the structured form of a citizen grievance. Values are
// built per request and never stored.
type FormalComplaint struct {
	Subject         string     `json:"subject"`
	Summary         string     `json:"summary"`
	Details         string     `json:"details"`
	Category        Category   `json:"category"`
	Department      Department `json:"department"`
	RequestedAction string     `json:"requested_action"`
	Keywords        []string   `json:"keywords"`
	CreatedAt       string     `json:"created_at"`
}

// Classify turns a free-text grievance into a FormalComplaint stamped with the
// current time.
func Classify(summary, details string) FormalComplaint {
	return ClassifyAt(summary, details, time.Now())
}

// ClassifyAt is Classify with an explicit clock reading.
func ClassifyAt(summary, details string, now time.Time) FormalComplaint {
	combined := strings.TrimSpace(summary + " " + details)
	category := DetectCategory(combined)

	fc := FormalComplaint{
		Subject:         summary,
		Summary:         summary,
		Details:         details,
		Category:        category,
		Department:      DepartmentFor(category),
		RequestedAction: RequestedAction,
		Keywords:        ExtractKeywords(combined),
		CreatedAt:       now.UTC().Format(CreatedAtLayout),
	}
	if strings.TrimSpace(summary) == "" {
		fc.Subject = FallbackSubject
		fc.Summary = FallbackSummary
	}
	if strings.TrimSpace(details) == "" {
		fc.Details = FallbackDetails
	}
	return fc
}

// ExtractKeywords returns up to MaxKeywords whitespace-separated tokens longer
// than four characters, in order of appearance. Trailing periods and commas
// are stripped before measuring; case and duplicates are preserved.
func ExtractKeywords(text string) []string {
	keywords := make([]string, 0, MaxKeywords)
	for _, tok := range strings.Fields(text) {
		tok = strings.TrimRight(tok, ".,")
		if utf8.RuneCountInString(tok) < minKeywordLen {
			continue
		}
		keywords = append(keywords, tok)
		if len(keywords) == MaxKeywords {
			break
		}
	}
	return keywords
}
