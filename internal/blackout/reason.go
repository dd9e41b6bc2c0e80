package blackout

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/craftday/workshop-booking-service/internal/calendar"
)

const (
	// remainingActiveClause is the machine-generated sentence appended by
	// the blackout canceller when a registration keeps some of its slots.
	remainingActiveClause = "remaining booked sessions are still active."

	// genericCancelledMessage replaces operator reasons that leak rule
	// internals ("blackout rule", "blocked by") in customer-facing text.
	genericCancelledMessage = "Some of your booked sessions were cancelled due to a schedule change."

	// affectedDateLayout matches the date mentions the canceller writes
	// into reasons, e.g. "Jan 5, 2024".
	affectedDateLayout = "Jan 2, 2006"
)

var (
	explicitCountRe = regexp.MustCompile(`(?i)(\d+)\s+sessions?\b`)
	dateMentionRe   = regexp.MustCompile(`(?i)\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+\d{1,2},\s+\d{4}`)

	countClauseRe     = regexp.MustCompile(`(?i)\d+\s+sessions?\s+(?:were|was)\s+cancelled[^.]*\.`)
	affectedClauseRe  = regexp.MustCompile(`(?i)affected\s+dates?:[^.]*\.`)
	remainingClauseRe = regexp.MustCompile(`(?i)(?:the\s+)?remaining booked sessions are still active\.?`)
	multiSpaceRe      = regexp.MustCompile(`\s+`)
)

// InferPartialRecoverySlotCountFromReason estimates the number of cancelled
// sessions from free-text cancellation reasons. The text must mention both
// sessions and a cancellation to count at all; after that the most explicit
// signal wins: stated counts, then distinct date mentions, then the
// remaining-sessions boilerplate, then a floor of one.
func InferPartialRecoverySlotCountFromReason(reason string) int {
	text := strings.ToLower(strings.TrimSpace(reason))
	if text == "" {
		return 0
	}

	if !strings.Contains(text, "session") || !strings.Contains(text, "cancelled") {
		return 0
	}

	if matches := explicitCountRe.FindAllStringSubmatch(text, -1); len(matches) > 0 {
		maxCount := 0
		for _, match := range matches {
			n, err := strconv.Atoi(match[1])
			if err != nil {
				continue
			}
			if n > maxCount {
				maxCount = n
			}
		}
		return maxCount
	}

	if mentions := dateMentionRe.FindAllString(text, -1); len(mentions) > 0 {
		distinct := make(map[string]struct{}, len(mentions))
		for _, mention := range mentions {
			distinct[multiSpaceRe.ReplaceAllString(mention, " ")] = struct{}{}
		}
		return len(distinct)
	}

	if strings.Contains(text, remainingActiveClause) {
		return 1
	}

	// Non-empty cancellation text about sessions implies at least one
	// recoverable slot.
	return 1
}

// DisplayReason normalizes a stored cancellation reason for customer
// display. Rule internals are replaced with a generic message, stale
// machine-generated clauses are stripped, and a freshly computed summary
// plus affected-dates clause is appended so counts and dates always agree
// with the current recovery state.
func DisplayReason(raw string, requiredSlots int, pendingStarts []string, loc *time.Location) string {
	reason := strings.TrimSpace(raw)

	lower := strings.ToLower(reason)
	if strings.Contains(lower, "blackout rule") || strings.Contains(lower, "blocked by") {
		reason = genericCancelledMessage
	}

	reason = countClauseRe.ReplaceAllString(reason, "")
	reason = affectedClauseRe.ReplaceAllString(reason, "")
	reason = remainingClauseRe.ReplaceAllString(reason, "")
	reason = strings.TrimSpace(multiSpaceRe.ReplaceAllString(reason, " "))

	parts := make([]string, 0, 3)
	if reason != "" {
		parts = append(parts, reason)
	}

	if requiredSlots > 0 {
		if requiredSlots == 1 {
			parts = append(parts, "1 session was cancelled.")
		} else {
			parts = append(parts, fmt.Sprintf("%d sessions were cancelled.", requiredSlots))
		}
	}

	if clause := affectedDatesClause(pendingStarts, loc); clause != "" {
		parts = append(parts, clause)
	}

	return strings.Join(parts, " ")
}

// affectedDatesClause renders the distinct local dates of the voided slots:
// one date as "Affected date: X.", several as "Affected dates: A, B, and C."
func affectedDatesClause(pendingStarts []string, loc *time.Location) string {
	seen := make(map[string]struct{}, len(pendingStarts))
	dates := make([]string, 0, len(pendingStarts))

	for _, raw := range pendingStarts {
		canonical, err := calendar.CanonicalInstant(raw)
		if err != nil {
			continue
		}
		t, err := time.Parse(time.RFC3339, canonical)
		if err != nil {
			continue
		}

		formatted := t.In(loc).Format(affectedDateLayout)
		if _, ok := seen[formatted]; ok {
			continue
		}
		seen[formatted] = struct{}{}
		dates = append(dates, formatted)
	}

	switch len(dates) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("Affected date: %s.", dates[0])
	case 2:
		return fmt.Sprintf("Affected dates: %s and %s.", dates[0], dates[1])
	default:
		return fmt.Sprintf("Affected dates: %s, and %s.",
			strings.Join(dates[:len(dates)-1], ", "), dates[len(dates)-1])
	}
}
