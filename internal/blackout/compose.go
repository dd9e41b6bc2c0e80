package blackout

import (
	"fmt"
	"strings"
	"time"
)

// ComposeCancellationReason builds the stored cancellation text for a
// system-initiated cancellation. The machine clauses it appends are the
// same ones DisplayReason strips and InferPartialRecoverySlotCountFromReason
// reads back, so the text stays interpretable even if the structured
// metadata is lost.
func ComposeCancellationReason(operatorReason string, cancelledStarts []string, partial bool, loc *time.Location) string {
	parts := make([]string, 0, 4)

	if trimmed := strings.TrimSpace(operatorReason); trimmed != "" {
		if !strings.HasSuffix(trimmed, ".") {
			trimmed += "."
		}
		parts = append(parts, trimmed)
	}

	count := len(cancelledStarts)
	if count == 1 {
		parts = append(parts, "1 session was cancelled due to a schedule change.")
	} else if count > 1 {
		parts = append(parts, fmt.Sprintf("%d sessions were cancelled due to a schedule change.", count))
	}

	if clause := affectedDatesClause(cancelledStarts, loc); clause != "" {
		parts = append(parts, clause)
	}

	if partial {
		parts = append(parts, "The "+remainingActiveClause)
	}

	return strings.Join(parts, " ")
}
