// Package notify announces new feedback to the operations team.
package notify

import (
	"context"
	"fmt"
	"strings"

	"airport-feedback/internal/models"
)

// Notifier defines the interface for publishing messages to a notification channel.
type Notifier interface {
	Publish(ctx context.Context, message string) error
}

// FormatFeedback renders a one-message summary of a new feedback record.
func FormatFeedback(fb models.Feedback) string {
	var b strings.Builder
	b.WriteString("New feedback received\n")
	fmt.Fprintf(&b, "Location: %s\n", fb.Location)
	fmt.Fprintf(&b, "Rating: %s\n", fb.Rating)
	if reasons := strings.TrimSpace(fb.Reasons); reasons != "" {
		fmt.Fprintf(&b, "Reasons: %s\n", reasons)
	}
	fmt.Fprintf(&b, "At: %s", fb.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	return b.String()
}
