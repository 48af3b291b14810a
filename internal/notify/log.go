package notify

import (
	"context"

	"airport-feedback/internal/logger"
)

// LogNotifier implements Notifier by writing messages to the application log.
// It is used when no email delivery is configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Publish(ctx context.Context, message string) error {
	logger.GetLogger().Infow("Feedback notification", "message", message)
	return nil
}
