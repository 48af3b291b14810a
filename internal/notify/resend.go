package notify

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/resend/resend-go/v2"

	"airport-feedback/internal/logger"
)

// emailSender is the part of the Resend client the notifier uses.
type emailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type emailMetrics struct {
	sendLatency prometheus.Histogram
	errorCount  prometheus.Counter
	sentCount   prometheus.Counter
}

// ResendNotifier emails each message through Resend.
type ResendNotifier struct {
	sender  emailSender
	from    string
	to      []string
	metrics *emailMetrics
}

// NewResendNotifier builds a notifier sending from `from` to every address
// in to, and registers its collectors with reg.
func NewResendNotifier(apiKey, from string, to []string, reg prometheus.Registerer) *ResendNotifier {
	return newResendNotifier(resend.NewClient(apiKey).Emails, from, to, reg)
}

func newResendNotifier(sender emailSender, from string, to []string, reg prometheus.Registerer) *ResendNotifier {
	m := &emailMetrics{
		sendLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "airport_feedback_email_send_duration_seconds",
			Help:    "Time taken to send notification emails",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		}),
		errorCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "airport_feedback_email_errors_total",
			Help: "Total number of notification email errors",
		}),
		sentCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "airport_feedback_emails_sent_total",
			Help: "Total number of notification emails sent",
		}),
	}
	reg.MustRegister(m.sendLatency, m.errorCount, m.sentCount)

	return &ResendNotifier{
		sender:  sender,
		from:    from,
		to:      append([]string(nil), to...),
		metrics: m,
	}
}

// Publish sends message as a plain-text and HTML email. Each email carries a
// fresh X-Entity-Ref-ID so mail clients do not thread separate notifications.
func (n *ResendNotifier) Publish(ctx context.Context, message string) error {
	start := time.Now()
	defer func() {
		n.metrics.sendLatency.Observe(time.Since(start).Seconds())
	}()

	subject := "New airport feedback"
	if first, _, ok := strings.Cut(message, "\n"); ok && first != "" {
		subject = first
	}

	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      n.to,
		Subject: subject,
		Text:    message,
		Html:    "<pre>" + html.EscapeString(message) + "</pre>",
		Headers: map[string]string{"X-Entity-Ref-ID": uuid.NewString()},
	}

	sent, err := n.sender.SendWithContext(ctx, params)
	if err != nil {
		n.metrics.errorCount.Inc()
		logger.GetLogger().Errorw("Failed to send notification email", "error", err, "to", n.to)
		return fmt.Errorf("email send failed: %w", err)
	}

	n.metrics.sentCount.Inc()
	logger.GetLogger().Infow("Notification email sent", "id", sent.Id, "to", n.to)
	return nil
}
