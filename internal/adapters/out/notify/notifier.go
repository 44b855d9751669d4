// Package notify delivers the confirmation code to the recipient after a
// carrier handover. The log notifier stands in for an SMS or push gateway.
package notify

import (
	"context"
	"log/slog"

	"transit/internal/core/domain/model/kernel"
)

// LogNotifier records code issuance in the application log. The code itself
// never reaches the log, only the fact that one was sent.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier writing to the given logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "delivery_code_notifier")}
}

// DeliveryCodeIssued notifies the recipient that their delivery code is ready.
func (n *LogNotifier) DeliveryCodeIssued(ctx context.Context, orderID kernel.UUID, _ kernel.Otp) {
	n.logger.InfoContext(ctx, "Delivery code issued", "orderId", orderID.String())
}
