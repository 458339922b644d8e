package webhook

import (
	"context"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// LogHandler writes every event to the log.
type LogHandler struct {
	logger *otelzap.Logger
}

// NewLogHandler creates a LogHandler.
func NewLogHandler(logger *otelzap.Logger) *LogHandler {
	if logger == nil {
		logger = otelzap.New(zap.NewNop())
	}
	return &LogHandler{logger: logger}
}

// Name implements Handler.
func (h *LogHandler) Name() string { return "log" }

// Handle implements Handler.
func (h *LogHandler) Handle(ctx context.Context, ev Event) error {
	h.logger.Ctx(ctx).Info("Shipit callback received",
		zap.String("event_id", ev.ID),
		zap.String("event_type", ev.Type),
		zap.Any("data", ev.Data),
	)
	return nil
}
