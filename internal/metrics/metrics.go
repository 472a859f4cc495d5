package metrics

import (
	"time"

	"product-management/internal/domain"

	"go.uber.org/zap"
)

// CreationMetrics is the ephemeral record of one product creation attempt.
// It is emitted to the sink and never persisted.
type CreationMetrics struct {
	OperationID         string
	ProductName         string
	SKU                 string
	Category            domain.ProductCategory
	ValidationDuration  time.Duration
	PersistenceDuration time.Duration
	TotalDuration       time.Duration
	Success             bool
	ErrorReason         string
}

// Sink accepts creation metrics. Implementations must be fire-and-forget:
// recording failures may not affect the creation outcome.
type Sink interface {
	Record(m CreationMetrics)
}

type zapSink struct {
	logger *zap.Logger
}

// NewZapSink returns a Sink that emits one structured log line per attempt.
func NewZapSink(logger *zap.Logger) Sink {
	return &zapSink{logger: logger}
}

func (s *zapSink) Record(m CreationMetrics) {
	errorReason := m.ErrorReason
	if errorReason == "" {
		errorReason = "-"
	}

	s.logger.Info("Product creation metrics",
		zap.String("operation_id", m.OperationID),
		zap.String("product", m.ProductName),
		zap.String("sku", m.SKU),
		zap.String("category", string(m.Category)),
		zap.Duration("validation_duration", m.ValidationDuration),
		zap.Duration("persistence_duration", m.PersistenceDuration),
		zap.Duration("total_duration", m.TotalDuration),
		zap.Bool("success", m.Success),
		zap.String("error", errorReason),
	)
}
