package metrics

import (
	"testing"
	"time"

	"product-management/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapSinkRecordsOneEntryPerAttempt(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	sink := NewZapSink(zap.New(core))

	sink.Record(CreationMetrics{
		OperationID:         "op-1",
		ProductName:         "Smartphone X",
		SKU:                 "ELEC-12345",
		Category:            domain.CategoryElectronics,
		ValidationDuration:  5 * time.Millisecond,
		PersistenceDuration: 12 * time.Millisecond,
		TotalDuration:       20 * time.Millisecond,
		Success:             true,
	})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Product creation metrics", entry.Message)

	fields := entry.ContextMap()
	assert.Equal(t, "op-1", fields["operation_id"])
	assert.Equal(t, "ELEC-12345", fields["sku"])
	assert.Equal(t, "electronics", fields["category"])
	assert.Equal(t, true, fields["success"])
	assert.Equal(t, "-", fields["error"], "empty error reason renders as a dash")
	assert.Equal(t, 5*time.Millisecond, fields["validation_duration"])
}

func TestZapSinkRecordsFailureReason(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	sink := NewZapSink(zap.New(core))

	sink.Record(CreationMetrics{
		OperationID: "op-2",
		ProductName: "Smartphone X",
		SKU:         "ELEC-12345",
		Category:    domain.CategoryElectronics,
		Success:     false,
		ErrorReason: "validation failed",
	})

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, false, fields["success"])
	assert.Equal(t, "validation failed", fields["error"])
}
