package amqp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/agent-performance-api/internal/config"
	"github.com/vfg2006/agent-performance-api/internal/domain"
)

func TestNewPublisher_WithoutURLReturnsNoop(t *testing.T) {
	publisher, err := NewPublisher(config.Events{Exchange: "agent-performance", RoutingKey: "reports.imported"})

	require.NoError(t, err)
	assert.IsType(t, NoopPublisher{}, publisher)
	assert.NoError(t, publisher.PublishReportsImported(context.Background(), domain.ReportsImportedEvent{BatchID: "abc"}))
	assert.NoError(t, publisher.Close())
}

func TestNewPublisher_InvalidURL(t *testing.T) {
	_, err := NewPublisher(config.Events{AMQPURL: "not-a-url", Exchange: "x", RoutingKey: "y"})

	assert.Error(t, err)
}
