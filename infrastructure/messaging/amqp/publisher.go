package amqp

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/agent-performance-api/internal/config"
	"github.com/vfg2006/agent-performance-api/internal/domain"
)

const publishTimeout = 5 * time.Second

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Publisher publica os eventos de domínio da aplicação
type Publisher interface {
	PublishReportsImported(ctx context.Context, event domain.ReportsImportedEvent) error
	Close() error
}

// NewPublisher conecta ao broker quando AMQP_URL está configurada.
// Sem URL, os eventos são descartados.
func NewPublisher(cfg config.Events) (Publisher, error) {
	if cfg.AMQPURL == "" {
		logrus.Info("AMQP_URL não configurada, eventos de importação desativados")
		return NoopPublisher{}, nil
	}

	client, err := NewClient(cfg.AMQPURL, cfg.Exchange, cfg.RoutingKey)
	if err != nil {
		return nil, err
	}
	return client, nil
}

type Client struct {
	conn       *amqp091.Connection
	channel    *amqp091.Channel
	exchange   string
	routingKey string
}

func NewClient(url, exchange, routingKey string) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	client := &Client{
		conn:       conn,
		channel:    channel,
		exchange:   exchange,
		routingKey: routingKey,
	}

	if err := client.setup(); err != nil {
		client.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return client, nil
}

// setup declara a exchange direta e uma fila durável com o nome da routing key
func (c *Client) setup() error {
	if err := c.channel.ExchangeDeclare(c.exchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	if _, err := c.channel.QueueDeclare(c.routingKey, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	if err := c.channel.QueueBind(c.routingKey, c.routingKey, c.exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}

func (c *Client) PublishReportsImported(ctx context.Context, event domain.ReportsImportedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = c.channel.PublishWithContext(ctx, c.exchange, c.routingKey, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    event.BatchID,
		Timestamp:    event.OccurredAt,
		Type:         c.routingKey,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"batch_id": event.BatchID,
		"exchange": c.exchange,
		"inserted": event.Inserted,
	}).Info("Evento de importação publicado")

	return nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// NoopPublisher descarta os eventos quando não há broker configurado
type NoopPublisher struct{}

func (NoopPublisher) PublishReportsImported(ctx context.Context, event domain.ReportsImportedEvent) error {
	logrus.WithField("batch_id", event.BatchID).Debug("Evento de importação descartado (AMQP desativado)")
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
