package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/DRSN-tech/product-admin/internal/cfg"
	"github.com/DRSN-tech/product-admin/internal/domain"
	"github.com/DRSN-tech/product-admin/internal/usecase"
	"github.com/DRSN-tech/product-admin/pkg/e"
	"github.com/DRSN-tech/product-admin/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/segmentio/kafka-go"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Producer публикует события об изменении товаров в топик Kafka.
type Producer struct {
	writer *kafka.Writer
	logger logger.Logger
	cfg    *cfg.KafkaCfg
}

func NewProducer(logger logger.Logger, cfg *cfg.KafkaCfg) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, e.Wrap(whereami.WhereAmI(), fmt.Errorf("no kafka brokers configured"))
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchSize:    10,
		BatchTimeout: 500 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Warnf("Kafka producer error: %s", err.Error())
			}
		},
	}

	return &Producer{
		writer: writer,
		logger: logger,
		cfg:    cfg,
	}, nil
}

// WriteRawMessage отправляет готовый payload. Ключ сообщения — id товара,
// поэтому все события одного товара попадают в одну партицию.
func (p *Producer) WriteRawMessage(ctx context.Context, req *usecase.WriteRawMessageReq) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(req.ProductID),
		Value: req.Payload,
	})
}

func (p *Producer) EnsureTopic(timeout time.Duration) error {
	conn, err := kafka.Dial(p.cfg.NetworkMode, p.cfg.Brokers[0])
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions(p.cfg.Topic)
	if err == nil && len(partitions) > 0 {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- conn.CreateTopics(kafka.TopicConfig{
			Topic:             p.cfg.Topic,
			NumPartitions:     p.cfg.Partitions,
			ReplicationFactor: p.cfg.ReplicationFactor,
		})
	}()

	select {
	case err := <-done:
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), fmt.Errorf("failed to create topic %s: %w", p.cfg.Topic, err))
		}
		return nil
	case <-time.After(timeout):
		_ = conn.Close()
		return e.Wrap(whereami.WhereAmI(), fmt.Errorf("timeout: %v, topic: %s", timeout, p.cfg.Topic))
	}
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// EventEncoder кодирует событие товара в protobuf Struct.
// Цены передаются строками, чтобы потребители не теряли копейки на float.
type EventEncoder struct{}

func NewEventEncoder() EventEncoder {
	return EventEncoder{}
}

func (EventEncoder) EncodeProductEvent(event *usecase.ProductEvent) ([]byte, error) {
	const op = "EventEncoder.EncodeProductEvent"

	product, err := productToStruct(event.Product)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	msg, err := structpb.NewStruct(map[string]any{
		"event_id":    event.EventID,
		"type":        string(event.Type),
		"occurred_at": event.OccurredAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	msg.Fields["product"] = structpb.NewStructValue(product)

	return proto.Marshal(msg)
}

// DecodeProductEvent разбирает payload, записанный EncodeProductEvent.
func DecodeProductEvent(payload []byte) (*structpb.Struct, error) {
	msg := &structpb.Struct{}
	if err := proto.Unmarshal(payload, msg); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return msg, nil
}

func productToStruct(p *domain.Product) (*structpb.Struct, error) {
	tiers := make([]any, 0, len(p.WeightAndPrices))
	for _, wp := range p.WeightAndPrices {
		tiers = append(tiers, map[string]any{
			"weight":     wp.Weight,
			"price_unit": wp.PriceUnit.StringFixed(2),
		})
	}

	properties := make(map[string]any, len(p.Properties))
	for k, v := range p.Properties {
		properties[k] = v
	}

	fields := map[string]any{
		"id":                p.ID,
		"title":             p.Title,
		"description":       p.Description,
		"price":             p.Price.StringFixed(2),
		"price_col":         p.PriceCOL.StringFixed(2),
		"weight_and_prices": tiers,
		"flavors":           toAnySlice(p.Flavors),
		"images":            toAnySlice(p.Images),
		"category_id":       p.CategoryID,
		"properties":        properties,
	}

	return structpb.NewStruct(fields)
}

func toAnySlice(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
