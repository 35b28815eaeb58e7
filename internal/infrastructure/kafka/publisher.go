// Package kafka publica los eventos de venta en un tópico Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/jhoicas/retail-api/internal/application/sales"
	"github.com/jhoicas/retail-api/pkg/logger"
)

const (
	defaultBuffer = 256
	writeTimeout  = 5 * time.Second
)

// ErrBufferFull la cola local está llena; el evento se descarta.
var ErrBufferFull = errors.New("kafka: publish buffer full")

// ErrClosed el publicador ya fue cerrado.
var ErrClosed = errors.New("kafka: publisher closed")

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

var _ sales.EventPublisher = (*Publisher)(nil)

// Publisher encola eventos y los escribe en segundo plano; Publish nunca bloquea la petición.
type Publisher struct {
	w     messageWriter
	log   *logger.Logger
	inbox chan kafkago.Message
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewPublisher crea el writer para brokers/topic. La clave del mensaje es el ID de la venta,
// así todos los eventos de una venta caen en la misma partición.
func NewPublisher(brokers []string, topic string, log *logger.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}
	return newPublisher(w, defaultBuffer, log)
}

func newPublisher(w messageWriter, buf int, log *logger.Logger) *Publisher {
	if log == nil {
		log = logger.Nop()
	}
	p := &Publisher{
		w:     w,
		log:   log,
		inbox: make(chan kafkago.Message, buf),
		done:  make(chan struct{}),
	}
	go p.loop()
	return p
}

func (p *Publisher) loop() {
	defer close(p.done)
	for m := range p.inbox {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		if err := p.w.WriteMessages(ctx, m); err != nil {
			p.log.Error().Err(err).Str("key", string(m.Key)).Msg("kafka write")
		}
		cancel()
	}
}

// Publish serializa el evento y lo encola.
func (p *Publisher) Publish(_ context.Context, ev sales.SaleEvent) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := kafkago.Message{
		Key:   []byte(ev.Sale.ID),
		Value: value,
		Time:  ev.OccurredAt,
		Headers: []kafkago.Header{
			{Key: "event-type", Value: []byte(ev.Type)},
			{Key: "event-id", Value: []byte(ev.ID)},
		},
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	select {
	case p.inbox <- msg:
		return nil
	default:
		return ErrBufferFull
	}
}

// Close deja de aceptar eventos, vacía la cola y cierra el writer.
func (p *Publisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.inbox)
	p.mu.Unlock()

	<-p.done
	return p.w.Close()
}
