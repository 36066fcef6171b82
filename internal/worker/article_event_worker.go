package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"articles-backend/internal/model"
)

// EventStore persists consumed article events.
type EventStore interface {
	Create(ctx context.Context, event *model.ArticleEvent) error
}

type ArticleEventWorker struct {
	conn      *amqp.Connection
	store     EventStore
	queueName string
	log       *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewArticleEventWorker(conn *amqp.Connection, store EventStore, queueName string, log *slog.Logger) *ArticleEventWorker {
	if log == nil {
		log = slog.Default()
	}
	return &ArticleEventWorker{
		conn:      conn,
		store:     store,
		queueName: queueName,
		log:       log,
	}
}

func (w *ArticleEventWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	if _, err := ch.QueueDeclare(w.queueName, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				if err := w.handle(workerCtx, d.Body); err != nil {
					w.log.Error("article event dropped", "err", err)
					_ = d.Nack(false, false)
					continue
				}
				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *ArticleEventWorker) handle(ctx context.Context, body []byte) error {
	var event model.ArticleEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("decode article event failed: %w", err)
	}
	if event.ArticleID == 0 || event.Action == "" {
		return fmt.Errorf("decode article event failed: missing article id or action")
	}
	// The id is assigned by the store.
	event.ID = 0
	if err := w.store.Create(ctx, &event); err != nil {
		return fmt.Errorf("persist article event failed: %w", err)
	}
	return nil
}

func (w *ArticleEventWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
