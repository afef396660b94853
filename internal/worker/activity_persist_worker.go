package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"gopherblog/internal/app"
	"gopherblog/internal/model"
	"gopherblog/internal/platform/rabbitmq"
)

// ActivityPersistWorker consumes published activities and stores them.
type ActivityPersistWorker struct {
	conn      *amqp.Connection
	store     app.ActivityStore
	queueName string
	logger    *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewActivityPersistWorker(conn *amqp.Connection, store app.ActivityStore, queueName string, logger *slog.Logger) *ActivityPersistWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActivityPersistWorker{
		conn:      conn,
		store:     store,
		queueName: queueName,
		logger:    logger.With("component", "activity_worker", "queue", queueName),
	}
}

func (w *ActivityPersistWorker) Start(ctx context.Context) error {
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

	if _, err := rabbitmq.DeclareQueue(ch, w.queueName); err != nil {
		_ = ch.Close()
		cancel()
		return err
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
					w.logger.Error("persist activity failed", "error", err)
					_ = d.Nack(false, false)
					continue
				}
				_ = d.Ack(false)
			}
		}
	}()

	w.logger.Info("activity worker started")
	return nil
}

func (w *ActivityPersistWorker) handle(ctx context.Context, body []byte) error {
	var activity model.Activity
	if err := json.Unmarshal(body, &activity); err != nil {
		return fmt.Errorf("decode activity failed: %w", err)
	}
	activity.ID = 0
	if err := w.store.Create(ctx, &activity); err != nil {
		return fmt.Errorf("store activity failed: %w", err)
	}
	return nil
}

func (w *ActivityPersistWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
