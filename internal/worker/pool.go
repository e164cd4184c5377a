package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueOrderMail = "jobs:order_mail"
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// OrderMailPayload asks the pool to render a purchase order PDF and mail it.
type OrderMailPayload struct {
	PurchaseID string `json:"purchase_id"`
	ToEmail    string `json:"to_email"`
}

// EnqueueOrderMail pushes an order-mail job to Redis.
func (d *Dispatcher) EnqueueOrderMail(ctx context.Context, payload OrderMailPayload) error {
	return d.enqueue(ctx, QueueOrderMail, "order_mail", payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// StartWorkerPool launches numWorkers goroutines consuming the job queues.
// Each goroutine blocks on BRPOP, so idle workers cost no CPU.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int, orderMailer *OrderMailWorker) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, i, orderMailer)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, id int, orderMailer *OrderMailWorker) {
	queues := []string{QueueOrderMail}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop waits up to 5s, then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, result[0], result[1], orderMailer)
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, queue, raw string, orderMailer *OrderMailWorker) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}
	switch job.Type {
	case "order_mail":
		if err := orderMailer.Process(ctx, job.Payload); err != nil {
			log.Error().Err(err).Msg("order_mail job failed")
			SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, err.Error(), 1)
		}
	default:
		log.Warn().Str("type", job.Type).Str("queue", queue).Msg("unknown job type")
	}
}
