package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/heatwatch/heatwave-alerts/internal/api/metrics"
	"github.com/heatwatch/heatwave-alerts/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// AlertProcessor is the interface workers call to handle one alert job.
type AlertProcessor interface {
	ProcessAlert(ctx context.Context, job ports.AlertJob) error
}

// Dispatcher routes alert jobs to a fixed set of workers using consistent
// hashing on the user id, guaranteeing per-user delivery ordering.
type Dispatcher struct {
	workers   []chan ports.AlertJob
	processor AlertProcessor
	log       zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, processor AlertProcessor, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan ports.AlertJob, numWorkers),
		processor: processor,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.AlertJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a job to the worker responsible for its user id.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(job ports.AlertJob) {
	idx := d.shardIndex(job.UserID)
	d.workers[idx] <- job
	metrics.AlertsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// EnqueueBatch enqueues multiple jobs preserving per-user ordering.
func (d *Dispatcher) EnqueueBatch(jobs []ports.AlertJob) {
	for _, j := range jobs {
		d.Enqueue(j)
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.AlertJob) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			if err := d.processor.ProcessAlert(ctx, job); err != nil {
				d.log.Error().
					Err(err).
					Int("worker_id", id).
					Str("heat_wave_id", job.HeatWaveID).
					Str("user_id", job.UserID).
					Msg("alert processing failed")
			}
			metrics.AlertsQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}
