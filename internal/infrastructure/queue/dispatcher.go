package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/nnsolutions/isms/internal/api/metrics"
	"github.com/nnsolutions/isms/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes agent samples to a fixed set of workers using consistent
// hashing on the username, keeping each user's samples in arrival order.
type Dispatcher struct {
	workers []chan ports.ActivityInput
	service ports.ActivityService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.ActivityService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.ActivityInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ActivityInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a sample to the worker responsible for its username. It
// blocks while that worker's buffer is full, until ctx is done.
func (d *Dispatcher) Enqueue(ctx context.Context, in ports.ActivityInput) error {
	idx := d.shardIndex(in.Username)
	select {
	case d.workers[idx] <- in:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// shardIndex maps a username deterministically to a worker index.
func (d *Dispatcher) shardIndex(username string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(username))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ActivityInput) {
	depth := metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case in, ok := <-ch:
			if !ok {
				return
			}
			depth.Set(float64(len(ch)))

			start := time.Now()
			err := d.service.Record(ctx, in)
			metrics.ActivityProcessingDuration.Observe(time.Since(start).Seconds())
			if err != nil {
				metrics.ActivityProcessedTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("username", in.Username).
					Str("action", in.Action).
					Int("worker_id", id).
					Msg("activity processing failed")
				continue
			}
			metrics.ActivityProcessedTotal.WithLabelValues("ok").Inc()
		}
	}
}
