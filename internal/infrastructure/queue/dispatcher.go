package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/dnfmate/character-lookup/internal/api/metrics"
	"github.com/dnfmate/character-lookup/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes registration enrichments to a fixed set of workers using
// consistent hashing on the user id, so one user's enrichments run in order.
type Dispatcher struct {
	workers []chan ports.RegistrationEnrichInput
	service ports.RegistrationService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.RegistrationService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.RegistrationEnrichInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.RegistrationEnrichInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands the enrichment to its worker. It never blocks: when the
// worker's buffer is full the enrichment is dropped and false is returned,
// since the registration itself is already stored.
func (d *Dispatcher) Enqueue(in ports.RegistrationEnrichInput) bool {
	idx := d.shardIndex(in.UserID)
	select {
	case d.workers[idx] <- in:
		metrics.EnrichQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
		return true
	default:
		d.log.Warn().
			Str("user_id", in.UserID).
			Str("character_id", in.CharacterID).
			Int("worker_id", idx).
			Msg("enrich queue full, dropping")
		return false
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.RegistrationEnrichInput) {
	depth := metrics.EnrichQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case in, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()
			if err := d.service.Enrich(ctx, in); err != nil {
				d.log.Error().Err(err).
					Str("user_id", in.UserID).
					Str("server_id", in.ServerID).
					Str("character_id", in.CharacterID).
					Int("worker_id", id).
					Msg("registration enrichment failed")
			}
		}
	}
}
