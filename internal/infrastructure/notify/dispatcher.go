// Package notify decouples OTP issuance from delivery. The core emits
// notification events; workers hand them to a delivery backend. The default
// backend only logs, since real email/SMS integration lives outside this
// system.
package notify

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/core/domain"
	"github.com/chetannimbolkar25/Maharashtra-Home-Price-Prediction/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Dispatcher routes notifications to a fixed set of workers using consistent
// hashing on the username, so a user's notifications keep their order.
// It satisfies ports.Notifier; Notify enqueues without blocking the login
// flow (up to channelBuffer capacity).
type Dispatcher struct {
	workers  []chan domain.OTPNotification
	delivery ports.Notifier
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers in
// front of the delivery backend. If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, delivery ports.Notifier, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan domain.OTPNotification, numWorkers),
		delivery: delivery,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.OTPNotification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Notify enqueues the notification for the worker responsible for its user.
func (d *Dispatcher) Notify(ctx context.Context, n domain.OTPNotification) error {
	d.workers[d.shardIndex(n.Username)] <- n
	return nil
}

// shardIndex maps a username deterministically to a worker index.
func (d *Dispatcher) shardIndex(username string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(username))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.OTPNotification) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			if err := d.delivery.Notify(ctx, n); err != nil {
				d.log.Error().Err(err).
					Str("username", n.Username).
					Int("worker_id", id).
					Msg("otp delivery failed")
			}
		}
	}
}

// LogNotifier is the delivery backend used when no external channel is
// wired: it records where the code would have gone. The code itself is not
// logged at info level.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(ctx context.Context, event domain.OTPNotification) error {
	n.log.Info().
		Str("username", event.Username).
		Str("email", event.Email).
		Str("phone", event.Phone).
		Time("issued_at", event.IssuedAt).
		Msg("otp notification emitted")
	n.log.Debug().Str("otp", event.OTP).Msg("demo otp")
	return nil
}
