package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/consultorio-juridico/portal-session/internal/api/metrics"
	"github.com/consultorio-juridico/portal-session/internal/core/domain"
	"github.com/consultorio-juridico/portal-session/internal/core/ports"
)

const channelBuffer = 256

// ActivityPump feeds interaction signals from the UI shell into the session
// one at a time. Enqueue never blocks: when the buffer is full the signal is
// dropped, which has the same effect as a throttled one.
type ActivityPump struct {
	signals  chan domain.ActivitySignal
	recorder ports.ActivityRecorder
	log      zerolog.Logger
	done     chan struct{}
}

// NewActivityPump creates a pump with the given buffer size.
// If buffer <= 0, channelBuffer is used.
func NewActivityPump(buffer int, recorder ports.ActivityRecorder, log zerolog.Logger) *ActivityPump {
	if buffer <= 0 {
		buffer = channelBuffer
	}
	return &ActivityPump{
		signals:  make(chan domain.ActivitySignal, buffer),
		recorder: recorder,
		log:      log,
		done:     make(chan struct{}),
	}
}

// Start launches the worker goroutine. It stops when ctx is cancelled.
func (p *ActivityPump) Start(ctx context.Context) {
	go p.run(ctx)
}

// Done is closed once the worker has stopped.
func (p *ActivityPump) Done() <-chan struct{} {
	return p.done
}

// Enqueue hands a signal to the worker and reports whether it was accepted.
func (p *ActivityPump) Enqueue(signal domain.ActivitySignal) bool {
	select {
	case p.signals <- signal:
		metrics.ActivityQueueDepth.Inc()
		return true
	default:
		metrics.ActivitySignalsTotal.WithLabelValues(string(signal), "dropped").Inc()
		return false
	}
}

func (p *ActivityPump) run(ctx context.Context) {
	defer close(p.done)
	for {
		select {
		case <-ctx.Done():
			return
		case signal := <-p.signals:
			metrics.ActivityQueueDepth.Dec()
			if p.recorder.RecordActivity(ctx, signal) {
				p.log.Trace().Str("signal", string(signal)).Msg("activity recorded")
			}
		}
	}
}
