package session

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultPollInterval is the cadence at which the lock check runs.
const DefaultPollInterval = time.Second

// Poller drives Guardian.Tick on a fixed interval.
type Poller struct {
	guardian *Guardian
	interval time.Duration
	logger   zerolog.Logger
	stopChan chan struct{}
	done     chan struct{}
}

// NewPoller creates a poller for guardian.
func NewPoller(guardian *Guardian, interval time.Duration, logger zerolog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		guardian: guardian,
		interval: interval,
		logger:   logger.With().Str("component", "session-poller").Logger(),
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins polling
func (p *Poller) Start() {
	go p.run()
	p.logger.Info().
		Dur("interval", p.interval).
		Msg("Session poller started")
}

// Stop stops polling and waits for the loop to exit
func (p *Poller) Stop() {
	close(p.stopChan)
	<-p.done
	p.logger.Info().Msg("Session poller stopped")
}

// run is the main polling loop
func (p *Poller) run() {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for {
		select {
		case <-ticker.C:
			status := p.guardian.Tick(ctx)
			if status.Remaining != nil {
				p.logger.Debug().
					Str("state", string(status.State)).
					Dur("remaining", *status.Remaining).
					Msg("Session tick")
			}
		case <-p.stopChan:
			return
		}
	}
}
