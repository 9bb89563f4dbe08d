package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"icecream_controller/internal/logger"
	"icecream_controller/internal/mqtt"

	"github.com/go-co-op/gocron"
)

// Poller drives the controller: a scheduled sampling job and a faster tick
// loop for the auto-stop timer. The tick interval bounds how long the
// compressor can overrun an armed timer.
type Poller struct {
	ctrl        *ControllerService
	pub         mqtt.Publisher
	log         *logger.Logger
	sampleEvery time.Duration
	tickEvery   time.Duration
}

func NewPoller(ctrl *ControllerService, pub mqtt.Publisher, log *logger.Logger, sampleEvery, tickEvery time.Duration) *Poller {
	if pub == nil {
		pub = mqtt.Discard{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Poller{
		ctrl:        ctrl,
		pub:         pub,
		log:         log,
		sampleEvery: sampleEvery,
		tickEvery:   tickEvery,
	}
}

// Run blocks until ctx is done. The first sample is taken immediately.
func (p *Poller) Run(ctx context.Context) error {
	if p.sampleEvery <= 0 || p.tickEvery <= 0 {
		return errors.New("poller: intervals must be positive")
	}

	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	if _, err := s.Every(p.sampleEvery).Do(p.sample); err != nil {
		return fmt.Errorf("schedule sampling: %w", err)
	}
	s.StartAsync()
	defer s.Stop()

	p.log.Infow("poller_started", "sample_interval", p.sampleEvery.String(), "tick_interval", p.tickEvery.String())

	t := time.NewTicker(p.tickEvery)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			p.ctrl.Tick()
		}
	}
}

// sample records one reading and publishes the resulting status.
func (p *Poller) sample() {
	if temp, err := p.ctrl.Sample(); err == nil {
		p.log.Debugw("sampled", "temp", temp)
	}
	st := p.ctrl.ReadStatus(context.Background())
	if err := p.pub.PublishStatus(st); err != nil {
		p.log.Warnw("status_publish_failed", "err", err)
	}
}
