package mount

import (
	"context"
	"time"

	"github.com/vango-dev/vdom/pkg/vdom"
)

// DefaultFrame is the delay between a render request and the render.
const DefaultFrame = 16 * time.Millisecond

// Scheduler coalesces render requests for a Mount. Any number of Schedule
// calls made before the pending render starts result in one render.
type Scheduler struct {
	m      *Mount
	render func() *vdom.VNode
	frame  time.Duration
	ch     chan struct{}
}

// NewScheduler returns a scheduler that calls render and updates m once per
// frame while requests are pending. A frame of zero renders immediately.
func NewScheduler(m *Mount, render func() *vdom.VNode, frame time.Duration) *Scheduler {
	return &Scheduler{
		m:      m,
		render: render,
		frame:  frame,
		ch:     make(chan struct{}, 1),
	}
}

// Schedule requests a render. It never blocks.
func (s *Scheduler) Schedule() {
	select {
	case s.ch <- struct{}{}:
	default:
		s.coalesced()
	}
}

func (s *Scheduler) coalesced() {
	s.m.metrics.RecordCoalesced()
	s.m.logger.Debug("render request coalesced")
}

// Run renders pending requests until ctx is done or an update fails.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.ch:
		}

		if s.frame > 0 {
			timer := time.NewTimer(s.frame)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}

		// A request made while waiting for the frame is served by this render.
		select {
		case <-s.ch:
			s.coalesced()
		default:
		}

		if err := s.m.Update(ctx, s.render()); err != nil {
			return err
		}
	}
}
