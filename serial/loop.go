package serial

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/blaz-r/go-neopixel/neopixel"
)

const DfltFPS = 30

// FrameFunc mutates the strip for one animation frame. elapsed is the time
// since the looper started.
type FrameFunc func(strip *neopixel.Strip, elapsed time.Duration) error

// Looper drives a strip at a fixed frame rate until interrupted, showing the
// frame after every callback.
type Looper struct {
	quit   chan bool
	ctx    context.Context
	cancel context.CancelFunc
	wg     *sync.WaitGroup
	c      chan os.Signal
	start  time.Time
	strip  *neopixel.Strip
	frame  FrameFunc
	fps    int
}

func NewLooper(s *neopixel.Strip, fps int, f FrameFunc) *Looper {
	if fps <= 0 {
		fps = DfltFPS
	}
	// Buffered so Stop neither blocks nor panics when called before Start.
	return &Looper{strip: s, frame: f, fps: fps, quit: make(chan bool, 1)}
}

func (l *Looper) refresh() {
	delta := 1000 * time.Millisecond / time.Duration(l.fps)
	ticker := time.NewTicker(delta)
	fd := float32(delta)

	for {
		select {
		case <-ticker.C:
			t := time.Now()
			if err := l.frame(l.strip, t.Sub(l.start)); err != nil {
				log.Error().Err(err).Msg("frame failed")
			}
			if err := l.strip.Show(); err != nil {
				log.Error().Err(err).Msg("show failed")
			}

			delta = time.Duration(fd) - time.Since(t)
			if delta.Milliseconds() > 0 {
				ticker.Stop()
				ticker = time.NewTicker(delta)
			}

		case <-l.quit:
			ticker.Stop()
			l.cancel()
			l.wg.Done()
			return

		case sig := <-l.c:
			log.Info().Msgf("got %s signal, stopping", sig)
			ticker.Stop()
			l.cancel()
			l.wg.Done()
			return

		case <-l.ctx.Done():
			ticker.Stop()
			l.cancel()
			l.wg.Done()
			return
		}
	}
}

// Start runs the loop and blocks until Stop, an interrupt or context
// cancellation.
func (l *Looper) Start() {
	l.ctx = context.Background()
	l.ctx, l.cancel = context.WithCancel(l.ctx)

	l.wg = &sync.WaitGroup{}
	l.wg.Add(1)

	l.c = make(chan os.Signal, 1)
	signal.Notify(l.c, os.Interrupt)
	defer func() {
		signal.Stop(l.c)
		l.cancel()
	}()

	l.start = time.Now()
	go l.refresh()

	l.wg.Wait()
}

// Stop ends the loop from another goroutine. Calling it before Start queues
// the stop, so a later Start returns right away.
func (l *Looper) Stop() {
	l.quit <- true
}
