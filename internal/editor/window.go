package editor

import (
	"context"
	"image"
	"log"
	"sync"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/stageplot/internal/theme"
)

// frameDropThreshold is how many consecutive frames may be cancelled before
// one is allowed to finish, so dragging never starves the screen.
const frameDropThreshold = 10

// Run opens the window and blocks until it closes.
func (e *Editor) Run() { driver.Main(e.Main) }

// Main is the shiny entry point.
func (e *Editor) Main(s screen.Screen) {
	defer e.notifyClose()

	win := image.Pt(e.lay.width, e.lay.height)
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: win.X, Height: win.Y, Title: "StagePlot"})
	if err != nil {
		e.logger.Printf("new window: %v", err)
		return
	}
	defer w.Release()

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-e.updateCh:
				w.Send(paint.Event{})
			case <-done:
				return
			}
		}
	}()

	th := e.theme
	pt := newPainter(func(ctx context.Context, st frameState) { drawFrame(ctx, s, w, st, th) })
	defer pt.stop()

	for {
		switch ev := w.NextEvent().(type) {
		case lifecycle.Event:
			e.HandleLifecycle(ev)
			if ev.To == lifecycle.StageDead {
				return
			}
			w.Send(paint.Event{})
		case size.Event:
			e.Resize(ev.WidthPx, ev.HeightPx)
			w.Send(paint.Event{})
		case paint.Event:
			pt.submit(e.frameState())
		case mouse.Event:
			e.HandleMouse(ev)
			w.Send(paint.Event{})
		case key.Event:
			e.HandleKey(ev)
			if e.quit {
				return
			}
			w.Send(paint.Event{})
		case error:
			e.logger.Printf("window: %v", ev)
		}
	}
}

// painter draws frames on its own goroutine. A new frame cancels the one in
// flight unless frameDropThreshold frames in a row were already cancelled.
type painter struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	drops  int
	ch     chan frameState
	done   chan struct{}
	draw   func(context.Context, frameState)
}

func newPainter(draw func(context.Context, frameState)) *painter {
	p := &painter{ch: make(chan frameState, 1), done: make(chan struct{}), draw: draw}
	go p.loop()
	return p
}

func (p *painter) loop() {
	defer close(p.done)
	for st := range p.ch {
		ctx, cancel := context.WithCancel(context.Background())
		p.mu.Lock()
		p.cancel = cancel
		p.mu.Unlock()
		p.draw(ctx, st)
		p.mu.Lock()
		p.cancel = nil
		if ctx.Err() == nil {
			p.drops = 0
		}
		p.mu.Unlock()
		cancel()
	}
}

// submit queues st, replacing any frame not yet started. Only the window
// loop calls it.
func (p *painter) submit(st frameState) {
	p.mu.Lock()
	if p.cancel != nil && p.drops < frameDropThreshold {
		p.cancel()
		p.drops++
	}
	p.mu.Unlock()
	select {
	case p.ch <- st:
	default:
		select {
		case <-p.ch:
		default:
		}
		p.ch <- st
	}
}

// stop cancels the frame in flight, discards any queued one and waits for
// the goroutine to exit. The window must outlive it.
func (p *painter) stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.mu.Unlock()
	select {
	case <-p.ch:
	default:
	}
	close(p.ch)
	<-p.done
}

func (e *Editor) notifyClose() {
	if e.onClose != nil {
		e.onClose()
		e.onClose = nil
	}
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st frameState, th *theme.Theme) {
	b, err := s.NewBuffer(image.Pt(st.lay.width, st.lay.height))
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	drawFrameInto(ctx, b.RGBA(), st, th)
	if ctx.Err() != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
