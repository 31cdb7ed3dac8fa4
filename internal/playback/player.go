package playback

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Option configures a Player.
type Option func(*playerConfig)

type playerConfig struct {
	speed    Speed
	interval time.Duration
	logger   *log.Logger
}

// WithSpeed sets the initial auto-play speed (default Medium).
func WithSpeed(s Speed) Option {
	return func(c *playerConfig) {
		c.speed = s
	}
}

// WithInterval fixes the auto-play interval regardless of speed.
func WithInterval(d time.Duration) Option {
	return func(c *playerConfig) {
		c.interval = d
	}
}

// WithLogger sets the logger used for playback events.
func WithLogger(l *log.Logger) Option {
	return func(c *playerConfig) {
		c.logger = l
	}
}

// Player drives a Session from any goroutine and auto-plays it on a
// ticker.
//
//	p := playback.NewPlayer(session, playback.WithSpeed(playback.Fast))
//	p.OnStep(func(s playback.Snapshot) { render(s) })
//	p.Play(ctx)
type Player struct {
	mu      sync.Mutex
	session *Session
	config  playerConfig
	playing bool
	cancel  context.CancelFunc
	gen     int // incremented for every auto-play loop

	// Callbacks
	onStep func(Snapshot)
	onDone func()
}

// NewPlayer wraps a session. The player takes ownership of it.
func NewPlayer(s *Session, opts ...Option) *Player {
	cfg := playerConfig{speed: Medium}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	return &Player{session: s, config: cfg}
}

// OnStep registers a callback invoked with a snapshot after every change
// of position or play state.
func (p *Player) OnStep(fn func(Snapshot)) {
	p.mu.Lock()
	p.onStep = fn
	p.mu.Unlock()
}

// OnDone registers a callback invoked when auto-play reaches the end.
func (p *Player) OnDone(fn func()) {
	p.mu.Lock()
	p.onDone = fn
	p.mu.Unlock()
}

// Snapshot returns the current position.
func (p *Player) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

// Playing reports whether auto-play is running.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Speed returns the current auto-play speed.
func (p *Player) Speed() Speed {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.config.speed
}

// Next applies the next move.
func (p *Player) Next() bool {
	p.mu.Lock()
	_, ok := p.session.Next()
	snap := p.snapshotLocked()
	p.mu.Unlock()

	if ok {
		p.emit(snap)
	}
	return ok
}

// Prev undoes the last applied move.
func (p *Player) Prev() bool {
	p.mu.Lock()
	_, ok := p.session.Prev()
	snap := p.snapshotLocked()
	p.mu.Unlock()

	if ok {
		p.emit(snap)
	}
	return ok
}

// JumpTo positions playback after n moves.
func (p *Player) JumpTo(n int) error {
	p.mu.Lock()
	err := p.session.JumpTo(n)
	snap := p.snapshotLocked()
	p.mu.Unlock()

	if err != nil {
		return err
	}
	p.emit(snap)
	return nil
}

// Reset stops auto-play and returns to the starting state.
func (p *Player) Reset() {
	p.mu.Lock()
	p.stopLocked()
	p.session.Reset()
	snap := p.snapshotLocked()
	p.mu.Unlock()

	p.emit(snap)
}

// Play starts auto-play. It returns ErrFinished when every move has been
// applied already. Auto-play stops at the end of the sequence, on Pause,
// or when ctx is cancelled.
func (p *Player) Play(ctx context.Context) error {
	p.mu.Lock()
	if p.session.Done() {
		p.mu.Unlock()
		return ErrFinished
	}
	if p.playing {
		p.mu.Unlock()
		return nil
	}
	p.startLocked(ctx)
	snap := p.snapshotLocked()
	p.mu.Unlock()

	p.emit(snap)
	return nil
}

// Pause stops auto-play.
func (p *Player) Pause() {
	p.mu.Lock()
	wasPlaying := p.playing
	p.stopLocked()
	snap := p.snapshotLocked()
	p.mu.Unlock()

	if wasPlaying {
		p.emit(snap)
	}
}

// Toggle pauses a running auto-play or starts a stopped one.
func (p *Player) Toggle(ctx context.Context) error {
	if p.Playing() {
		p.Pause()
		return nil
	}
	return p.Play(ctx)
}

// SetSpeed changes the auto-play speed. A running auto-play restarts at
// the new rate.
func (p *Player) SetSpeed(ctx context.Context, s Speed) {
	p.mu.Lock()
	p.config.speed = s
	if p.playing {
		p.stopLocked()
		p.startLocked(ctx)
	}
	snap := p.snapshotLocked()
	p.mu.Unlock()

	p.emit(snap)
}

// Close stops auto-play.
func (p *Player) Close() {
	p.mu.Lock()
	p.stopLocked()
	p.mu.Unlock()
}

func (p *Player) interval() time.Duration {
	if p.config.interval > 0 {
		return p.config.interval
	}
	return p.config.speed.Interval()
}

func (p *Player) startLocked(ctx context.Context) {
	loopCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.playing = true
	p.gen++
	interval := p.interval()
	p.config.logger.Debug("auto-play started", "position", p.session.Position(), "interval", interval)
	go p.loop(loopCtx, p.gen, interval)
}

func (p *Player) stopLocked() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	if p.playing {
		p.config.logger.Debug("auto-play stopped", "position", p.session.Position())
	}
	p.playing = false
}

func (p *Player) loop(ctx context.Context, gen int, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// The caller's context ended while this loop was current.
			p.mu.Lock()
			stopped := p.gen == gen && p.playing
			if stopped {
				p.stopLocked()
			}
			snap := p.snapshotLocked()
			p.mu.Unlock()
			if stopped {
				p.emit(snap)
			}
			return
		case <-ticker.C:
		}

		p.mu.Lock()
		if p.gen != gen || !p.playing {
			p.mu.Unlock()
			return
		}
		_, ok := p.session.Next()
		finished := p.session.Done()
		if finished {
			p.stopLocked()
		}
		snap := p.snapshotLocked()
		onDone := p.onDone
		p.mu.Unlock()

		if ok {
			p.emit(snap)
		}
		if finished {
			p.config.logger.Debug("auto-play finished", "moves", snap.Total)
			if onDone != nil {
				onDone()
			}
			return
		}
	}
}

func (p *Player) emit(snap Snapshot) {
	p.mu.Lock()
	fn := p.onStep
	p.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
}

func (p *Player) snapshotLocked() Snapshot {
	snap := p.session.Snapshot()
	snap.Playing = p.playing
	snap.Speed = p.config.speed.String()
	return snap
}
