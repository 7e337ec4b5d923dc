package terminal

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/Zachkp/portfolio/internal/clock"
)

const (
	DefaultTick = 50 * time.Millisecond
	DefaultGap  = 500 * time.Millisecond
)

var (
	ErrBadPattern = errors.New("terminal: pattern position must be 0, 1 or 2")
	ErrBadIndex   = errors.New("terminal: initial screen index out of range")
)

// Snapshot is a copy of the sequencer state
type Snapshot struct {
	Index          int
	ScreenID       string
	Kind           Kind
	Elapsed        time.Duration
	Visible        bool
	TypingComplete bool
	RewardURL      string
	Pattern        int
	StartedAt      time.Time
	Activations    uint64
	Running        bool
}

// session groups the timers of one screen activation or one blank gap.
// A session is replaced as a whole on every transition, and callbacks from a
// replaced session are ignored.
type session struct {
	tick       clock.Timer
	typing     clock.Timer
	transition clock.Timer
	gap        clock.Timer
}

func (s *session) cancel() {
	for _, t := range []clock.Timer{s.tick, s.typing, s.transition, s.gap} {
		if t != nil {
			t.Stop()
		}
	}
}

// Sequencer cycles through a catalog: two random scripts, one random reward,
// forever. Each visible screen runs three timers (tick, typing, transition);
// a fixed blank gap separates consecutive screens.
type Sequencer struct {
	mu      sync.Mutex
	catalog Catalog
	clock   clock.Clock
	rng     *rand.Rand
	tick    time.Duration
	gap     time.Duration
	logger  *log.Logger

	index          int
	elapsed        time.Duration
	visible        bool
	typingComplete bool
	rewardURL      string
	pattern        int
	startedAt      time.Time
	activations    uint64

	running bool
	sess    *session
	changes chan struct{}
}

// Option configures a Sequencer
type Option func(*Sequencer)

// WithClock sets the time source, the real clock by default
func WithClock(c clock.Clock) Option {
	return func(s *Sequencer) { s.clock = c }
}

// WithRand sets the random source used for screen and image selection
func WithRand(r *rand.Rand) Option {
	return func(s *Sequencer) { s.rng = r }
}

// WithSeed seeds a private random source
func WithSeed(seed int64) Option {
	return func(s *Sequencer) { s.rng = rand.New(rand.NewSource(seed)) }
}

// WithTick sets the elapsed-time refresh interval
func WithTick(d time.Duration) Option {
	return func(s *Sequencer) { s.tick = d }
}

// WithGap sets the blank interval between screens
func WithGap(d time.Duration) Option {
	return func(s *Sequencer) { s.gap = d }
}

// WithLogger routes fault reports to l
func WithLogger(l *log.Logger) Option {
	return func(s *Sequencer) { s.logger = l }
}

// WithPattern sets the starting pattern position
func WithPattern(p int) Option {
	return func(s *Sequencer) { s.pattern = p }
}

// WithInitialScreen sets the first screen shown by Start
func WithInitialScreen(i int) Option {
	return func(s *Sequencer) { s.index = i }
}

// New builds a stopped sequencer over a validated catalog
func New(c Catalog, opts ...Option) (*Sequencer, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	s := &Sequencer{
		catalog: c.Clone(),
		clock:   clock.NewReal(),
		tick:    DefaultTick,
		gap:     DefaultGap,
		logger:  log.Default(),
		changes: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if s.pattern < 0 || s.pattern >= PatternLength {
		return nil, fmt.Errorf("%w: got %d", ErrBadPattern, s.pattern)
	}
	if s.index < 0 || s.index >= c.Len() {
		return nil, fmt.Errorf("%w: got %d of %d", ErrBadIndex, s.index, c.Len())
	}
	if s.tick <= 0 || s.gap < 0 {
		return nil, fmt.Errorf("terminal: invalid tick %v or gap %v", s.tick, s.gap)
	}
	return s, nil
}

// Catalog returns a copy of the screens this sequencer walks through
func (s *Sequencer) Catalog() Catalog {
	return s.catalog.Clone()
}

// Changes delivers a coalesced signal after every state change
func (s *Sequencer) Changes() <-chan struct{} {
	return s.changes
}

// Start shows the initial screen and arms its timers. It is a no-op on a
// running sequencer.
func (s *Sequencer) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	if s.catalog.KindAt(s.index) == KindReward && s.rewardURL == "" {
		s.rewardURL = s.catalog.RewardURLs[s.rng.Intn(len(s.catalog.RewardURLs))]
	}
	s.activateLocked()
	s.mu.Unlock()

	s.notify()
}

// Stop cancels every live timer. Callbacks already in flight observe the
// stopped state and return without touching it. Stop is idempotent.
func (s *Sequencer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.running = false
	s.cancelAllLocked()
}

// Snapshot returns a copy of the current state
func (s *Sequencer) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Frame renders the current screen. A renderer panic is logged and replaced
// by an error frame.
func (s *Sequencer) Frame() Frame {
	s.mu.Lock()
	snap := s.snapshotLocked()
	scr := s.catalog.At(snap.Index)
	s.mu.Unlock()

	if !snap.Visible {
		return BlankFrame(snap.ScreenID)
	}
	f, err := scr.SafeRender(snap.Elapsed, snap.TypingComplete, snap.RewardURL)
	if err != nil {
		s.logger.Printf("terminal: %v", err)
	}
	return f
}

func (s *Sequencer) snapshotLocked() Snapshot {
	scr := s.catalog.At(s.index)
	return Snapshot{
		Index:          s.index,
		ScreenID:       scr.ID,
		Kind:           scr.Kind,
		Elapsed:        s.elapsed,
		Visible:        s.visible,
		TypingComplete: s.typingComplete,
		RewardURL:      s.rewardURL,
		Pattern:        s.pattern,
		StartedAt:      s.startedAt,
		Activations:    s.activations,
		Running:        s.running,
	}
}

func (s *Sequencer) cancelAllLocked() {
	if s.sess != nil {
		s.sess.cancel()
		s.sess = nil
	}
}

// activateLocked makes the current index visible and arms its three timers.
// Timers of the previous session are cancelled first.
func (s *Sequencer) activateLocked() {
	s.cancelAllLocked()

	scr := s.catalog.At(s.index)
	s.startedAt = s.clock.Now()
	s.elapsed = 0
	s.typingComplete = false
	s.visible = true
	s.activations++

	sess := &session{}
	s.sess = sess

	defer func() {
		if r := recover(); r != nil {
			s.logger.Printf("terminal: arming timers for %s failed, screen frozen: %v", scr.ID, r)
			sess.cancel()
		}
	}()
	sess.tick = s.clock.Every(s.tick, func() { s.onTick(sess) })
	sess.typing = s.clock.AfterFunc(scr.Typing, func() { s.onTyping(sess) })
	sess.transition = s.clock.AfterFunc(scr.Total, func() { s.onTransition(sess) })
}

func (s *Sequencer) current(sess *session) bool {
	return s.running && s.sess == sess
}

func (s *Sequencer) onTick(sess *session) {
	s.mu.Lock()
	if !s.current(sess) {
		s.mu.Unlock()
		return
	}
	s.elapsed = s.clock.Now().Sub(s.startedAt)
	s.mu.Unlock()

	s.notify()
}

func (s *Sequencer) onTyping(sess *session) {
	s.mu.Lock()
	if !s.current(sess) {
		s.mu.Unlock()
		return
	}
	s.typingComplete = true
	s.mu.Unlock()

	s.notify()
}

// onTransition hides the screen and arms the blank gap
func (s *Sequencer) onTransition(sess *session) {
	s.mu.Lock()
	if !s.current(sess) {
		s.mu.Unlock()
		return
	}
	s.elapsed = s.clock.Now().Sub(s.startedAt)
	s.visible = false
	s.cancelAllLocked()

	blank := &session{}
	s.sess = blank
	func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Printf("terminal: arming blank gap failed, staying blank: %v", r)
				blank.cancel()
			}
		}()
		blank.gap = s.clock.AfterFunc(s.gap, func() { s.onGapElapsed(blank) })
	}()
	s.mu.Unlock()

	s.notify()
}

// onGapElapsed picks the next screen and shows it
func (s *Sequencer) onGapElapsed(sess *session) {
	s.mu.Lock()
	if !s.current(sess) {
		s.mu.Unlock()
		return
	}
	if s.advanceLocked() {
		s.activateLocked()
	}
	s.mu.Unlock()

	s.notify()
}

// advanceLocked commits the next selection. A selection fault is logged and
// leaves the sequencer blank.
func (s *Sequencer) advanceLocked() (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Printf("terminal: choosing next screen failed, staying blank: %v", r)
			ok = false
		}
	}()

	choice := Next(s.catalog, s.rng, s.pattern)
	s.pattern = choice.Pattern
	s.index = choice.Index
	if choice.RewardURL != "" {
		s.rewardURL = choice.RewardURL
	}
	return true
}

func (s *Sequencer) notify() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}
