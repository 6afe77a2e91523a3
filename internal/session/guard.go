// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session forgets the held storage password after a period of user
// inactivity.
//
// A Guard moves through three states:
//
//	IDLE --(no activity for the inactivity timeout)--> WARNING
//	WARNING --(KeepAlive within the warning duration)--> IDLE
//	WARNING --(warning duration elapsed)--> LOCKED
//
// LOCKED is terminal: the target's password is discarded and the lock hook
// rebuilds the application, which creates a new Guard after the user
// authenticates again.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Danford/PrintChecks/internal/config"
	"github.com/Danford/PrintChecks/internal/events"
	"github.com/Danford/PrintChecks/internal/logger"
	"github.com/Danford/PrintChecks/models"
)

// State of a Guard.
type State int

const (
	StateIdle State = iota
	StateWarning
	StateLocked
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWarning:
		return "warning"
	case StateLocked:
		return "locked"
	default:
		return "unknown"
	}
}

// ActivitySource names the kind of input that counts as user activity.
type ActivitySource int

const (
	PointerDown ActivitySource = iota
	KeyDown
	Scroll
	TouchStart
)

func (a ActivitySource) String() string {
	switch a {
	case PointerDown:
		return "pointer-down"
	case KeyDown:
		return "key-down"
	case Scroll:
		return "scroll"
	case TouchStart:
		return "touch-start"
	default:
		return "unknown"
	}
}

// Guard watches user activity and locks its Target after inactivity.
//
// It runs only while the target has encryption enabled and holds a password.
// It re-evaluates that condition on every password or encryption event from
// the bus, arming and disarming its timers accordingly.
type Guard struct {
	target Target
	bus    *events.Bus
	clock  Clock
	logger *logger.Logger

	inactivity time.Duration
	warning    time.Duration
	onWarning  func(deadline time.Time)
	onLock     func()

	mu           sync.Mutex
	active       bool
	state        State
	lastActivity time.Time
	deadline     time.Time
	timer        Timer
	// generation is bumped on every (re)schedule so that a callback from a
	// timer that fired while being cancelled is ignored.
	generation  uint64
	sessionID   string
	unsubscribe func()
}

// Option customises a Guard.
type Option func(*Guard)

// WithInactivityTimeout sets the idle time before the warning. Non-positive
// values keep the default.
func WithInactivityTimeout(d time.Duration) Option {
	return func(g *Guard) {
		if d > 0 {
			g.inactivity = d
		}
	}
}

// WithWarningDuration sets how long the warning lasts. Non-positive values
// keep the default.
func WithWarningDuration(d time.Duration) Option {
	return func(g *Guard) {
		if d > 0 {
			g.warning = d
		}
	}
}

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(g *Guard) {
		g.clock = c
	}
}

// WithWarningHook is called, outside the guard's lock, when the warning
// starts. deadline is when the lock will happen.
func WithWarningHook(fn func(deadline time.Time)) Option {
	return func(g *Guard) {
		g.onWarning = fn
	}
}

// WithLockHook is called after the target was locked. It is where the
// application forces its reload.
func WithLockHook(fn func()) Option {
	return func(g *Guard) {
		g.onLock = fn
	}
}

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) Option {
	return func(g *Guard) {
		g.logger = log
	}
}

// ConfigOptions translates the application config into options.
func ConfigOptions(cfg config.App) []Option {
	return []Option{
		WithInactivityTimeout(cfg.InactivityTimeout),
		WithWarningDuration(cfg.WarningDuration),
	}
}

// NewGuard builds an inactive guard for target. Call Start to begin
// listening on bus.
func NewGuard(target Target, bus *events.Bus, opts ...Option) *Guard {
	g := &Guard{
		target:     target,
		bus:        bus,
		clock:      SystemClock(),
		logger:     logger.Nop(),
		inactivity: config.DefaultInactivityTimeout,
		warning:    config.DefaultWarningDuration,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Start subscribes to the bus and activates the guard if the target is
// already unlocked. Calling Start twice is a no-op.
func (g *Guard) Start() {
	g.mu.Lock()
	if g.unsubscribe != nil {
		g.mu.Unlock()
		return
	}
	if g.bus != nil {
		g.unsubscribe = g.bus.Subscribe(g.handleEvent)
	} else {
		g.unsubscribe = func() {}
	}
	g.mu.Unlock()

	g.evaluate()
}

// Stop unsubscribes from the bus and cancels any pending timer.
func (g *Guard) Stop() {
	g.mu.Lock()
	unsubscribe := g.unsubscribe
	g.unsubscribe = nil
	g.deactivateLocked()
	g.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (g *Guard) handleEvent(e events.Event) {
	switch e.Kind {
	case events.PasswordSet, events.PasswordCleared, events.EncryptionToggled:
		g.evaluate()
	}
}

// evaluate arms or disarms the guard from the target's current condition.
func (g *Guard) evaluate() {
	shouldRun := g.target.IsEncryptionEnabled() && g.target.HasPassword()

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == StateLocked || g.unsubscribe == nil {
		return
	}
	switch {
	case shouldRun && !g.active:
		g.active = true
		g.state = StateIdle
		g.lastActivity = g.clock.Now()
		g.sessionID = uuid.NewString()
		g.scheduleLocked(g.inactivity, g.onInactivityTimeout)
		g.logger.Debug().Str("func", "Guard.evaluate").Str("session", g.sessionID).Msg("session guard armed")
	case !shouldRun && g.active:
		g.logger.Debug().Str("func", "Guard.evaluate").Str("session", g.sessionID).Msg("session guard disarmed")
		g.deactivateLocked()
	}
}

func (g *Guard) deactivateLocked() {
	g.cancelLocked()
	g.active = false
	if g.state != StateLocked {
		g.state = StateIdle
	}
}

func (g *Guard) cancelLocked() {
	g.generation++
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}

// scheduleLocked cancels the pending timer and arms a new one.
func (g *Guard) scheduleLocked(d time.Duration, fn func(generation uint64)) {
	g.cancelLocked()
	generation := g.generation
	g.timer = g.clock.AfterFunc(d, func() { fn(generation) })
}

// current reports whether a timer callback still belongs to the live
// schedule. Must be called with g.mu held.
func (g *Guard) current(generation uint64) bool {
	return g.active && generation == g.generation
}

func (g *Guard) onInactivityTimeout(generation uint64) {
	g.mu.Lock()
	if !g.current(generation) || g.state != StateIdle {
		g.mu.Unlock()
		return
	}
	deadline := g.enterWarningLocked(g.clock.Now().Add(g.warning))
	g.mu.Unlock()

	g.announceWarning(deadline)
}

func (g *Guard) enterWarningLocked(deadline time.Time) time.Time {
	g.state = StateWarning
	g.deadline = deadline
	g.scheduleLocked(g.warning, g.onWarningExpired)
	g.logger.Info().Str("func", "Guard.enterWarning").Str("session", g.sessionID).Time("deadline", deadline).Msg("inactivity warning")
	return deadline
}

func (g *Guard) announceWarning(deadline time.Time) {
	if g.bus != nil {
		g.bus.Publish(events.Event{Kind: events.SessionWarning, Deadline: deadline})
	}
	if g.onWarning != nil {
		g.onWarning(deadline)
	}
}

func (g *Guard) onWarningExpired(generation uint64) {
	g.mu.Lock()
	if !g.current(generation) || g.state != StateWarning {
		g.mu.Unlock()
		return
	}
	g.lockLocked()
	g.mu.Unlock()

	g.performLock()
}

func (g *Guard) lockLocked() {
	g.cancelLocked()
	g.active = false
	g.state = StateLocked
	g.logger.Info().Str("func", "Guard.lock").Str("session", g.sessionID).Msg("session locked")
}

// performLock runs the lock side effects outside g.mu: the target publishes
// events the guard itself listens to.
func (g *Guard) performLock() {
	g.target.Lock()
	if g.bus != nil {
		g.bus.Publish(events.Event{Kind: events.SessionLocked})
	}
	if g.onLock != nil {
		g.onLock()
	}
}

// RecordActivity restarts the inactivity countdown. It is ignored while the
// guard is inactive, warning or locked: only KeepAlive answers a warning.
func (g *Guard) RecordActivity(source ActivitySource) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.active || g.state != StateIdle {
		return
	}
	g.logger.Trace().Str("func", "Guard.RecordActivity").Stringer("source", source).Msg("activity")
	g.lastActivity = g.clock.Now()
	g.scheduleLocked(g.inactivity, g.onInactivityTimeout)
}

// KeepAlive acknowledges the warning and returns to IDLE with a full
// inactivity budget.
func (g *Guard) KeepAlive() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.active {
		return
	}
	g.state = StateIdle
	g.deadline = time.Time{}
	g.lastActivity = g.clock.Now()
	g.scheduleLocked(g.inactivity, g.onInactivityTimeout)
}

// VisibilityChanged handles the application regaining (or losing) the
// user's attention, e.g. after the machine was suspended. On regain the
// elapsed wall-clock time is checked, because timers may not have advanced
// while suspended: once the inactivity budget since the last activity is
// spent the guard locks at once, whatever its state. Otherwise it re-arms
// the inactivity timer with what is left.
func (g *Guard) VisibilityChanged(visible bool) {
	if !visible {
		return
	}

	g.mu.Lock()
	if !g.active {
		g.mu.Unlock()
		return
	}

	// Round(0) strips the monotonic reading, which stops during suspend.
	now := g.clock.Now().Round(0)

	lock := false
	elapsed := now.Sub(g.lastActivity.Round(0))
	switch {
	case elapsed >= g.inactivity:
		lock = true
	case g.state == StateIdle:
		g.scheduleLocked(g.inactivity-elapsed, g.onInactivityTimeout)
	}

	if lock {
		g.lockLocked()
	}
	g.mu.Unlock()

	if lock {
		g.performLock()
	}
}

// Status returns the current state.
func (g *Guard) Status() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Active reports whether the guard is counting.
func (g *Guard) Active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active
}

// Deadline returns when the current warning ends; zero outside WARNING.
func (g *Guard) Deadline() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StateWarning {
		return time.Time{}
	}
	return g.deadline
}

// SessionID identifies the current activation in logs.
func (g *Guard) SessionID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sessionID
}

// Snapshot returns the session state.
func (g *Guard) Snapshot() models.SessionState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return models.SessionState{
		LastActivity:  g.lastActivity,
		WarningActive: g.state == StateWarning,
		Locked:        g.state == StateLocked,
	}
}
