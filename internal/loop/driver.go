package loop

import (
	"log/slog"
	"time"

	"github.com/davidchappy/pathman/internal/game"
)

// Host presents frames. RequestFrame arms one future call to Driver.Frame.
type Host interface {
	RequestFrame()
}

// Simulation is the part of the game the driver steps.
type Simulation interface {
	Phase() game.Phase
	Dispatch(game.Action)
}

// Driver paces the simulation on host frames. Each armed frame reports
// frame timing, ticks while playing, redraws and re-arms itself unless the
// game is paused. A paused game stays idle until Resume.
type Driver struct {
	host   Host
	sim    Simulation
	redraw func()
	timers *Timers
	log    *slog.Logger

	running bool
	armed   bool
	prev    time.Duration
	hasPrev bool
}

func NewDriver(host Host, sim Simulation, redraw func(), log *slog.Logger) *Driver {
	if log == nil {
		log = slog.Default()
	}
	return &Driver{
		host:   host,
		sim:    sim,
		redraw: redraw,
		timers: NewTimers(),
		log:    log,
	}
}

func (d *Driver) Timers() *Timers { return d.timers }

func (d *Driver) Running() bool { return d.running }

// Armed reports whether a frame has been requested and not yet delivered.
func (d *Driver) Armed() bool { return d.armed }

func (d *Driver) Start() {
	if d.running {
		return
	}
	d.running = true
	d.hasPrev = false
	d.log.Debug("loop started")
	d.arm()
}

// Stop halts the loop and cancels pending timers. Session state is kept.
func (d *Driver) Stop() {
	if !d.running {
		return
	}
	d.running = false
	d.armed = false
	d.timers.CancelAll()
	d.log.Debug("loop stopped")
}

// Resume re-arms a loop that idled while paused. The first frame after a
// resume only sets the baseline, so the pause is not counted as a delta.
func (d *Driver) Resume() {
	if !d.running || d.armed {
		return
	}
	d.hasPrev = false
	d.arm()
}

func (d *Driver) arm() {
	if d.armed {
		return
	}
	d.armed = true
	d.host.RequestFrame()
}

// Frame is the host callback with the presentation timestamp. Timers run
// on every frame; the simulation only on armed frames.
func (d *Driver) Frame(ts time.Duration) {
	if !d.running {
		return
	}
	d.timers.Advance(ts)
	if !d.running || !d.armed {
		return
	}
	d.armed = false

	if !d.hasPrev {
		d.prev, d.hasPrev = ts, true
		d.arm()
		return
	}

	delta := ts - d.prev
	d.sim.Dispatch(game.Frame{Timestamp: ts, Delta: delta})
	if d.sim.Phase() == game.PhasePlaying {
		d.sim.Dispatch(game.Tick{Delta: delta})
	}
	if d.redraw != nil {
		d.redraw()
	}
	d.prev = ts

	if d.sim.Phase() != game.PhasePaused {
		d.arm()
	}
}
