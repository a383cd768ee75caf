// Package sim drives a Game of Life grid through generations on a timer and
// applies user edits between steps.
package sim

import (
	"io"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sheikhrachel/gol-live/model"
	"github.com/sheikhrachel/gol-live/rules"
	"github.com/sheikhrachel/gol-live/utils"
)

// State is the run state of a Controller
type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Snapshot is a consistent view of the controller at one instant
type Snapshot struct {
	Grid       *model.Grid
	Running    bool
	Generation int
	Stats      utils.Stats
}

// Controller owns the current grid and the running flag.
//
// While running, each tick computes one generation and re-arms itself through
// the Scheduler. Stop only clears the flag: a tick that is already pending
// still fires but returns without touching the grid.
type Controller struct {
	mu         sync.Mutex
	cfg        utils.Config
	grid       *model.Grid
	running    bool
	epoch      uint64 // identifies the active loop; older ticks exit on mismatch
	generation int
	stats      *utils.Stats
	lastStep   time.Time

	rng       *rand.Rand
	scheduler Scheduler
	onUpdate  func(Snapshot)
	logger    *log.Logger
}

// Option customizes a Controller
type Option func(*Controller)

// WithScheduler replaces the timer used to schedule ticks
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.scheduler = s }
}

// WithRand sets the random source used by Randomize
func WithRand(r *rand.Rand) Option {
	return func(c *Controller) { c.rng = r }
}

// WithOnUpdate registers fn to be called after every change to the grid or
// run state. fn runs outside the controller lock, possibly on a timer goroutine.
func WithOnUpdate(fn func(Snapshot)) Option {
	return func(c *Controller) { c.onUpdate = fn }
}

// WithLogger sets the logger for lifecycle events
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// New creates a stopped controller with an empty grid
func New(cfg utils.Config, opts ...Option) *Controller {
	if cfg.StepDelayMs <= 0 {
		cfg.StepDelayMs = utils.DefaultConfig().StepDelayMs
	}
	c := &Controller{
		cfg:       cfg,
		grid:      model.NewGrid(cfg.Rows, cfg.Cols),
		stats:     utils.NewStats(),
		scheduler: TimerScheduler{},
		logger:    log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		seed := uint64(cfg.Seed)
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		c.rng = rand.New(rand.NewPCG(seed, 0))
	}
	return c
}

// Start begins the run loop. The first step is scheduled immediately.
// Calling Start while running does nothing.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	c.epoch++
	epoch := c.epoch
	c.lastStep = time.Now()
	c.scheduler.AfterFunc(0, func() { c.tick(epoch) })
	c.logger.Printf("started at generation %d", c.generation)
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
}

// Stop pauses the run loop. Calling Stop while stopped does nothing.
func (c *Controller) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	c.logger.Printf("stopped at generation %d", c.generation)
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
}

// Toggle starts a stopped controller and stops a running one
func (c *Controller) Toggle() {
	if c.IsRunning() {
		c.Stop()
		return
	}
	c.Start()
}

func (c *Controller) tick(epoch uint64) {
	c.mu.Lock()
	if !c.running || epoch != c.epoch {
		c.mu.Unlock()
		return
	}
	c.advanceLocked()
	c.scheduler.AfterFunc(c.cfg.StepDelay(), func() { c.tick(epoch) })
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
}

// advanceLocked replaces the grid with its next generation
func (c *Controller) advanceLocked() {
	now := time.Now()
	c.grid = rules.Step(c.grid)
	c.generation++
	c.stats.Observe(c.generation, c.grid.CountLivingCells(), c.grid.Hash(), now.Sub(c.lastStep))
	c.lastStep = now
}

// StepOnce advances the grid by a single generation
func (c *Controller) StepOnce() {
	c.mu.Lock()
	c.advanceLocked()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
}

// ToggleCell flips the cell at (row, col). Edits made while running are
// picked up by the next step.
func (c *Controller) ToggleCell(row, col int) error {
	c.mu.Lock()
	next, err := c.grid.Toggle(row, col)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.grid = next
	c.stats.Population = next.CountLivingCells()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
	return nil
}

// Clear replaces the grid with an empty one of the same size
func (c *Controller) Clear() {
	c.mu.Lock()
	c.replaceLocked(model.NewGrid(c.grid.Rows(), c.grid.Cols()))
	c.logger.Printf("cleared %dx%d grid", c.grid.Rows(), c.grid.Cols())
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
}

// Randomize replaces the grid with a random one of the same size
func (c *Controller) Randomize() {
	c.mu.Lock()
	c.replaceLocked(model.NewRandomGrid(c.grid.Rows(), c.grid.Cols(), c.cfg.DensityThreshold(), c.rng))
	c.logger.Printf("randomized grid: %d living cells", c.grid.CountLivingCells())
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
}

func (c *Controller) replaceLocked(g *model.Grid) {
	c.grid = g
	c.generation = 0
	c.stats.Reset(g.CountLivingCells())
	c.lastStep = time.Now()
}

// Grid returns the current generation. The returned grid is never modified.
func (c *Controller) Grid() *model.Grid {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.grid
}

// IsRunning reports whether the run loop is active
func (c *Controller) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// State returns Running or Stopped
func (c *Controller) State() State {
	if c.IsRunning() {
		return Running
	}
	return Stopped
}

// Generation returns the number of steps since the grid was last cleared or randomized
func (c *Controller) Generation() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Snapshot returns the grid, run state and stats together
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Grid:       c.grid,
		Running:    c.running,
		Generation: c.generation,
		Stats:      c.stats.Clone(),
	}
}

func (c *Controller) notify(snap Snapshot) {
	if c.onUpdate != nil {
		c.onUpdate(snap)
	}
}
