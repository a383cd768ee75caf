// Package ui is the terminal front end: it draws the current generation and
// turns keys and mouse clicks into controller calls.
package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/sheikhrachel/gol-live/sim"
)

const (
	cellWidth = 2 // terminal columns per grid cell

	helpText = "space start/stop  n step  c clear  r random  click toggle  q quit"
)

var (
	styleDefault = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleAlive   = styleDefault.Background(tcell.ColorGreen)
	styleDead    = styleDefault.Background(tcell.ColorDarkSlateGray)
	styleStatus  = styleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleHelp    = styleDefault.Foreground(tcell.ColorGray)
	styleError   = styleDefault.Foreground(tcell.ColorRed)
)

// Simulation is the set of controller operations the UI drives
type Simulation interface {
	Snapshot() sim.Snapshot
	Toggle()
	StepOnce()
	Clear()
	Randomize()
	ToggleCell(row, col int) error
}

// App renders a Simulation on a tcell screen
type App struct {
	screen  tcell.Screen
	sim     Simulation
	message string
	pressed bool // left button was down on the previous mouse event
}

// New creates an App. The screen must already be initialized.
func New(screen tcell.Screen, s Simulation) *App {
	screen.SetStyle(styleDefault)
	screen.EnableMouse()
	return &App{screen: screen, sim: s}
}

// Notify returns a callback that wakes the event loop after a controller update
func Notify(screen tcell.Screen) func(sim.Snapshot) {
	return func(snap sim.Snapshot) {
		// PostEvent fails only when the queue is full; the next update redraws anyway
		_ = screen.PostEvent(tcell.NewEventInterrupt(snap))
	}
}

// Run draws the grid and processes events until the user quits
func (a *App) Run() {
	a.draw()
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		if quit := a.handleEvent(ev); quit {
			return
		}
		a.draw()
	}
}

// handleEvent applies one event and reports whether the app should exit
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return false
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
	default:
		return false
	}

	a.message = ""
	switch ev.Rune() {
	case 'q':
		return true
	case ' ':
		a.sim.Toggle()
	case 'n':
		a.sim.StepOnce()
	case 'c':
		a.sim.Clear()
	case 'r':
		a.sim.Randomize()
	}
	return false
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	down := ev.Buttons()&tcell.Button1 != 0
	click := down && !a.pressed
	a.pressed = down
	if !click {
		return
	}

	x, y := ev.Position()
	if y >= a.sim.Snapshot().Grid.Rows() {
		return
	}
	if err := a.sim.ToggleCell(y, x/cellWidth); err != nil {
		a.message = err.Error()
		return
	}
	a.message = ""
}

func (a *App) draw() {
	snap := a.sim.Snapshot()
	g := snap.Grid

	a.screen.Clear()
	for y := range g.Rows() {
		for x := range g.Cols() {
			style := styleDead
			if g.Alive(y, x) {
				style = styleAlive
			}
			for i := range cellWidth {
				a.screen.SetContent(x*cellWidth+i, y, ' ', nil, style)
			}
		}
	}

	state := sim.Stopped
	if snap.Running {
		state = sim.Running
	}
	status := fmt.Sprintf("%s | gen %d | living %d | %s",
		state, snap.Generation, g.CountLivingCells(), snap.Stats.Status())
	a.drawText(0, g.Rows(), status, styleStatus)
	a.drawText(0, g.Rows()+1, helpText, styleHelp)
	if a.message != "" {
		a.drawText(0, g.Rows()+2, a.message, styleError)
	}
	a.screen.Show()
}

func (a *App) drawText(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		a.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
