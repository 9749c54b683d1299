package session

import (
	"fmt"
	"math/rand"
	"time"

	"lifeterm/src/persist"
	"lifeterm/src/universe"
)

//Phase is the running phase of the session
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseRunning
	PhasePaused
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseFinished:
		return "finished"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

//default options
const (
	DefInterval = time.Millisecond * 100
	DefMaxSteps = 0
)

//Options represents the session's configurable options
type Options struct {
	Interval time.Duration //interval between the generations while running
	MaxSteps int           //finish after MaxSteps generations, 0 means unlimited
	//finish when the grid dies out or stops changing
	StopWhenStable bool
}

var DefaultOptions = Options{
	Interval: DefInterval,
	MaxSteps: DefMaxSteps,
}

//Status represents the status of the session at concrete moment
type Status struct {
	Phase         Phase
	Generation    int
	LiveCells     int
	Changed       bool //the last generation changed at least one cell
	IterationTime time.Duration
}

const (
	promptSetup   = "setup: click to toggle cell (#). press 's' to start simulation, 'w' to save setup."
	promptRunning = "simulation running. press 'p' to pause/resume, 'q' to quit."
	promptPaused  = "simulation paused. press 'p' to resume, 'q' to quit."
	promptDone    = "simulation finished. press 'q' to quit."
)

/*
	Session is the control layer between a terminal frontend and the grid.
	It owns the phase, the generation counter and the last user message.
	All methods must be called from one goroutine: frontends call Tick on their
	timer and route every key and click through the same loop.
*/
type Session struct {
	grid    *universe.Grid
	options Options
	status  Status
	message string
	quit    bool
	rnd     *rand.Rand
}

//New creates the session in the setup phase
func New(g *universe.Grid, o *Options) *Session {
	if o == nil {
		o = &DefaultOptions
	}
	s := &Session{
		grid:    g,
		options: *o,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	s.status.LiveCells = g.LiveCells()
	return s
}

//Grid returns the grid driven by the session
func (s *Session) Grid() *universe.Grid {
	return s.grid
}

//Options returns the session options
func (s *Session) Options() Options {
	return s.options
}

//Status returns the current status
func (s *Session) Status() Status {
	return s.status
}

//Phase returns the current phase
func (s *Session) Phase() Phase {
	return s.status.Phase
}

//Done reports whether Quit was requested
func (s *Session) Done() bool {
	return s.quit
}

//Editable reports whether cells can be toggled in the current phase
func (s *Session) Editable() bool {
	return s.status.Phase == PhaseSetup || s.status.Phase == PhasePaused
}

//ToggleAt inverses the cell at row, col
//clicks outside the grid or outside the editable phases are ignored
func (s *Session) ToggleAt(row int, col int) bool {
	if !s.Editable() || !s.grid.Contains(row, col) {
		return false
	}
	if err := s.grid.Toggle(row, col); err != nil {
		s.message = err.Error()
		return false
	}
	alive, _ := s.grid.Get(row, col)
	if alive {
		s.status.LiveCells++
	} else {
		s.status.LiveCells--
	}
	s.message = ""
	return true
}

//Start leaves the setup phase and starts the simulation
func (s *Session) Start() {
	if s.status.Phase == PhaseSetup {
		s.status.Phase = PhaseRunning
		s.message = ""
	}
}

//TogglePause pauses the running simulation or resumes the paused one
func (s *Session) TogglePause() {
	switch s.status.Phase {
	case PhaseRunning:
		s.status.Phase = PhasePaused
	case PhasePaused:
		s.status.Phase = PhaseRunning
	default:
		return
	}
	s.message = ""
}

//Tick advances one generation when the simulation is running
//returns true if the grid has changed
func (s *Session) Tick() bool {
	if s.status.Phase != PhaseRunning {
		return false
	}
	s.advance()
	return true
}

//Step advances exactly one generation from the setup or paused phase
func (s *Session) Step() bool {
	if !s.Editable() {
		return false
	}
	s.advance()
	return true
}

func (s *Session) advance() {
	start := time.Now()
	live, changed := s.grid.Advance()
	s.status.IterationTime = time.Since(start)
	s.status.LiveCells = live
	s.status.Changed = changed
	s.status.Generation++
	if s.options.MaxSteps != 0 && s.status.Generation >= s.options.MaxSteps {
		s.status.Phase = PhaseFinished
	}
	if s.options.StopWhenStable && (live == 0 || !changed) {
		s.status.Phase = PhaseFinished
	}
}

//Clear kills all cells and resets the generation counter
func (s *Session) Clear() {
	if !s.Editable() {
		return
	}
	s.grid.Clear()
	s.status.Generation = 0
	s.status.LiveCells = 0
	s.message = ""
}

//Randomize populates the grid with random data
func (s *Session) Randomize() {
	if !s.Editable() {
		return
	}
	s.grid.Randomize(s.rnd)
	s.status.LiveCells = s.grid.LiveCells()
	s.message = ""
}

//Settle places the template on the grid
func (s *Session) Settle(tmpl universe.Template) {
	if !s.Editable() {
		return
	}
	s.grid.Settle(tmpl)
	s.status.LiveCells = s.grid.LiveCells()
}

//Save writes the grid to path, the outcome is reported in the status line
func (s *Session) Save(path string) error {
	if err := persist.Save(path, s.grid); err != nil {
		s.message = fmt.Sprintf("error: unable to save file: %v", path)
		return err
	}
	s.message = fmt.Sprintf("grid saved to %v", path)
	return nil
}

//Load replaces the grid content with the file at path
//on failure the grid keeps its state
func (s *Session) Load(path string) error {
	if err := persist.LoadInto(path, s.grid); err != nil {
		s.message = fmt.Sprintf("error: could not import file: %v", path)
		return err
	}
	s.status.LiveCells = s.grid.LiveCells()
	s.message = fmt.Sprintf("grid loaded from %v", path)
	return nil
}

//Notify sets the message shown in the status line
func (s *Session) Notify(msg string) {
	s.message = msg
}

//Quit ends the session
func (s *Session) Quit() {
	s.quit = true
}

//Prompt returns the instruction for the current phase
func (s *Session) Prompt() string {
	switch s.status.Phase {
	case PhaseRunning:
		return promptRunning
	case PhasePaused:
		return promptPaused
	case PhaseFinished:
		return promptDone
	}
	return promptSetup
}

//StatusLine returns the text for the bottom line: the last message if any, the phase prompt otherwise
func (s *Session) StatusLine() string {
	if s.message != "" {
		return s.message
	}
	return s.Prompt()
}

//Message returns the last user message
func (s *Session) Message() string {
	return s.message
}
