package view

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"golang.org/x/term"

	"lifeterm/src/session"
)

//default headless dimension when stdout is not a terminal
const (
	DefWidth  = 40
	DefHeight = 15
)

//ConsoleOut is the non interactive frontend
//it runs the simulation to the end printing the progress and optionally saves the final grid
type ConsoleOut struct {
	out       io.Writer
	width     int
	height    int
	saveTo    string
	startTime time.Time
}

//NewConsoleOut creates the headless frontend
//a zero width or height is taken from the terminal attached to stdout, or from the defaults
func NewConsoleOut(out io.Writer, width int, height int, saveTo string) *ConsoleOut {
	tw, th := terminalSize(int(os.Stdout.Fd()))
	if width <= 0 {
		width = tw
	}
	if height <= 0 {
		height = th
	}
	return &ConsoleOut{out: out, width: width, height: height, saveTo: saveTo}
}

func terminalSize(fd int) (width int, height int) {
	if !term.IsTerminal(fd) {
		return DefWidth, DefHeight
	}
	w, h, err := term.GetSize(fd)
	if err != nil || w <= 0 || h <= 1 {
		return DefWidth, DefHeight
	}
	return w, h - 1
}

//Size returns the grid dimension
func (c *ConsoleOut) Size() (width int, height int) {
	return c.width, c.height
}

//Start runs the session until it finishes
func (c *ConsoleOut) Start(s *session.Session) error {
	c.register(s)
	c.startTime = time.Now()
	_, _ = fmt.Fprintln(c.out, "\nSimulation started...")

	interval := s.Options().Interval
	s.Start()
	for s.Phase() == session.PhaseRunning {
		s.Tick()
		if st := s.Status(); st.Generation%10 == 0 {
			_, _ = fmt.Fprintf(c.out, "  Iterations done: %v\n", st.Generation)
		}
		if interval > 0 && s.Phase() == session.PhaseRunning {
			time.Sleep(interval)
		}
	}
	c.finish(s)

	if c.saveTo == "" {
		return nil
	}
	if err := s.Save(c.saveTo); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(c.out, s.Message())
	return nil
}

//Close does nothing, the console is not taken over
func (c *ConsoleOut) Close() {}

func (c *ConsoleOut) register(s *session.Session) {
	o := s.Options()
	_, _ = fmt.Fprintln(c.out, "Running configuration:")
	_, _ = fmt.Fprintf(c.out, "  Dimension: %v x %v\n", s.Grid().Width(), s.Grid().Height())
	_, _ = fmt.Fprintf(c.out, "  Interval: %v\n", o.Interval)
	_, _ = fmt.Fprintf(c.out, "  Max iterations: %v steps\n", o.MaxSteps)
	if msg := s.Message(); msg != "" {
		_, _ = fmt.Fprintf(c.out, "  %v\n", msg)
	}
}

func (c *ConsoleOut) finish(s *session.Session) {
	st := s.Status()
	resultData := map[string]interface{}{
		"Last iteration": st.Generation,
		"Total time":     time.Since(c.startTime).Round(time.Millisecond),
		"Live cells":     st.LiveCells,
		"Stable":         !st.Changed,
	}
	_, _ = fmt.Fprintln(c.out, "\nFinished:")
	c.printHashData(resultData)
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		_, _ = fmt.Fprintf(c.out, "  %s: %v\n", propName, d[propName])
	}
}
