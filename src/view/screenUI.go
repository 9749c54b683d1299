package view

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"lifeterm/src/persist"
	"lifeterm/src/session"
)

//ScreenUI is the tcell frontend
//cells are drawn with the file markers so the screen looks like a saved grid
type ScreenUI struct {
	screen tcell.Screen
	s      *session.Session

	liveStyle   tcell.Style
	deadStyle   tcell.Style
	statusStyle tcell.Style
	phaseStyle  map[session.Phase]tcell.Style

	prompting bool
	input     []rune
	buttons   tcell.ButtonMask
}

//NewScreenUI takes over the terminal
func NewScreenUI() (*ScreenUI, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return newScreenUI(screen), nil
}

func newScreenUI(screen tcell.Screen) *ScreenUI {
	screen.EnableMouse()
	screen.HideCursor()

	status := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	return &ScreenUI{
		screen:      screen,
		liveStyle:   tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true),
		deadStyle:   tcell.StyleDefault.Foreground(tcell.ColorGray),
		statusStyle: status,
		phaseStyle: map[session.Phase]tcell.Style{
			session.PhaseSetup:    status.Foreground(tcell.ColorBlue),
			session.PhaseRunning:  status.Foreground(tcell.ColorDarkCyan),
			session.PhasePaused:   status.Foreground(tcell.ColorYellow),
			session.PhaseFinished: status.Foreground(tcell.ColorRed),
		},
	}
}

//Size returns the grid dimension available in the terminal
func (t *ScreenUI) Size() (width int, height int) {
	w, h := t.screen.Size()
	return w, h - 1
}

//Start runs the event loop until the user quits
//events are read by a separate goroutine and handed over to the loop
func (t *ScreenUI) Start(s *session.Session) error {
	t.s = s
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	interval := s.Options().Interval
	if interval <= 0 {
		interval = session.DefInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	t.draw()
	for !s.Done() {
		select {
		case ev := <-events:
			t.handleEvent(ev)
		case <-ticker.C:
			if !s.Tick() {
				continue
			}
		}
		t.draw()
	}
	return nil
}

//Close restores the terminal
func (t *ScreenUI) Close() {
	t.screen.Fini()
}

func (t *ScreenUI) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.screen.Sync()
	case *tcell.EventKey:
		if t.prompting {
			t.handlePromptKey(ev)
			return
		}
		t.handleKey(ev)
	case *tcell.EventMouse:
		t.handleMouse(ev)
	}
}

func (t *ScreenUI) handleKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyCtrlC {
		t.s.Quit()
		return
	}
	if ev.Key() != tcell.KeyRune {
		return
	}
	cmd := session.CommandForKey(ev.Rune())
	if cmd == session.CmdSave {
		if t.s.CanSave() {
			t.prompting = true
			t.input = t.input[:0]
		}
		return
	}
	t.s.Exec(cmd)
}

func (t *ScreenUI) handlePromptKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEnter:
		t.prompting = false
		path := string(t.input)
		if path == "" {
			t.s.Notify("save cancelled: empty file name")
			return
		}
		_ = t.s.Save(path)
	case tcell.KeyEscape:
		t.prompting = false
		t.s.Notify("")
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(t.input) > 0 {
			t.input = t.input[:len(t.input)-1]
		}
	case tcell.KeyCtrlC:
		t.prompting = false
		t.s.Quit()
	case tcell.KeyRune:
		t.input = append(t.input, ev.Rune())
	}
}

//handleMouse toggles a cell on the left button press only, holding or dragging does nothing
func (t *ScreenUI) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0 && t.buttons&tcell.Button1 == 0
	t.buttons = buttons
	if !pressed || t.prompting {
		return
	}
	x, y := ev.Position()
	t.s.ToggleAt(y, x)
}

func (t *ScreenUI) draw() {
	t.screen.Clear()
	maxW, maxH := t.Size()
	grid := t.s.Grid()
	for y := 0; y < grid.Height() && y < maxH; y++ {
		for x, alive := range grid.Row(y) {
			if x >= maxW {
				break
			}
			if alive {
				t.screen.SetContent(x, y, persist.AliveMarker, nil, t.liveStyle)
			} else {
				t.screen.SetContent(x, y, persist.DeadMarker, nil, t.deadStyle)
			}
		}
	}

	line := maxH
	if t.prompting {
		text := savePrompt + string(t.input)
		t.drawText(0, line, t.statusStyle, text)
		t.screen.ShowCursor(len([]rune(text)), line)
	} else {
		st := t.s.Status()
		x := t.drawText(0, line, t.phaseStyle[st.Phase], st.Phase.String())
		x = t.drawText(x+1, line, t.statusStyle, fmt.Sprintf("Gen: %v Live: %v ", st.Generation, st.LiveCells))
		t.drawText(x, line, t.statusStyle, t.s.StatusLine())
		t.screen.HideCursor()
	}
	t.screen.Show()
}

//drawText writes text starting at x, y and returns the column after the last rune
func (t *ScreenUI) drawText(x int, y int, style tcell.Style, text string) int {
	for _, r := range text {
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}
