package view

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"lifeterm/src/session"
)

const (
	fieldView  = "battlefield"
	statusView = "status"
	promptView = "prompt"

	savePrompt = "enter filename to save: "
)

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

//ConsoleUI is the gocui frontend
//the grid takes the whole terminal except the last line, which shows the status
type ConsoleUI struct {
	s    *session.Session
	g    *gocui.Gui
	k    []keyBindings
	done chan struct{}

	liveFiller string
	deadFiller string
}

var (
	phaseDescr = map[session.Phase]string{
		session.PhaseSetup:    aurora.Colorize("setup", aurora.BlueFg).String(),
		session.PhaseRunning:  aurora.Colorize("running", aurora.CyanFg).String(),
		session.PhasePaused:   aurora.Colorize("paused", aurora.YellowFg).String(),
		session.PhaseFinished: aurora.Colorize("finished", aurora.RedFg).String(),
	}
)

//NewConsoleUI takes over the terminal
func NewConsoleUI() (*ConsoleUI, error) {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, err
	}
	t := ConsoleUI{
		g:          g,
		done:       make(chan struct{}),
		liveFiller: aurora.Green("█").BgBrightGreen().String(),
		deadFiller: "░",
	}
	t.g.Mouse = true
	t.g.InputEsc = true

	t.k = []keyBindings{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{gocui.MouseLeft, "MOUSE", "Toggle the cell", t.cmdMouseClick, fieldView},
		{gocui.KeyEnter, "ENTER", "Confirm", t.cmdSaveConfirm, promptView},
		{gocui.KeyEsc, "ESC", "Cancel", t.cmdSaveCancel, promptView},
	}
	for _, kb := range session.KeyBindings {
		cmd := kb.Cmd
		t.k = append(t.k, keyBindings{kb.Key, kb.Name, kb.Descr, func(v *gocui.View) error {
			return t.cmdExec(cmd)
		}, fieldView})
	}
	t.g.SetManagerFunc(t.layout)

	if err := t.initKeyBindings(t.k); err != nil {
		t.g.Close()
		return nil, err
	}
	return &t, nil
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) error {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			return err
		}
	}
	return nil
}

//Size returns the grid dimension available in the terminal
func (t *ConsoleUI) Size() (width int, height int) {
	maxX, maxY := t.g.Size()
	return maxX, maxY - 1
}

//Start runs the gui main loop until the user quits
//the ticker only queues updates, every session call happens on the main loop goroutine
func (t *ConsoleUI) Start(s *session.Session) error {
	t.s = s
	go t.tickLoop(s.Options().Interval)
	defer close(t.done)
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}
	return nil
}

//Close restores the terminal
func (t *ConsoleUI) Close() {
	t.g.Close()
}

func (t *ConsoleUI) tickLoop(interval time.Duration) {
	if interval <= 0 {
		interval = session.DefInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-t.done:
			return
		case <-ticker.C:
			t.g.Update(func(g *gocui.Gui) error {
				t.s.Tick()
				return nil
			})
		}
	}
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	if v, err := g.SetView(fieldView, -1, -1, maxX, maxY-1); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		if _, err := g.SetCurrentView(fieldView); err != nil {
			return err
		}
	}

	if v, err := g.SetView(statusView, -1, maxY-2, maxX, maxY); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
	}

	t.renderField()
	t.renderStatus()
	return nil
}

func (t *ConsoleUI) renderField() {
	v, e := t.g.View(fieldView)
	if e != nil {
		return
	}
	//the entire field is redrawing at once
	v.Clear()

	grid := t.s.Grid()
	maxW, maxH := v.Size()
	crop := grid.Width() > maxW || grid.Height() > maxH

	var b bytes.Buffer
	for i := 0; i < grid.Height(); i++ {
		//discard the data outside the view area
		if i >= maxH {
			break
		}
		//line feed char
		if i != 0 {
			b.WriteByte(10)
		}
		if crop && i == (maxH-1) {
			b.WriteString(aurora.Red("The field size is larger than the viewing area").BgBlack().String())
			break
		}
		for j, alive := range grid.Row(i) {
			if j >= maxW {
				break
			}
			if alive {
				b.WriteString(t.liveFiller)
			} else {
				b.WriteString(t.deadFiller)
			}
		}
	}
	_, _ = fmt.Fprint(v, b.String())
}

func (t *ConsoleUI) renderStatus() {
	v, e := t.g.View(statusView)
	if e != nil {
		return
	}
	v.Clear()
	st := t.s.Status()
	_, _ = fmt.Fprintf(v, "%v %v %v %v",
		phaseDescr[st.Phase],
		t.renderProp("Gen", "%v", st.Generation),
		t.renderProp("Live", "%v", st.LiveCells),
		t.s.StatusLine())
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

//openPrompt places the editable file name view over the status line
func (t *ConsoleUI) openPrompt() error {
	maxX, maxY := t.g.Size()
	v, err := t.g.SetView(promptView, -1, maxY-2, maxX, maxY)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	v.Frame = false
	v.Editable = true
	v.Clear()
	_, _ = fmt.Fprint(v, savePrompt)
	if err := v.SetCursor(len(savePrompt), 0); err != nil {
		return err
	}
	t.g.Cursor = true
	if _, err := t.g.SetViewOnTop(promptView); err != nil {
		return err
	}
	_, err = t.g.SetCurrentView(promptView)
	return err
}

func (t *ConsoleUI) closePrompt() error {
	t.g.Cursor = false
	if err := t.g.DeleteView(promptView); err != nil {
		return err
	}
	_, err := t.g.SetCurrentView(fieldView)
	return err
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	t.s.Quit()
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdExec(cmd session.Command) error {
	if cmd == session.CmdSave {
		if !t.s.CanSave() {
			return nil
		}
		return t.openPrompt()
	}
	t.s.Exec(cmd)
	if t.s.Done() {
		return gocui.ErrQuit
	}
	return nil
}

func (t *ConsoleUI) cmdSaveConfirm(v *gocui.View) error {
	path := strings.TrimSpace(strings.TrimPrefix(v.Buffer(), savePrompt))
	if err := t.closePrompt(); err != nil {
		return err
	}
	if path == "" {
		t.s.Notify("save cancelled: empty file name")
		return nil
	}
	_ = t.s.Save(path)
	return nil
}

func (t *ConsoleUI) cmdSaveCancel(_ *gocui.View) error {
	t.s.Notify("")
	return t.closePrompt()
}

func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	ox, oy := v.Origin()
	t.s.ToggleAt(cy+oy, cx+ox)
	return nil
}
