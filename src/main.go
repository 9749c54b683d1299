package main

import (
	"log"
	"os"
	"sort"
	"strings"

	"github.com/integrii/flaggy"

	"lifeterm/src/session"
	"lifeterm/src/universe"
	"lifeterm/src/view"
)

const defHeadlessMaxSteps = 1000

var (
	frontends = map[string]func(eo *EnvOptions) (view.Frontend, error){
		"gocui": func(_ *EnvOptions) (view.Frontend, error) {
			return view.NewConsoleUI()
		},
		"tcell": func(_ *EnvOptions) (view.Frontend, error) {
			return view.NewScreenUI()
		},
		"headless": func(eo *EnvOptions) (view.Frontend, error) {
			return view.NewConsoleOut(os.Stdout, eo.width, eo.height, eo.out), nil
		},
	}
)

type EnvOptions struct {
	ui         string
	importPath string
	template   string
	random     bool
	width      int
	height     int
	out        string
}

func main() {
	eo, so := initOptions()

	f, err := frontends[eo.ui](eo)
	if err != nil {
		log.Fatalln(err)
	}

	width, height := f.Size()
	g, err := universe.NewGrid(height, width)
	if err != nil {
		f.Close()
		log.Fatalln(err)
	}

	s := session.New(g, so)
	if eo.template != "" {
		tmpl, _ := universe.LookupTemplate(eo.template)
		s.Settle(tmpl)
	}
	if eo.random {
		s.Randomize()
	}
	if eo.importPath != "" {
		//the failure is shown in the status line, the grid stays as it was
		_ = s.Load(eo.importPath)
	}

	err = f.Start(s)
	f.Close()
	if err != nil {
		log.Fatalln(err)
	}
}

func initOptions() (eo *EnvOptions, so *session.Options) {
	o := session.DefaultOptions
	so = &o
	eo = &EnvOptions{ui: "gocui"}

	uiNames := make([]string, 0, len(frontends))
	for k := range frontends {
		uiNames = append(uiNames, k)
	}
	sort.Strings(uiNames)

	flaggy.SetName("lifeterm")
	flaggy.SetDescription("Conway's Game of Life in the terminal")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.String(&eo.importPath, "i", "import", "Load the grid from the file before the setup")
	flaggy.String(&eo.ui, "u", "ui", "Frontend to use ["+strings.Join(uiNames, "|")+"]")
	flaggy.Duration(&so.Interval, "t", "interval", "Simulation speed (interval between the generations) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Int(&so.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps, 0 is unlimited (headless default 1000)")
	flaggy.String(&eo.template, "p", "template", "Settle the template ["+strings.Join(universe.TemplateNames(), "|")+"]")
	flaggy.Bool(&eo.random, "r", "random", "Settle with random data")
	flaggy.Int(&eo.width, "x", "width", "Width of the field (headless only)")
	flaggy.Int(&eo.height, "y", "height", "Height of the field (headless only)")
	flaggy.String(&eo.out, "o", "out", "Save the final grid to the file (headless only)")

	flaggy.Parse()

	if _, ok := frontends[eo.ui]; !ok {
		flaggy.ShowHelpAndExit("unknown frontend")
	}
	if _, ok := universe.LookupTemplate(eo.template); eo.template != "" && !ok {
		flaggy.ShowHelpAndExit("unknown template")
	}

	if eo.ui == "headless" {
		so.StopWhenStable = true
		if so.MaxSteps == 0 {
			so.MaxSteps = defHeadlessMaxSteps
		}
	}
	return
}
