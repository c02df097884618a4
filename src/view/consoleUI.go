package view

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"toruslife/src/logger"
	"toruslife/src/universe"
)

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

type ConsoleUI struct {
	u     universe.Universe
	g     *gocui.Gui
	k     []keyBindings
	seed  int64
	log   *logger.Logger
	unsub []func()

	//last observed phase and tick, written by the game's goroutines
	status struct {
		sync.Mutex
		phase universe.Phase
		tick  uint64
	}

	liveFiller string
	deadFiller string
}

//NewViewTerminal creates the interactive view, commands the game rejects are logged to lgr
func NewViewTerminal(seed int64, lgr *logger.Logger) *ConsoleUI {
	if lgr == nil {
		lgr = logger.Discard()
	}

	var err error
	t := ConsoleUI{
		seed:       seed,
		log:        lgr,
		liveFiller: aurora.Green("█").BgBrightGreen().String(),
		deadFiller: "░",
	}

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Panicln(err)
	}

	t.g.Mouse = true
	t.k = t.commands()
	t.g.SetManagerFunc(t.layout)
	if err = t.bindKeys(); err != nil {
		log.Panicln(err)
	}

	return &t
}

//commands lists the key bindings of the view, mouse clicks only count on the board
func (t *ConsoleUI) commands() []keyBindings {
	return []keyBindings{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{'r', "R", "Run", t.cmdRun, ""},
		{'s', "S", "Stop", t.cmdStop, ""},
		{'n', "N", "Next step", t.cmdNextStep, ""},
		{'c', "C", "Clear", t.cmdClear, ""},
		{'w', "W", "Settle with random", t.cmdSettleWithRandom, ""},
		{'1', "1", "Slow", t.cmdSpeed(universe.SpeedSlow), ""},
		{'2', "2", "Default", t.cmdSpeed(universe.SpeedDefault), ""},
		{'3', "3", "Fast", t.cmdSpeed(universe.SpeedFast), ""},
		{gocui.MouseLeft, "MOUSE", "Toggle the cell", t.cmdMouseClick, "battlefield"},
	}
}

func (t *ConsoleUI) bindKeys() error {
	for _, kb := range t.k {
		handler := kb.handler
		err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(_ *gocui.Gui, v *gocui.View) error {
			return handler(v)
		})
		if err != nil {
			return fmt.Errorf("bind %s: %w", kb.name, err)
		}
	}
	return nil
}

//Register subscribes the view to the game streams
//the callbacks only schedule a redraw, gocui runs it on its own loop
func (t *ConsoleUI) Register(u universe.Universe) {
	t.u = u
	t.unsub = append(t.unsub,
		u.SubscribeBoard(t.renderField),
		u.SubscribePhase(func(p universe.Phase) {
			t.status.Lock()
			t.status.phase = p
			t.status.Unlock()
			t.renderStatus()
		}),
		u.SubscribeTicks(func(tk universe.Tick) {
			t.status.Lock()
			t.status.tick = tk.Number
			t.status.Unlock()
			t.renderStatus()
		}),
	)
}

func (t *ConsoleUI) Start() {
	if err := t.g.MainLoop(); err != nil && !errors.Is(err, gocui.ErrQuit) {
		log.Panicln(err)
	}
	for _, unsub := range t.unsub {
		unsub()
	}
	t.g.Close()
}

func (t *ConsoleUI) renderField(a universe.Area) {

	t.g.Update(func(g *gocui.Gui) error {
		v, e := g.View("battlefield")
		if e != nil {
			return nil
		}
		//the entire field is redrawing at once
		v.Clear()

		crop := false
		maxW, maxH := v.Size()
		if a.Cols > maxW || a.Rows > maxH {
			crop = true
		}

		var b bytes.Buffer

		for i, l := range a.Entities {
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
			for j, e := range l {
				if j >= maxW {
					break
				}
				if e {
					b.WriteString(t.liveFiller)
				} else {
					b.WriteString(t.deadFiller)
				}
			}
		}
		_, _ = fmt.Fprint(v, b.String())
		return nil
	})
}

func (t *ConsoleUI) renderStatus() {
	t.g.Update(func(g *gocui.Gui) error {
		if v, e := g.View("status"); e == nil {
			t.status.Lock()
			p, tick := t.status.phase, t.status.tick
			t.status.Unlock()
			v.Clear()
			a := t.u.Board()
			_, _ = fmt.Fprintln(v, t.renderProp("Tick", "%v", tick))
			_, _ = fmt.Fprintln(v, t.renderProp("Live Cells", "%v", a.LiveCells()))
			_, _ = fmt.Fprintln(v, t.renderProp("Mode", "%v", phaseDescr(p)))
		}
		return nil
	})
}

func phaseDescr(p universe.Phase) string {
	if p.Running {
		return aurora.Colorize("in progress", aurora.CyanFg).String()
	}
	return aurora.Colorize("stopped", aurora.RedFg).String()
}

func (t *ConsoleUI) renderConfiguration() {
	//it needs to call Update when calls from goroutine
	t.g.Update(func(g *gocui.Gui) error {
		a := t.u.Board()
		if v, e := g.View("configuration"); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, t.renderProp("Dimension", "%v x %v", a.Rows, a.Cols))
			_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v", t.u.Interval()))
		}
		return nil
	})
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

//screen geometry
const (
	sidebarWidth    = 28
	headerHeight    = 3
	footerHeight    = 5
	minScreenHeight = 20
)

//pane is a view below the header, coordinates are the ones gocui.SetView takes
type pane struct {
	name           string
	title          string
	x0, y0, x1, y1 int
}

//panes splits a maxX by maxY screen: configuration and status on the left, the board
//on the right and the unframed help line at the bottom
func panes(maxX, maxY int) []pane {
	bottom := maxY - footerHeight
	split := headerHeight + (bottom-headerHeight)/2
	return []pane{
		{"configuration", "Configuration", 0, headerHeight, sidebarWidth, split},
		{"status", "Status", 0, split + 1, sidebarWidth, bottom},
		{"battlefield", "Board", sidebarWidth + 1, headerHeight, maxX - 1, bottom},
		{"help", "", -1, bottom, maxX, maxY - 3},
	}
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	if maxY < minScreenHeight {
		for _, p := range panes(maxX, maxY) {
			_ = g.DeleteView(p.name)
		}
		return t.header(g, maxY, "Terminal height too small")
	}
	if err := t.header(g, headerHeight, "Conway's Life on a torus"); err != nil {
		return err
	}
	for _, p := range panes(maxX, maxY) {
		v, err := g.SetView(p.name, p.x0, p.y0, p.x1, p.y1)
		if err == nil {
			continue
		}
		if !errors.Is(err, gocui.ErrUnknownView) || v == nil {
			return err
		}
		v.Title = p.title
		v.Frame = p.title != ""
		t.fill(p.name, v)
	}
	return nil
}

//fill draws a pane the first time it is created, later redraws come from the game streams
func (t *ConsoleUI) fill(name string, v *gocui.View) {
	switch name {
	case "configuration":
		t.renderConfiguration()
	case "status":
		t.renderStatus()
	case "battlefield":
		t.renderField(t.u.Board())
	case "help":
		_, _ = fmt.Fprintln(v, helpLine(t.k))
	}
}

func (t *ConsoleUI) header(g *gocui.Gui, height int, text string) error {
	maxX, _ := g.Size()
	v, err := g.SetView("header", -1, -1, maxX+1, height)
	if err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) || v == nil {
			return err
		}
		v.Frame = false
		v.BgColor = gocui.ColorCyan
		v.FgColor = gocui.ColorBlack
	}
	v.Clear()
	_, _ = fmt.Fprint(v, centered(text, maxX, height))
	return nil
}

//centered places text in the middle of a width by height box, the text is cut to the width
func centered(text string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if len(text) > width {
		text = text[:width]
	}
	return strings.Repeat("\n", height/2+1) + strings.Repeat(" ", (width-len(text))/2) + text
}

func helpLine(k []keyBindings) string {
	items := make([]string, 0, len(k))
	for _, kb := range k {
		items = append(items, aurora.Green(kb.name).String()+": "+kb.descr)
	}
	return "KEYS: " + strings.Join(items, ", ")
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdRun(_ *gocui.View) error {
	t.u.Start()
	return nil
}

func (t *ConsoleUI) cmdStop(_ *gocui.View) error {
	t.u.Stop()
	return nil
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	t.u.ClearBoard()
	return nil
}

func (t *ConsoleUI) cmdSettleWithRandom(_ *gocui.View) error {
	t.seed++
	if err := t.u.SettleWithRandomData(t.seed); err != nil {
		t.log.Warn("random settle rejected: %v", err)
	}
	return nil
}

func (t *ConsoleUI) cmdNextStep(_ *gocui.View) error {
	if err := t.u.Step(); err != nil {
		t.log.Warn("step rejected: %v", err)
	}
	return nil
}

func (t *ConsoleUI) cmdSpeed(d time.Duration) func(*gocui.View) error {
	return func(_ *gocui.View) error {
		t.u.SetInterval(d)
		t.renderConfiguration()
		return nil
	}
}

func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	if err := t.u.ToggleCell(cy, cx); err != nil {
		t.log.Warn("toggle (%d, %d) rejected: %v", cy, cx, err)
	}
	return nil
}
