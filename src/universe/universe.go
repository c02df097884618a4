package universe

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"toruslife/src/logger"
)

//Universe is the command and observation surface of the game, used by the views
type Universe interface {
	SetBoardSize(rows int, cols int) error
	ToggleCell(row int, col int) error
	ClearBoard()
	Settle(cells []Coordinate) error
	SettleTemplate(name string) error
	SettleWithRandomData(seed int64) error
	AddTemplate(tmpl Template)
	Templates() []Template
	Start()
	Stop()
	Step() error
	SetTickSpeed(millis int64)
	SetInterval(d time.Duration)
	Interval() time.Duration
	Board() Area
	Phase() Phase
	SubscribeBoard(fn func(Area)) (unsubscribe func())
	SubscribePhase(fn func(Phase)) (unsubscribe func())
	SubscribeTicks(fn func(Tick)) (unsubscribe func())
	Close()
}

var (
	ErrInvalidSize       = errors.New("invalid board size")
	ErrInvalidCoordinate = errors.New("invalid cell coordinate")
	ErrRunning           = errors.New("game is running")
	ErrUnknownTemplate   = errors.New("unknown template")
)

//Options represents the game's configurable options
type Options struct {
	Rows     int
	Cols     int
	Interval time.Duration
	//MaxSteps stops a run after that many generations, 0 means no limit
	MaxSteps int
	Logger   *logger.Logger
}

//default options
const (
	DefRows     = 15
	DefCols     = 40
	DefInterval = SpeedDefault
)

//tick speed presets
const (
	SpeedSlow    = 200 * time.Millisecond
	SpeedDefault = 100 * time.Millisecond
	SpeedFast    = 50 * time.Millisecond
)

var DefaultOptions = Options{
	Rows:     DefRows,
	Cols:     DefCols,
	Interval: DefInterval,
}

//Game is the simulation engine: a board, the tick scheduler driving it and the phase streams
//implements Universe interface
type Game struct {
	board     *BoardStore
	phase     *PhasePublisher
	scheduler *Scheduler
	templates map[string]Template
	log       *logger.Logger
}

var _ Universe = (*Game)(nil)

//NewGame creates an idle game with an all-dead board
func NewGame(o *Options) (*Game, error) {
	if o == nil {
		o = &DefaultOptions
	}
	log := o.Logger
	if log == nil {
		log = logger.Discard()
	}
	board, err := NewBoardStore(o.Rows, o.Cols)
	if err != nil {
		return nil, err
	}
	maxSteps := uint64(0)
	if o.MaxSteps > 0 {
		maxSteps = uint64(o.MaxSteps)
	}
	phase := NewPhasePublisher()
	g := &Game{
		board:     board,
		phase:     phase,
		scheduler: NewScheduler(board, phase, o.Interval, maxSteps, log),
		templates: map[string]Template{},
		log:       log,
	}
	for _, t := range builtinTemplates {
		g.AddTemplate(t)
	}
	return g, nil
}

//SetBoardSize stops the game and replaces the board with an all-dead one of the new size
//invalid sizes are rejected before anything changes
func (g *Game) SetBoardSize(rows int, cols int) error {
	if err := validateSize(rows, cols); err != nil {
		return err
	}
	g.log.Event("RESIZE", fmt.Sprintf("%dx%d", rows, cols))
	return g.scheduler.Halt(func() error {
		return g.board.Reset(rows, cols)
	})
}

//ToggleCell inverses the cell state at row, col
//rejected with ErrRunning while the game runs and ErrInvalidCoordinate outside the board
func (g *Game) ToggleCell(row int, col int) error {
	return g.scheduler.WhenIdle(func() error {
		return g.board.Toggle(row, col)
	})
}

//ClearBoard stops the game and kills all cells
func (g *Game) ClearBoard() {
	_ = g.scheduler.Halt(func() error {
		g.board.Clear()
		return nil
	})
}

//Settle makes the listed cells alive, only while the game is stopped
func (g *Game) Settle(cells []Coordinate) error {
	return g.scheduler.WhenIdle(func() error {
		return g.board.Settle(cells)
	})
}

//SettleTemplate populates the board with the named template, cells outside the board are skipped
func (g *Game) SettleTemplate(name string) error {
	tmpl, ok := g.templates[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	return g.scheduler.WhenIdle(func() error {
		a := g.board.Snapshot()
		cells := make([]Coordinate, 0, len(tmpl.Cells))
		for _, c := range tmpl.Cells {
			if a.Contains(c.Row, c.Col) {
				cells = append(cells, c)
			}
		}
		return g.board.Settle(cells)
	})
}

//SettleWithRandomData replaces the board with random cells, about half of them alive
func (g *Game) SettleWithRandomData(seed int64) error {
	return g.scheduler.WhenIdle(func() error {
		cur := g.board.Snapshot()
		rnd := rand.New(rand.NewSource(seed))
		a := createArea(cur.Rows, cur.Cols)
		for r := range a.Entities {
			for c := range a.Entities[r] {
				a.Entities[r][c] = rnd.Intn(2) == 1
			}
		}
		g.board.Replace(a)
		return nil
	})
}

//AddTemplate adds the seeding template to the internal storage
//not safe for use concurrently with SettleTemplate
func (g *Game) AddTemplate(tmpl Template) {
	g.templates[tmpl.Name] = tmpl
}

//Templates returns registered templates sorted by name
func (g *Game) Templates() []Template {
	return sortedTemplates(g.templates)
}

//Start starts the simulation, returns immediately
func (g *Game) Start() {
	g.scheduler.Start()
}

//Stop stops the simulation and publishes Stopped
func (g *Game) Stop() {
	g.scheduler.Stop()
}

//Step advances the board by one generation, only while the game is stopped
func (g *Game) Step() error {
	return g.scheduler.Step()
}

//SetTickSpeed sets the interval between generations in milliseconds, values <= 0 are ignored
func (g *Game) SetTickSpeed(millis int64) {
	g.SetInterval(time.Duration(millis) * time.Millisecond)
}

//SetInterval sets the interval between generations, applied from the next wait
func (g *Game) SetInterval(d time.Duration) {
	g.scheduler.SetInterval(d)
}

func (g *Game) Interval() time.Duration {
	return g.scheduler.Interval()
}

//Board returns the current generation, it must not be modified
func (g *Game) Board() Area {
	return g.board.Snapshot()
}

func (g *Game) Phase() Phase {
	return g.phase.Phase()
}

func (g *Game) SubscribeBoard(fn func(Area)) (unsubscribe func()) {
	return g.board.Subscribe(fn)
}

func (g *Game) SubscribePhase(fn func(Phase)) (unsubscribe func()) {
	return g.phase.SubscribePhase(fn)
}

func (g *Game) SubscribeTicks(fn func(Tick)) (unsubscribe func()) {
	return g.phase.SubscribeTicks(fn)
}

//Close stops the simulation and waits for the tick loop to return
func (g *Game) Close() {
	g.scheduler.Stop()
	g.scheduler.Wait()
}
