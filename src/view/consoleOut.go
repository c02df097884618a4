package view

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"

	"toruslife/src/universe"
)

//ConsoleOut is the headless view: it prints the configuration and shows a progress bar of
//the generations until the game stops on its own
type ConsoleOut struct {
	u         universe.Universe
	w         io.Writer
	maxSteps  uint64
	bar       *pb.ProgressBar
	startTime time.Time
	unsub     []func()

	mu       sync.Mutex
	lastTick uint64
	done     chan struct{}
	once     sync.Once
}

//NewConsoleOut creates the view, maxSteps sizes the progress bar and should match Options.MaxSteps
//maxSteps = 0 means no limit and no bar
func NewConsoleOut(w io.Writer, maxSteps int) *ConsoleOut {
	c := &ConsoleOut{w: w, done: make(chan struct{})}
	if maxSteps > 0 {
		c.maxSteps = uint64(maxSteps)
		c.bar = pb.New(maxSteps)
		c.bar.SetWriter(w)
	}
	return c
}

func (c *ConsoleOut) Register(u universe.Universe) {
	c.u = u
	a := u.Board()
	_, _ = fmt.Fprintln(c.w, "Running configuration:")
	c.printHashData(map[string]interface{}{
		"Dimension":      fmt.Sprintf("%v x %v", a.Rows, a.Cols),
		"Interval":       u.Interval(),
		"Max iterations": c.maxSteps,
		"Live cells":     a.LiveCells(),
	})
}

//Start runs the game and blocks until it stops by convergence, extinction or maxSteps
func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	_, _ = fmt.Fprintln(c.w, "\nSimulation started...")
	if c.bar != nil {
		c.bar.Start()
	}
	//subscribe before Start so the replayed Stopped is not taken as the end of the run
	started := false
	c.unsub = append(c.unsub, c.u.SubscribeTicks(c.onTick))
	c.unsub = append(c.unsub, c.u.SubscribePhase(func(p universe.Phase) {
		if p.Running {
			started = true
			return
		}
		if started {
			c.once.Do(func() { close(c.done) })
		}
	}))
	c.u.Start()
	<-c.done
	for _, unsub := range c.unsub {
		unsub()
	}
	c.finish()
}

func (c *ConsoleOut) onTick(t universe.Tick) {
	c.mu.Lock()
	c.lastTick = t.Number
	c.mu.Unlock()
	if c.bar != nil {
		if t.Number <= c.maxSteps {
			c.bar.SetCurrent(int64(t.Number))
		}
	} else if t.Number%10 == 0 && t.Number > 0 {
		_, _ = fmt.Fprintf(c.w, "  Iterations done: %v\n", t.Number)
	}
}

func (c *ConsoleOut) finish() {
	if c.bar != nil {
		c.bar.Finish()
	}
	c.mu.Lock()
	last := c.lastTick
	c.mu.Unlock()
	a := c.u.Board()
	_, _ = fmt.Fprintln(c.w, "\nFinished:")
	c.printHashData(map[string]interface{}{
		"Last iteration": last,
		"Total time":     time.Since(c.startTime).Round(time.Millisecond),
		"Live cells":     a.LiveCells(),
	})
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		_, _ = fmt.Fprintf(c.w, "  %s: %v\n", propName, d[propName])
	}
}
