package universe

import (
	"context"
	"fmt"
	"sync"
	"time"

	"toruslife/src/logger"
)

//run is the handle of one tick loop
type run struct {
	epoch  uint64
	tick   uint64
	ctx    context.Context
	cancel context.CancelFunc
}

//Scheduler runs at most one tick loop over a BoardStore
//mu serializes lifecycle transitions and board writes, so while a loop is running
//it is the only writer of the board and while idle the caller is
type Scheduler struct {
	mu       sync.Mutex
	board    *BoardStore
	phase    *PhasePublisher
	log      *logger.Logger
	interval time.Duration
	maxSteps uint64
	current  *run
	loops    sync.WaitGroup
}

//NewScheduler creates an idle scheduler, maxSteps = 0 lets a run go on until it converges or dies out
func NewScheduler(board *BoardStore, phase *PhasePublisher, interval time.Duration, maxSteps uint64, log *logger.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefInterval
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Scheduler{board: board, phase: phase, interval: interval, maxSteps: maxSteps, log: log}
}

//Start launches the tick loop and publishes InProgress(0), returns immediately
//does nothing if the loop is already running
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	r := &run{ctx: ctx, cancel: cancel}
	r.epoch = s.phase.Begin()
	s.current = r
	s.loops.Add(1)
	s.log.Event("START", fmt.Sprintf("epoch %d, interval %v", r.epoch, s.interval))
	go func() {
		defer s.loops.Done()
		s.loop(r)
	}()
}

//Stop cancels the running loop and publishes Stopped
//no board change happens after Stop returns until the next Start or an explicit edit
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked("STOP")
}

//Running reports whether a tick loop is active
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

//SetInterval changes the wait between generations, ignored if d <= 0
//a wait that has already started keeps its duration
func (s *Scheduler) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	s.mu.Lock()
	s.interval = d
	s.mu.Unlock()
	s.log.Info("interval set to %v", d)
}

//Interval returns the wait applied between generations
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

//WhenIdle runs edit with the board writes reserved for the caller
//returns ErrRunning without calling edit if the loop is active
func (s *Scheduler) WhenIdle(edit func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		return ErrRunning
	}
	return edit()
}

//Halt stops the loop and runs edit before any new Start can happen
func (s *Scheduler) Halt(edit func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked("STOP")
	return edit()
}

//Step computes a single generation while the loop is idle
//the phase stays Stopped and no tick is published
func (s *Scheduler) Step() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		return ErrRunning
	}
	snapshot := s.board.Snapshot()
	next := NextGeneration(snapshot)
	s.board.Replace(next)
	s.log.Event("STEP", fmt.Sprintf("%d live cells", next.LiveCells()))
	return nil
}

//Wait blocks until every loop goroutine has returned
func (s *Scheduler) Wait() {
	s.loops.Wait()
}

func (s *Scheduler) stopLocked(reason string) {
	if r := s.current; r != nil {
		r.cancel()
		s.current = nil
		s.log.Event(reason, fmt.Sprintf("epoch %d at tick %d", r.epoch, r.tick))
	}
	s.phase.End()
}

//loop is the body of the tick goroutine
//cancellation is checked between generations only, a generation in progress always completes
func (s *Scheduler) loop(r *run) {
	for {
		if r.ctx.Err() != nil {
			return
		}
		snapshot := s.board.Snapshot()
		next := NextGeneration(snapshot)
		if !s.commit(r, snapshot, next) {
			return
		}
		if !s.wait(r) {
			return
		}
	}
}

//commit publishes the generation computed by r unless r has been stopped meanwhile
//reports whether the loop should continue
func (s *Scheduler) commit(r *run, snapshot Area, next Area) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != r {
		return false
	}
	//uint64 overflow wraps the counter to 0
	r.tick++
	s.board.Replace(next)
	s.phase.Advance(r.epoch, r.tick)
	if next.Equal(snapshot) {
		s.stopLocked("CONVERGED")
		return false
	}
	if next.LiveCells() == 0 {
		s.stopLocked("EXTINCT")
		return false
	}
	if s.maxSteps != 0 && r.tick >= s.maxSteps {
		s.stopLocked("MAX_STEPS")
		return false
	}
	return true
}

//wait sleeps for the current interval, returns false if the run is cancelled meanwhile
func (s *Scheduler) wait(r *run) bool {
	t := time.NewTimer(s.Interval())
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-r.ctx.Done():
		return false
	}
}
