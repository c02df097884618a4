package universe

import (
	"fmt"
	"sync"
)

//Phase is the running phase of the game, either Stopped or InProgress(tick)
type Phase struct {
	Running bool
	Tick    uint64
}

//Stopped is the phase of an idle game
var Stopped = Phase{}

//InProgress is the phase of a running game that has completed tick generations
func InProgress(tick uint64) Phase {
	return Phase{Running: true, Tick: tick}
}

func (p Phase) String() string {
	if !p.Running {
		return "Stopped"
	}
	return fmt.Sprintf("InProgress(%d)", p.Tick)
}

//Tick is an event of the tick stream
//Epoch identifies the run that produced it, every Start opens a new epoch
type Tick struct {
	Epoch  uint64
	Number uint64
}

//PhasePublisher broadcasts the phase and derives the per-run tick stream from it
type PhasePublisher struct {
	mu     sync.Mutex
	epoch  uint64
	active bool
	phases *Stream[Phase]
	ticks  *Stream[Tick]
}

func NewPhasePublisher() *PhasePublisher {
	return &PhasePublisher{
		phases: NewStreamWithValue(Stopped),
		ticks:  NewStream[Tick](),
	}
}

//Begin opens a new epoch and publishes InProgress(0)
//events of any earlier epoch are dropped from now on
func (p *PhasePublisher) Begin() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.epoch++
	p.active = true
	p.phases.Publish(InProgress(0))
	p.ticks.Publish(Tick{Epoch: p.epoch, Number: 0})
	return p.epoch
}

//Advance publishes InProgress(tick) for the epoch
//it reports false and publishes nothing if the epoch has been superseded or stopped
func (p *PhasePublisher) Advance(epoch uint64, tick uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.active || epoch != p.epoch {
		return false
	}
	p.phases.Publish(InProgress(tick))
	p.ticks.Publish(Tick{Epoch: epoch, Number: tick})
	return true
}

//End publishes Stopped and silences the tick stream until the next Begin
func (p *PhasePublisher) End() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active = false
	p.ticks.Reset()
	p.phases.Publish(Stopped)
}

//Phase returns the latest published phase
func (p *PhasePublisher) Phase() Phase {
	ph, _ := p.phases.Value()
	return ph
}

//Epoch returns the identifier of the latest run
func (p *PhasePublisher) Epoch() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.epoch
}

//SubscribePhase registers a phase observer, the current phase is replayed immediately
func (p *PhasePublisher) SubscribePhase(fn func(Phase)) (unsubscribe func()) {
	return p.phases.Subscribe(fn)
}

//SubscribeTicks registers a tick observer
//while a run is active the current tick is replayed, after Stopped nothing is delivered
func (p *PhasePublisher) SubscribeTicks(fn func(Tick)) (unsubscribe func()) {
	return p.ticks.Subscribe(fn)
}
