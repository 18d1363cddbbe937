package service

import (
	"context"
	"log/slog"
	"sync"

	analyticsdto "studia/internal/modules/analytics/dto"
	"studia/internal/modules/dispatch/domain"
	"studia/internal/modules/dispatch/dto"
	dispatchout "studia/internal/modules/dispatch/port/out"
	apperrors "studia/internal/platform/errors"
)

type job struct {
	slotID string
	token  uint64
	input  analyticsdto.AnalyzeInput
}

type slotState struct {
	machine *domain.Slot
	current *dto.Envelope
}

// Coordinator runs analyses on a fixed worker pool and guarantees that each
// slot only ever exposes the result of its most recent submission. The only
// shared mutable state is the per-slot (generation, accepted) pair, guarded
// by one mutex; computations themselves share nothing.
type Coordinator struct {
	analyzer dispatchout.Analyzer
	log      *slog.Logger

	jobs chan job
	quit chan struct{}
	wg   sync.WaitGroup

	mu     sync.Mutex
	slots  map[string]*slotState
	closed bool
}

func NewCoordinator(analyzer dispatchout.Analyzer, workers int, log *slog.Logger) *Coordinator {
	if workers < 1 {
		workers = 1
	}
	c := &Coordinator{
		analyzer: analyzer,
		log:      log,
		jobs:     make(chan job, 16),
		quit:     make(chan struct{}),
		slots:    make(map[string]*slotState),
	}
	c.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go c.worker()
	}
	return c
}

func (c *Coordinator) Submit(_ context.Context, slotID string, input analyticsdto.AnalyzeInput) (uint64, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return 0, apperrors.ErrCoordinatorDown
	}
	state, ok := c.slots[slotID]
	if !ok {
		state = &slotState{machine: domain.NewSlot()}
		c.slots[slotID] = state
	}
	token := state.machine.Submit()
	c.mu.Unlock()

	// sent outside the lock: a full queue must not block result arrival
	select {
	case c.jobs <- job{slotID: slotID, token: token, input: input}:
	case <-c.quit:
		return 0, apperrors.ErrCoordinatorDown
	}
	return token, nil
}

func (c *Coordinator) Poll(slotID string) (dto.Envelope, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	state, ok := c.slots[slotID]
	if !ok || state.current == nil {
		return dto.Envelope{}, apperrors.ErrNoCurrentResult
	}
	return *state.current, nil
}

func (c *Coordinator) Busy(slotID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	state, ok := c.slots[slotID]
	if !ok {
		return false
	}
	return state.machine.Phase() == domain.PhaseRunning
}

// Close stops the pool. In-flight computations finish their current job and
// exit; queued jobs are dropped, which is equivalent to superseding them.
func (c *Coordinator) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	close(c.quit)
	c.wg.Wait()
}

func (c *Coordinator) worker() {
	defer c.wg.Done()
	for {
		select {
		case j := <-c.jobs:
			result, err := c.analyzer.Analyze(context.Background(), j.input)
			if err != nil {
				// the analytics boundary converts its own failures; an error
				// here is a wiring fault, surfaced as an error-status result
				c.log.Error("analysis unit failed", "slot", j.slotID, "error", err)
				result = analyticsdto.ResultOutput{
					Kind:   j.input.Kind,
					Status: "error",
					Reason: err.Error(),
				}
			}
			c.complete(j, result)
		case <-c.quit:
			return
		}
	}
}

func (c *Coordinator) complete(j job, result analyticsdto.ResultOutput) {
	c.mu.Lock()
	defer c.mu.Unlock()
	state, ok := c.slots[j.slotID]
	if !ok {
		return
	}
	decision := state.machine.Arrive(j.token)
	if decision == domain.DecisionDiscard {
		c.log.Debug("superseded result discarded", "slot", j.slotID, "token", j.token, "current", state.machine.Generation())
		state.machine.Settle()
		return
	}
	state.current = &dto.Envelope{SlotID: j.slotID, Token: j.token, Result: result}
	state.machine.Settle()
}
