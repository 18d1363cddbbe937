package domain

// Phase is the slot lifecycle: Idle → Running → (Delivering | Superseded) →
// Idle. Arrive moves the slot into one of the transient phases; Settle
// returns it to Idle once the coordinator has handed off (or dropped) the
// result.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseRunning    Phase = "running"
	PhaseDelivering Phase = "delivering"
	PhaseSuperseded Phase = "superseded"
)

// Decision is the verdict on an arriving result's token.
type Decision int

const (
	DecisionAccept Decision = iota
	DecisionDiscard
)

// Slot tracks request freshness for one analytics surface. The generation
// counter increases on every submit; a result is accepted only when its token
// still equals the counter, which makes delivery order match submission order
// regardless of completion order. Not safe for concurrent use: the owning
// coordinator serializes access.
type Slot struct {
	phase      Phase
	generation uint64
	accepted   uint64
}

func NewSlot() *Slot {
	return &Slot{phase: PhaseIdle}
}

func (s *Slot) Phase() Phase { return s.phase }

// Generation is the token of the most recent submission.
func (s *Slot) Generation() uint64 { return s.generation }

// Accepted is the token of the last delivered result, zero if none yet.
func (s *Slot) Accepted() uint64 { return s.accepted }

// Submit stamps a new request. A prior running computation is not cancelled;
// it will simply be superseded on arrival.
func (s *Slot) Submit() uint64 {
	s.generation++
	s.phase = PhaseRunning
	return s.generation
}

// Arrive judges a completed result against the current generation.
func (s *Slot) Arrive(token uint64) Decision {
	if token != s.generation {
		s.phase = PhaseSuperseded
		return DecisionDiscard
	}
	s.phase = PhaseDelivering
	s.accepted = token
	return DecisionAccept
}

// Settle returns the slot to Idle after a Delivering or Superseded arrival.
// A slot still waiting on a newer in-flight request stays Running.
func (s *Slot) Settle() {
	if s.accepted == s.generation {
		s.phase = PhaseIdle
		return
	}
	s.phase = PhaseRunning
}
