package wizard

import "strconv"

// Event triggers a step transition.
type Event string

const (
	EventNext  Event = "next"
	EventPrev  Event = "prev"
	EventReset Event = "reset"
)

// gotoEvent names the unconditional jump to n.
func gotoEvent(n Step) Event {
	return Event("goto_" + strconv.Itoa(int(n)))
}

// guard decides whether a transition may fire for the current state.
type guard func(from Step, s State) bool

type transition struct {
	to     Step
	guards []guard
}

// machine is the step transition table. Several transitions may be registered
// for one (step, event) pair; the first whose guards all pass wins.
type machine struct {
	current     Step
	initial     Step
	transitions map[Step]map[Event][]transition
}

func newMachine(initial Step) *machine {
	return &machine{
		current:     initial,
		initial:     initial,
		transitions: make(map[Step]map[Event][]transition),
	}
}

func (m *machine) add(from, to Step, event Event, guards ...guard) {
	if _, ok := m.transitions[from]; !ok {
		m.transitions[from] = make(map[Event][]transition)
	}
	m.transitions[from][event] = append(m.transitions[from][event], transition{to: to, guards: guards})
}

func (m *machine) fire(event Event, s State) error {
	candidates := m.transitions[m.current][event]
	if len(candidates) == 0 {
		return &NoTransitionError{Step: m.current, Event: event}
	}

	for _, t := range candidates {
		if passes(t.guards, m.current, s) {
			m.current = t.to
			return nil
		}
	}
	return &TransitionRejectedError{Step: m.current, Event: event}
}

func (m *machine) canFire(event Event, s State) bool {
	for _, t := range m.transitions[m.current][event] {
		if passes(t.guards, m.current, s) {
			return true
		}
	}
	return false
}

func passes(guards []guard, from Step, s State) bool {
	for _, g := range guards {
		if !g(from, s) {
			return false
		}
	}
	return true
}

// stepGuard gates a transition on CanAdvance for the step being left.
func stepGuard(from Step, s State) bool {
	return CanAdvance(from, s)
}

// newStepMachine builds the wizard table: guarded next, free prev, free goto
// between any two steps, and reset back to the first step.
func newStepMachine() *machine {
	m := newMachine(FirstStep)
	for s := FirstStep; s <= LastStep; s++ {
		if s < LastStep {
			m.add(s, s+1, EventNext, stepGuard)
		}
		if s > FirstStep {
			m.add(s, s-1, EventPrev)
		}
		for n := FirstStep; n <= LastStep; n++ {
			m.add(s, n, gotoEvent(n))
		}
		m.add(s, m.initial, EventReset)
	}
	return m
}
