package monitor

import (
	"slices"

	"github.com/ezrec/sdb/expr"
)

// Watchpoint stops execution when the value of its expression changes.
type Watchpoint struct {
	No    int
	Expr  string
	Value expr.Word
}

// Watchpoints returns the active watchpoints, in creation order.
func (m *Monitor) Watchpoints() []*Watchpoint {
	return m.watches
}

// AddWatchpoint creates a watchpoint. The expression must evaluate now.
func (m *Monitor) AddWatchpoint(text string) (wp *Watchpoint, err error) {
	value, err := m.Evaluator.Evaluate(text)
	if err != nil {
		return
	}

	no, ok := m.free.Pop()
	if !ok {
		err = ErrWatchpointFull
		return
	}

	wp = &Watchpoint{No: no, Expr: text, Value: value}
	m.watches = append(m.watches, wp)
	return
}

// DeleteWatchpoint removes a watchpoint and frees its number.
func (m *Monitor) DeleteWatchpoint(no int) (err error) {
	index := slices.IndexFunc(m.watches, func(wp *Watchpoint) bool { return wp.No == no })
	if index < 0 {
		err = ErrNoWatchpoint{No: no}
		return
	}

	m.watches = slices.Delete(m.watches, index, index+1)
	m.free.Push(no)
	return
}

// checkWatchpoints re-evaluates every watchpoint, reporting the changed
// ones. Returns true if any changed.
func (m *Monitor) checkWatchpoints() (triggered bool) {
	for _, wp := range m.watches {
		value, err := m.Evaluator.Evaluate(wp.Expr)
		if err != nil {
			logger.Warnf("watchpoint %d: %v", wp.No, err)
			continue
		}

		if value == wp.Value {
			continue
		}

		m.printf("\nWatchpoint %d: %s\n\n", wp.No, wp.Expr)
		m.printf("Old value = %d (0x%08x)\n", wp.Value, wp.Value)
		m.printf("New value = %d (0x%08x)\n", value, value)

		wp.Value = value
		triggered = true
	}

	return
}
