// Package selection implements the day-selection flow used to apply a
// template to hand-picked days of a month.
//
// States: Idle → SelectingDays → Applying → Idle.
package selection

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mmynk/tutorbook/internal/models"
)

var (
	ErrBusy         = errors.New("a day selection is already in progress")
	ErrNotSelecting = errors.New("no day selection in progress")
	ErrDayOutside   = errors.New("day is outside the displayed month")
)

// State is the current step of the selection flow.
type State int

const (
	Idle State = iota
	SelectingDays
	Applying
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case SelectingDays:
		return "selecting_days"
	case Applying:
		return "applying"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Machine tracks one tutor's day selection. It is not safe for concurrent use.
type Machine struct {
	state  State
	parity models.Parity
	year   int
	month  time.Month
	days   map[int]bool
}

// New returns an idle Machine.
func New() *Machine {
	return &Machine{}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Parity returns the template bucket being applied.
func (m *Machine) Parity() models.Parity {
	return m.parity
}

// Month returns the displayed month.
func (m *Machine) Month() (int, time.Month) {
	return m.year, m.month
}

// Begin starts selecting days of (year, month) for the parity template.
func (m *Machine) Begin(parity models.Parity, year int, month time.Month) error {
	if m.state != Idle {
		return ErrBusy
	}
	if month < time.January || month > time.December {
		return fmt.Errorf("invalid month %d", month)
	}
	m.state = SelectingDays
	m.parity = parity
	m.year = year
	m.month = month
	m.days = make(map[int]bool)
	return nil
}

// Toggle adds or removes a day number and reports whether it is now selected.
func (m *Machine) Toggle(day int) (bool, error) {
	if m.state != SelectingDays {
		return false, ErrNotSelecting
	}
	last := time.Date(m.year, m.month+1, 0, 12, 0, 0, 0, time.UTC).Day()
	if day < 1 || day > last {
		return false, fmt.Errorf("%w: %d", ErrDayOutside, day)
	}
	if m.days[day] {
		delete(m.days, day)
		return false, nil
	}
	m.days[day] = true
	return true, nil
}

// Selected returns the selected day numbers in ascending order.
func (m *Machine) Selected() []int {
	days := make([]int, 0, len(m.days))
	for d := range m.days {
		days = append(days, d)
	}
	sort.Ints(days)
	return days
}

// Confirm moves to Applying, runs apply with the selected days and always
// returns to Idle. The apply error is returned to the caller as is.
func (m *Machine) Confirm(apply func(days []int) error) error {
	if m.state != SelectingDays {
		return ErrNotSelecting
	}
	days := m.Selected()
	m.state = Applying
	defer m.reset()
	return apply(days)
}

// Cancel abandons the selection.
func (m *Machine) Cancel() error {
	if m.state != SelectingDays {
		return ErrNotSelecting
	}
	m.reset()
	return nil
}

func (m *Machine) reset() {
	m.state = Idle
	m.days = nil
}
