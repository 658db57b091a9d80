package delfos

import "time"

// B3 trading hours. The exchange opens at 10:00 and closes at 19:00 local
// time; the engine does not model auctions or after-market windows.
const (
	marketOpenHour  = 10
	marketCloseHour = 19
)

// Clock abstracts the wall clock so sessions can be pinned in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// Session is a trading session: the analysis date every portfolio metric is
// computed "as of", plus the clock that decides whether that date is still
// being traded.
type Session struct {
	date  Date
	clock Clock
}

// NewSession returns a session on today's date, on the system clock.
func NewSession() *Session {
	return NewSessionAt(Date{}, systemClock{})
}

// NewSessionAt returns a session pinned to a date and clock. A zero date
// means the clock's current day.
func NewSessionAt(on Date, clock Clock) *Session {
	if clock == nil {
		clock = systemClock{}
	}
	if on.IsZero() {
		now := clock.Now()
		on = NewDate(now.Year(), now.Month(), now.Day())
	}
	return &Session{date: on, clock: clock}
}

// On returns the session's analysis date.
func (s *Session) On() Date { return s.date }

// IsLive reports whether the session's date is the current day and the
// market is currently open. Only a live session accepts movements dated on
// the session date itself.
func (s *Session) IsLive() bool {
	now := s.clock.Now()
	today := NewDate(now.Year(), now.Month(), now.Day())
	if s.date != today {
		return false
	}
	return now.Hour() >= marketOpenHour && now.Hour() < marketCloseHour
}
