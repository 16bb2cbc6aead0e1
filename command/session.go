package command

import "time"

// Session is the state of one run of the program: whether the loop must
// continue, and when it started and ended.
type Session struct {
	now     func() time.Time
	running bool
	start   time.Time
	end     time.Time
}

// NewSession starts a session. A nil clock defaults to time.Now.
func NewSession(now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{now: now, running: true, start: now()}
}

// Continue reports whether the loop should read another command.
func (s *Session) Continue() bool { return s.running }

// Stop ends the loop after the current command.
func (s *Session) Stop() { s.running = false }

// Started returns the start time of the session.
func (s *Session) Started() time.Time { return s.start }

// Freeze records the end of the session. Later calls have no effect.
func (s *Session) Freeze() {
	if s.end.IsZero() {
		s.end = s.now()
	}
}

// Uptime returns the session duration, up to now if it is not frozen yet.
func (s *Session) Uptime() time.Duration {
	end := s.end
	if end.IsZero() {
		end = s.now()
	}
	return end.Sub(s.start)
}
