package resolver

import (
	"sync"

	"citefetch/internal/reference"
)

// Session is the state of one resolution run. A fresh Session is
// created for every run so no field can carry over from a previous one.
type Session struct {
	mu sync.Mutex

	Loading    bool
	Progress   int // 0-100
	Err        error
	RootTitle  string
	References []reference.Resolved
	Citation   string
	Generating bool
}

// setProgress raises the progress value; it never goes backwards.
func (s *Session) setProgress(p int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p > s.Progress {
		s.Progress = p
	}
}

// ProgressValue returns the current progress under the session lock.
func (s *Session) ProgressValue() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Progress
}

// SetCitation records the last generated citation text.
func (s *Session) SetCitation(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Citation = text
	s.Generating = false
}

func (s *Session) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Loading = false
	s.Err = err
}

func (s *Session) finish(refs []reference.Resolved) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.References = refs
	s.Loading = false
}
