package gradesync

import (
	"sync"
	"time"
)

// NoticeLevel classifies a user-facing message.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeError
)

// Notice is a success or failure message for the user.
type Notice struct {
	Level NoticeLevel
	Text  string
	Time  time.Time
}

// Notifier receives every notice the adapter emits.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// NoticeLog is a Notifier that keeps every notice in memory. Safe for
// concurrent use.
type NoticeLog struct {
	mu      sync.Mutex
	notices []Notice
}

func (l *NoticeLog) Notify(n Notice) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.notices = append(l.notices, n)
}

// Notices returns a copy of everything received so far.
func (l *NoticeLog) Notices() []Notice {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Notice, len(l.notices))
	copy(out, l.notices)
	return out
}

// Latest returns the most recent notice.
func (l *NoticeLog) Latest() (Notice, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.notices) == 0 {
		return Notice{}, false
	}
	return l.notices[len(l.notices)-1], true
}

type discardNotifier struct{}

func (discardNotifier) Notify(Notice) {}
