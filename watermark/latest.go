package watermark

import (
	"sync"
	"time"
)

// Ticket identifies one preview computation within a session.
type Ticket struct {
	Session string
	Gen     uint64
}

type generation struct {
	gen  uint64
	seen time.Time
}

// Latest is a last-write-wins gate for preview renders. Every new render of a
// session supersedes the ones still in flight; a superseded result must be
// dropped rather than shown.
type Latest struct {
	mu       sync.Mutex
	sessions map[string]generation
	ttl      time.Duration
	now      func() time.Time
}

// NewLatest returns a gate that forgets sessions idle for longer than ttl.
func NewLatest(ttl time.Duration) *Latest {
	return &Latest{
		sessions: make(map[string]generation),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Begin starts a new computation for session and supersedes earlier ones.
func (l *Latest) Begin(session string) Ticket {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.evict(now)
	g := l.sessions[session]
	g.gen++
	g.seen = now
	l.sessions[session] = g
	return Ticket{Session: session, Gen: g.gen}
}

// Current reports whether t is still the newest computation of its session.
func (l *Latest) Current(t Ticket) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	g, ok := l.sessions[t.Session]
	return ok && g.gen == t.Gen
}

func (l *Latest) sessionCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.sessions)
}

func (l *Latest) evict(now time.Time) {
	if l.ttl <= 0 {
		return
	}
	for s, g := range l.sessions {
		if now.Sub(g.seen) > l.ttl {
			delete(l.sessions, s)
		}
	}
}
