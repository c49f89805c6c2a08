package api

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type session[S any] struct {
	state   S
	touched time.Time
}

// endFunc receives the final state of a session the registry dropped on its
// own, by expiry or eviction.
type endFunc[S any] func(id string, state S)

type ended[S any] struct {
	id    string
	state S
}

// registry holds live page sessions. Every access runs under one mutex so an
// intent is applied atomically. onEnd runs after the lock is released.
type registry[S any] struct {
	mu       sync.Mutex
	sessions map[string]*session[S]
	ttl      time.Duration
	max      int
	now      func() time.Time
	onEnd    endFunc[S]
}

func newRegistry[S any](ttl time.Duration, max int, now func() time.Time, onEnd endFunc[S]) *registry[S] {
	return &registry[S]{
		sessions: make(map[string]*session[S]),
		ttl:      ttl,
		max:      max,
		now:      now,
		onEnd:    onEnd,
	}
}

// create stores state under id, or a fresh id when id is empty. It returns
// the id and the ids evicted to make room.
func (r *registry[S]) create(id string, state S) (string, []string) {
	if id == "" {
		id = uuid.NewString()
	}

	r.mu.Lock()
	now := r.now()
	var dropped []ended[S]
	if r.ttl > 0 {
		for sid, s := range r.sessions {
			if now.Sub(s.touched) > r.ttl {
				dropped = append(dropped, r.drop(sid))
			}
		}
	}
	if r.max > 0 && len(r.sessions) >= r.max {
		oldest, first := "", true
		for sid, s := range r.sessions {
			if first || s.touched.Before(r.sessions[oldest].touched) {
				oldest, first = sid, false
			}
		}
		dropped = append(dropped, r.drop(oldest))
	}
	r.sessions[id] = &session[S]{state: state, touched: now}
	r.mu.Unlock()

	r.end(dropped)
	evicted := make([]string, len(dropped))
	for i, e := range dropped {
		evicted[i] = e.id
	}
	return id, evicted
}

// with runs fn on the session's state under the lock. It returns false when
// the session does not exist or has expired.
func (r *registry[S]) with(id string, fn func(*S)) bool {
	r.mu.Lock()
	s, ok := r.sessions[id]
	if !ok {
		r.mu.Unlock()
		return false
	}
	now := r.now()
	if r.ttl > 0 && now.Sub(s.touched) > r.ttl {
		e := r.drop(id)
		r.mu.Unlock()
		r.end([]ended[S]{e})
		return false
	}
	s.touched = now
	fn(&s.state)
	r.mu.Unlock()
	return true
}

// drop deletes a session. The caller holds the lock.
func (r *registry[S]) drop(id string) ended[S] {
	e := ended[S]{id: id, state: r.sessions[id].state}
	delete(r.sessions, id)
	return e
}

func (r *registry[S]) end(dropped []ended[S]) {
	if r.onEnd == nil {
		return
	}
	for _, e := range dropped {
		r.onEnd(e.id, e.state)
	}
}

// remove deletes a session and returns its final state.
func (r *registry[S]) remove(id string) (S, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		var zero S
		return zero, false
	}
	delete(r.sessions, id)
	return s.state, true
}

func (r *registry[S]) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
