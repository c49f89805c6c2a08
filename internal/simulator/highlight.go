package simulator

import (
	"maps"
	"slices"
	"time"
)

// HighlightDuration is how long a changed parameter stays highlighted.
const HighlightDuration = time.Second

// Highlights tracks which parameters are highlighted and until when.
// The zero value is ready to use.
type Highlights struct {
	until map[Param]time.Time
}

// Mark highlights each param until now+d. A later mark extends an earlier one.
func (h *Highlights) Mark(now time.Time, d time.Duration, params ...Param) {
	if h.until == nil {
		h.until = make(map[Param]time.Time)
	}
	exp := now.Add(d)
	for _, p := range params {
		if exp.After(h.until[p]) {
			h.until[p] = exp
		}
	}
}

// IsActive reports whether p is highlighted at now.
func (h *Highlights) IsActive(p Param, now time.Time) bool {
	exp, ok := h.until[p]
	return ok && now.Before(exp)
}

// Active returns the highlighted params at now in display order.
func (h *Highlights) Active(now time.Time) []Param {
	var out []Param
	for _, p := range Params() {
		if h.IsActive(p, now) {
			out = append(out, p)
		}
	}
	return out
}

// Expire drops highlights that have ended by now and reports whether any
// remain.
func (h *Highlights) Expire(now time.Time) bool {
	maps.DeleteFunc(h.until, func(_ Param, exp time.Time) bool {
		return !now.Before(exp)
	})
	return len(h.until) > 0
}

// Next returns the earliest pending expiry, if any.
func (h *Highlights) Next() (time.Time, bool) {
	if len(h.until) == 0 {
		return time.Time{}, false
	}
	times := slices.Collect(maps.Values(h.until))
	return slices.MinFunc(times, func(a, b time.Time) int { return a.Compare(b) }), true
}
