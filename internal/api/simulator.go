package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/afmlab/internal/simulator"
	"github.com/abhisek/afmlab/internal/store"
)

func (s *Server) createSimulator(w http.ResponseWriter, r *http.Request) {
	sess := simSession{state: simulator.New()}
	id := s.rec.StartPage(r.Context(), store.PageSimulator)
	s.simulators.create(id, sess)
	s.trackSessions()
	writeJSON(w, http.StatusCreated, sessionResp[simulator.Snapshot]{ID: id, Snapshot: sess.state.Snapshot(nil, s.now())})
}

func (s *Server) getSimulator(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var snap simulator.Snapshot
	found := s.simulators.with(id, func(sess *simSession) {
		now := s.now()
		sess.highlights.Expire(now)
		snap = sess.state.Snapshot(&sess.highlights, now)
	})
	if !found {
		writeErr(w, http.StatusNotFound, "unknown simulator session")
		return
	}
	writeJSON(w, http.StatusOK, sessionResp[simulator.Snapshot]{ID: id, Snapshot: snap})
}

func (s *Server) endSimulator(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	final, ok := s.simulators.remove(id)
	if !ok {
		writeErr(w, http.StatusNotFound, "unknown simulator session")
		return
	}
	s.trackSessions()
	s.rec.SaveSnapshot(r.Context(), id, store.PageSimulator, final.state.Snapshot(nil, s.now()))
	s.rec.EndPage(r.Context(), id, store.PageSimulator)
	w.WriteHeader(http.StatusNoContent)
}

type paramReq struct {
	Param string   `json:"param"`
	Value *float64 `json:"value"`
}

func (s *Server) setSimulatorParam(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req paramReq
	if err := decodeJSON(w, r, &req); err != nil {
		s.metrics.intent(store.PageSimulator, "param", outcomeRejected)
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := simulator.ParseParam(req.Param)
	if err != nil {
		s.metrics.intent(store.PageSimulator, "param", outcomeRejected)
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Value == nil {
		s.metrics.intent(store.PageSimulator, "param", outcomeRejected)
		writeErr(w, http.StatusBadRequest, "value is required")
		return
	}

	var after simulator.State
	var changed []simulator.Param
	var snap simulator.Snapshot
	found := s.simulators.with(id, func(sess *simSession) {
		sess.state, changed = sess.state.Apply(simulator.SetParamEvent{Param: p, Value: *req.Value})
		after = sess.state
		snap = after.Snapshot(&sess.highlights, s.now())
	})
	if !found {
		writeErr(w, http.StatusNotFound, "unknown simulator session")
		return
	}

	if len(changed) > 0 {
		s.metrics.intent(store.PageSimulator, "param", outcomeApplied)
		s.rec.ParamChange(r.Context(), id, p, after)
	} else {
		s.metrics.intent(store.PageSimulator, "param", outcomeNoop)
	}
	writeJSON(w, http.StatusOK, sessionResp[simulator.Snapshot]{ID: id, Snapshot: snap})
}

type responseReq struct {
	Correct *bool `json:"correct"`
}

func (s *Server) simulateResponse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req responseReq
	if err := decodeJSON(w, r, &req); err != nil {
		s.metrics.intent(store.PageSimulator, "response", outcomeRejected)
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Correct == nil {
		s.metrics.intent(store.PageSimulator, "response", outcomeRejected)
		writeErr(w, http.StatusBadRequest, "correct is required")
		return
	}

	var after simulator.State
	var snap simulator.Snapshot
	found := s.simulators.with(id, func(sess *simSession) {
		now := s.now()
		var changed []simulator.Param
		sess.state, changed = sess.state.Apply(simulator.SimulateEvent{Correct: *req.Correct})
		sess.highlights.Mark(now, simulator.HighlightDuration, changed...)
		after = sess.state
		snap = after.Snapshot(&sess.highlights, now)
	})
	if !found {
		writeErr(w, http.StatusNotFound, "unknown simulator session")
		return
	}

	s.metrics.intent(store.PageSimulator, "response", outcomeApplied)
	s.metrics.responses.WithLabelValues(strconv.FormatBool(*req.Correct)).Inc()
	s.rec.SimulatorResponse(r.Context(), id, after)
	writeJSON(w, http.StatusOK, sessionResp[simulator.Snapshot]{ID: id, Snapshot: snap})
}
