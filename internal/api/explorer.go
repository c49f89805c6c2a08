package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/afmlab/internal/explorer"
	"github.com/abhisek/afmlab/internal/store"
)

func (s *Server) createExplorer(w http.ResponseWriter, r *http.Request) {
	state := explorer.New()
	id := s.rec.StartPage(r.Context(), store.PageExplorer)
	s.explorers.create(id, state)
	s.trackSessions()
	writeJSON(w, http.StatusCreated, sessionResp[explorer.Snapshot]{ID: id, Snapshot: state.Snapshot()})
}

func (s *Server) getExplorer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var snap explorer.Snapshot
	if !s.explorers.with(id, func(st *explorer.State) { snap = st.Snapshot() }) {
		writeErr(w, http.StatusNotFound, "unknown explorer session")
		return
	}
	writeJSON(w, http.StatusOK, sessionResp[explorer.Snapshot]{ID: id, Snapshot: snap})
}

func (s *Server) endExplorer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	final, ok := s.explorers.remove(id)
	if !ok {
		writeErr(w, http.StatusNotFound, "unknown explorer session")
		return
	}
	s.trackSessions()
	s.rec.SaveSnapshot(r.Context(), id, store.PageExplorer, final.Snapshot())
	s.rec.EndPage(r.Context(), id, store.PageExplorer)
	w.WriteHeader(http.StatusNoContent)
}

type answerReq struct {
	Option *int `json:"option"`
}

func (s *Server) answerExplorer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req answerReq
	if err := decodeJSON(w, r, &req); err != nil {
		s.metrics.intent(store.PageExplorer, "answer", outcomeRejected)
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Option == nil {
		s.metrics.intent(store.PageExplorer, "answer", outcomeRejected)
		writeErr(w, http.StatusBadRequest, "option is required")
		return
	}

	var before, after explorer.State
	var badOption error
	found := s.explorers.with(id, func(st *explorer.State) {
		before = *st
		// A completed explorer has no task; the answer is a no-op there.
		if t, ok := st.CurrentTask(); ok && (*req.Option < 0 || *req.Option >= len(t.Options)) {
			badOption = fmt.Errorf("option %d out of range [0, %d)", *req.Option, len(t.Options))
			return
		}
		*st = st.Apply(explorer.SelectAnswerEvent{Option: *req.Option})
		after = *st
	})
	switch {
	case !found:
		writeErr(w, http.StatusNotFound, "unknown explorer session")
		return
	case badOption != nil:
		s.metrics.intent(store.PageExplorer, "answer", outcomeRejected)
		writeErr(w, http.StatusBadRequest, badOption.Error())
		return
	}

	if after.Answered && !before.Answered {
		s.metrics.intent(store.PageExplorer, "answer", outcomeApplied)
		s.rec.ExplorerAnswer(r.Context(), id, before, after)
	} else {
		s.metrics.intent(store.PageExplorer, "answer", outcomeNoop)
	}
	writeJSON(w, http.StatusOK, sessionResp[explorer.Snapshot]{ID: id, Snapshot: after.Snapshot()})
}

func (s *Server) nextExplorer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var before, after explorer.State
	found := s.explorers.with(id, func(st *explorer.State) {
		before = *st
		*st = st.Apply(explorer.NextTaskEvent{})
		after = *st
	})
	if !found {
		writeErr(w, http.StatusNotFound, "unknown explorer session")
		return
	}

	outcome := outcomeNoop
	if after.TaskIndex != before.TaskIndex {
		outcome = outcomeApplied
	}
	s.metrics.intent(store.PageExplorer, "next", outcome)
	writeJSON(w, http.StatusOK, sessionResp[explorer.Snapshot]{ID: id, Snapshot: after.Snapshot()})
}
