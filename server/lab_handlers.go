package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/syifan/goseth"

	"github.com/KomalYerkal/Preparation-of-Soap/lab"
	"github.com/KomalYerkal/Preparation-of-Soap/quiz"
)

type sessionRsp struct {
	ID   string          `json:"id"`
	Lab  lab.MixtureView `json:"lab"`
	Quiz quiz.State      `json:"quiz"`
}

func (s *Server) createSession(w http.ResponseWriter, _ *http.Request) {
	sess := s.sessions.Create()

	s.logger.Debug().Str("session", sess.ID).Msg("session created")
	writeJSON(w, http.StatusCreated, sessionRsp{
		ID:   sess.ID,
		Lab:  sess.Lab.View(),
		Quiz: sess.Quiz.State(),
	})
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	sess := s.findSessionOr404(w, r)
	if sess == nil {
		return
	}

	s.sessions.Delete(sess.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) labView(w http.ResponseWriter, r *http.Request) {
	sess := s.findSessionOr404(w, r)
	if sess == nil {
		return
	}

	writeJSON(w, http.StatusOK, sess.Lab.View())
}

func (s *Server) addIngredient(w http.ResponseWriter, r *http.Request) {
	sess := s.findSessionOr404(w, r)
	if sess == nil {
		return
	}

	view, err := sess.Lab.AddIngredientByName(mux.Vars(r)["type"])
	if errors.Is(err, lab.ErrInvalidIngredient) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (s *Server) resetLab(w http.ResponseWriter, r *http.Request) {
	sess := s.findSessionOr404(w, r)
	if sess == nil {
		return
	}

	writeJSON(w, http.StatusOK, sess.Lab.Reset())
}

type inspectSnapshot struct {
	ID          string
	Created     time.Time
	Generation  uint64
	Ingredients string
	View        lab.MixtureView
	Quiz        quiz.State
}

func (s *Server) inspect(w http.ResponseWriter, r *http.Request) {
	sess := s.findSessionOr404(w, r)
	if sess == nil {
		return
	}

	snapshot := &inspectSnapshot{
		ID:          sess.ID,
		Created:     sess.Created,
		Generation:  sess.Lab.Generation(),
		Ingredients: sess.Lab.Ingredients().String(),
		View:        sess.Lab.View(),
		Quiz:        sess.Quiz.State(),
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(snapshot)
	serializer.SetMaxDepth(2)

	w.Header().Set("Content-Type", "application/json")
	if err := serializer.Serialize(w); err != nil {
		s.logger.Error().Err(err).Str("session", sess.ID).Msg("inspect failed")
	}
}
