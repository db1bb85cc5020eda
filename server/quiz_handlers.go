package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/KomalYerkal/Preparation-of-Soap/quiz"
)

type answerRsp struct {
	Feedback quiz.Feedback `json:"feedback"`
	State    quiz.State    `json:"state"`
}

func (s *Server) quizState(w http.ResponseWriter, r *http.Request) {
	sess := s.findSessionOr404(w, r)
	if sess == nil {
		return
	}

	writeJSON(w, http.StatusOK, sess.Quiz.State())
}

func (s *Server) quizNext(w http.ResponseWriter, r *http.Request) {
	sess := s.findSessionOr404(w, r)
	if sess == nil {
		return
	}

	sess.Quiz.Next()
	writeJSON(w, http.StatusOK, sess.Quiz.State())
}

func (s *Server) quizPrevious(w http.ResponseWriter, r *http.Request) {
	sess := s.findSessionOr404(w, r)
	if sess == nil {
		return
	}

	sess.Quiz.Previous()
	writeJSON(w, http.StatusOK, sess.Quiz.State())
}

func (s *Server) quizAnswer(w http.ResponseWriter, r *http.Request) {
	sess := s.findSessionOr404(w, r)
	if sess == nil {
		return
	}

	raw := mux.Vars(r)["option"]
	option, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %q", quiz.ErrNoSuchOption, raw))
		return
	}

	fb, err := sess.Quiz.Check(option)
	if errors.Is(err, quiz.ErrNoSuchOption) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, answerRsp{Feedback: fb, State: sess.Quiz.State()})
}
