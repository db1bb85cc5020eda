package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/KomalYerkal/Preparation-of-Soap/session"
)

type errorRsp struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorRsp{Error: err.Error()})
}

type indexRsp struct {
	Name   string   `json:"name"`
	Routes []string `json:"routes"`
}

// index lists every registered route template.
func (s *Server) index(w http.ResponseWriter, _ *http.Request) {
	rsp := indexRsp{Name: "soaplab"}

	_ = s.router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		tpl, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		methods, _ := route.GetMethods()
		for _, m := range methods {
			rsp.Routes = append(rsp.Routes, m+" "+tpl)
		}
		return nil
	})

	writeJSON(w, http.StatusOK, rsp)
}

func (s *Server) findSessionOr404(
	w http.ResponseWriter,
	r *http.Request,
) *session.Session {
	sess, err := s.sessions.Get(mux.Vars(r)["id"])
	if errors.Is(err, session.ErrUnknownSession) {
		writeError(w, http.StatusNotFound, err)
		return nil
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return nil
	}
	return sess
}
