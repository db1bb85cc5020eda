package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"runtime/pprof"
	"time"

	"github.com/google/pprof/profile"
	"github.com/shirou/gopsutil/process"

	"github.com/KomalYerkal/Preparation-of-Soap/recipe"
	"github.com/KomalYerkal/Preparation-of-Soap/theme"
)

// ClientCookie names the cookie that identifies a visitor's browser.
const ClientCookie = "soaplab_client"

type recipeRsp struct {
	recipe.Result
	Water    string `json:"water"`
	Lye      string `json:"lye"`
	Superfat string `json:"superfat"`
}

func (s *Server) recipe(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res := recipe.Calculate(recipe.ParseInput(q.Get("oil"), q.Get("superfat")))

	writeJSON(w, http.StatusOK, recipeRsp{
		Result:   res,
		Water:    res.WaterLabel(),
		Lye:      res.LyeLabel(),
		Superfat: res.SuperfatLabel(),
	})
}

type themeReq struct {
	Theme string `json:"theme"`
}

type themeRsp struct {
	Theme theme.Theme `json:"theme"`
}

// clientID reads the visitor cookie, issuing a new one when missing.
func (s *Server) clientID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(ClientCookie); err == nil && c.Value != "" {
		return c.Value
	}

	id := s.clientIDs.Generate()
	http.SetCookie(w, &http.Cookie{
		Name:     ClientCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().AddDate(1, 0, 0),
	})
	return id
}

func (s *Server) getTheme(w http.ResponseWriter, r *http.Request) {
	client := s.clientID(w, r)

	t, err := s.themes.Load(r.Context(), client)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, themeRsp{Theme: t})
}

func (s *Server) putTheme(w http.ResponseWriter, r *http.Request) {
	client := s.clientID(w, r)

	var req themeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode theme: %w", err))
		return
	}

	t, err := theme.Parse(req.Theme)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.themes.Save(r.Context(), client, t); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, themeRsp{Theme: t})
}

func (s *Server) toggleTheme(w http.ResponseWriter, r *http.Request) {
	client := s.clientID(w, r)

	t, err := theme.Toggle(r.Context(), s.themes, client)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, themeRsp{Theme: t})
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (s *Server) listResources(w http.ResponseWriter, _ *http.Request) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	cpuPercent, err := proc.CPUPercent()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	memory, err := proc.MemoryInfo()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memory.RSS,
	})
}

func (s *Server) collectProfile(w http.ResponseWriter, r *http.Request) {
	buf := bytes.NewBuffer(nil)

	if err := pprof.StartCPUProfile(buf); err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}

	select {
	case <-time.After(s.profileDuration):
	case <-r.Context().Done():
	}

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, prof)
}
