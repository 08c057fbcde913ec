package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/abhisek/mathsheet/internal/entitlement"
	"github.com/abhisek/mathsheet/internal/export"
	"github.com/abhisek/mathsheet/internal/session"
	"github.com/abhisek/mathsheet/internal/worksheet"
)

const maxBodyBytes = 1 << 16

type loginRequest struct {
	Email string `json:"email"`
}

type loginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expiresAt"`
	User      entitlement.User `json:"user"`
	View      session.View     `json:"view"`
}

type generateRequest struct {
	Level      string `json:"level"`
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
}

type blockedResponse struct {
	Error  string            `json:"error"`
	Notice string            `json:"notice"`
	Offer  entitlement.Offer `json:"offer"`
	View   session.View      `json:"view"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := s.sessions.Login(req.Email)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, exp, err := s.tokens.Issue(sess.ID)
	if err != nil {
		log.Printf("Failed to issue token: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	s.saveCookie(w, r, sess.ID)

	view := sess.Controller.View()
	writeJSON(w, http.StatusOK, loginResponse{
		Token:     token,
		ExpiresAt: exp,
		User:      view.User,
		View:      view,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	if err := s.sessions.Logout(sess.ID); err != nil && !errors.Is(err, session.ErrSessionNotFound) {
		log.Printf("Logout error: %v", err)
	}
	s.clearCookie(w, r)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionFrom(r.Context()).Controller.View())
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sel, err := worksheet.ParseSelection(req.Level, req.Topic, req.Difficulty)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctrl := sessionFrom(r.Context()).Controller

	// The generator bounds its own call; a client hanging up must not
	// abandon a generation that has already been charged.
	out, err := ctrl.Generate(context.WithoutCancel(r.Context()), sel)
	switch {
	case errors.Is(err, session.ErrGenerationInFlight):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		log.Printf("Generate error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to generate worksheet")
		return
	}

	if out.State == session.StateBlocked {
		writeJSON(w, http.StatusPaymentRequired, blockedResponse{
			Error:  "free worksheet allowance used up",
			Notice: entitlement.BlockedNotice,
			Offer:  *out.Offer,
			View:   ctrl.View(),
		})
		return
	}
	writeJSON(w, http.StatusOK, ctrl.View())
}

func (s *Server) handleCurrent(w http.ResponseWriter, r *http.Request) {
	ws := sessionFrom(r.Context()).Controller.Worksheet()
	if ws == nil {
		writeError(w, http.StatusNotFound, session.ErrNoWorksheet.Error())
		return
	}
	writeJSON(w, http.StatusOK, ws)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	includeAnswers := false
	if v := q.Get("answers"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid answers flag %q", v))
			return
		}
		includeAnswers = b
	}
	exp, err := export.ForFormat(q.Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctrl := sessionFrom(r.Context()).Controller
	ws := ctrl.Worksheet()
	if ws == nil {
		writeError(w, http.StatusNotFound, session.ErrNoWorksheet.Error())
		return
	}

	// Render fully before writing headers so a failed export is a clean 500.
	var buf bytes.Buffer
	if err := exp.Export(&buf, ws, includeAnswers); err != nil {
		log.Printf("Export error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to export worksheet")
		return
	}

	w.Header().Set("Content-Type", exp.ContentType())
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.Filename(ws, includeAnswers, exp.Extension())))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Download write error: %v", err)
	}
}

func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	ctrl := sessionFrom(r.Context()).Controller
	if err := ctrl.Upgrade(); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ctrl.View())
}

func (s *Server) handleDismissUpgrade(w http.ResponseWriter, r *http.Request) {
	ctrl := sessionFrom(r.Context()).Controller
	ctrl.DismissUpgrade()
	writeJSON(w, http.StatusOK, ctrl.View())
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Response encode error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
