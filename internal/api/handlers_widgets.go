package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/pinetree/internal/pine"
	"github.com/dgallion1/pinetree/internal/records"
	"github.com/dgallion1/pinetree/internal/session"
	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
)

const prefixRule = "omitempty,classprefix"

type createWidgetRequest struct {
	Records []pine.Record `json:"records" validate:"required"`
	Prefix  string        `json:"prefix" validate:"omitempty,classprefix"`
}

type clickRequest struct {
	NodeID *int64 `json:"node_id" validate:"required"`
	Part   string `json:"part" validate:"required,oneof=icon name hline vline children element"`
}

func (s *Server) handleCreateWidget(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("body exceeds max size (%d bytes)", tooLarge.Limit), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "failed to read body", http.StatusBadRequest)
		return
	}
	var req createWidgetRequest
	if err := json.Unmarshal(body, &req); err != nil {
		jsonError(w, "invalid json body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, err)
		return
	}

	sess, err := s.manager.Create(req.Records, session.CreateOptions{Source: "inline", Prefix: req.Prefix})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeCreated(w, sess)
}

func (s *Server) handleUploadWidget(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	prefix := r.FormValue("prefix")
	if err := s.validate.Var(prefix, prefixRule); err != nil {
		jsonError(w, "invalid prefix: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !records.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}
	loader, err := records.ForFile(filename)
	if err != nil {
		s.writeError(w, err)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	recs, err := loader.Load(bytes.NewReader(data), filename)
	if err != nil {
		jsonError(w, "failed to load records: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	sess, err := s.manager.Create(recs, session.CreateOptions{Source: filename, Prefix: prefix})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeCreated(w, sess)
}

func (s *Server) writeCreated(w http.ResponseWriter, sess *session.Session) {
	markup, err := sess.Markup()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"widget_id": sess.ID,
		"markup":    markup,
		"click_url": fmt.Sprintf("/api/widgets/%s/click", sess.ID),
	})
}

func (s *Server) handleGetWidget(w http.ResponseWriter, r *http.Request) {
	sess, err := s.manager.Get(chi.URLParam(r, "widgetID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	markup, err := sess.Markup()
	if err != nil {
		s.writeError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "json" {
		writeJSON(w, http.StatusOK, map[string]any{
			"widget": sess.Snapshot(),
			"markup": markup,
		})
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(markup))
}

func (s *Server) handleDeleteWidget(w http.ResponseWriter, r *http.Request) {
	if err := s.manager.Delete(chi.URLParam(r, "widgetID")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	var req clickRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 64*1024)).Decode(&req); err != nil {
		jsonError(w, "invalid json body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.manager.Click(chi.URLParam(r, "widgetID"), *req.NodeID, req.Part)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	sess, err := s.manager.Get(chi.URLParam(r, "widgetID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"selected_item_id": sess.SelectedItemID(),
	})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(name)
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
