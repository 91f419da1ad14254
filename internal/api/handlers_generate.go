package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dgallion1/notegen/internal/convert"
	"github.com/dgallion1/notegen/internal/docstore"
	"github.com/dgallion1/notegen/internal/parser"
	"github.com/dgallion1/notegen/internal/pipeline"
)

type generateRequest struct {
	Name string `json:"name"`
	Text string `json:"text"`
	PDF  bool   `json:"pdf"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	var req pipeline.Request
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		var ok bool
		if req, ok = s.readMultipart(w, r); !ok {
			return
		}
	default:
		var body generateRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			jsonError(w, "invalid json body: "+err.Error(), http.StatusBadRequest)
			return
		}
		req = pipeline.Request{Name: body.Name, Text: body.Text, PDF: body.PDF}
	}
	req.Name = documentName(req.Name)

	job, err := s.gen.Generate(r.Context(), req)
	if err != nil {
		s.writeGenerateError(w, job, err)
		return
	}

	snap := job.Snapshot()
	meta, err := s.gen.Store().Meta(snap.DocID)
	if err != nil {
		jsonError(w, "read document: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Location", "/api/documents/"+meta.ID)
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"job":         snap,
		"document":    meta,
		"docx_url":    fmt.Sprintf("/api/documents/%s/docx", meta.ID),
		"preview_url": fmt.Sprintf("/api/documents/%s/preview", meta.ID),
	})
}

func (s *Server) readMultipart(w http.ResponseWriter, r *http.Request) (pipeline.Request, bool) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return pipeline.Request{}, false
	}
	defer r.MultipartForm.RemoveAll()

	req := pipeline.Request{
		Name: r.FormValue("name"),
		Text: r.FormValue("text"),
	}
	req.PDF, _ = strconv.ParseBool(r.FormValue("pdf"))

	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return req, true
	}
	if err != nil {
		jsonError(w, "invalid file: "+err.Error(), http.StatusBadRequest)
		return pipeline.Request{}, false
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return pipeline.Request{}, false
	}

	// Read file data.
	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return pipeline.Request{}, false
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return pipeline.Request{}, false
	}
	req.Filename = filename
	req.Data = data
	return req, true
}

// writeGenerateError maps pipeline failures to status codes. A job that got
// far enough to store its document keeps the doc_id in the response.
func (s *Server) writeGenerateError(w http.ResponseWriter, job *pipeline.Job, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError && job != nil {
		// Import failures are the caller's input.
		switch job.Snapshot().Phase {
		case "parsing", "building":
			code = http.StatusBadRequest
		}
	}
	if job == nil {
		jsonError(w, err.Error(), code)
		return
	}
	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{
		"error":  err.Error(),
		"job_id": snap.ID,
		"doc_id": snap.DocID,
		"phase":  snap.Phase,
	})
}

// statusFor maps the recoverable error kinds to HTTP status codes.
// Serialization failures and anything unrecognized are a 500.
func statusFor(err error) int {
	var convErr *convert.ConversionError
	switch {
	case errors.Is(err, pipeline.ErrEmptyInput):
		return http.StatusBadRequest
	case errors.Is(err, pipeline.ErrNoConverter):
		return http.StatusServiceUnavailable
	case docstore.IsNotFound(err):
		return http.StatusNotFound
	case errors.As(err, &convErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}

// documentName turns a requested name into a safe base name without the
// .docx extension. Empty stays empty so the store applies its default.
func documentName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = sanitizeFilename(name)
	if strings.EqualFold(filepath.Ext(name), ".docx") {
		name = name[:len(name)-len(".docx")]
	}
	if name == "" || name == "unnamed" {
		return ""
	}
	return name
}
