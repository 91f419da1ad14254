package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/dgallion1/notegen/internal/docstore"
	"github.com/go-chi/chi/v5"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// handleListDocuments lists stored documents, newest first.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.gen.Store().List()
	if err != nil {
		jsonError(w, "failed to list documents: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"documents": docs})
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	meta, err := s.gen.Store().Meta(chi.URLParam(r, "docID"))
	if err != nil {
		jsonError(w, err.Error(), statusFor(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(meta)
}

func (s *Server) handleDownloadDOCX(w http.ResponseWriter, r *http.Request) {
	f, meta, err := s.gen.Store().OpenDOCX(chi.URLParam(r, "docID"))
	if err != nil {
		jsonError(w, err.Error(), statusFor(err))
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", meta.Filename()))
	http.ServeContent(w, r, meta.Filename(), meta.CreatedAt, f)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	page, err := s.gen.Preview(chi.URLParam(r, "docID"))
	if err != nil {
		jsonError(w, err.Error(), statusFor(err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (s *Server) handleConvertPDF(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	meta, err := s.gen.ConvertPDF(r.Context(), docID)
	if err != nil {
		s.log.Error("pdf conversion failed", "doc_id", docID, "error", err)
		jsonError(w, err.Error(), statusFor(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"document": meta,
		"pdf_url":  fmt.Sprintf("/api/documents/%s/pdf", meta.ID),
	})
}

func (s *Server) handleDownloadPDF(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	store := s.gen.Store()
	meta, err := store.Meta(docID)
	if err != nil {
		jsonError(w, err.Error(), statusFor(err))
		return
	}
	if !meta.HasPDF {
		jsonError(w, "document has no pdf; POST to convert it first", http.StatusNotFound)
		return
	}
	path, err := store.PDFPath(docID)
	if err != nil {
		jsonError(w, err.Error(), statusFor(err))
		return
	}
	f, err := os.Open(path)
	if err != nil {
		jsonError(w, "pdf missing: "+err.Error(), http.StatusNotFound)
		return
	}
	defer f.Close()

	name := meta.Name + ".pdf"
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	http.ServeContent(w, r, name, time.Time{}, f)
}

// handleDeleteDocument deletes a document together with its PDF.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if err := s.gen.Store().Delete(docID); err != nil {
		if !docstore.IsNotFound(err) {
			s.log.Error("delete failed", "doc_id", docID, "error", err)
		}
		jsonError(w, err.Error(), statusFor(err))
		return
	}
	s.log.Info("document deleted", "doc_id", docID)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"deleted": docID})
}
