package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/custodia-labs/bureau-cli/internal/core/domain"
)

// uploadField is the multipart form field carrying the report.
const uploadField = "file"

// UploadResponse is the body of a successful upload.
type UploadResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > s.cfg.MaxUploadBytes {
		writeError(w, http.StatusRequestEntityTooLarge, ReasonTooLarge,
			fmt.Sprintf("Upload exceeds %d bytes", s.cfg.MaxUploadBytes), "")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, ReasonTooLarge,
				fmt.Sprintf("Upload exceeds %d bytes", s.cfg.MaxUploadBytes), err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, ReasonNoFile, "No file uploaded", err.Error())
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		writeError(w, http.StatusBadRequest, ReasonNoFile, "No file uploaded", err.Error())
		return
	}
	defer file.Close()

	if !(domain.Upload{Name: header.Filename}).IsXML() {
		writeServiceError(w, fmt.Errorf("%s: %w", header.Filename, domain.ErrUnsupportedFile))
		return
	}

	content, err := s.spool(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, ReasonStorageFailure, "Failed to store upload", err.Error())
		return
	}

	report, err := s.ingest.Ingest(r.Context(), domain.Upload{Name: header.Filename, Content: content})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{ID: report.ID, Message: "Uploaded and parsed"})
}

// spool copies an upload to a temporary file in the upload directory and
// reads it back. The temporary file is always removed.
func (s *Server) spool(src io.Reader) ([]byte, error) {
	tmp, err := os.CreateTemp(s.cfg.UploadDir, "bureau-upload-*.xml")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, src); err != nil {
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind temp file: %w", err)
	}
	return io.ReadAll(tmp)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		writeServiceError(w, err)
		return
	}

	listings, err := s.reports.List(r.Context(), domain.ListOptions{Limit: limit, Offset: offset})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if listings == nil {
		listings = []domain.ReportListing{}
	}
	writeJSON(w, http.StatusOK, listings)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.reports.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleReportByPAN(w http.ResponseWriter, r *http.Request) {
	report, err := s.reports.GetByPAN(r.Context(), chi.URLParam(r, "pan"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// queryInt parses an optional non-negative integer query parameter.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer: %w", name, domain.ErrInvalidInput)
	}
	return n, nil
}
