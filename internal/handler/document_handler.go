package handler

import (
	"io"
	"net/http"

	"chms-be/internal/middleware"
	"chms-be/internal/service"

	"github.com/go-chi/chi/v5"
)

// maxUploadSize caps document uploads at 25 MB
const maxUploadSize = 25 << 20

type DocumentHandler struct {
	documentService *service.DocumentService
	calendarService *service.CalendarService
}

func NewDocumentHandler(documentService *service.DocumentService, calendarService *service.CalendarService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		calendarService: calendarService,
	}
}

// List handles GET /api/v1/teams/{teamID}/documents
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	teamID := chi.URLParam(r, "teamID")

	docs, err := h.documentService.GetDocuments(ctx, teamID)
	if err != nil {
		respondError(w, err, "Failed to load documents")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"documents": docs})
}

// Upload handles POST /api/v1/teams/{teamID}/documents. The body is multipart
// form data with the file under "file", an optional "name" override and an
// optional "event_id" linking the document to a calendar event.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	teamID := chi.URLParam(r, "teamID")

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid multipart body")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "A file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	var uploadedBy string
	if claims := middleware.ClaimsFromContext(ctx); claims != nil {
		uploadedBy = claims.Sub
	}

	doc, err := h.documentService.UploadDocument(ctx, service.UploadRequest{
		TeamID:      teamID,
		DisplayName: r.FormValue("name"),
		SourceName:  header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
		EventID:     r.FormValue("event_id"),
		UploadedBy:  uploadedBy,
	})
	if err != nil {
		respondError(w, err, "Failed to upload document")
		return
	}

	respondJSON(w, http.StatusCreated, doc)
}

// Delete handles DELETE /api/v1/teams/{teamID}/documents/{documentID}
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	teamID := chi.URLParam(r, "teamID")
	documentID := chi.URLParam(r, "documentID")

	if err := h.documentService.DeleteDocument(ctx, teamID, documentID); err != nil {
		respondError(w, err, "Failed to delete document")
		return
	}

	respondMessage(w, http.StatusOK, "Document deleted")
}

// DownloadURL handles GET /api/v1/teams/{teamID}/documents/{documentID}/url
func (h *DocumentHandler) DownloadURL(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	documentID := chi.URLParam(r, "documentID")

	url, err := h.documentService.GetDocumentURL(ctx, documentID)
	if err != nil {
		respondError(w, err, "Failed to create download link")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"url": url})
}

// SearchEvents handles GET /api/v1/teams/{teamID}/documents/events?search=.
// It backs the event picker shown when linking a document to an event.
func (h *DocumentHandler) SearchEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	teamID := chi.URLParam(r, "teamID")
	search := r.URL.Query().Get("search")

	events, err := h.calendarService.SearchEvents(ctx, teamID, search)
	if err != nil {
		respondError(w, err, "Failed to search events")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}
