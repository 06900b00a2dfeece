package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/ElberJesus09/rectorado/pkg/calendario"
	"github.com/ElberJesus09/rectorado/pkg/session"
	"github.com/ElberJesus09/rectorado/pkg/sheets"
	"github.com/ElberJesus09/rectorado/pkg/tramites"
)

// 10 MB is generous for an office PDF.
const maxUploadBytes = 10 << 20

// Handler exposes the document and calendar adapters over HTTP.
type Handler struct {
	documents DocumentService
	calendar  CalendarService
	uploader  FileUploader
}

func NewHandler(documents DocumentService, calendar CalendarService, uploader FileUploader) *Handler {
	return &Handler{documents: documents, calendar: calendar, uploader: uploader}
}

func (h *Handler) listDocuments(w http.ResponseWriter, r *http.Request) {
	records, err := h.documents.List()
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, records)
}

func (h *Handler) appendDocument(w http.ResponseWriter, r *http.Request) {
	var rec tramites.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		sendJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if !rec.HasRequired() {
		sendJSON(w, http.StatusBadRequest, errorResponse{Error: "missing required fields"})
		return
	}
	index, err := h.documents.Append(rec)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, appendResponse{Index: index})
}

func (h *Handler) editDocumentCell(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}
	var req cellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if err := h.documents.EditCell(index, req.Key, req.Value); err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, nil)
}

func (h *Handler) addDerivation(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}
	var req derivationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if err := h.documents.AddDerivation(index, req.Value); err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, nil)
}

func (h *Handler) editDerivation(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}
	var req cellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if err := h.documents.EditDerivation(index, req.Key, req.Value); err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, nil)
}

func (h *Handler) deleteDerivation(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}
	key := r.URL.Query().Get("key")
	if key == "" {
		sendJSON(w, http.StatusBadRequest, errorResponse{Error: "missing key parameter"})
		return
	}
	if err := h.documents.DeleteDerivation(index, key); err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, nil)
}

func (h *Handler) uploadDocumentFile(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		sendJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart body"})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		sendJSON(w, http.StatusBadRequest, errorResponse{Error: "missing file field"})
		return
	}
	defer file.Close()

	res, err := h.uploader.Attach(h.documents, index, header.Filename,
		header.Header.Get("Content-Type"), file)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, res)
}

func (h *Handler) listEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.calendar.List()
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, events)
}

func (h *Handler) listExpandedEvents(w http.ResponseWriter, r *http.Request) {
	if _, err := h.calendar.List(); err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, h.calendar.Expanded())
}

func (h *Handler) appendEvent(w http.ResponseWriter, r *http.Request) {
	var fields map[string]string
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		sendJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if err := h.calendar.Append(calendario.Event{Fields: fields}); err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, nil)
}

func (h *Handler) editEventCell(w http.ResponseWriter, r *http.Request) {
	row, ok := pathRow(w, r)
	if !ok {
		return
	}
	var req cellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if err := h.calendar.EditCell(row, req.Key, req.Value); err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, nil)
}

func (h *Handler) deleteEvent(w http.ResponseWriter, r *http.Request) {
	row, ok := pathRow(w, r)
	if !ok {
		return
	}
	if err := h.calendar.Delete(row); err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, nil)
}

func pathIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		sendJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid record index"})
		return 0, false
	}
	return index, true
}

func pathRow(w http.ResponseWriter, r *http.Request) (int, bool) {
	row, err := strconv.Atoi(chi.URLParam(r, "row"))
	if err != nil || row < 2 {
		sendJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid sheet row number"})
		return 0, false
	}
	return row, true
}

// statusFor maps adapter errors to HTTP statuses. Anything unrecognised is
// treated as an upstream Google failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, sheets.ErrColumnNotFound), errors.Is(err, sheets.ErrSheetNotFound):
		return http.StatusNotFound
	case errors.Is(err, sheets.ErrNoHeaders), errors.Is(err, tramites.ErrNoDerivationColumn):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

func sendError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusBadGateway {
		log.Printf("Upstream error: %v", err)
	}
	sendJSON(w, status, errorResponse{Error: err.Error()})
}

func sendJSON(w http.ResponseWriter, status int, payload interface{}) {
	if payload == nil {
		sendResponse(w, status, []byte("{}"))
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		sendResponse(w, http.StatusInternalServerError, []byte(`{"error":"internal error"}`))
		return
	}
	sendResponse(w, status, body)
}

func sendResponse(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
