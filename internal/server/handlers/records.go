package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/abhishekk-y16/KisanMitra/internal/models"
	"github.com/abhishekk-y16/KisanMitra/internal/server/storage"
	"github.com/abhishekk-y16/KisanMitra/internal/validation"
	"github.com/abhishekk-y16/KisanMitra/pkg/api"
)

// RecordHandler handles record ingest and the read endpoints
type RecordHandler struct {
	records storage.RecordStorage
	logger  *slog.Logger
	now     func() time.Time
}

// NewRecordHandler creates a new record ingest handler
func NewRecordHandler(records storage.RecordStorage, logger *slog.Logger) *RecordHandler {
	return &RecordHandler{
		records: records,
		logger:  logger,
		now:     time.Now,
	}
}

// Submit handles POST /api/v1/records/{collection}. The write is
// idempotent by record id: a retried delivery is acknowledged with
// duplicate=true and the stored payload is left untouched. Malformed
// requests get a 400, which the client treats as a permanent rejection.
func (h *RecordHandler) Submit(w http.ResponseWriter, r *http.Request) {
	collection := r.PathValue("collection")
	if err := validation.ValidateCollection(collection); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	var req api.SubmitRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}
	if _, err := uuid.Parse(req.ID); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid record id")
		return
	}
	if len(req.Payload) == 0 || !json.Valid(req.Payload) {
		writeError(w, h.logger, http.StatusBadRequest, "payload must be a JSON document")
		return
	}

	deviceID := DeviceIDFromContext(r)
	submission := &models.Submission{
		ID:         req.ID,
		DeviceID:   deviceID,
		Collection: collection,
		Payload:    req.Payload,
		CreatedAt:  req.CreatedAt,
		ReceivedAt: h.now(),
	}

	duplicate, err := h.records.UpsertSubmission(r.Context(), submission)
	if err != nil {
		h.logger.Error("failed to store submission",
			"collection", collection, "id", req.ID, "device_id", deviceID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "internal server error")
		return
	}

	if duplicate {
		h.logger.Debug("duplicate submission acknowledged",
			"collection", collection, "id", req.ID, "device_id", deviceID)
	} else {
		h.logger.Info("record stored",
			"collection", collection, "id", req.ID, "device_id", deviceID)
	}

	writeJSON(w, h.logger, http.StatusOK, api.SubmitRecordResponse{
		ID:        req.ID,
		Duplicate: duplicate,
	})
}

// List handles GET /api/v1/records/{collection}, returning stored
// submissions ordered by client creation time.
func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	collection := r.PathValue("collection")
	if err := validation.ValidateCollection(collection); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	submissions, err := h.records.ListSubmissions(r.Context(), collection)
	if err != nil {
		h.logger.Error("failed to list submissions", "collection", collection, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := api.ListRecordsResponse{Records: make([]api.StoredRecord, 0, len(submissions))}
	for _, submission := range submissions {
		resp.Records = append(resp.Records, toStoredRecord(submission))
	}
	writeJSON(w, h.logger, http.StatusOK, resp)
}

// Get handles GET /api/v1/records/{collection}/{id}. A record stored
// under a different collection is reported as not found.
func (h *RecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	collection := r.PathValue("collection")
	if err := validation.ValidateCollection(collection); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid record id")
		return
	}

	submission, err := h.records.GetSubmission(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrSubmissionNotFound) {
			writeError(w, h.logger, http.StatusNotFound, "record not found")
			return
		}
		h.logger.Error("failed to get submission", "collection", collection, "id", id, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "internal server error")
		return
	}
	if submission.Collection != collection {
		writeError(w, h.logger, http.StatusNotFound, "record not found")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, toStoredRecord(submission))
}

// Stats handles GET /api/v1/stats with per-collection record counts.
func (h *RecordHandler) Stats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.records.CountSubmissions(r.Context())
	if err != nil {
		h.logger.Error("failed to count submissions", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, api.StatsResponse{Collections: counts})
}

func toStoredRecord(submission *models.Submission) api.StoredRecord {
	return api.StoredRecord{
		ID:         submission.ID,
		DeviceID:   submission.DeviceID,
		CreatedAt:  submission.CreatedAt,
		ReceivedAt: submission.ReceivedAt,
		Payload:    json.RawMessage(submission.Payload),
	}
}
