package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/Navaneeth2707/Remindiary/internal/models"
	"github.com/Navaneeth2707/Remindiary/internal/pipeline"
	"github.com/Navaneeth2707/Remindiary/internal/services"
)

var (
	entryPipeline *pipeline.Pipeline
	entryStore    *services.EntryStore
)

// InitPipeline wires the classification pipeline and entry store into the
// handlers. Called once from main after the backends are connected.
func InitPipeline(p *pipeline.Pipeline, store *services.EntryStore) {
	entryPipeline = p
	entryStore = store
}

type CreateEntryRequest struct {
	Text string `json:"text"`
}

type EntryResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Entry   *models.Entry `json:"entry,omitempty"`
}

type EntriesResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Entries []models.Entry `json:"entries"`
	Total   int            `json:"total"`
}

// writePipelineError maps pipeline failures to a response without leaking
// backend error text.
func writePipelineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pipeline.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, EntryResponse{Success: false, Message: "Text is required"})
	case errors.Is(err, pipeline.ErrMalformedModelOutput):
		log.Printf("pipeline: malformed model output: %v", err)
		writeJSON(w, http.StatusBadGateway, EntryResponse{Success: false, Message: "Could not process the text. Please try again."})
	default:
		log.Printf("pipeline: %v", err)
		writeJSON(w, http.StatusBadGateway, EntryResponse{Success: false, Message: "Could not process the text. Please try again."})
	}
}

// CreateEntry classifies raw text into an entry and persists it.
func CreateEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, EntryResponse{Success: false, Message: "Authentication required"})
		return
	}

	var req CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, EntryResponse{Success: false, Message: "Invalid request body"})
		return
	}

	text := services.SanitizeUserText(req.Text)
	if text == "" {
		writeJSON(w, http.StatusBadRequest, EntryResponse{Success: false, Message: "Text is required"})
		return
	}

	entry, err := entryPipeline.Classify(r.Context(), userID, text)
	if err != nil {
		writePipelineError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, EntryResponse{
		Success: true,
		Message: "Entry created successfully",
		Entry:   &entry,
	})
}

// GetEntries returns all entries for the authenticated user, newest first.
func GetEntries(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, EntriesResponse{Success: false, Message: "Authentication required", Entries: []models.Entry{}})
		return
	}

	entries, err := entryStore.FindByUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, EntriesResponse{Success: false, Message: "Failed to load entries", Entries: []models.Entry{}})
		return
	}

	writeJSON(w, http.StatusOK, EntriesResponse{
		Success: true,
		Entries: entries,
		Total:   len(entries),
	})
}

// GetEntriesByDate returns the user's entries scheduled inside one calendar
// day. The date query parameter is required, YYYY-MM-DD.
func GetEntriesByDate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, EntriesResponse{Success: false, Message: "Authentication required", Entries: []models.Entry{}})
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		writeJSON(w, http.StatusBadRequest, EntriesResponse{Success: false, Message: "date query parameter is required (YYYY-MM-DD)", Entries: []models.Entry{}})
		return
	}
	date, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, EntriesResponse{Success: false, Message: "Invalid date format, expected YYYY-MM-DD", Entries: []models.Entry{}})
		return
	}

	from, to := pipeline.DayBounds(date)
	entries, err := entryStore.FindByDateRange(r.Context(), userID, from, to)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, EntriesResponse{Success: false, Message: "Failed to load entries", Entries: []models.Entry{}})
		return
	}

	writeJSON(w, http.StatusOK, EntriesResponse{
		Success: true,
		Entries: entries,
		Total:   len(entries),
	})
}
