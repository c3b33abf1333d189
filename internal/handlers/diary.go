package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Navaneeth2707/Remindiary/internal/models"
	"github.com/Navaneeth2707/Remindiary/internal/pipeline"
	"github.com/Navaneeth2707/Remindiary/internal/services"
)

type GenerateDiaryRequest struct {
	Date      string `json:"date"`
	UserInput string `json:"user_input,omitempty"`
}

type DiaryResponse struct {
	Success   bool          `json:"success"`
	Message   string        `json:"message,omitempty"`
	DiaryText string        `json:"diary_text,omitempty"`
	Entry     *models.Entry `json:"entry,omitempty"`
}

// GenerateDiary aggregates the day's entries into a synthesized diary entry
// with an inferred mood.
func GenerateDiary(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, DiaryResponse{Success: false, Message: "Authentication required"})
		return
	}

	var req GenerateDiaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, DiaryResponse{Success: false, Message: "Invalid request body"})
		return
	}
	if req.Date == "" {
		writeJSON(w, http.StatusBadRequest, DiaryResponse{Success: false, Message: "date is required (YYYY-MM-DD)"})
		return
	}
	date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, DiaryResponse{Success: false, Message: "Invalid date format, expected YYYY-MM-DD"})
		return
	}

	userInput := services.SanitizeUserText(req.UserInput)

	diaryText, entry, err := entryPipeline.SynthesizeDiary(r.Context(), userID, date, userInput)
	if err != nil {
		writePipelineError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, DiaryResponse{
		Success:   true,
		Message:   "Diary generated successfully",
		DiaryText: diaryText,
		Entry:     &entry,
	})
}

// GetDiary returns the synthesized diary entry for one calendar day. A
// missing diary is a normal outcome, reported as 404 rather than a failure.
func GetDiary(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, DiaryResponse{Success: false, Message: "Authentication required"})
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		writeJSON(w, http.StatusBadRequest, DiaryResponse{Success: false, Message: "date query parameter is required (YYYY-MM-DD)"})
		return
	}
	date, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, DiaryResponse{Success: false, Message: "Invalid date format, expected YYYY-MM-DD"})
		return
	}

	from, to := pipeline.DayBounds(date)
	entry, err := entryStore.FindDiaryByDate(r.Context(), userID, from, to)
	if errors.Is(err, services.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, DiaryResponse{Success: false, Message: "No diary entry for this date"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, DiaryResponse{Success: false, Message: "Failed to load diary"})
		return
	}

	writeJSON(w, http.StatusOK, DiaryResponse{
		Success:   true,
		DiaryText: entry.Content,
		Entry:     &entry,
	})
}
