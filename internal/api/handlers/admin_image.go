package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"culturefeed-backend/internal/extract/image"
)

type ImageUploadHandler struct {
	extractor *image.Extractor
}

func NewImageUploadHandler(extractor *image.Extractor) *ImageUploadHandler {
	return &ImageUploadHandler{extractor: extractor}
}

// CandidateView is the admin-facing projection of a RawCandidate: the
// extracted-but-unpersisted fields a human reviews before they become a
// create-event-from-data request.
type CandidateView struct {
	// Title is null when extraction produced nothing usable (spec.md §8:
	// a non-JSON LLM response yields a candidate with title=null rather
	// than a request failure) — the admin sees an empty review form
	// instead of an error page.
	Title         *string `json:"title"`
	Description   string `json:"description,omitempty"`
	URL           string `json:"url,omitempty"`
	ImageURL      string `json:"image_url,omitempty"`
	StartDateRaw  string `json:"start_date_raw,omitempty"`
	EndDateRaw    string `json:"end_date_raw,omitempty"`
	StartTimeRaw  string `json:"start_time_raw,omitempty"`
	EndTimeRaw    string `json:"end_time_raw,omitempty"`
	StartLocation string `json:"start_location,omitempty"`
	EndLocation   string `json:"end_location,omitempty"`
	EventTypeRaw  string `json:"event_type_raw,omitempty"`
	VenueID       *uint  `json:"venue_id,omitempty"`
	CityID        *uint  `json:"city_id,omitempty"`
}

const maxUploadBytes = 10 << 20 // 10 MiB

// ServeHTTP handles POST /api/admin/upload-event-image: an admin hands
// over a flyer photo, OCR+LLM (C9) pulls out candidate event fields,
// and the admin reviews/edits before it is posted to
// create-event-from-data. Registered as a plain http.HandlerFunc, since
// Huma's typed bodies are a poor fit for file uploads.
func (h *ImageUploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "could not parse multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "image field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "could not read uploaded image", http.StatusBadRequest)
		return
	}

	mediaType := header.Header.Get("Content-Type")
	if mediaType == "" {
		mediaType = "image/jpeg"
	}

	candidate, err := h.extractor.Extract(r.Context(), raw, mediaType)
	if err != nil {
		http.Error(w, "image extraction failed", http.StatusInternalServerError)
		return
	}

	view := CandidateView{
		Description: candidate.Description,
		URL: candidate.URL, ImageURL: candidate.ImageURL,
		StartDateRaw: candidate.StartDateRaw, EndDateRaw: candidate.EndDateRaw,
		StartTimeRaw: candidate.StartTimeRaw, EndTimeRaw: candidate.EndTimeRaw,
		StartLocation: candidate.StartLocation, EndLocation: candidate.EndLocation,
		EventTypeRaw: candidate.EventTypeRaw, VenueID: candidate.VenueID, CityID: candidate.CityID,
	}
	// candidate.Err set means the LLM response wasn't parseable JSON;
	// title stays null and nothing was written, per spec.md §8.
	if candidate.Err == nil && candidate.Title != "" {
		view.Title = &candidate.Title
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(struct {
		ExtractedData CandidateView `json:"extracted_data"`
	}{ExtractedData: view})
}
