package dispatch

import (
	"culturefeed-backend/internal/errors"
	"culturefeed-backend/internal/eventtime"
	"culturefeed-backend/internal/extract"
	"culturefeed-backend/internal/ingest"
	"culturefeed-backend/internal/models"
	"culturefeed-backend/internal/normalize"
)

// toIngestCandidate runs a RawCandidate through C1/C3 normalization
// on its way into C6. A candidate whose start date can't be parsed is
// rejected here rather than failing the whole batch (spec.md §9).
func toIngestCandidate(raw extract.RawCandidate) (ingest.Candidate, error) {
	if raw.Err != nil {
		return ingest.Candidate{}, raw.Err
	}

	startDate, err := eventtime.ParseDate(raw.StartDateRaw)
	if err != nil {
		return ingest.Candidate{}, errors.NewParseError("dispatch.convert", err)
	}

	title, _ := normalize.CleanText(raw.Title)
	description, _ := normalize.CleanText(raw.Description)
	url, _ := normalize.CleanURL(raw.URL)
	imageURL, _ := normalize.CleanURL(raw.ImageURL)
	startLocation, _ := normalize.CleanText(raw.StartLocation)
	endLocation, _ := normalize.CleanText(raw.EndLocation)
	registrationURL, _ := normalize.CleanURL(raw.RegistrationURL)

	c := ingest.Candidate{
		Title:                  title,
		Description:            description,
		EventType:              models.NormalizeEventType(raw.EventTypeRaw),
		StartDate:              startDate,
		URL:                    url,
		ImageURL:               imageURL,
		StartLocation:          startLocation,
		EndLocation:            endLocation,
		IsRegistrationRequired: raw.IsRegistrationRequired,
		RegistrationURL:        registrationURL,
		IsOnline:               raw.IsOnline,
		SourceURL:              raw.SourceURL,
		VenueID:                raw.VenueID,
		CityID:                 raw.CityID,
	}

	if raw.EndDateRaw != "" {
		if d, err := eventtime.ParseDate(raw.EndDateRaw); err == nil {
			c.EndDate = &d
		}
	}

	var startTime, endTime *models.FloatingTime
	if raw.StartTimeRaw != "" {
		if t, err := eventtime.ParseTime(raw.StartTimeRaw); err == nil {
			startTime = &t
		}
	}
	if raw.EndTimeRaw != "" {
		if t, err := eventtime.ParseTime(raw.EndTimeRaw); err == nil {
			endTime = &t
		}
	}
	c.StartTime, c.EndTime = eventtime.ApplyDefaults(c.EventType, startTime, endTime)

	return c, nil
}
