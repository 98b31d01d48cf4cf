package ingest

import "culturefeed-backend/internal/models"

// mergeInto applies the field-level merge precedence of spec.md §4.6
// step 4 onto an existing Event from a Candidate. Returns the list of
// field names that changed, for observability.
func mergeInto(existing *models.Event, c Candidate) []string {
	var changed []string

	setString := func(name string, dst *string, candidate string, overwriteIfDiffer bool) {
		if candidate == "" {
			return
		}
		if *dst == "" || (overwriteIfDiffer && *dst != candidate) {
			*dst = candidate
			changed = append(changed, name)
		}
	}

	if c.Description != "" {
		if existing.Description == "" || len(c.Description) > len(existing.Description) {
			existing.Description = c.Description
			changed = append(changed, "description")
		}
	}

	setString("url", &existing.URL, c.URL, true)
	setString("image_url", &existing.ImageURL, c.ImageURL, true)
	setString("start_location", &existing.StartLocation, c.StartLocation, true)
	setString("end_location", &existing.EndLocation, c.EndLocation, true)
	setString("registration_url", &existing.RegistrationURL, c.RegistrationURL, true)

	if c.EventType != "" && existing.EventType == models.EventTypeGeneric && c.EventType != models.EventTypeGeneric {
		existing.EventType = c.EventType
		changed = append(changed, "event_type")
	}

	if c.EndDate != nil && existing.EndDate == nil {
		existing.EndDate = c.EndDate
		changed = append(changed, "end_date")
	}
	if c.StartTime != nil && existing.StartTime == nil {
		ft := models.FloatingTimeColumn(*c.StartTime)
		existing.StartTime = &ft
		changed = append(changed, "start_time")
	}
	if c.EndTime != nil && existing.EndTime == nil {
		ft := models.FloatingTimeColumn(*c.EndTime)
		existing.EndTime = &ft
		changed = append(changed, "end_time")
	}

	if c.IsRegistrationRequired && !existing.IsRegistrationRequired {
		existing.IsRegistrationRequired = true
		changed = append(changed, "is_registration_required")
	}

	return changed
}
