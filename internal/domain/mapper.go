package domain

import (
	"fmt"
	"strings"
	"time"
)

// Accepted inbound timestamp layouts: ISO-8601 with or without an
// offset. Offset-less values are taken as UTC.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

func parseISO(value string) (time.Time, error) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("not an ISO-8601 timestamp: %q", value)
}

// ToPersistable maps an inbound submission into the events
// collaborator's expected shape: UTC timestamps, lower-cased
// categories, capacity defaulted to 0 (unlimited).
func ToPersistable(sub EventSubmission) (PersistableEvent, error) {
	if strings.TrimSpace(sub.StartDateTime) == "" {
		return PersistableEvent{}, ErrValidation("startDateTime is required")
	}

	start, err := parseISO(sub.StartDateTime)
	if err != nil {
		return PersistableEvent{}, ErrValidation("invalid startDateTime: " + err.Error())
	}

	var end *time.Time
	if strings.TrimSpace(sub.EndDateTime) != "" {
		t, err := parseISO(sub.EndDateTime)
		if err != nil {
			return PersistableEvent{}, ErrValidation("invalid endDateTime: " + err.Error())
		}
		end = &t
	}

	capacity := 0
	if sub.Capacity != nil {
		capacity = *sub.Capacity
	}

	categories := make([]string, 0, len(sub.Categories))
	for _, c := range sub.Categories {
		categories = append(categories, strings.ToLower(c))
	}

	return PersistableEvent{
		ID:            sub.ID,
		Title:         sub.Title,
		Description:   sub.Description,
		StartDateTime: start,
		EndDateTime:   end,
		ImageURL:      sub.ImageURL,
		Venue:         sub.Venue,
		Price:         sub.Price,
		Capacity:      capacity,
		Categories:    categories,
		Organizer:     sub.Organizer,
	}, nil
}
