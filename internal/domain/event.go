package domain

import "time"

// PersistableEvent is the shape the events collaborator expects:
// timestamps carry an explicit UTC offset and categories are
// lower-cased. Produced only by ToPersistable.
type PersistableEvent struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	StartDateTime time.Time  `json:"startDateTime"`
	EndDateTime   *time.Time `json:"endDateTime,omitempty"`
	ImageURL      string     `json:"imageUrl"`
	Venue         Venue      `json:"venue"`
	Price         float64    `json:"price"`
	Capacity      int        `json:"capacity"`
	Categories    []string   `json:"categories"`
	Organizer     Organizer  `json:"organizer"`
}

// CreatedEvent is the events collaborator's answer to a creation
// request. ID is non-empty on success; Categories drives the
// broadcast stage.
type CreatedEvent struct {
	Message       string     `json:"message"`
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	StartDateTime time.Time  `json:"startDateTime"`
	EndDateTime   *time.Time `json:"endDateTime,omitempty"`
	ImageURL      string     `json:"imageUrl"`
	Venue         string     `json:"venue"`
	Price         float64    `json:"price"`
	Capacity      int        `json:"capacity"`
	Categories    []string   `json:"categories"`
	Organizer     Organizer  `json:"organizer"`
}
