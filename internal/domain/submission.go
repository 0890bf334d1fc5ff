package domain

// EventSubmission is the inbound create-event payload. It is owned by
// the current request and never mutated after decoding.
type EventSubmission struct {
	ID            string    `json:"id" validate:"required"`
	Title         string    `json:"title" validate:"required"`
	Description   string    `json:"description"`
	StartDateTime string    `json:"startDateTime" validate:"required"`
	EndDateTime   string    `json:"endDateTime"` // optional
	Venue         Venue     `json:"venue"`
	ImageURL      string    `json:"imageUrl"`
	Categories    []string  `json:"categories" validate:"required,min=1,dive,required"`
	Price         float64   `json:"price" validate:"gte=0"`
	Organizer     Organizer `json:"organizer" validate:"required"`
	Capacity      *int      `json:"capacity"` // optional, nil means unlimited
}

type Venue struct {
	Address           string       `json:"address"`
	Name              string       `json:"name"`
	City              string       `json:"city"`
	State             string       `json:"state"`
	AdditionalDetails string       `json:"additionalDetails"` // optional
	Coordinates       *Coordinates `json:"coordinates"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Organizer struct {
	ID       string `json:"id" validate:"required"`
	Username string `json:"username" validate:"required"`
}
