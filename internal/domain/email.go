package domain

// EmailMessage is a single outbound e-mail for the notifications
// collaborator, built either per-recipient by the broadcaster or once
// for the organizer confirmation.
type EmailMessage struct {
	Email       string `json:"email"`
	Subject     string `json:"subject"`
	MainMessage string `json:"mainMessage"`
}
