package broadcast

import (
	"fmt"

	"github.com/bookaroo/create-event-service/internal/domain"
)

const interestSubject = "Upcoming Event in %s on Bookaroo!"

const interestBody = "Hi %s,\n\n" +
	"We noticed that you have an interest in %s events. " +
	"There may be an upcoming event that matches your interests. " +
	"Check it out here:\n%s\n\n" +
	"Best regards,\nEvent Service Team"

// enrichEmail fills the fixed interest template for one recipient.
func enrichEmail(user domain.InterestedUser, category, eventURL string) domain.EmailMessage {
	return domain.EmailMessage{
		Email:       user.Email,
		Subject:     fmt.Sprintf(interestSubject, category),
		MainMessage: fmt.Sprintf(interestBody, user.Username, category, eventURL),
	}
}
