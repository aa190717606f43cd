package assistant

import (
	"fmt"
	"strings"

	"platformone/internal/model"
)

// FormatPeople renders the requested attendance sections for an event as
// multi-line text. It never mutates and tolerates missing nested records.
func FormatPeople(event *model.EventWithPeople, includeParticipants, includeVolunteers bool) string {
	var bookings []model.Booking
	if event != nil {
		bookings = event.Bookings
	}

	var participants, volunteers []model.Booking
	for _, b := range bookings {
		switch b.RoleAtBooking {
		case model.RoleParticipant:
			participants = append(participants, b)
		case model.RoleVolunteer:
			volunteers = append(volunteers, b)
		}
	}

	lines := []string{}
	if includeParticipants {
		lines = append(lines, formatSection("Participants", participants))
	}
	if includeVolunteers {
		lines = append(lines, formatSection("Volunteers", volunteers))
	}
	return strings.Join(lines, "\n\n")
}

func formatSection(header string, bookings []model.Booking) string {
	if len(bookings) == 0 {
		return fmt.Sprintf("%s: none found.", header)
	}
	entries := make([]string, 0, len(bookings))
	for i := range bookings {
		b := &bookings[i]
		name := "Unknown"
		if b.User != nil {
			if b.User.Name != "" {
				name = b.User.Name
			} else if b.User.Email != "" {
				name = b.User.Email
			}
		}
		entries = append(entries, fmt.Sprintf("%s (%s)", name, b.Status()))
	}
	return fmt.Sprintf("%s (%d):\n- %s", header, len(bookings), strings.Join(entries, "\n- "))
}
