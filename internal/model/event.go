package model

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID                  uuid.UUID `json:"id" db:"id"`
	Name                string    `json:"name" db:"name"`
	Start               time.Time `json:"start" db:"starts_at"`
	End                 time.Time `json:"end" db:"ends_at"`
	Location            string    `json:"location" db:"location"`
	MinTier             Tier      `json:"minTier" db:"min_tier"`
	ParticipantCapacity int       `json:"participantCapacity" db:"participant_capacity"`
	VolunteerCapacity   int       `json:"volunteerCapacity" db:"volunteer_capacity"`
	CreatedByID         uuid.UUID `json:"createdById" db:"created_by_id"`
	CreatedAt           time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time `json:"updatedAt" db:"updated_at"`
}

// EventSummary is the lightweight shape returned by candidate lookup and listing.
type EventSummary struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	Start               time.Time `json:"start"`
	End                 time.Time `json:"end"`
	Location            string    `json:"location"`
	MinTier             Tier      `json:"minTier"`
	ParticipantCapacity int       `json:"participantCapacity"`
	VolunteerCapacity   int       `json:"volunteerCapacity"`
}

// EventWithPeople is an event together with its bookings (each carrying user and
// confirmations) for attendance rendering.
type EventWithPeople struct {
	Event
	Bookings []Booking `json:"bookings,omitempty"`
}

// EventWithRoleCounts is the calendar listing shape: an event plus the role each
// booking was made under.
type EventWithRoleCounts struct {
	EventSummary
	CreatedAt time.Time        `json:"createdAt"`
	Bookings  []BookingRoleTag `json:"bookings"`
}

type BookingRoleTag struct {
	ID            uuid.UUID `json:"id"`
	RoleAtBooking Role      `json:"roleAtBooking"`
}

// EventFilter is the typed storage query for event search: keyword matches name OR
// location case-insensitively, From/To bound the event start, Limit caps the result.
type EventFilter struct {
	Keyword *string
	From    *time.Time
	To      *time.Time
	Limit   int
}

// UpdateEventParams carries a sparse patch: nil fields are left untouched in storage.
type UpdateEventParams struct {
	Name                *string
	Location            *string
	MinTier             *Tier
	ParticipantCapacity *int
	VolunteerCapacity   *int
	Start               *time.Time
	End                 *time.Time
}

// IsEmpty reports whether the patch would change nothing.
func (p UpdateEventParams) IsEmpty() bool {
	return p.Name == nil && p.Location == nil && p.MinTier == nil &&
		p.ParticipantCapacity == nil && p.VolunteerCapacity == nil &&
		p.Start == nil && p.End == nil
}

// CreateEventParams is the full field set required to create an event through
// the staff API. All fields are mandatory except Questions.
type CreateEventParams struct {
	Name                string
	Start               time.Time
	End                 time.Time
	Location            string
	MinTier             Tier
	ParticipantCapacity int
	VolunteerCapacity   int
	Questions           []Question
}

// ReplaceEventParams overwrites every event field; a non-nil Questions slice
// additionally replaces the event's question set.
type ReplaceEventParams struct {
	Name                string
	Start               time.Time
	End                 time.Time
	Location            string
	MinTier             Tier
	ParticipantCapacity int
	VolunteerCapacity   int
	Questions           *[]Question
}

// EventDetail is the single-event API shape: the event plus its questions
// (already filtered by target role) and the user ids holding bookings.
type EventDetail struct {
	Event
	Questions []*Question      `json:"questions"`
	Bookings  []BookingUserRef `json:"bookings"`
}

type BookingUserRef struct {
	UserID uuid.UUID `json:"userId"`
}

type Question struct {
	ID         uuid.UUID `json:"id" db:"id"`
	EventID    uuid.UUID `json:"eventId" db:"event_id"`
	Text       string    `json:"text" db:"text"`
	Type       string    `json:"type" db:"type"`
	Options    []string  `json:"options" db:"options"`
	TargetRole Role      `json:"targetRole" db:"target_role"`
}
