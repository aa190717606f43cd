package model

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus is derived from a booking's confirmation records, never stored.
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusDeclined  BookingStatus = "DECLINED"
	BookingStatusPending   BookingStatus = "PENDING"
)

type Booking struct {
	ID            uuid.UUID      `json:"id" db:"id"`
	EventID       uuid.UUID      `json:"eventId" db:"event_id"`
	UserID        uuid.UUID      `json:"userId" db:"user_id"`
	RoleAtBooking Role           `json:"roleAtBooking" db:"role_at_booking"`
	CreatedAt     time.Time      `json:"createdAt" db:"created_at"`
	User          *User          `json:"user,omitempty"`
	Confirmations []Confirmation `json:"confirmations,omitempty"`
}

type Confirmation struct {
	ID        uuid.UUID `json:"id" db:"id"`
	BookingID uuid.UUID `json:"bookingId" db:"booking_id"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Status derives the booking's attendance status: any CONFIRMED confirmation wins,
// then any DECLINED, otherwise PENDING.
func (b *Booking) Status() BookingStatus {
	if b == nil {
		return BookingStatusPending
	}
	declined := false
	for _, c := range b.Confirmations {
		switch c.Status {
		case string(BookingStatusConfirmed):
			return BookingStatusConfirmed
		case string(BookingStatusDeclined):
			declined = true
		}
	}
	if declined {
		return BookingStatusDeclined
	}
	return BookingStatusPending
}

// Attendee is a booking flattened with its user for the attendees endpoint.
type Attendee struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"userId"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Role   Role      `json:"role"`
	Tier   Tier      `json:"tier"`
}
