package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role classifies a user account (and the capacity a booking was made under).
type Role string

const (
	RoleParticipant Role = "PARTICIPANT"
	RoleVolunteer   Role = "VOLUNTEER"
	RoleStaff       Role = "STAFF"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleParticipant, RoleVolunteer, RoleStaff:
		return true
	}
	return false
}

// ParseRole matches case-insensitively; returns false for unknown values.
func ParseRole(s string) (Role, bool) {
	role := Role(strings.ToUpper(strings.TrimSpace(s)))
	return role, role.IsValid()
}

// Tier is the membership level gating event access, ordered BRONZE < SILVER < GOLD < PLATINUM.
type Tier string

const (
	TierBronze   Tier = "BRONZE"
	TierSilver   Tier = "SILVER"
	TierGold     Tier = "GOLD"
	TierPlatinum Tier = "PLATINUM"
)

func (t Tier) IsValid() bool {
	switch t {
	case TierBronze, TierSilver, TierGold, TierPlatinum:
		return true
	}
	return false
}

// ParseTier matches case-insensitively; returns false for unknown values.
func ParseTier(s string) (Tier, bool) {
	tier := Tier(strings.ToUpper(strings.TrimSpace(s)))
	return tier, tier.IsValid()
}

type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"`
	Role      Role      `json:"role" db:"role"`
	Tier      Tier      `json:"tier" db:"tier"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// LoginResult is the successful login payload.
type LoginResult struct {
	Success  bool      `json:"success"`
	Token    string    `json:"token"`
	User     LoginUser `json:"user"`
	UserRole Role      `json:"userRole"`
}

type LoginUser struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

// UserAttendance is a user row joined with their booking references.
type UserAttendance struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Role         Role         `json:"role"`
	Tier         Tier         `json:"tier"`
	BookingCount int          `json:"bookingCount"`
	Bookings     []BookingRef `json:"bookings"`
}

// BookingRef is the minimal booking reference attached to attendance rows.
type BookingRef struct {
	ID      uuid.UUID `json:"id"`
	EventID uuid.UUID `json:"eventId"`
}
