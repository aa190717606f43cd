package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatus(t *testing.T) {
	confirmation := func(status string) Confirmation {
		return Confirmation{Status: status}
	}

	t.Run("no confirmations is pending", func(t *testing.T) {
		b := &Booking{}
		assert.Equal(t, BookingStatusPending, b.Status())
	})

	t.Run("any confirmed wins", func(t *testing.T) {
		b := &Booking{Confirmations: []Confirmation{
			confirmation("DECLINED"),
			confirmation("CONFIRMED"),
		}}
		assert.Equal(t, BookingStatusConfirmed, b.Status())
	})

	t.Run("declined beats pending", func(t *testing.T) {
		b := &Booking{Confirmations: []Confirmation{
			confirmation("DECLINED"),
			confirmation("something-else"),
		}}
		assert.Equal(t, BookingStatusDeclined, b.Status())
	})

	t.Run("unknown statuses are ignored", func(t *testing.T) {
		b := &Booking{Confirmations: []Confirmation{confirmation("MAYBE")}}
		assert.Equal(t, BookingStatusPending, b.Status())
	})

	t.Run("nil booking is pending", func(t *testing.T) {
		var b *Booking
		assert.Equal(t, BookingStatusPending, b.Status())
	})
}
