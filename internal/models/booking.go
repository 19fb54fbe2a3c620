package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingPaid      BookingStatus = "paid"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// ViewingDateLayout is the wire and storage format of Booking.ViewingDate
const ViewingDateLayout = "2006-01-02"

// TimeSlots are the tour times offered on the booking form
var TimeSlots = []string{
	"9:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
	"1:00 PM", "2:00 PM", "3:00 PM", "4:00 PM", "5:00 PM",
}

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingPaid, BookingConfirmed, BookingCancelled},
	BookingPaid:      {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
}

// CanTransitionTo reports whether a booking may move from s to next.
// Completed and cancelled bookings are final.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Booking struct {
	ID            string        `gorm:"primaryKey" json:"id"`
	PropertyID    string        `gorm:"index;not null" json:"property_id"`
	UserID        string        `gorm:"index;not null" json:"user_id"`
	ViewingDate   string        `gorm:"index" json:"viewing_date"`
	ViewingTime   string        `json:"viewing_time"`
	ContactName   string        `json:"contact_name"`
	ContactPhone  string        `json:"contact_phone"`
	ContactEmail  string        `json:"contact_email"`
	Message       string        `json:"message,omitempty"`
	Status        BookingStatus `gorm:"index" json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	FeeAmount     int64         `json:"fee_amount"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	Property      *Property     `gorm:"constraint:OnDelete:CASCADE" json:"property,omitempty"`
	User          *User         `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

// BookingEvent is published whenever a booking is created or changes status
type BookingEvent struct {
	Kind    string   `json:"kind"`
	Booking *Booking `json:"booking"`
}

const (
	BookingEventCreated       = "created"
	BookingEventStatusChanged = "status_changed"
)
