package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oakvale/server/internal/models"
)

func bookingEvent(kind string, status models.BookingStatus) *models.BookingEvent {
	return &models.BookingEvent{
		Kind: kind,
		Booking: &models.Booking{
			ID:            "b1",
			ViewingDate:   "2024-06-01",
			ViewingTime:   "10:00 AM",
			ContactName:   "Jane <Doe>",
			ContactPhone:  "+254711111111",
			ContactEmail:  "jane@example.com",
			Status:        status,
			PaymentStatus: models.PaymentPending,
			FeeAmount:     1000,
			Property: &models.Property{
				Title: "Executive Villa in Kinoo Heights",
				Area:  "Kinoo",
				Price: 12_500_000,
			},
		},
	}
}

func TestSendMessage(t *testing.T) {
	var got map[string]interface{}
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	s := NewService(Config{BotToken: "TOKEN", ChatID: "42", APIBaseURL: server.URL + "/"}, logrus.New())
	require.NoError(t, s.SendMessage(context.Background(), "hello"))

	assert.Equal(t, "/botTOKEN/sendMessage", path)
	assert.Equal(t, "42", got["chat_id"])
	assert.Equal(t, "hello", got["text"])
	assert.Equal(t, "HTML", got["parse_mode"])
}

func TestSendMessageErrors(t *testing.T) {
	tests := []struct {
		status  int
		wantErr string
	}{
		{http.StatusUnauthorized, "invalid bot token"},
		{http.StatusBadRequest, "invalid chat ID"},
		{http.StatusForbidden, "bot was blocked"},
		{http.StatusNotFound, "bot not found"},
		{http.StatusInternalServerError, "status 500"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			s := NewService(Config{BotToken: "t", ChatID: "c", APIBaseURL: server.URL}, logrus.New())
			err := s.SendMessage(context.Background(), "hi")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDisabledServiceSendsNothing(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	s := NewService(Config{BotToken: "t", APIBaseURL: server.URL}, nil)
	assert.False(t, s.Enabled())
	assert.NoError(t, s.NotifyBooking(context.Background(), bookingEvent(models.BookingEventCreated, models.BookingPending)))
	assert.False(t, called)
}

func TestFormatBookingMessage(t *testing.T) {
	msg := FormatBookingMessage(bookingEvent(models.BookingEventCreated, models.BookingPending))

	assert.Contains(t, msg, "<b>New Tour Booking!</b>")
	assert.Contains(t, msg, "Executive Villa in Kinoo Heights (Kinoo)")
	assert.Contains(t, msg, "KES 12,500,000, 47.1% above Kinoo average")
	assert.Contains(t, msg, "2024-06-01 at 10:00 AM")
	assert.Contains(t, msg, "Jane &lt;Doe&gt;")
	assert.Contains(t, msg, "Fee: KES 1,000 (pending)")
	assert.NotContains(t, msg, "💬")

	changed := FormatBookingMessage(bookingEvent(models.BookingEventStatusChanged, models.BookingConfirmed))
	assert.Contains(t, changed, "<b>Booking CONFIRMED</b>")
}

func TestPriceComparison(t *testing.T) {
	tests := []struct {
		name string
		p    models.Property
		want string
	}{
		{"above", models.Property{Area: "Regen", Price: 8_200_000}, "KES 8,200,000, 32.3% above Regen average"},
		{"below", models.Property{Area: "limuru", Price: 9_000_000}, "KES 9,000,000, 25.0% below Limuru average"},
		{"close", models.Property{Area: "Ngecha", Price: 9_800_000}, "KES 9,800,000, close to Ngecha average"},
		{"unknown area", models.Property{Area: "Karen", Price: 5_000_000}, "KES 5,000,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, priceComparison(&tt.p))
		})
	}
}

func TestFormatShillings(t *testing.T) {
	assert.Equal(t, "0", formatShillings(0))
	assert.Equal(t, "999", formatShillings(999))
	assert.Equal(t, "1,000", formatShillings(1000))
	assert.Equal(t, "12,500,000", formatShillings(12_500_000))
	assert.Equal(t, "-1,234", formatShillings(-1234))
}
