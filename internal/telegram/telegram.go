package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"oakvale/server/config"
	"oakvale/server/internal/models"
)

const defaultAPIBaseURL = "https://api.telegram.org"

type Config struct {
	BotToken   string
	ChatID     string
	APIBaseURL string
}

// Service posts booking notifications to the agency chat
type Service struct {
	logger *logrus.Logger
	client *http.Client
	config Config
}

func NewService(cfg Config, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	return &Service{
		logger: logger,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		config: cfg,
	}
}

// Enabled reports whether both the bot token and chat are configured.
func (s *Service) Enabled() bool {
	return s.config.BotToken != "" && s.config.ChatID != ""
}

// SendMessage sends a message to the configured Telegram chat
func (s *Service) SendMessage(ctx context.Context, message string) error {
	if !s.Enabled() {
		return nil
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.config.APIBaseURL, s.config.BotToken)
	payload := map[string]interface{}{
		"chat_id":    s.config.ChatID,
		"text":       message,
		"parse_mode": "HTML",
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to build Telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message to Telegram API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return errors.New("invalid bot token - please check your token from @BotFather")
		case http.StatusBadRequest:
			return fmt.Errorf("invalid chat ID or message format: %s", string(body))
		case http.StatusForbidden:
			return errors.New("bot was blocked by the user or chat")
		case http.StatusNotFound:
			return errors.New("bot not found - please check your token from @BotFather")
		default:
			return fmt.Errorf("Telegram API error (status %d): %s", resp.StatusCode, string(body))
		}
	}

	return nil
}

// NotifyBooking announces a new or updated tour booking
func (s *Service) NotifyBooking(ctx context.Context, event *models.BookingEvent) error {
	if !s.Enabled() {
		s.logger.WithField("booking_id", event.Booking.ID).Debug("Telegram disabled, skipping booking notification")
		return nil
	}
	return s.SendMessage(ctx, FormatBookingMessage(event))
}

// FormatBookingMessage renders a booking event as a Telegram HTML message.
func FormatBookingMessage(event *models.BookingEvent) string {
	b := event.Booking

	title := "<b>New Tour Booking!</b>"
	if event.Kind == models.BookingEventStatusChanged {
		title = fmt.Sprintf("<b>Booking %s</b>", html.EscapeString(strings.ToUpper(string(b.Status))))
	}

	listing := "Unknown property"
	comparison := "N/A"
	if b.Property != nil {
		listing = fmt.Sprintf("%s (%s)", b.Property.Title, b.Property.Area)
		comparison = priceComparison(b.Property)
	}

	var sb strings.Builder
	sb.WriteString(title + "\n\n")
	fmt.Fprintf(&sb, "🏠 %s\n", html.EscapeString(listing))
	fmt.Fprintf(&sb, "📊 %s\n", html.EscapeString(comparison))
	fmt.Fprintf(&sb, "📅 %s at %s\n", html.EscapeString(b.ViewingDate), html.EscapeString(b.ViewingTime))
	fmt.Fprintf(&sb, "👤 %s\n", html.EscapeString(b.ContactName))
	fmt.Fprintf(&sb, "📞 %s\n", html.EscapeString(b.ContactPhone))
	fmt.Fprintf(&sb, "✉️ %s\n", html.EscapeString(b.ContactEmail))
	fmt.Fprintf(&sb, "💰 Fee: KES %s (%s)", formatShillings(b.FeeAmount), b.PaymentStatus)
	if b.Message != "" {
		fmt.Fprintf(&sb, "\n\n💬 %s", html.EscapeString(b.Message))
	}
	return sb.String()
}

// priceComparison compares a listing price with its neighborhood average
func priceComparison(p *models.Property) string {
	n := config.GetNeighborhoodByName(p.Area)
	if n == nil || n.AvgPrice <= 0 {
		return fmt.Sprintf("KES %s", formatShillings(p.Price))
	}

	diff := (float64(p.Price) - float64(n.AvgPrice)) / float64(n.AvgPrice) * 100
	switch {
	case diff <= -10:
		return fmt.Sprintf("KES %s, %.1f%% below %s average", formatShillings(p.Price), -diff, n.Name)
	case diff >= 10:
		return fmt.Sprintf("KES %s, %.1f%% above %s average", formatShillings(p.Price), diff, n.Name)
	default:
		return fmt.Sprintf("KES %s, close to %s average", formatShillings(p.Price), n.Name)
	}
}

// formatShillings groups thousands with commas
func formatShillings(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := fmt.Sprintf("%d", amount)
	var out []byte
	for i := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, digits[i])
	}
	return sign + string(out)
}
