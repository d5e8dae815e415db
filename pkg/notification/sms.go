package notification

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// SMSClient delivers one message to one phone number. Implementations wrap
// a real SMS gateway; a nil client means link-only mode, where the caller
// (the mobile app) opens the returned deep links itself.
type SMSClient interface {
	Send(ctx context.Context, phone, message string) error
}

// SMSLink builds the messaging deep link for one contact,
// e.g. "sms:9999999999?body=...".
func SMSLink(phone, body string) string {
	return fmt.Sprintf("sms:%s?body=%s", phone, url.QueryEscape(body))
}

// TelLink builds a dialer deep link, e.g. "tel:100".
func TelLink(phone string) string {
	return "tel:" + phone
}

// MapsURL builds the Google Maps link carried in SOS messages.
func MapsURL(latitude, longitude float64) string {
	return "https://maps.google.com/?q=" +
		strconv.FormatFloat(latitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(longitude, 'f', -1, 64)
}

// SOSMessage builds the message texted to each emergency contact.
func SOSMessage(name string, latitude, longitude float64) string {
	return fmt.Sprintf("🚨 SOS from %s!\nLocation: %s", name, MapsURL(latitude, longitude))
}
