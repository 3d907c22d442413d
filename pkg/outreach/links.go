// Package outreach builds the messaging and mail deep links the dashboard
// renders next to each lead.
package outreach

import (
	"net/url"

	"github.com/leadpilot/leadpilot/pkg/phone"
)

const whatsAppBase = "https://wa.me/"

// WhatsAppLink builds a WhatsApp deep link with the pitch pre-filled. Returns
// the empty string when the lead is not reachable by phone.
func WhatsAppLink(rawPhone, pitch string) string {
	if !phone.IsReachable(rawPhone) {
		return ""
	}
	link := whatsAppBase + phone.Normalize(rawPhone)
	if pitch != "" {
		link += "?text=" + url.QueryEscape(pitch)
	}
	return link
}

// MailtoLink builds a mailto deep link with subject and body pre-filled.
// Returns the empty string when no address is available.
func MailtoLink(email, subject, body string) string {
	if email == "" {
		return ""
	}
	q := url.Values{}
	if subject != "" {
		q.Set("subject", subject)
	}
	if body != "" {
		q.Set("body", body)
	}
	link := "mailto:" + email
	if encoded := q.Encode(); encoded != "" {
		link += "?" + encoded
	}
	return link
}
