package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/portfolio/backend/internal/model"
)

// ReplyLink builds a mailto: URL that opens a prefilled reply to the sender of m.
// The address is escaped so it cannot add headers of its own.
func ReplyLink(m *model.Message, ownerName string) string {
	subject := "Re: " + m.Subject
	body := fmt.Sprintf("Hi %s,\n\nThank you for your message. I'll get back to you soon!\n\nBest regards,\n%s",
		m.Name, ownerName)
	return "mailto:" + url.PathEscape(m.Email) + "?subject=" + encodeComponent(subject) + "&body=" + encodeComponent(body)
}

// encodeComponent percent-encodes s for a mailto header value, using %20 for spaces.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
