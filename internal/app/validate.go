package app

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/waleedan253-cmd/Moxiepro/pkg/domain"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail checks the address shape. Deliverability is the mail
// provider's problem.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return domain.ErrInvalidEmail
	}
	return nil
}

// ValidateProfileURL accepts only Psychology Today therapist profile URLs.
// Both the /therapists/ and older /profile/ path shapes are in circulation.
func ValidateProfileURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return domain.ErrInvalidURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return domain.ErrInvalidURL
	}
	host := strings.ToLower(u.Hostname())
	if !strings.Contains(host, "psychologytoday.com") {
		return domain.ErrInvalidURL
	}
	path := strings.ToLower(u.Path)
	if !strings.Contains(path, "/therapists/") && !strings.Contains(path, "/profile/") {
		return domain.ErrInvalidURL
	}
	return nil
}
