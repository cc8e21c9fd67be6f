package rabbitmq

import (
	"errors"
	"net/url"
	"strings"
)

var ErrInvalidScheme = errors.New("AMQP scheme must be either 'amqp://' or 'amqps://'")

// sanitizeURL trims quotes and whitespace that env files tend to leave around the URL.
func sanitizeURL(raw string) (string, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.Trim(clean, "\"'")
	u, err := url.Parse(clean)
	if err != nil {
		return "", err
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", ErrInvalidScheme
	}
	return clean, nil
}
