package service

import (
	"net/url"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"
)

const (
	defaultPhoneRegion = "US"
	trackingPrefix     = "utm_"
)

// normalizePhone formats a provider-supplied phone number to E.164 when
// it parses cleanly; otherwise the raw value is kept as-is, since a
// display-formatted national number is still useful to the caller.
func normalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	number, err := phonenumbers.Parse(raw, defaultPhoneRegion)
	if err != nil {
		return raw
	}
	if !phonenumbers.IsPossibleNumber(number) || !phonenumbers.IsValidNumber(number) {
		return raw
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}

// normalizeWebsite canonicalizes a website URL: punycode-normalizes the
// host and strips tracking query parameters. Unparsable input is
// returned untouched.
func normalizeWebsite(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return raw
	}

	if ascii, err := idna.Lookup.ToASCII(parsed.Hostname()); err == nil {
		host := strings.ToLower(ascii)
		if port := parsed.Port(); port != "" {
			host += ":" + port
		}
		parsed.Host = host
	}

	query := parsed.Query()
	for key := range query {
		if strings.HasPrefix(strings.ToLower(key), trackingPrefix) {
			query.Del(key)
		}
	}
	parsed.RawQuery = query.Encode()

	return parsed.String()
}
