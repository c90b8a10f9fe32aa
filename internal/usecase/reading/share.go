package reading

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

var ErrInvalidShareCode = errors.New("invalid share code")

const maxShareCodeLen = 1024

// EncodeShareCode packs a reading's inputs into a URL-safe token:
// base64url("name|unixMillis"). It carries no unlock state.
func EncodeShareCode(name string, dob time.Time) string {
	raw := strings.TrimSpace(name) + "|" + strconv.FormatInt(dob.UnixMilli(), 10)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeShareCode reverses EncodeShareCode. It also accepts padded and
// standard-alphabet codes, and a trailing "|<bool>" segment from older links,
// which is ignored.
func DecodeShareCode(code string) (string, time.Time, error) {
	code = strings.TrimSpace(code)
	if code == "" || len(code) > maxShareCodeLen {
		return "", time.Time{}, ErrInvalidShareCode
	}

	raw, ok := decodeBase64(code)
	if !ok || !utf8.Valid(raw) {
		return "", time.Time{}, ErrInvalidShareCode
	}

	parts := strings.Split(string(raw), "|")
	if len(parts) >= 3 && isLegacyFlag(parts[len(parts)-2:]) {
		parts = parts[:len(parts)-1]
	}
	if len(parts) < 2 {
		return "", time.Time{}, ErrInvalidShareCode
	}

	ms, err := strconv.ParseInt(parts[len(parts)-1], 10, 64)
	if err != nil {
		return "", time.Time{}, ErrInvalidShareCode
	}
	name := strings.TrimSpace(strings.Join(parts[:len(parts)-1], "|"))
	if name == "" {
		return "", time.Time{}, ErrInvalidShareCode
	}

	dob := time.UnixMilli(ms).UTC()
	if dob.Year() < minYear || dob.Year() > maxYear {
		return "", time.Time{}, ErrInvalidShareCode
	}
	return name, dob, nil
}

func isLegacyFlag(tail []string) bool {
	if _, err := strconv.ParseBool(tail[1]); err != nil {
		return false
	}
	_, err := strconv.ParseInt(tail[0], 10, 64)
	return err == nil
}

func decodeBase64(s string) ([]byte, bool) {
	for _, enc := range []*base64.Encoding{
		base64.RawURLEncoding,
		base64.URLEncoding,
		base64.StdEncoding,
		base64.RawStdEncoding,
	} {
		if b, err := enc.DecodeString(s); err == nil {
			return b, true
		}
	}
	return nil, false
}
