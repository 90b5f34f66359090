package common

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the format used to bind calendar dates on drivers without a native DATE type.
const DateLayout = "2006-01-02"

var ErrDateNotFound = errors.New("date not found in calendar dimension")

var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// IsValidIdentifier checks if a string is a valid SQL identifier
func IsValidIdentifier(name string) bool {
	return validIdentifier.MatchString(name)
}

// ParseDateValue converts a scanned DATE column into a time.Time. Drivers
// differ: pgx and mysql with parseTime return time.Time, sqlite may return
// text, mysql without parseTime returns []byte.
func ParseDateValue(v interface{}) (time.Time, error) {
	switch val := v.(type) {
	case time.Time:
		return truncateDay(val), nil
	case []byte:
		return parseDateString(string(val))
	case string:
		return parseDateString(val)
	case nil:
		return time.Time{}, fmt.Errorf("unexpected NULL date")
	default:
		return time.Time{}, fmt.Errorf("unsupported date value of type %T", v)
	}
}

func parseDateString(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) >= len(DateLayout) {
		if t, err := time.Parse(DateLayout, s[:len(DateLayout)]); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse date %q", s)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
