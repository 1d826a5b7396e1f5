package dateutil

import (
	"fmt"
	"time"

	"github.com/julianstephens/tend/internal/constants"
)

// Parse parses a YYYY-MM-DD date string into a time.Time at midnight UTC.
func Parse(date string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t.UTC(), nil
}

// Format formats a time.Time as a YYYY-MM-DD date string.
func Format(t time.Time) string {
	return t.UTC().Format(constants.DateFormat)
}

// DaysBetween returns the number of whole calendar days from date a to date b.
// The result is negative when b is earlier than a. Both dates are normalized to
// midnight UTC so DST transitions never perturb the count.
func DaysBetween(a, b string) (int, error) {
	ta, err := Parse(a)
	if err != nil {
		return 0, err
	}
	tb, err := Parse(b)
	if err != nil {
		return 0, err
	}
	return int(tb.Sub(ta).Hours() / 24), nil
}

// DateRange returns the inclusive, ordered sequence of YYYY-MM-DD strings from
// start to end. It returns an error if start is after end.
func DateRange(start, end string) ([]string, error) {
	ts, err := Parse(start)
	if err != nil {
		return nil, err
	}
	te, err := Parse(end)
	if err != nil {
		return nil, err
	}
	if ts.After(te) {
		return nil, fmt.Errorf("invalid range: start %s is after end %s", start, end)
	}

	var dates []string
	for d := ts; !d.After(te); d = d.AddDate(0, 0, 1) {
		dates = append(dates, Format(d))
	}
	return dates, nil
}

// Encode converts a YYYY-MM-DD date string to its compact YYYYMMDD integer
// form. The encoding is order-preserving: lexicographic order on the string
// form equals numeric order on the integer form.
func Encode(date string) (int, error) {
	t, err := Parse(date)
	if err != nil {
		return 0, err
	}
	return t.Year()*10000 + int(t.Month())*100 + t.Day(), nil
}

// Decode converts a YYYYMMDD integer back to its YYYY-MM-DD string form. It
// returns an error if the integer does not denote a valid calendar date.
func Decode(n int) (string, error) {
	year := n / 10000
	month := (n / 100) % 100
	day := n % 100

	if year < 1 || year > 9999 {
		return "", fmt.Errorf("invalid encoded date %d", n)
	}

	date := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	if _, err := time.Parse(constants.DateFormat, date); err != nil {
		return "", fmt.Errorf("invalid encoded date %d: %w", n, err)
	}
	return date, nil
}

// Weekday returns the weekday index (0=Sunday..6=Saturday) of a date.
func Weekday(date string) (int, error) {
	t, err := Parse(date)
	if err != nil {
		return 0, err
	}
	return int(t.Weekday()), nil
}

// DayOfMonth returns the day-of-month (1-31) of a date.
func DayOfMonth(date string) (int, error) {
	t, err := Parse(date)
	if err != nil {
		return 0, err
	}
	return t.Day(), nil
}
