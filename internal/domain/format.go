package domain

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrMalformedPrice indicates a price string that does not match the
// catalog's "<digits>[,<digits>]€" format. Callers treat this as a corrupted
// catalog, never as user input error.
var ErrMalformedPrice = errors.New("malformed price string")

// ParsePrice converts a formatted price such as "7,50€" into its numeric
// amount. The decimal comma is optional ("12€" parses to 12).
func ParsePrice(formatted string) (float64, error) {
	normalized := strings.TrimSpace(formatted)
	normalized = strings.ReplaceAll(normalized, "€", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")
	value, err := strconv.ParseFloat(strings.TrimSpace(normalized), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedPrice, formatted)
	}
	return value, nil
}

// FormatAmount renders a numeric amount with two decimal places, the display
// form used for cart totals.
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}

// NormalizeID normalizes mixed payload id values.
func NormalizeID(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// FilterEmpty drops empty entries, used for ingredient lists that pad with
// blanks.
func FilterEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

// FormatIngredients renders the ingredient list for display.
func (i MenuItem) FormatIngredients() string {
	return strings.Join(FilterEmpty(i.Ingredients), ", ")
}

var weekdayOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// Days returns the schedule's weekday names in calendar order, unknown keys
// sorted last.
func (s ServiceSchedule) Days() []string {
	seen := map[string]struct{}{}
	days := make([]string, 0, len(s))
	for _, day := range weekdayOrder {
		if _, ok := s[day]; ok {
			days = append(days, day)
			seen[day] = struct{}{}
		}
	}
	rest := make([]string, 0)
	for day := range s {
		if _, ok := seen[day]; !ok {
			rest = append(rest, day)
		}
	}
	sort.Strings(rest)
	return append(days, rest...)
}

// Format renders coordinates for display.
func (l StoreLocation) Format() string {
	return fmt.Sprintf("%.5f, %.5f", l.Latitude, l.Longitude)
}
