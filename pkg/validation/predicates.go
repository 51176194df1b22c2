package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// DateLayout is the wire format of an HTML date input value.
const DateLayout = "2006-01-02"

// MinPhoneDigits is the smallest digit count accepted for a phone number.
const MinPhoneDigits = 10

// emailPattern excludes every Unicode space separator, vertical tab and
// U+FEFF as well as ASCII whitespace.
var emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

// IsValidEmail reports whether value looks like local@domain.tld: no
// whitespace, exactly one @, and at least one dot after it.
func IsValidEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// DigitCount counts the decimal digits in value, ignoring every other rune.
func DigitCount(value string) int {
	count := 0
	for _, r := range value {
		if r >= '0' && r <= '9' {
			count++
		}
	}
	return count
}

// IsValidPhone accepts any formatting as long as at least MinPhoneDigits
// digits remain once punctuation and spaces are stripped.
func IsValidPhone(value string) bool {
	return DigitCount(value) >= MinPhoneDigits
}

// StartOfDay truncates t to local midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseDate parses a YYYY-MM-DD value as a calendar date in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateLayout, strings.TrimSpace(value), loc)
}

// IsOnOrAfterDay reports whether the calendar date in value is not earlier
// than the calendar day of now. Time of day is ignored on both sides.
func IsOnOrAfterDay(value string, now time.Time) bool {
	parsed, err := ParseDate(value, now.Location())
	if err != nil {
		return false
	}
	return !parsed.Before(StartOfDay(now))
}

// MinDate formats the calendar day of now for use as a date input's min
// attribute.
func MinDate(now time.Time) string {
	return now.Format(DateLayout)
}

// RuneLength counts characters, not bytes.
func RuneLength(value string) int {
	return utf8.RuneCountInString(value)
}

func trimValue(value string) string {
	return strings.TrimFunc(value, unicode.IsSpace)
}
