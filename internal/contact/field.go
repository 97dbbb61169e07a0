package contact

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/tartampluch/go-contacts/internal/config"
)

// FieldKind tags a validated field with the rule it was checked against.
type FieldKind int

const (
	KindName FieldKind = iota + 1
	KindPhone
	KindBirthday
)

func (k FieldKind) String() string {
	switch k {
	case KindName:
		return "name"
	case KindPhone:
		return "phone"
	case KindBirthday:
		return "birthday"
	default:
		return "unknown"
	}
}

func (k FieldKind) errMessage() string {
	switch k {
	case KindName:
		return config.ErrInvalidName
	case KindPhone:
		return config.ErrInvalidPhone
	case KindBirthday:
		return config.ErrInvalidBirthday
	default:
		return ErrValidation.Error()
	}
}

// Field is an immutable value that passed its kind-specific rule at construction.
type Field interface {
	Kind() FieldKind
	String() string
}

var (
	_ Field = Name{}
	_ Field = Phone{}
	_ Field = Birthday{}
)

// -----------------------------------------------------------------------------
// Name
// -----------------------------------------------------------------------------

// Name is the key of a contact. Comparison is case-sensitive.
type Name struct {
	value string
}

// NewName validates a contact name.
//
// Any non-empty text is accepted unless it is shorter than three characters
// and made only of digits, so "7" and "42" are rejected but "Al" is not.
func NewName(value string) (Name, error) {
	if value == "" {
		return Name{}, &ValidationError{Kind: KindName, Value: value}
	}
	if utf8.RuneCountInString(value) < config.MinNameLength && isDigits(value) {
		return Name{}, &ValidationError{Kind: KindName, Value: value}
	}
	return Name{value: value}, nil
}

func (Name) Kind() FieldKind  { return KindName }
func (n Name) String() string { return n.value }

// -----------------------------------------------------------------------------
// Phone
// -----------------------------------------------------------------------------

// Phone is an international number: "+" followed by at least ten ASCII digits.
type Phone struct {
	value string
}

// NewPhone validates a phone number such as "+15551234567".
func NewPhone(value string) (Phone, error) {
	rest, ok := strings.CutPrefix(value, config.PhonePrefix)
	if !ok || len(rest) < config.MinPhoneDigits || !isASCIIDigits(rest) {
		return Phone{}, &ValidationError{Kind: KindPhone, Value: value}
	}
	return Phone{value: value}, nil
}

func (Phone) Kind() FieldKind  { return KindPhone }
func (p Phone) String() string { return p.value }

// -----------------------------------------------------------------------------
// Birthday
// -----------------------------------------------------------------------------

// Birthday is a calendar date without time of day.
type Birthday struct {
	date time.Time
}

// NewBirthday parses text in the DD.MM.YYYY layout. Two-digit day and month
// are required and the date must exist in the calendar.
func NewBirthday(value string) (Birthday, error) {
	t, err := time.Parse(config.DateFormatBirthday, value)
	if err != nil {
		return Birthday{}, &ValidationError{Kind: KindBirthday, Value: value}
	}
	return Birthday{date: t}, nil
}

// BirthdayFromDate builds a Birthday from an already parsed date (vCard BDAY).
// The time of day and location are discarded.
func BirthdayFromDate(t time.Time) Birthday {
	y, m, d := t.Date()
	return Birthday{date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (Birthday) Kind() FieldKind { return KindBirthday }

// Date returns the birthday at midnight UTC.
func (b Birthday) Date() time.Time { return b.date }

// String renders the birthday as DD.MM.YYYY.
func (b Birthday) String() string {
	return b.date.Format(config.DateFormatBirthday)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isASCIIDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
