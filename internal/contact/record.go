package contact

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tartampluch/go-contacts/internal/config"
)

// uidNamespace scopes the name-based record identifiers to this application.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte(config.UIDNamespaceURL))

// Record holds one person: a fixed name, phones in insertion order and an
// optional birthday.
type Record struct {
	name     Name
	phones   []Phone
	birthday *Birthday
}

// NewRecord creates a record with no phones and no birthday.
func NewRecord(name string) (*Record, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	return &Record{name: n}, nil
}

// Name returns the record key.
func (r *Record) Name() Name { return r.name }

// UID returns a stable identifier derived from the name (UUID version 5).
// It is used as the vCard UID and as the base of calendar event UIDs.
func (r *Record) UID() uuid.UUID {
	return uuid.NewSHA1(uidNamespace, []byte(r.name.value))
}

// Phones returns a copy of the phone list.
func (r *Record) Phones() []Phone {
	out := make([]Phone, len(r.phones))
	copy(out, r.phones)
	return out
}

// Birthday returns the birthday and whether one is set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// AddPhone validates text and appends it. Duplicates are allowed.
func (r *Record) AddPhone(text string) error {
	p, err := NewPhone(text)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone drops the first phone equal to text. Absent phones are ignored.
func (r *Record) RemovePhone(text string) {
	for i, p := range r.phones {
		if p.value == text {
			r.phones = append(r.phones[:i], r.phones[i+1:]...)
			return
		}
	}
}

// EditPhone replaces every phone equal to oldText with newText.
// newText is validated even when nothing matches; no match is not an error.
func (r *Record) EditPhone(oldText, newText string) error {
	p, err := NewPhone(newText)
	if err != nil {
		return err
	}
	for i := range r.phones {
		if r.phones[i].value == oldText {
			r.phones[i] = p
		}
	}
	return nil
}

// FindPhone returns the first phone equal to text.
func (r *Record) FindPhone(text string) (Phone, bool) {
	for _, p := range r.phones {
		if p.value == text {
			return p, true
		}
	}
	return Phone{}, false
}

// AddBirthday parses text as DD.MM.YYYY and sets or overwrites the birthday.
func (r *Record) AddBirthday(text string) error {
	b, err := NewBirthday(text)
	if err != nil {
		return err
	}
	r.SetBirthday(b)
	return nil
}

// SetBirthday stores an already validated birthday.
func (r *Record) SetBirthday(b Birthday) {
	r.birthday = &b
}

// PhoneList joins the phones with sep, or returns "" when there are none.
func (r *Record) PhoneList(sep string) string {
	values := make([]string, len(r.phones))
	for i, p := range r.phones {
		values[i] = p.value
	}
	return strings.Join(values, sep)
}

// String renders the record on one line:
//
//	Contact name: Alice, phones: +15551234567; +19998887777, birthday: 12.06.1990
func (r *Record) String() string {
	phones := r.PhoneList(config.PhoneJoinSeparator)
	if phones == "" {
		phones = config.FallbackNoPhones
	}
	line := fmt.Sprintf("Contact name: %s, phones: %s", r.name, phones)
	if b, ok := r.Birthday(); ok {
		line += ", birthday: " + b.String()
	}
	return line
}
