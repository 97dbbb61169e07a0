package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/contact"
)

// Encode writes the directory as a sequence of vCard 4.0 objects, one per
// record, in directory order. Phones keep their order as TEL properties.
func Encode(w io.Writer, d *contact.Directory) error {
	enc := vcard.NewEncoder(w)
	for _, r := range d.Records() {
		if err := enc.Encode(cardFromRecord(r)); err != nil {
			return fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
		}
	}
	return nil
}

// Decode reads a snapshot written by Encode. Any invalid card, or any text
// the vCard decoder would skip, fails the whole decode.
func Decode(r io.Reader) (*contact.Directory, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if err := checkFraming(data); err != nil {
		return nil, err
	}

	d := contact.NewDirectory()
	dec := vcard.NewDecoder(bytes.NewReader(data))
	for {
		card, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			return d, nil
		}
		if err != nil {
			return nil, err
		}
		rec, err := recordFromCard(card)
		if err != nil {
			return nil, err
		}
		d.AddRecord(rec)
	}
}

// checkFraming rejects text outside BEGIN:VCARD/END:VCARD and property lines
// without a colon. go-vcard drops both silently.
func checkFraming(data []byte) error {
	inCard := false
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		folded := line[0] == ' ' || line[0] == '\t'
		switch {
		case strings.EqualFold(line, config.VCardBegin):
			inCard = true
		case strings.EqualFold(line, config.VCardEnd):
			inCard = false
		case !inCard:
			return fmt.Errorf("%s %d", config.ErrStrayText, i+1)
		case !folded && !strings.Contains(line, ":"):
			return fmt.Errorf("%s %d", config.ErrStrayText, i+1)
		}
	}
	return nil
}

func cardFromRecord(r *contact.Record) vcard.Card {
	card := make(vcard.Card)
	card.SetValue(vcard.FieldUID, fmt.Sprintf(config.FormatUIDURN, r.UID()))
	card.SetValue(vcard.FieldFormattedName, r.Name().String())
	for _, p := range r.Phones() {
		card.AddValue(vcard.FieldTelephone, p.String())
	}
	if b, ok := r.Birthday(); ok {
		card.SetValue(vcard.FieldBirthday, b.Date().Format(config.DateFormatFullDash))
	}
	vcard.ToV4(card)
	return card
}

func recordFromCard(card vcard.Card) (*contact.Record, error) {
	name := card.Value(vcard.FieldFormattedName)
	if name == "" {
		return nil, errors.New(config.ErrCardNoName)
	}
	rec, err := contact.NewRecord(name)
	if err != nil {
		return nil, err
	}
	for _, tel := range card.Values(vcard.FieldTelephone) {
		if err := rec.AddPhone(tel); err != nil {
			return nil, err
		}
	}
	if bday := card.Value(vcard.FieldBirthday); bday != "" {
		t, err := parseDate(bday)
		if err != nil {
			return nil, fmt.Errorf("%s: %q", config.ErrDateParse, bday)
		}
		rec.SetBirthday(contact.BirthdayFromDate(t))
	}
	return rec, nil
}

// parseDate handles the vCard BDAY layouts that carry a year.
// Truncated dates (--MM-DD) are rejected: a Birthday always has a year.
func parseDate(value string) (time.Time, error) {
	formats := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New(config.ErrDateParse)
}

// cardName picks FN, then the structured N property.
func cardName(card vcard.Card) string {
	if fn := strings.TrimSpace(card.Value(vcard.FieldFormattedName)); fn != "" {
		return fn
	}
	n := card.Name()
	if n == nil {
		return ""
	}
	parts := []string{n.HonorificPrefix, n.GivenName, n.AdditionalName, n.FamilyName, n.HonorificSuffix}
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// normalizePhone strips a tel: URI scheme and visual separators.
func normalizePhone(value string) string {
	value = strings.TrimPrefix(strings.TrimSpace(value), "tel:")
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(config.ImportPhoneStripSet, r) {
			return -1
		}
		return r
	}, value)
}
