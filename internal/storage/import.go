package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/contact"
)

// ImportStats summarizes a vCard import.
type ImportStats struct {
	Processed int // Cards read from the stream
	Imported  int // Cards merged into the directory
	Skipped   int // Cards rejected (malformed or without a valid name)
}

// Import merges the vCards read from r into d.
//
// Unlike Decode, it accepts address books exported by other applications:
// names come from FN or N, phone separators are stripped, and values that
// fail validation are skipped with a warning. A contact already in d keeps
// its data; it only gains the phones it lacks and a birthday if it had none.
func Import(ctx context.Context, d *contact.Directory, r io.Reader) (ImportStats, error) {
	var stats ImportStats
	dec := vcard.NewDecoder(r)
	failures := 0

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		card, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Log error but continue to next card to maximize data recovery
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompStorage,
				config.LogKeyError, err)
			stats.Skipped++
			failures++
			if failures >= config.MaxConsecutiveCardErrors {
				return stats, fmt.Errorf("%s: %w", config.ErrVCardDecode, err)
			}
			continue
		}
		failures = 0
		stats.Processed++

		if mergeCard(d, card) {
			stats.Imported++
		} else {
			stats.Skipped++
		}
	}

	slog.Info(config.MsgImportDone,
		config.LogKeyComponent, config.CompStorage,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.Processed),
			slog.Int(config.LogKeyImported, stats.Imported),
			slog.Int(config.LogKeySkipped, stats.Skipped),
		),
	)
	return stats, nil
}

// mergeCard applies one card to d and reports whether it was accepted.
func mergeCard(d *contact.Directory, card vcard.Card) bool {
	name := cardName(card)
	rec, exists := d.Find(name)
	if !exists {
		var err error
		rec, err = contact.NewRecord(name)
		if err != nil {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompStorage,
				config.LogKeyName, name,
				config.LogKeyError, err)
			return false
		}
	}

	for _, tel := range card.Values(vcard.FieldTelephone) {
		phone := normalizePhone(tel)
		if _, ok := rec.FindPhone(phone); ok {
			continue
		}
		if err := rec.AddPhone(phone); err != nil {
			slog.Warn(config.MsgSkippedPhone,
				config.LogKeyComponent, config.CompStorage,
				config.LogKeyName, name,
				config.LogKeyValue, tel)
		}
	}

	if bday := card.Value(vcard.FieldBirthday); bday != "" {
		if _, has := rec.Birthday(); !has {
			if t, err := parseDate(bday); err == nil {
				rec.SetBirthday(contact.BirthdayFromDate(t))
			} else {
				slog.Debug(config.MsgSkippedDate,
					config.LogKeyComponent, config.CompStorage,
					config.LogKeyValue, bday)
			}
		}
	}

	if !exists {
		d.AddRecord(rec)
	}
	return true
}

// ImportFile opens path and merges it into d.
func ImportFile(ctx context.Context, d *contact.Directory, path string) (ImportStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportStats{}, err
	}
	defer func() { _ = f.Close() }()
	return Import(ctx, d, f)
}
