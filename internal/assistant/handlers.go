package assistant

import (
	"context"
	"strings"

	"github.com/tartampluch/go-contacts/internal/calendar"
	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/contact"
	"github.com/tartampluch/go-contacts/internal/storage"
)

// Argument names reported by MissingArgumentError.
const (
	argName     = "name"
	argPhone    = "phone"
	argOldPhone = "old_phone"
	argNewPhone = "new_phone"
	argBirthday = "birthday"
	argPath     = "path"
)

// requireArgs reports the first of names that args does not provide.
func requireArgs(args []string, names ...string) error {
	if len(args) < len(names) {
		return &contact.MissingArgumentError{Argument: names[len(args)]}
	}
	return nil
}

// findRecord looks a name up and turns absence into a NotFoundError.
func (a *Assistant) findRecord(name string) (*contact.Record, error) {
	r, ok := a.Book.Find(name)
	if !ok {
		return nil, &contact.NotFoundError{Name: name}
	}
	return r, nil
}

func (a *Assistant) hello(_ context.Context, _ []string) (string, error) {
	return a.Tr.Msg(config.TKeyHello), nil
}

func (a *Assistant) help(_ context.Context, _ []string) (string, error) {
	return a.Tr.Msg(config.TKeyHelp), nil
}

// addContact creates a contact or adds a phone to an existing one.
// A new contact is only stored once its phone is valid.
func (a *Assistant) addContact(_ context.Context, args []string) (string, error) {
	if err := requireArgs(args, argName, argPhone); err != nil {
		return "", err
	}
	name, phone := args[0], args[1]

	if r, ok := a.Book.Find(name); ok {
		if err := r.AddPhone(phone); err != nil {
			return "", err
		}
		return a.Tr.Msg(config.TKeyContactUpdated), nil
	}

	r, err := contact.NewRecord(name)
	if err != nil {
		return "", err
	}
	if err := r.AddPhone(phone); err != nil {
		return "", err
	}
	a.Book.AddRecord(r)
	return a.Tr.Msg(config.TKeyContactAdded), nil
}

func (a *Assistant) changeContact(_ context.Context, args []string) (string, error) {
	if err := requireArgs(args, argName, argOldPhone, argNewPhone); err != nil {
		return "", err
	}
	r, err := a.findRecord(args[0])
	if err != nil {
		return "", err
	}
	if err := r.EditPhone(args[1], args[2]); err != nil {
		return "", err
	}
	return a.Tr.Format(config.TKeyContactChanged, map[string]any{"Name": args[0]}), nil
}

func (a *Assistant) showPhone(_ context.Context, args []string) (string, error) {
	if err := requireArgs(args, argName); err != nil {
		return "", err
	}
	r, err := a.findRecord(args[0])
	if err != nil {
		return "", err
	}
	return a.Tr.Format(config.TKeyPhones, map[string]any{
		"Name":   args[0],
		"Phones": a.phoneList(r, config.PhoneListSeparator),
	}), nil
}

func (a *Assistant) removePhone(_ context.Context, args []string) (string, error) {
	if err := requireArgs(args, argName, argPhone); err != nil {
		return "", err
	}
	r, err := a.findRecord(args[0])
	if err != nil {
		return "", err
	}
	r.RemovePhone(args[1])
	return a.Tr.Format(config.TKeyPhoneRemoved, map[string]any{"Name": args[0]}), nil
}

func (a *Assistant) searchPhone(_ context.Context, args []string) (string, error) {
	if err := requireArgs(args, argPhone); err != nil {
		return "", err
	}
	found := a.Book.FindByPhone(args[0])
	if len(found) == 0 {
		return a.Tr.Format(config.TKeySearchNone, map[string]any{"Phone": args[0]}), nil
	}
	names := make([]string, len(found))
	for i, r := range found {
		names[i] = r.Name().String()
	}
	return a.Tr.Format(config.TKeySearchFound, map[string]any{
		"Phone": args[0],
		"Names": strings.Join(names, config.PhoneListSeparator),
	}), nil
}

func (a *Assistant) deleteContact(_ context.Context, args []string) (string, error) {
	if err := requireArgs(args, argName); err != nil {
		return "", err
	}
	if !a.Book.Delete(args[0]) {
		return "", &contact.NotFoundError{Name: args[0]}
	}
	return a.Tr.Format(config.TKeyContactDeleted, map[string]any{"Name": args[0]}), nil
}

func (a *Assistant) showAll(_ context.Context, _ []string) (string, error) {
	if a.Book.Len() == 0 {
		return a.Tr.Msg(config.TKeyBookEmpty), nil
	}
	lines := make([]string, 0, a.Book.Len())
	for _, r := range a.Book.Records() {
		data := map[string]any{
			"Name":   r.Name().String(),
			"Phones": a.phoneList(r, config.PhoneJoinSeparator),
		}
		key := config.TKeyRecordLine
		if b, ok := r.Birthday(); ok {
			data["Birthday"] = b.String()
			key = config.TKeyRecordBirthday
		}
		lines = append(lines, a.Tr.Format(key, data))
	}
	return strings.Join(lines, "\n"), nil
}

func (a *Assistant) addBirthday(_ context.Context, args []string) (string, error) {
	if err := requireArgs(args, argName, argBirthday); err != nil {
		return "", err
	}
	r, err := a.findRecord(args[0])
	if err != nil {
		return "", err
	}
	if err := r.AddBirthday(args[1]); err != nil {
		return "", err
	}
	return a.Tr.Format(config.TKeyBirthdayAdded, map[string]any{"Name": args[0]}), nil
}

// showBirthday answers the same way for an unknown contact and for a contact
// without a birthday.
func (a *Assistant) showBirthday(_ context.Context, args []string) (string, error) {
	if err := requireArgs(args, argName); err != nil {
		return "", err
	}
	if r, ok := a.Book.Find(args[0]); ok {
		if b, ok := r.Birthday(); ok {
			return a.Tr.Format(config.TKeyBirthdayShow, map[string]any{
				"Name":     args[0],
				"Birthday": b.String(),
			}), nil
		}
	}
	return a.Tr.Format(config.TKeyBirthdayNone, map[string]any{"Name": args[0]}), nil
}

func (a *Assistant) birthdays(_ context.Context, _ []string) (string, error) {
	upcoming := a.Book.UpcomingBirthdays(a.Clock.Now(), a.WindowDays)
	if len(upcoming) == 0 {
		return a.Tr.Plural(config.TKeyUpcomingNone, a.WindowDays, nil), nil
	}
	lines := make([]string, len(upcoming))
	for i, u := range upcoming {
		lines[i] = a.Tr.Format(config.TKeyUpcomingLine, map[string]any{
			"Name":     u.Name,
			"Birthday": u.Birthday.String(),
		})
	}
	return strings.Join(lines, "\n"), nil
}

func (a *Assistant) exportCalendar(ctx context.Context, args []string) (string, error) {
	if err := requireArgs(args, argPath); err != nil {
		return "", err
	}
	path := args[0]

	gen := &calendar.Generator{Clock: a.Clock, FormatSummary: a.eventSummary}
	data, count, err := gen.Generate(ctx, a.Book)
	if err != nil {
		return "", err
	}
	if err := storage.WriteFile(path, data); err != nil {
		return "", &fileError{Path: path, Err: err}
	}
	return a.Tr.Plural(config.TKeyExported, count, map[string]any{"Path": path}), nil
}

func (a *Assistant) importContacts(ctx context.Context, args []string) (string, error) {
	if err := requireArgs(args, argPath); err != nil {
		return "", err
	}
	path := args[0]

	stats, err := storage.ImportFile(ctx, a.Book, path)
	if err != nil {
		return "", &fileError{Path: path, Err: err}
	}
	return a.Tr.Plural(config.TKeyImported, stats.Imported, nil), nil
}

// phoneList joins the phones of r, or returns the localized "no phones" marker.
func (a *Assistant) phoneList(r *contact.Record, sep string) string {
	if phones := r.PhoneList(sep); phones != "" {
		return phones
	}
	return a.Tr.Msg(config.TKeyNoPhones)
}
