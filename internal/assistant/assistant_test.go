package assistant_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-contacts/internal/assistant"
	"github.com/tartampluch/go-contacts/internal/contact"
	"github.com/tartampluch/go-contacts/internal/locale"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockSaver simulates the persistence collaborator using testify/mock.
type MockSaver struct {
	mock.Mock
}

func (m *MockSaver) Save(d *contact.Directory) error {
	return m.Called(d).Error(0)
}

func (m *MockSaver) Location() string {
	return m.Called().String(0)
}

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func newTestAssistant(t *testing.T) (*assistant.Assistant, *MockSaver) {
	t.Helper()
	saver := new(MockSaver)
	a := assistant.New(contact.NewDirectory(), saver, locale.New("en"), 7)
	a.Clock = MockClock{CurrentTime: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)}
	return a, saver
}

func reply(a *assistant.Assistant, line string) string {
	return a.Handle(context.Background(), line).Reply
}

// -----------------------------------------------------------------------------
// Handle
// -----------------------------------------------------------------------------

func TestHandle_Session(t *testing.T) {
	a, _ := newTestAssistant(t)

	steps := []struct {
		line string
		want string
	}{
		{"hello", "How can I help you?"},
		{"add Alice +15551234567", "Contact added."},
		{"add Alice +19998887777", "Contact updated."},
		{"phone Alice", "Alice's phones: +15551234567, +19998887777"},
		{"show-birthday Alice", "No birthday found for Alice."},
		{"add-birthday Alice 12.06.1990", "Birthday added for Alice."},
		{"show-birthday Alice", "Alice's birthday is on 12.06.1990"},
		{"change Alice +15551234567 +10000000000", "Contact Alice updated."},
		{"all", "Contact name: Alice, phones: +10000000000; +19998887777, birthday: 12.06.1990"},
		{"birthdays", "Alice: 12.06.1990"},
		{"phone", "Enter user name."},
		{"fly", "Invalid command."},
	}

	for _, s := range steps {
		assert.Equal(t, s.want, reply(a, s.line), "reply to %q", s.line)
	}
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"Invalid phone", "add Bob 12345", "The data is incorrect. Try again."},
		{"Short numeric name", "add 12 +15551234567", "The data is incorrect. Try again."},
		{"Unknown contact on change", "change Ghost +15551234567 +15550000000", "Contact not found."},
		{"Unknown contact on phone", "phone Ghost", "Contact not found."},
		{"Unknown contact on add-birthday", "add-birthday Ghost 01.01.2000", "Contact not found."},
		{"Unknown contact on delete", "delete Ghost", "Contact not found."},
		{"Missing phone on add", "add Alice", "Enter user name."},
		{"Missing change arguments", "change Alice", "Enter user name."},
		{"Missing birthday", "add-birthday Alice", "Enter user name."},
		{"Bad birthday format", "add-birthday Alice 1990-06-12", "The data is incorrect. Try again."},
		{"Invalid new phone", "change Alice +15551234567 nope", "The data is incorrect. Try again."},
		{"Unknown command", "teleport Alice", "Invalid command."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newTestAssistant(t)
			require.Equal(t, "Contact added.", reply(a, "add Alice +15551234567"))

			assert.Equal(t, tt.want, reply(a, tt.line))
		})
	}
}

func TestHandle_AddRejectsInvalidPhoneWithoutStoring(t *testing.T) {
	a, _ := newTestAssistant(t)

	assert.Equal(t, "The data is incorrect. Try again.", reply(a, "add Bob 555"))
	_, found := a.Book.Find("Bob")
	assert.False(t, found, "A contact with an invalid phone must not be created")
}

func TestHandle_AddRequiresPhone(t *testing.T) {
	a, _ := newTestAssistant(t)

	assert.Equal(t, "Enter user name.", reply(a, "add Bob"))
	_, found := a.Book.Find("Bob")
	assert.False(t, found, "A contact is not created without a phone")

	require.Equal(t, "Contact added.", reply(a, "add Bob +15551234567"))
	assert.Equal(t, "Enter user name.", reply(a, "add Bob"))
	assert.Equal(t, "Bob's phones: +15551234567", reply(a, "phone Bob"), "An existing contact is left unchanged")
}

func TestHandle_NoPhonesMarker(t *testing.T) {
	a, _ := newTestAssistant(t)
	reply(a, "add Bob +15551234567")
	reply(a, "remove-phone Bob +15551234567")

	assert.Equal(t, "Bob's phones: No phones", reply(a, "phone Bob"))
	assert.Equal(t, "Contact name: Bob, phones: No phones", reply(a, "all"))
}

func TestHandle_BlankLineIsIgnored(t *testing.T) {
	a, _ := newTestAssistant(t)

	res := a.Handle(context.Background(), "   ")
	assert.Empty(t, res.Reply)
	assert.False(t, res.Exit)
}

func TestHandle_CommandIsCaseInsensitive(t *testing.T) {
	a, _ := newTestAssistant(t)
	assert.Equal(t, "How can I help you?", reply(a, "HELLO"))
}

func TestHandle_AllEmpty(t *testing.T) {
	a, _ := newTestAssistant(t)
	assert.Equal(t, "The address book is empty.", reply(a, "all"))
}

func TestHandle_BirthdaysNone(t *testing.T) {
	a, _ := newTestAssistant(t)
	reply(a, "add Bob +15551234567")
	reply(a, "add-birthday Bob 20.06.1990")

	assert.Equal(t, "No birthdays in the next 7 days.", reply(a, "birthdays"))
}

func TestHandle_BirthdaysListsInDirectoryOrder(t *testing.T) {
	a, _ := newTestAssistant(t)
	for _, line := range []string{
		"add Zed +15550000001", "add-birthday Zed 17.06.1980",
		"add Amy +15550000002", "add-birthday Amy 10.06.2000",
		"add Out +15550000003", "add-birthday Out 18.06.1970",
	} {
		reply(a, line)
	}

	assert.Equal(t, "Zed: 17.06.1980\nAmy: 10.06.2000", reply(a, "birthdays"))
}

func TestHandle_DeleteRemovePhoneSearch(t *testing.T) {
	a, _ := newTestAssistant(t)
	reply(a, "add Alice +15551234567")
	reply(a, "add Alice +19998887777")
	reply(a, "add Carol +15551234567")

	assert.Equal(t, "+15551234567: Alice, Carol", reply(a, "search +15551234567"))
	assert.Equal(t, "No contacts with phone +10000000000.", reply(a, "search +10000000000"))

	assert.Equal(t, "Phone removed from Alice.", reply(a, "remove-phone Alice +15551234567"))
	assert.Equal(t, "Alice's phones: +19998887777", reply(a, "phone Alice"))

	assert.Equal(t, "Contact Carol deleted.", reply(a, "delete Carol"))
	assert.Equal(t, "Contact not found.", reply(a, "phone Carol"))
	assert.Equal(t, "No contacts with phone +15551234567.", reply(a, "search +15551234567"))
}

func TestHandle_Help(t *testing.T) {
	a, _ := newTestAssistant(t)
	out := reply(a, "help")
	for _, cmd := range []string{"add", "change", "birthdays", "export", "import", "exit"} {
		assert.Contains(t, out, cmd)
	}
	assert.Contains(t, out, "add <name> <phone>")
}

func TestHandle_Export(t *testing.T) {
	a, _ := newTestAssistant(t)
	reply(a, "add Alice +15551234567")
	reply(a, "add-birthday Alice 12.06.1990")
	reply(a, "add Bob +15550000000")

	path := filepath.Join(t.TempDir(), "out", "birthdays.ics")
	assert.Equal(t, "Calendar exported to "+path+": 1 birthday.", reply(a, "export "+path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "BEGIN:VCALENDAR")
	assert.Contains(t, string(data), "Birthday: Alice (34)")
}

func TestHandle_ExportUnwritablePath(t *testing.T) {
	a, _ := newTestAssistant(t)
	dir := t.TempDir()

	// A directory cannot be replaced by a file.
	assert.Equal(t, "Cannot use file "+dir+".", reply(a, "export "+dir))
}

func TestHandle_Import(t *testing.T) {
	a, _ := newTestAssistant(t)
	path := filepath.Join(t.TempDir(), "friends.vcf")
	vcf := "BEGIN:VCARD\r\nVERSION:4.0\r\nFN:Dana\r\nTEL:+380501234567\r\nBDAY:1995-06-15\r\nEND:VCARD\r\n"
	require.NoError(t, os.WriteFile(path, []byte(vcf), 0600))

	assert.Equal(t, "Imported 1 contact.", reply(a, "import "+path))
	assert.Equal(t, "Dana's phones: +380501234567", reply(a, "phone Dana"))
	assert.Equal(t, "Dana: 15.06.1995", reply(a, "birthdays"))

	missing := filepath.Join(t.TempDir(), "missing.vcf")
	assert.Equal(t, "Cannot use file "+missing+".", reply(a, "import "+missing))
}

func TestHandle_Localized(t *testing.T) {
	a := assistant.New(contact.NewDirectory(), new(MockSaver), locale.New("uk"), 7)

	assert.Equal(t, "Контакт додано.", reply(a, "add Alice +15551234567"))
	assert.NotEqual(t, "Invalid command.", reply(a, "fly"))
}

// -----------------------------------------------------------------------------
// Exit
// -----------------------------------------------------------------------------

func TestHandle_ExitSaves(t *testing.T) {
	for _, cmd := range []string{"exit", "close", "EXIT"} {
		t.Run(cmd, func(t *testing.T) {
			a, saver := newTestAssistant(t)
			saver.On("Save", a.Book).Return(nil).Once()

			res := a.Handle(context.Background(), cmd)

			assert.True(t, res.Exit)
			assert.NoError(t, res.Err)
			assert.Equal(t, "Good bye!", res.Reply)
			saver.AssertExpectations(t)
		})
	}
}

func TestHandle_ExitSaveFailure(t *testing.T) {
	a, saver := newTestAssistant(t)
	saveErr := errors.New("disk full")
	saver.On("Save", a.Book).Return(saveErr).Once()
	saver.On("Location").Return("/data/addressbook.vcf")

	res := a.Handle(context.Background(), "exit")

	assert.True(t, res.Exit)
	assert.ErrorIs(t, res.Err, saveErr)
	assert.Equal(t, "Cannot use file /data/addressbook.vcf.\nGood bye!", res.Reply)
	saver.AssertExpectations(t)
}

// -----------------------------------------------------------------------------
// Run
// -----------------------------------------------------------------------------

func TestRun_Conversation(t *testing.T) {
	a, saver := newTestAssistant(t)
	saver.On("Save", a.Book).Return(nil).Once()

	in := strings.NewReader("hello\n\nadd Alice +15551234567\nexit\nhello\n")
	var out bytes.Buffer

	require.NoError(t, a.Run(context.Background(), in, &out))

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "Welcome to the assistant bot!\n"))
	assert.Contains(t, text, "How can I help you?")
	assert.Contains(t, text, "Contact added.")
	assert.True(t, strings.HasSuffix(text, "Good bye!\n"))
	assert.Equal(t, 1, strings.Count(text, "How can I help you?"), "Input after exit is not processed")
	saver.AssertExpectations(t)
}

func TestRun_EndOfInputSaves(t *testing.T) {
	a, saver := newTestAssistant(t)
	saver.On("Save", a.Book).Return(nil).Once()

	var out bytes.Buffer
	require.NoError(t, a.Run(context.Background(), strings.NewReader("add Bob +15551234567"), &out))

	_, found := a.Book.Find("Bob")
	assert.True(t, found)
	assert.True(t, strings.HasSuffix(out.String(), "Good bye!\n"))
	saver.AssertExpectations(t)
}

func TestRun_CancelledContextSaves(t *testing.T) {
	a, saver := newTestAssistant(t)
	saver.On("Save", a.Book).Return(nil).Once()

	// The pipe never delivers a line, so only cancellation can end the loop.
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	require.NoError(t, a.Run(ctx, pr, &out))

	assert.True(t, strings.HasSuffix(out.String(), "Good bye!\n"))
	saver.AssertExpectations(t)
}

func TestRun_SaveFailureIsReturned(t *testing.T) {
	a, saver := newTestAssistant(t)
	saveErr := errors.New("read-only file system")
	saver.On("Save", a.Book).Return(saveErr).Once()
	saver.On("Location").Return("/ro/addressbook.vcf")

	var out bytes.Buffer
	err := a.Run(context.Background(), strings.NewReader("close\n"), &out)

	assert.ErrorIs(t, err, saveErr)
	assert.Contains(t, out.String(), "Cannot use file /ro/addressbook.vcf.")
}
