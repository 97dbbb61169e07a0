package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName         = "Go Contacts"
	AppID           = "com.github.tartampluch.go-contacts"
	AppDirName      = "go-contacts"
	BinaryName      = "go-contacts"
	LogFileName     = "app.log"
	DataFileName    = "addressbook.vcf"
	SettingsFile    = "config.yaml"
	TempFilePrefix  = "go-contacts-tmp-"
	ICalDomain      = "gocontacts"
	UIDNamespaceURL = "https://github.com/tartampluch/go-contacts/contact/"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for the address book snapshot and logs.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion     = "version"
	FlagDebug       = "debug"
	FlagConfig      = "config"
	FlagFile        = "file"
	FlagFileShort   = "f"
	FlagLang        = "lang"
	FlagDays        = "days"
	FlagDescVersion = "Show application version and exit"
	FlagDescDebug   = "Enable debug logging to stderr"
	FlagDescConfig  = "Path to the YAML settings file"
	FlagDescFile    = "Path to the address book (vCard) file"
	FlagDescLang    = "Language of the assistant replies (en, uk)"
	FlagDescDays    = "Size of the upcoming birthdays window in days"

	CmdShortRoot    = "A personal contact directory with birthday reminders"
	CmdLongRoot     = "go-contacts is an interactive assistant that keeps names, phone numbers and birthdays\nin a local vCard file and tells you whose birthday is coming up."
	CmdShortVersion = "Print the version number"

	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultLanguage   = "en"
	DefaultWindowDays = 7
	MinWindowDays     = 1
	MaxWindowDays     = 366

	// Name and phone validation limits.
	MinNameLength       = 3
	PhonePrefix         = "+"
	MinPhoneDigits      = 10
	PhoneJoinSeparator  = "; "
	PhoneListSeparator  = ", "
	ImportPhoneStripSet = " -.()"

	// MaxConsecutiveCardErrors aborts an import stuck on an unreadable stream.
	MaxConsecutiveCardErrors = 100
)

// SupportedLanguages defines the list of available reply languages (ISO 639-1).
var SupportedLanguages = []string{"en", "uk"}

// -----------------------------------------------------------------------------
// Data Formats
// -----------------------------------------------------------------------------

const (
	// DateFormatBirthday is the only layout accepted on input and used on output.
	DateFormatBirthday = "02.01.2006"

	// Date layouts used for vCard BDAY fields.
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339

	// UID generation
	FormatUID    = "%s-%d@%s"
	FormatUIDURN = "urn:uuid:%s"

	// File Extensions
	ExtVCF = ".vcf"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Contacts//Calendar//EN"
	ICalCalName = "Birthdays"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	// vCard framing lines
	VCardBegin = "BEGIN:VCARD"
	VCardEnd   = "END:VCARD"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	FallbackSummary    = "Birthday: %s"
	FallbackSummaryAge = "Birthday: %s (%d)"
)

// -----------------------------------------------------------------------------
// Fallbacks
// -----------------------------------------------------------------------------

const (
	FallbackNoPhones = "No phones"
)

// -----------------------------------------------------------------------------
// Assistant Commands
// -----------------------------------------------------------------------------

const (
	CmdHello        = "hello"
	CmdAdd          = "add"
	CmdChange       = "change"
	CmdPhone        = "phone"
	CmdAll          = "all"
	CmdAddBirthday  = "add-birthday"
	CmdShowBirthday = "show-birthday"
	CmdBirthdays    = "birthdays"
	CmdDelete       = "delete"
	CmdRemovePhone  = "remove-phone"
	CmdSearch       = "search"
	CmdExport       = "export"
	CmdImport       = "import"
	CmdHelp         = "help"
	CmdExit         = "exit"
	CmdClose        = "close"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWelcome          = "welcome"
	TKeyPrompt           = "prompt"
	TKeyGoodbye          = "goodbye"
	TKeyHello            = "hello"
	TKeyInvalidCommand   = "invalid_command"
	TKeyErrData          = "err_data_incorrect"
	TKeyErrNotFound      = "err_contact_not_found"
	TKeyErrMissingArg    = "err_enter_user_name"
	TKeyContactAdded     = "contact_added"
	TKeyContactUpdated   = "contact_updated"
	TKeyContactChanged   = "contact_changed"   // Requires Name
	TKeyContactDeleted   = "contact_deleted"   // Requires Name
	TKeyPhoneRemoved     = "phone_removed"     // Requires Name
	TKeyPhones           = "phones"            // Requires Name, Phones
	TKeyNoPhones         = "no_phones"         // Marker used inside records
	TKeyRecordLine       = "record_line"       // Requires Name, Phones
	TKeyRecordBirthday   = "record_line_bday"  // Requires Name, Phones, Birthday
	TKeyBookEmpty        = "book_empty"        // Empty directory
	TKeyBirthdayAdded    = "birthday_added"    // Requires Name
	TKeyBirthdayShow     = "birthday_show"     // Requires Name, Birthday
	TKeyBirthdayNone     = "birthday_none"     // Requires Name
	TKeyUpcomingLine     = "upcoming_line"     // Requires Name, Birthday
	TKeyUpcomingNone     = "upcoming_none"     // Requires Days
	TKeySearchNone       = "search_none"       // Requires Phone
	TKeySearchFound      = "search_found"      // Requires Phone, Names
	TKeyExported         = "calendar_exported" // Requires Count, Path
	TKeyImported         = "contacts_imported" // Requires Count
	TKeyErrFile          = "err_file"          // Requires Path
	TKeyHelp             = "help"
	TKeyEvtSummary       = "event_summary"       // Requires Name
	TKeyEvtSummaryAge    = "event_summary_age"   // Requires Name, Age
	TKeyEvtSummaryBirth  = "event_summary_birth" // Requires Name (For age 0)
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrInvalidName     = "invalid name"
	ErrInvalidPhone    = "invalid phone number"
	ErrInvalidBirthday = "invalid birthday"
	ErrContactNotFound = "contact not found"
	ErrMissingArgument = "missing argument"
	ErrSnapshotRead    = "failed to read address book"
	ErrSnapshotDecode  = "failed to decode address book"
	ErrSnapshotWrite   = "failed to write address book"
	ErrCardNoName      = "vCard has no name"
	ErrVCardEncode     = "failed to encode vCard"
	ErrVCardDecode     = "failed to parse vCard stream"
	ErrStrayText       = "text outside of a vCard property at line"
	ErrICalEncode      = "failed to encode iCalendar data"
	ErrDateParse       = "unable to parse date"
	ErrSettingsRead    = "failed to read settings file"
	ErrSettingsParse   = "failed to parse settings file"
	ErrSettingsDays    = "birthday_window_days must be between 1 and 366"
	ErrSettingsLang    = "language is not a valid language tag"
	ErrLogFile         = "failed to open log file"
	ErrCacheDir        = "could not determine user cache dir"
	ErrConfigDir       = "could not determine user config dir"
	ErrCreateDir       = "could not create app directory"
	ErrAppFailed       = "application failed unexpectedly"
	ErrLocalesAccess   = "failed to access embedded locales"
	ErrLocaleLoad      = "failed to load locale file"
	ErrTempCreate      = "failed to create temp file"
	ErrTempWrite       = "failed to write to temp file"
	ErrTempSync        = "failed to sync temp file"
	ErrTempClose       = "failed to close temp file"
	ErrTempChmod       = "failed to chmod temp file"
	ErrTempRename      = "failed to rename temp file"
	ErrStartup         = "startup failed"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application stopped gracefully"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgStartupFailure = "%s: %v\n"
	MsgSnapshotMiss   = "No address book yet, starting empty"
	MsgSnapshotLoaded = "Address book loaded"
	MsgSnapshotSaved  = "Address book saved"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedPhone   = "Skipping invalid phone number"
	MsgSkippedDate    = "Skipping invalid date format"
	MsgImportDone     = "vCard import finished"
	MsgCalendarDone   = "Calendar generation successful"
	MsgCommand        = "Command received"
	MsgCommandFailed  = "Command failed"
	MsgInputClosed    = "Input closed, saving and exiting"
	MsgCtxCancel      = "Context cancelled, saving and exiting"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgLocaleSelected = "Reply language selected"
	MsgTransMissing   = "Missing translation key"
	MsgSettingsMiss   = "No settings file, using defaults"
	MsgSettingsLoaded = "Settings loaded"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyValue     = "value"
	LogKeyName      = "name"
	LogKeyCommand   = "command"
	LogKeyArgs      = "args"
	LogKeyCount     = "count"
	LogKeyStats     = "stats"
	LogKeyTotal     = "total_cards"
	LogKeyImported  = "imported"
	LogKeySkipped   = "skipped"
	LogKeyEvents    = "events"
	LogKeyDays      = "days"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyCommit  = "commit"
	LogKeyDate    = "build_date"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompMain      = "main"
	CompStorage   = "storage"
	CompCalendar  = "calendar"
	CompAssistant = "assistant"
	CompI18n      = "i18n"
	CompConfig    = "config"
)
