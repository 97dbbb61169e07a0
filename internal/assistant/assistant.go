package assistant

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/contact"
	"github.com/tartampluch/go-contacts/internal/locale"
)

// Saver persists the whole directory. It is called once, on exit.
type Saver interface {
	Save(d *contact.Directory) error
	Location() string
}

// Result is the outcome of one input line.
type Result struct {
	// Reply is printed to the user; empty means nothing to print.
	Reply string

	// Exit ends the conversation.
	Exit bool

	// Err is set when the final save failed.
	Err error
}

type handlerFunc func(ctx context.Context, args []string) (string, error)

// Assistant owns the directory for the lifetime of a session and turns
// command lines into operations on it.
type Assistant struct {
	Book       *contact.Directory
	Store      Saver
	Tr         *locale.Translator
	Clock      contact.Clock
	WindowDays int

	handlers map[string]handlerFunc
}

// New wires an Assistant around a loaded directory.
func New(book *contact.Directory, store Saver, tr *locale.Translator, windowDays int) *Assistant {
	a := &Assistant{
		Book:       book,
		Store:      store,
		Tr:         tr,
		Clock:      contact.RealClock{},
		WindowDays: windowDays,
	}
	a.handlers = map[string]handlerFunc{
		config.CmdHello:        a.hello,
		config.CmdAdd:          a.addContact,
		config.CmdChange:       a.changeContact,
		config.CmdPhone:        a.showPhone,
		config.CmdAll:          a.showAll,
		config.CmdAddBirthday:  a.addBirthday,
		config.CmdShowBirthday: a.showBirthday,
		config.CmdBirthdays:    a.birthdays,
		config.CmdDelete:       a.deleteContact,
		config.CmdRemovePhone:  a.removePhone,
		config.CmdSearch:       a.searchPhone,
		config.CmdExport:       a.exportCalendar,
		config.CmdImport:       a.importContacts,
		config.CmdHelp:         a.help,
	}
	return a
}

// Handle processes one input line.
func (a *Assistant) Handle(ctx context.Context, line string) Result {
	cmd, args := ParseInput(line)
	if cmd == "" {
		return Result{}
	}

	slog.Debug(config.MsgCommand,
		config.LogKeyComponent, config.CompAssistant,
		config.LogKeyCommand, cmd,
		config.LogKeyArgs, len(args),
	)

	if cmd == config.CmdExit || cmd == config.CmdClose {
		return a.close()
	}

	h, ok := a.handlers[cmd]
	if !ok {
		return Result{Reply: a.Tr.Msg(config.TKeyInvalidCommand)}
	}

	reply, err := h(ctx, args)
	if err != nil {
		slog.Debug(config.MsgCommandFailed,
			config.LogKeyComponent, config.CompAssistant,
			config.LogKeyCommand, cmd,
			config.LogKeyError, err,
		)
		return Result{Reply: a.errorReply(err)}
	}
	return Result{Reply: reply}
}

// Run greets the user, then reads commands from in until exit, end of input
// or ctx cancellation. The directory is saved in all three cases.
func (a *Assistant) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, a.Tr.Msg(config.TKeyWelcome))

	lines := make(chan string)
	readErr := make(chan error, config.ChannelBufferSize)

	// The scanner blocks on the terminal; it runs aside so cancellation is observed.
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		fmt.Fprint(out, a.Tr.Msg(config.TKeyPrompt))

		var res Result
		select {
		case <-ctx.Done():
			slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompAssistant)
			fmt.Fprintln(out)
			res = a.close()
		case line, ok := <-lines:
			if !ok {
				logInputClosed(readErr)
				fmt.Fprintln(out)
				res = a.close()
				break
			}
			res = a.Handle(ctx, line)
		}

		if res.Reply != "" {
			fmt.Fprintln(out, res.Reply)
		}
		if res.Exit {
			return res.Err
		}
	}
}

func logInputClosed(readErr <-chan error) {
	var err error
	select {
	case err = <-readErr:
	default:
	}
	if err != nil {
		slog.Warn(config.MsgInputClosed,
			config.LogKeyComponent, config.CompAssistant,
			config.LogKeyError, err)
		return
	}
	slog.Info(config.MsgInputClosed, config.LogKeyComponent, config.CompAssistant)
}

// close saves the directory and says goodbye.
func (a *Assistant) close() Result {
	res := Result{Reply: a.Tr.Msg(config.TKeyGoodbye), Exit: true}
	if a.Store == nil {
		return res
	}
	if err := a.Store.Save(a.Book); err != nil {
		res.Err = err
		res.Reply = a.errorReply(&fileError{Path: a.Store.Location(), Err: err}) + "\n" + res.Reply
	}
	return res
}

// fileError reports a file named by the user that could not be read or written.
type fileError struct {
	Path string
	Err  error
}

func (e *fileError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }
func (e *fileError) Unwrap() error { return e.Err }

// errorReply maps an error kind to its fixed user-facing message.
func (a *Assistant) errorReply(err error) string {
	var fErr *fileError
	switch {
	case errors.Is(err, contact.ErrValidation):
		return a.Tr.Msg(config.TKeyErrData)
	case errors.Is(err, contact.ErrNotFound):
		return a.Tr.Msg(config.TKeyErrNotFound)
	case errors.Is(err, contact.ErrMissingArgument):
		return a.Tr.Msg(config.TKeyErrMissingArg)
	case errors.As(err, &fErr):
		return a.Tr.Format(config.TKeyErrFile, map[string]any{"Path": fErr.Path})
	default:
		slog.Error(config.MsgCommandFailed,
			config.LogKeyComponent, config.CompAssistant,
			config.LogKeyError, err)
		return a.Tr.Msg(config.TKeyErrData)
	}
}

func (a *Assistant) eventSummary(name string, age int) string {
	if age == 0 {
		return a.Tr.Format(config.TKeyEvtSummaryBirth, map[string]any{"Name": name})
	}
	return a.Tr.Format(config.TKeyEvtSummaryAge, map[string]any{"Name": name, "Age": age})
}
