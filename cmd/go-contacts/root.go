package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tartampluch/go-contacts/internal/assistant"
	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/locale"
	"github.com/tartampluch/go-contacts/internal/storage"
)

// newRootCmd builds the command tree. Input and output follow the cobra
// streams so tests can drive a whole session.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           config.BinaryName,
		Short:         config.CmdShortRoot,
		Long:          config.CmdLongRoot,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool(config.FlagVersion); v {
				printVersion(cmd.OutOrStdout())
				return nil
			}

			s, err := resolveSettings(cmd.Flags())
			if err != nil {
				return err
			}

			logCloser := setupLogging(s.Debug, cmd.ErrOrStderr())
			if logCloser != nil {
				defer func() {
					_ = logCloser.Close() // Best effort close
				}()
			}

			logStartupInfo(s)

			if err := run(cmd.Context(), s, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				slog.Error(config.ErrAppFailed,
					config.LogKeyComponent, config.CompMain,
					config.LogKeyError, err,
				)
				return err
			}

			slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
			return nil
		},
	}

	flags := rootCmd.Flags()
	flags.String(config.FlagConfig, "", config.FlagDescConfig)
	flags.StringP(config.FlagFile, config.FlagFileShort, "", config.FlagDescFile)
	flags.String(config.FlagLang, config.DefaultLanguage, config.FlagDescLang)
	flags.Int(config.FlagDays, config.DefaultWindowDays, config.FlagDescDays)
	flags.Bool(config.FlagDebug, false, config.FlagDescDebug)
	flags.Bool(config.FlagVersion, false, config.FlagDescVersion)

	rootCmd.AddCommand(&cobra.Command{
		Use:   config.FlagVersion,
		Short: config.CmdShortVersion,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printVersion(cmd.OutOrStdout())
		},
	})

	return rootCmd
}

// resolveSettings layers the settings file, then explicitly set flags, over
// the defaults.
func resolveSettings(flags *pflag.FlagSet) (config.Settings, error) {
	path, _ := flags.GetString(config.FlagConfig)
	if path == "" {
		p, err := config.DefaultSettingsFile()
		if err != nil {
			return config.Settings{}, err
		}
		path = p
	}

	s, err := config.LoadSettings(path)
	if err != nil {
		return config.Settings{}, err
	}

	// Flags are registered above, so the getters cannot fail.
	if flags.Changed(config.FlagFile) {
		s.DataFile, _ = flags.GetString(config.FlagFile)
	}
	if flags.Changed(config.FlagLang) {
		s.Language, _ = flags.GetString(config.FlagLang)
	}
	if flags.Changed(config.FlagDays) {
		s.WindowDays, _ = flags.GetInt(config.FlagDays)
	}
	if flags.Changed(config.FlagDebug) {
		s.Debug, _ = flags.GetBool(config.FlagDebug)
	}

	if s.DataFile == "" {
		p, err := config.DefaultDataFile()
		if err != nil {
			return config.Settings{}, err
		}
		s.DataFile = p
	}

	return s, s.Validate()
}

// run loads the address book and hands the terminal to the assistant until
// the user leaves. A snapshot that exists but cannot be read aborts startup.
func run(ctx context.Context, s config.Settings, in io.Reader, out io.Writer) error {
	store := storage.NewStore(s.DataFile)
	book, err := store.Load()
	if err != nil {
		return err
	}

	tr := locale.New(s.Language)
	slog.Debug(config.MsgLocaleSelected,
		config.LogKeyComponent, config.CompMain,
		config.LogKeyLang, tr.Language(),
	)

	return assistant.New(book, store, tr, s.WindowDays).Run(ctx, in, out)
}
