package locale

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-contacts/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translator resolves message IDs against the embedded locale files.
type Translator struct {
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	matcher   language.Matcher
	tags      []language.Tag
	lang      string

	// Languages lists the locale codes found in the embedded files.
	Languages []string
}

// New loads every embedded locale and selects lang (falling back to English).
func New(lang string) *Translator {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	t := &Translator{bundle: bundle}

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		tag, err := language.Parse(langCode)
		if err != nil {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}

		t.Languages = append(t.Languages, langCode)
		t.tags = append(t.tags, tag)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
		)
	}

	// The default language must be the first tag of the matcher.
	t.tags = append([]language.Tag{language.English}, t.tags...)
	t.matcher = language.NewMatcher(t.tags)
	t.SetLanguage(lang)
	return t
}

// SetLanguage switches the reply language. Regional variants ("uk-UA") and
// unknown codes resolve to the closest loaded locale.
func (t *Translator) SetLanguage(lang string) {
	if lang == "" {
		lang = config.DefaultLanguage
	}
	_, idx, _ := t.matcher.Match(language.Make(lang))
	base, _ := t.tags[idx].Base()
	t.lang = base.String()
	t.localizer = i18n.NewLocalizer(t.bundle, t.lang)
}

// Language returns the selected locale code.
func (t *Translator) Language() string {
	return t.lang
}

// Msg translates a key that takes no arguments.
func (t *Translator) Msg(key string) string {
	return t.localize(&i18n.LocalizeConfig{MessageID: key})
}

// Format translates a key with template data.
func (t *Translator) Format(key string, data map[string]any) string {
	return t.localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
}

// Plural translates a key whose form depends on count. count is also
// available to the template as {{.Count}}.
func (t *Translator) Plural(key string, count int, data map[string]any) string {
	if data == nil {
		data = map[string]any{}
	}
	data["Count"] = count
	return t.localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data, PluralCount: count})
}

func (t *Translator) localize(lc *i18n.LocalizeConfig) string {
	msg, err := t.localizer.Localize(lc)
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, lc.MessageID,
			config.LogKeyError, err,
		)
		if msg != "" {
			return msg
		}
		return lc.MessageID
	}
	return msg
}
