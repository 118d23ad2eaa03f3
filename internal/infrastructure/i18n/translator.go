// Package i18n renders message keys in the caller's language.
package i18n

import (
	"fmt"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Translator renders message keys for a negotiated language
type Translator struct {
	catalog  *catalog.Builder
	supports []language.Tag
	matcher  language.Matcher
}

// New builds a translator with English and Simplified Chinese messages.
// defaultLang is used when negotiation finds no match.
func New(defaultLang string) (*Translator, error) {
	fallback, err := language.Parse(defaultLang)
	if err != nil {
		return nil, fmt.Errorf("invalid default language %q: %w", defaultLang, err)
	}

	bundles := map[language.Tag]map[string]string{
		language.English:           english,
		language.SimplifiedChinese: simplifiedChinese,
	}
	if _, ok := bundles[fallback]; !ok {
		return nil, fmt.Errorf("no messages for default language %q", defaultLang)
	}

	b := catalog.NewBuilder(catalog.Fallback(fallback))
	for tag, msgs := range bundles {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("failed to add message %s/%s: %w", tag, key, err)
			}
		}
	}

	// The first tag is the matcher's fallback
	supports := []language.Tag{fallback}
	for tag := range bundles {
		if tag != fallback {
			supports = append(supports, tag)
		}
	}

	return &Translator{
		catalog:  b,
		supports: supports,
		matcher:  language.NewMatcher(supports),
	}, nil
}

// Match picks the supported language for an Accept-Language header value
func (t *Translator) Match(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return t.supports[0]
	}
	_, index, _ := t.matcher.Match(tags...)
	return t.supports[index]
}

// Sprintf renders key with args in lang. Unknown keys render as themselves.
// Integer arguments are identifiers or limits and render without digit
// grouping, so catalogue entries take them as %s.
func (t *Translator) Sprintf(lang language.Tag, key string, args ...any) string {
	return message.NewPrinter(lang, message.Catalog(t.catalog)).Sprintf(key, plainIntegers(args)...)
}

func plainIntegers(args []any) []any {
	out := make([]any, len(args))
	for i, arg := range args {
		switch v := arg.(type) {
		case int:
			out[i] = strconv.Itoa(v)
		case int32:
			out[i] = strconv.FormatInt(int64(v), 10)
		case int64:
			out[i] = strconv.FormatInt(v, 10)
		case uint:
			out[i] = strconv.FormatUint(uint64(v), 10)
		case uint64:
			out[i] = strconv.FormatUint(v, 10)
		default:
			out[i] = arg
		}
	}
	return out
}
