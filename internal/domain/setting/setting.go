// Package setting holds the runtime-adjustable options of the service.
package setting

import (
	"context"
	"sort"

	"github.com/thankyou/backend/internal/domain/shared"
)

// Option keys
const (
	KeyTagsEnabled   = "tags_enabled"
	KeyTagsMandatory = "tags_mandatory"
)

// OptionType is the value type an option accepts
type OptionType string

const (
	TypeBool OptionType = "bool"
)

// Option describes one adjustable setting
type Option struct {
	Key  string
	Type OptionType
}

// Violation codes reported by Validate
const (
	CodeOptionUnknown = "config.option.unknown"
	CodeOptionInvalid = "config.option.invalid_value"
)

// Catalogue lists the options clients may change
var Catalogue = map[string]Option{
	KeyTagsEnabled:   {Key: KeyTagsEnabled, Type: TypeBool},
	KeyTagsMandatory: {Key: KeyTagsMandatory, Type: TypeBool},
}

// Values maps option keys to their current values
type Values map[string]any

// Bool returns the option as a bool, or fallback when unset or not a bool
func (v Values) Bool(key string, fallback bool) bool {
	b, ok := v[key].(bool)
	if !ok {
		return fallback
	}
	return b
}

// Validate checks every key against the catalogue and every value against
// its declared type. Problems are reported in key order as a
// *shared.ValidationError naming each offending option.
func Validate(values map[string]any) error {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var violations shared.Violations
	for _, key := range keys {
		opt, ok := Catalogue[key]
		if !ok {
			violations.Add(key, CodeOptionUnknown)
			continue
		}
		if opt.Type == TypeBool {
			if _, ok := values[key].(bool); !ok {
				violations.Add(key, CodeOptionInvalid)
			}
		}
	}
	if violations.Empty() {
		return nil
	}
	return &shared.ValidationError{Violations: violations}
}

// SettingRepository persists option values
type SettingRepository interface {
	// Load returns every stored value; options never saved are absent
	Load(ctx context.Context) (Values, error)
	// Save upserts the given values in one transaction
	Save(ctx context.Context, values Values) error
}
