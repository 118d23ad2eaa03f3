package tag

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/thankyou/backend/internal/domain/shared"
	"golang.org/x/text/unicode/norm"
)

// DefaultNameMaxLength is the name limit used when configuration gives none
const DefaultNameMaxLength = 255

// Tag classifies thank-yous (core values, themes). Names are unique.
type Tag struct {
	shared.BaseEntity
	Name             string
	Active           bool
	BackgroundColour *string
	CreatedBy        int64
	ModifiedBy       int64
}

// NewTag creates an active tag owned by actorID
func NewTag(name string, actorID int64, maxLen int, now time.Time) (*Tag, error) {
	normalized, err := NormalizeName(name, maxLen)
	if err != nil {
		return nil, err
	}

	return &Tag{
		BaseEntity: shared.NewBaseEntity(now),
		Name:       normalized,
		Active:     true,
		CreatedBy:  actorID,
		ModifiedBy: actorID,
	}, nil
}

// Rename validates and sets a new name. Uniqueness is checked by the store.
func (t *Tag) Rename(name string, maxLen int) error {
	normalized, err := NormalizeName(name, maxLen)
	if err != nil {
		return err
	}
	t.Name = normalized
	return nil
}

// SetActive sets the active flag
func (t *Tag) SetActive(active bool) {
	t.Active = active
}

// SetBackgroundColour sets the colour; nil or "" clears it
func (t *Tag) SetBackgroundColour(colour *string) {
	if colour == nil || *colour == "" {
		t.BackgroundColour = nil
		return
	}
	c := *colour
	t.BackgroundColour = &c
}

// Touch stamps the modifier and modification time
func (t *Tag) Touch(actorID int64, now time.Time) {
	t.ModifiedBy = actorID
	t.UpdatedAt = now
}

// ModifiedAt returns the last modification time
func (t *Tag) ModifiedAt() time.Time {
	return t.UpdatedAt
}

// NormalizeName trims, NFC-normalises and validates a tag name. Cheap checks
// run first: blank, then length, then character set.
func NormalizeName(name string, maxLen int) (string, error) {
	if maxLen <= 0 {
		maxLen = DefaultNameMaxLength
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrNameEmpty
	}
	if !utf8.ValidString(trimmed) {
		return "", ErrNameCharset
	}

	normalized := norm.NFC.String(trimmed)
	if utf8.RuneCountInString(normalized) > maxLen {
		return "", ErrNameTooLong
	}

	for _, r := range normalized {
		if unicode.IsControl(r) || r == utf8.RuneError {
			return "", ErrNameCharset
		}
	}

	return normalized, nil
}
