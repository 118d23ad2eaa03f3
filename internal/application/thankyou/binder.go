package thankyou

import (
	"context"
	"errors"
	"strings"

	"github.com/thankyou/backend/internal/application/payload"
	"github.com/thankyou/backend/internal/domain/shared"
	"github.com/thankyou/backend/internal/domain/tag"
	"github.com/thankyou/backend/internal/domain/thankyou"
)

// Violation codes produced by the binder
const (
	CodeThankedEmpty       = "thankyou.thanked.empty"
	CodeThankedNotArray    = "thankyou.thanked.not_array"
	CodeOwnerClassNotFound = "thankyou.owner_class.not_supported"
	CodeThankableNotFound  = "thankyou.thankable.not_found"
	CodeDescriptionEmpty   = "thankyou.description.empty"
	CodeDescriptionString  = "thankyou.description.not_string"
	CodeTagsDisabled       = "thankyou.tags.disabled"
	CodeTagsNotArray       = "thankyou.tags.not_array"
	CodeTagsNotIntegers    = "thankyou.tags.not_integers"
	CodeTagNotFound        = "thankyou.tags.not_found"
	CodeTagsMandatory      = "thankyou.tags.mandatory"
)

// Request field names
const (
	FieldThanked     = "thanked"
	FieldDescription = "description"
	FieldTags        = "tags"
)

// BinderConfig is the feature configuration a binder works under. It is a
// snapshot taken when the request starts.
type BinderConfig struct {
	TagsEnabled   bool
	TagsMandatory bool
}

// TagLookup finds tags by id; missing ids are absent from the result
type TagLookup interface {
	FindByIDs(ctx context.Context, ids []int64) (map[int64]*tag.Tag, error)
}

// ReferenceResolver resolves thanked references as a batch
type ReferenceResolver interface {
	Resolve(ctx context.Context, refs []thankyou.Reference) ([]thankyou.Thankable, error)
}

// CreateCommand is a validated create request
type CreateCommand struct {
	Description string
	Thanked     []thankyou.Thankable
	Tags        []*tag.Tag
}

// UpdateCommand is a validated update request. Nil fields were not supplied.
type UpdateCommand struct {
	Description *string
	Thanked     []thankyou.Thankable
	Tags        []*tag.Tag
	TagsSet     bool
}

// IsEmpty reports whether the update changes nothing
func (c *UpdateCommand) IsEmpty() bool {
	return c.Description == nil && c.Thanked == nil && !c.TagsSet
}

// Binder turns request payloads into commands. Input problems are collected
// as violations in field order thanked, description, tags; the error return
// is only used for lookup failures.
type Binder struct {
	cfg      BinderConfig
	resolver ReferenceResolver
	tags     TagLookup
}

// NewBinder creates a binder for one request
func NewBinder(cfg BinderConfig, resolver ReferenceResolver, tags TagLookup) *Binder {
	return &Binder{cfg: cfg, resolver: resolver, tags: tags}
}

// BindCreate validates a create payload. Every field is checked even after
// an earlier one fails.
func (b *Binder) BindCreate(ctx context.Context, p payload.Payload) (*CreateCommand, shared.Violations, error) {
	var violations shared.Violations
	cmd := &CreateCommand{}

	raw, _ := p.Get(FieldThanked)
	thanked, err := b.bindThanked(ctx, raw, &violations)
	if err != nil {
		return nil, nil, err
	}
	cmd.Thanked = thanked

	rawDesc, _ := p.Get(FieldDescription)
	if desc, ok := b.bindDescription(rawDesc, true, &violations); ok {
		cmd.Description = desc
	}

	if rawTags, present := p.Get(FieldTags); present {
		tags, err := b.bindTags(ctx, rawTags, &violations)
		if err != nil {
			return nil, nil, err
		}
		cmd.Tags = tags
	} else if b.cfg.TagsMandatory {
		violations.Add(FieldTags, CodeTagsMandatory)
	}

	if !violations.Empty() {
		return nil, violations, nil
	}
	return cmd, nil, nil
}

// BindUpdate validates an update payload; absent or null fields are left out
// of the command.
func (b *Binder) BindUpdate(ctx context.Context, p payload.Payload) (*UpdateCommand, shared.Violations, error) {
	var violations shared.Violations
	cmd := &UpdateCommand{}

	if raw, present := p.Get(FieldThanked); present {
		thanked, err := b.bindThanked(ctx, raw, &violations)
		if err != nil {
			return nil, nil, err
		}
		cmd.Thanked = thanked
	}

	if raw, present := p.Get(FieldDescription); present {
		if desc, ok := b.bindDescription(raw, false, &violations); ok {
			cmd.Description = &desc
		}
	}

	if raw, present := p.Get(FieldTags); present {
		tags, err := b.bindTags(ctx, raw, &violations)
		if err != nil {
			return nil, nil, err
		}
		cmd.Tags = tags
		cmd.TagsSet = true
	}

	if !violations.Empty() {
		return nil, violations, nil
	}
	return cmd, nil, nil
}

// bindThanked coerces raw into references and resolves them. A missing or
// empty array is a single "empty" violation.
func (b *Binder) bindThanked(ctx context.Context, raw any, violations *shared.Violations) ([]thankyou.Thankable, error) {
	var items []any
	if raw != nil {
		arr, ok := payload.Array(raw)
		if !ok {
			violations.Add(FieldThanked, CodeThankedNotArray)
			return nil, nil
		}
		items = arr
	}

	if len(items) == 0 {
		violations.Add(FieldThanked, CodeThankedEmpty)
		return nil, nil
	}

	refs := make([]thankyou.Reference, len(items))
	for i, item := range items {
		obj, _ := payload.Object(item)
		refs[i] = thankyou.Reference{
			OwnerClass: thankyou.OwnerClass(payload.CoerceInt(obj["oclass"])),
			ID:         payload.CoerceInt(obj["id"]),
		}
	}

	thanked, err := b.resolver.Resolve(ctx, refs)
	if err == nil {
		if len(thanked) == 0 {
			violations.Add(FieldThanked, CodeThankedEmpty)
			return nil, nil
		}
		return thanked, nil
	}

	var unsupported *thankyou.UnsupportedOwnerClassError
	var missing *thankyou.ThankableNotFoundError
	switch {
	case errors.As(err, &unsupported):
		violations.Add(FieldThanked, CodeOwnerClassNotFound, strings.Join(unsupported.Supported, ", "))
		return nil, nil
	case errors.As(err, &missing):
		violations.Add(FieldThanked, CodeThankableNotFound, missing.ClassName, missing.Reference.ID)
		return nil, nil
	}
	return nil, err
}

// bindDescription validates the description. On create, scalars are coerced
// to strings; on update the value must already be a string.
func (b *Binder) bindDescription(raw any, coerce bool, violations *shared.Violations) (string, bool) {
	var (
		desc string
		ok   bool
	)
	if coerce {
		desc, ok = payload.CoerceString(raw)
	} else {
		desc, ok = payload.String(raw)
	}

	if !ok {
		violations.Add(FieldDescription, CodeDescriptionString)
		return "", false
	}
	if desc == "" {
		violations.Add(FieldDescription, CodeDescriptionEmpty)
		return "", false
	}
	return desc, true
}

// bindTags checks the tags feature, the array shape, integer ids, and that
// each id exists, in that order.
func (b *Binder) bindTags(ctx context.Context, raw any, violations *shared.Violations) ([]*tag.Tag, error) {
	if !b.cfg.TagsEnabled {
		violations.Add(FieldTags, CodeTagsDisabled)
		return nil, nil
	}

	items, ok := payload.Array(raw)
	if !ok {
		violations.Add(FieldTags, CodeTagsNotArray)
		return nil, nil
	}

	ids := make([]int64, 0, len(items))
	seen := make(map[int64]struct{}, len(items))
	for _, item := range items {
		id, ok := payload.Int(item)
		if !ok {
			violations.Add(FieldTags, CodeTagsNotIntegers)
			return nil, nil
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		if b.cfg.TagsMandatory {
			violations.Add(FieldTags, CodeTagsMandatory)
		}
		return []*tag.Tag{}, nil
	}

	found, err := b.tags.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	tags := make([]*tag.Tag, 0, len(ids))
	missing := false
	for _, id := range ids {
		t, ok := found[id]
		if !ok {
			violations.Add(FieldTags, CodeTagNotFound, id)
			missing = true
			continue
		}
		tags = append(tags, t)
	}
	if missing {
		return nil, nil
	}
	return tags, nil
}
