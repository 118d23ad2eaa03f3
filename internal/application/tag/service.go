package tag

import (
	"context"
	"errors"
	"time"

	"github.com/thankyou/backend/internal/application/payload"
	"github.com/thankyou/backend/internal/domain/directory"
	"github.com/thankyou/backend/internal/domain/shared"
	"github.com/thankyou/backend/internal/domain/tag"
	"github.com/thankyou/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Violation codes produced when binding tag payloads
const (
	CodeNameUndefined  = "tag.name.undefined"
	CodeNameInvalid    = "tag.name.invalid"
	CodeNameEmpty      = "tag.name.empty"
	CodeNameTooLong    = "tag.name.too_long"
	CodeNameCharset    = "tag.name.charset"
	CodeNameNotUnique  = "tag.name.not_unique"
	CodeBgColourString = "tag.bg_colour.invalid"
)

// Request field names
const (
	FieldName     = "name"
	FieldActive   = "active"
	FieldBgColour = "bg_colour"
)

// Config holds tag service options
type Config struct {
	NameMaxLength int
	MaxLimit      int
}

// TagService handles tag business operations
type TagService struct {
	repo   tag.TagRepository
	dir    directory.Directory
	logger *zap.Logger
	cfg    Config
	now    func() time.Time
}

// NewTagService creates a new TagService
func NewTagService(repo tag.TagRepository, dir directory.Directory, logger *zap.Logger, cfg Config) *TagService {
	if cfg.NameMaxLength <= 0 {
		cfg.NameMaxLength = tag.DefaultNameMaxLength
	}
	return &TagService{
		repo:   repo,
		dir:    dir,
		logger: logger,
		cfg:    cfg,
		now:    time.Now,
	}
}

// SetClock replaces the time source
func (s *TagService) SetClock(now func() time.Time) {
	s.now = now
}

// GetByID retrieves a tag by ID
func (s *TagService) GetByID(ctx context.Context, id int64) (*TagResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.present(ctx, t)
}

// List retrieves tags ordered by name
func (s *TagService) List(ctx context.Context, q ListTagsQuery) ([]TagResponse, error) {
	tags, err := s.repo.FindAll(ctx, tag.Filter{
		Page:     shared.NewPage(q.Limit, q.Offset, s.cfg.MaxLimit),
		Name:     q.Name,
		OrderBy:  "name",
		OrderDir: "asc",
	})
	if err != nil {
		return nil, err
	}

	users, err := s.users(ctx, tags...)
	if err != nil {
		return nil, err
	}

	out := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, ToTagResponse(t, users))
	}
	return out, nil
}

// Count returns the total number of tags
func (s *TagService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// Create validates p and creates a tag. Input problems come back as
// violations; a taken name as tag.ErrDuplicateName.
func (s *TagService) Create(ctx context.Context, actorID int64, p payload.Payload) (resp *TagResponse, violations shared.Violations, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "tag", "create", telemetry.SpanAttrActorID, actorID)
	defer func() {
		telemetry.EndSpan(span, err, telemetry.SpanAttrViolations, len(violations))
	}()

	rawName, hasName := p.Get(FieldName)
	name, isString := payload.String(rawName)
	switch {
	case !hasName:
		violations.Add(FieldName, CodeNameUndefined)
	case !isString:
		violations.Add(FieldName, CodeNameInvalid)
	}

	colour, colourOK := bindColour(p, &violations)

	if !violations.Empty() {
		return nil, violations, nil
	}

	t, err := tag.NewTag(name, actorID, s.cfg.NameMaxLength, s.now())
	if err != nil {
		violations.Add(FieldName, NameViolationCode(err), s.cfg.NameMaxLength)
		return nil, violations, nil
	}
	if colourOK {
		t.SetBackgroundColour(colour)
	}

	exists, err := s.repo.ExistsByName(ctx, t.Name, 0)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, tag.ErrDuplicateName
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrTagID, t.ID)

	resp, err = s.present(ctx, t)
	return resp, nil, err
}

// Update applies the supplied fields of p to tag id. The modifier is stamped
// on every successful update.
func (s *TagService) Update(ctx context.Context, actorID, id int64, p payload.Payload) (resp *TagResponse, violations shared.Violations, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "tag", "update",
		telemetry.SpanAttrActorID, actorID,
		telemetry.SpanAttrTagID, id,
	)
	defer func() {
		telemetry.EndSpan(span, err, telemetry.SpanAttrViolations, len(violations))
	}()

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	renamed := false

	if raw, ok := p.Get(FieldActive); ok {
		if active, isBool := payload.Bool(raw); isBool {
			t.SetActive(active)
		}
	}

	if raw, ok := p.Get(FieldName); ok {
		name, isString := payload.String(raw)
		if !isString {
			violations.Add(FieldName, CodeNameInvalid)
		} else if name != t.Name {
			if err := t.Rename(name, s.cfg.NameMaxLength); err != nil {
				violations.Add(FieldName, NameViolationCode(err), s.cfg.NameMaxLength)
			} else {
				renamed = true
			}
		}
	}

	colour, colourOK := bindColour(p, &violations)
	if colourOK {
		t.SetBackgroundColour(colour)
	}

	if !violations.Empty() {
		return nil, violations, nil
	}

	t.Touch(actorID, s.now())

	if renamed {
		exists, err := s.repo.ExistsByName(ctx, t.Name, t.ID)
		if err != nil {
			return nil, nil, err
		}
		if exists {
			return nil, nil, tag.ErrDuplicateName
		}
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, nil, err
	}

	resp, err = s.present(ctx, t)
	return resp, nil, err
}

// NameViolationCode maps a name rule error to its violation code
func NameViolationCode(err error) string {
	var d *shared.DomainError
	if !errors.As(err, &d) {
		return CodeNameInvalid
	}
	switch d {
	case tag.ErrDuplicateName:
		return CodeNameNotUnique
	case tag.ErrNameEmpty:
		return CodeNameEmpty
	case tag.ErrNameTooLong:
		return CodeNameTooLong
	case tag.ErrNameCharset:
		return CodeNameCharset
	}
	return CodeNameInvalid
}

// bindColour reads bg_colour. The second result is true when the key was
// present and valid; a null or empty value clears the colour.
func bindColour(p payload.Payload, violations *shared.Violations) (*string, bool) {
	if !p.Has(FieldBgColour) {
		return nil, false
	}
	raw, _ := p.Get(FieldBgColour)
	if raw == nil {
		return nil, true
	}
	colour, ok := payload.String(raw)
	if !ok {
		violations.Add(FieldBgColour, CodeBgColourString)
		return nil, false
	}
	if colour == "" {
		return nil, true
	}
	return &colour, true
}

func (s *TagService) present(ctx context.Context, t *tag.Tag) (*TagResponse, error) {
	users, err := s.users(ctx, t)
	if err != nil {
		return nil, err
	}
	resp := ToTagResponse(t, users)
	return &resp, nil
}

// users fetches creators and modifiers of tags in one call
func (s *TagService) users(ctx context.Context, tags ...*tag.Tag) (map[int64]directory.User, error) {
	ids := make([]int64, 0, len(tags)*2)
	for _, t := range tags {
		ids = append(ids, t.CreatedBy, t.ModifiedBy)
	}
	ids = directory.UniqueIDs(ids)
	if len(ids) == 0 {
		return map[int64]directory.User{}, nil
	}
	return s.dir.UsersByIDs(ctx, ids)
}
