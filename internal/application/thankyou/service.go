package thankyou

import (
	"context"
	"errors"
	"time"

	"github.com/thankyou/backend/internal/application/payload"
	"github.com/thankyou/backend/internal/domain/directory"
	"github.com/thankyou/backend/internal/domain/setting"
	"github.com/thankyou/backend/internal/domain/shared"
	"github.com/thankyou/backend/internal/domain/tag"
	"github.com/thankyou/backend/internal/domain/thankyou"
	"github.com/thankyou/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Config holds service options
type Config struct {
	// AdminMode lets admin-capable users edit and delete any thank you
	AdminMode bool
	MaxLimit  int
}

// SettingsSource supplies runtime option values
type SettingsSource interface {
	Values(ctx context.Context) (setting.Values, error)
}

// ThankYouService handles thank-you business operations
type ThankYouService struct {
	repo     thankyou.ThankYouRepository
	tags     TagLookup
	resolver *Resolver
	dir      directory.Directory
	settings SettingsSource
	events   shared.EventPublisher
	logger   *zap.Logger
	cfg      Config
	now      func() time.Time
}

// NewThankYouService creates a new ThankYouService
func NewThankYouService(
	repo thankyou.ThankYouRepository,
	tags TagLookup,
	resolver *Resolver,
	dir directory.Directory,
	settings SettingsSource,
	events shared.EventPublisher,
	logger *zap.Logger,
	cfg Config,
) *ThankYouService {
	return &ThankYouService{
		repo:     repo,
		tags:     tags,
		resolver: resolver,
		dir:      dir,
		settings: settings,
		events:   events,
		logger:   logger,
		cfg:      cfg,
		now:      time.Now,
	}
}

// SetClock replaces the time source
func (s *ThankYouService) SetClock(now func() time.Time) {
	s.now = now
}

// Resolver exposes the owner class registry
func (s *ThankYouService) Resolver() *Resolver {
	return s.resolver
}

// GetByID returns one thank you with thanked entities resolved
func (s *ThankYouService) GetByID(ctx context.Context, actorID, id int64) (*ThankYouResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.present(ctx, actorID, []*thankyou.ThankYou{t})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

// List returns recent thank yous, newest first
func (s *ThankYouService) List(ctx context.Context, actorID int64, q ListThankYousQuery) ([]ThankYouResponse, error) {
	filter := thankyou.ListFilter{
		Page:        shared.NewPage(q.Limit, q.Offset, s.cfg.MaxLimit),
		WithThanked: q.Thanked,
	}

	items, err := s.repo.FindRecent(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.present(ctx, actorID, items)
}

// ListForUser returns thank yous received by userID, newest first
func (s *ThankYouService) ListForUser(ctx context.Context, actorID, userID int64, limit int) ([]ThankYouResponse, error) {
	items, err := s.repo.FindForUser(ctx, userID, shared.NewPage(limit, 0, s.cfg.MaxLimit))
	if err != nil {
		return nil, err
	}
	return s.present(ctx, actorID, items)
}

// CountForUser returns how many thank yous userID received
func (s *ThankYouService) CountForUser(ctx context.Context, userID int64) (int64, error) {
	return s.repo.CountForUser(ctx, userID)
}

// Create validates p and saves a new thank you authored by actorID.
// Violations are returned without touching storage. A notification failure
// after the save is reported in CreateResult.NotifyErr, not as an error.
func (s *ThankYouService) Create(ctx context.Context, actorID int64, p payload.Payload) (result *CreateResult, violations shared.Violations, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "thank_you", "create", telemetry.SpanAttrActorID, actorID)
	defer func() {
		telemetry.EndSpan(span, err, telemetry.SpanAttrViolations, len(violations))
	}()

	binder, err := s.binder(ctx)
	if err != nil {
		return nil, nil, err
	}

	cmd, violations, err := binder.BindCreate(ctx, p)
	if err != nil || !violations.Empty() {
		return nil, violations, err
	}

	author, err := s.authorRef(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}

	t, err := thankyou.NewThankYou(author, cmd.Description, s.now())
	if err != nil {
		return nil, nil, err
	}

	if err := s.applyThanked(ctx, t, cmd.Thanked); err != nil {
		return nil, nil, err
	}
	if cmd.Tags != nil {
		t.SetTags(cmd.Tags)
	}

	if err := s.repo.Save(ctx, t); err != nil {
		return nil, nil, err
	}

	t.RecordCreated()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrThankYouID, t.ID,
		telemetry.SpanAttrThanked, len(cmd.Thanked),
	)
	result = &CreateResult{ID: t.ID}
	result.NotifyErr = s.publish(ctx, t)
	return result, nil, nil
}

// Update applies the supplied fields of p to thank you id. Validation runs
// before the thank you is loaded; authorization before anything is changed.
func (s *ThankYouService) Update(ctx context.Context, actorID, id int64, p payload.Payload) (violations shared.Violations, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "thank_you", "update",
		telemetry.SpanAttrActorID, actorID,
		telemetry.SpanAttrThankYouID, id,
	)
	defer func() {
		telemetry.EndSpan(span, err, telemetry.SpanAttrViolations, len(violations))
	}()

	binder, err := s.binder(ctx)
	if err != nil {
		return nil, err
	}

	cmd, violations, err := binder.BindUpdate(ctx, p)
	if err != nil || !violations.Empty() {
		return violations, err
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !thankyou.CanEdit(t, actor, s.cfg.AdminMode) {
		return nil, shared.ErrForbidden
	}

	if cmd.IsEmpty() {
		return nil, nil
	}

	if cmd.Description != nil {
		if err := t.SetDescription(*cmd.Description); err != nil {
			return nil, err
		}
	}
	if cmd.Thanked != nil {
		if err := s.applyThanked(ctx, t, cmd.Thanked); err != nil {
			return nil, err
		}
	}
	if cmd.TagsSet {
		t.SetTags(cmd.Tags)
	}

	t.Touch(s.now())
	if err := s.repo.Save(ctx, t); err != nil {
		return nil, err
	}

	t.RecordUpdated()
	if err := s.publish(ctx, t); err != nil {
		s.logger.Warn("thank you updated but event delivery failed",
			zap.Int64("thank_you_id", t.ID), zap.Error(err))
	}
	return nil, nil
}

// Delete removes thank you id when actorID may delete it
func (s *ThankYouService) Delete(ctx context.Context, actorID, id int64) (err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "thank_you", "delete",
		telemetry.SpanAttrActorID, actorID,
		telemetry.SpanAttrThankYouID, id,
	)
	defer func() { telemetry.EndSpan(span, err) }()

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return err
	}
	if !thankyou.CanDelete(t, actor, s.cfg.AdminMode) {
		return shared.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	t.Record(thankyou.NewThankYouDeletedEvent(id, actorID))
	if err := s.publish(ctx, t); err != nil {
		s.logger.Warn("thank you deleted but event delivery failed",
			zap.Int64("thank_you_id", id), zap.Error(err))
	}
	return nil
}

// binder snapshots the tag options for this request
func (s *ThankYouService) binder(ctx context.Context) (*Binder, error) {
	values, err := s.settings.Values(ctx)
	if err != nil {
		return nil, err
	}
	cfg := BinderConfig{
		TagsEnabled:   values.Bool(setting.KeyTagsEnabled, false),
		TagsMandatory: values.Bool(setting.KeyTagsMandatory, false),
	}
	return NewBinder(cfg, s.resolver, s.tags), nil
}

// actor looks up the admin capability fresh for this request
func (s *ThankYouService) actor(ctx context.Context, actorID int64) (thankyou.Actor, error) {
	if actorID <= 0 {
		return thankyou.Actor{}, nil
	}
	isAdmin, err := s.dir.HasAdminCapability(ctx, actorID)
	if err != nil {
		return thankyou.Actor{}, err
	}
	return thankyou.Actor{UserID: actorID, IsAdmin: isAdmin}, nil
}

func (s *ThankYouService) authorRef(ctx context.Context, actorID int64) (thankyou.UserRef, error) {
	if actorID <= 0 {
		return thankyou.UserRef{}, thankyou.ErrNoAuthor
	}
	users, err := s.dir.UsersByIDs(ctx, []int64{actorID})
	if err != nil {
		return thankyou.UserRef{}, err
	}
	return thankyou.UserRef{ID: actorID, Name: directory.UserName(users, actorID)}, nil
}

// applyThanked sets thanked entities and recomputes recipients from them
func (s *ThankYouService) applyThanked(ctx context.Context, t *thankyou.ThankYou, thanked []thankyou.Thankable) error {
	ids, err := s.resolver.Recipients(ctx, thanked)
	if err != nil {
		return err
	}
	recipients := make([]thankyou.UserRef, len(ids))
	for i, id := range ids {
		recipients[i] = thankyou.UserRef{ID: id}
	}
	return t.SetThanked(thanked, recipients)
}

// publish delivers pending events. Failures are returned to the caller and
// never roll back the save.
func (s *ThankYouService) publish(ctx context.Context, t *thankyou.ThankYou) error {
	events := t.PullEvents()
	if s.events == nil || len(events) == 0 {
		return nil
	}

	if err := s.events.Publish(ctx, events...); err != nil {
		return errors.Join(shared.NewDomainError(shared.CodeNotification, "notification failed"), err)
	}
	return nil
}

// present resolves display details for items with batched lookups: one
// resolver call for all thanked references and one directory call for all
// users.
func (s *ThankYouService) present(ctx context.Context, actorID int64, items []*thankyou.ThankYou) ([]ThankYouResponse, error) {
	var refs []thankyou.Reference
	var userIDs []int64
	for _, t := range items {
		refs = append(refs, t.References()...)
		userIDs = append(userIDs, t.Author().ID)
		userIDs = append(userIDs, t.UserIDs()...)
	}

	if len(refs) > 0 {
		resolved, err := s.resolver.Describe(ctx, refs)
		if err != nil {
			return nil, err
		}
		for _, t := range items {
			t.ResolveThanked(resolved)
		}
	}

	users, err := s.dir.UsersByIDs(ctx, directory.UniqueIDs(userIDs))
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(users))
	for id, u := range users {
		names[id] = u.Name
	}

	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	out := make([]ThankYouResponse, 0, len(items))
	for _, t := range items {
		t.SetAuthorName(names[t.Author().ID])
		t.NameUsers(names)
		out = append(out, ToThankYouResponse(t, s.resolver,
			thankyou.CanEdit(t, actor, s.cfg.AdminMode),
			thankyou.CanDelete(t, actor, s.cfg.AdminMode),
		))
	}
	return out, nil
}

// Ensure tag repositories satisfy TagLookup
var _ TagLookup = (tag.TagRepository)(nil)
