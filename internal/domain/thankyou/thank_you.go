package thankyou

import (
	"time"

	"github.com/thankyou/backend/internal/domain/shared"
	"github.com/thankyou/backend/internal/domain/tag"
)

// Aggregate type constant
const AggregateTypeThankYou = "ThankYou"

// Domain errors for the aggregate
var (
	ErrEmptyDescription = shared.NewDomainError("EMPTY_DESCRIPTION", "Description must not be empty")
	ErrNothingThanked   = shared.NewDomainError("NOTHING_THANKED", "At least one entity must be thanked")
	ErrNoAuthor         = shared.NewDomainError("NO_AUTHOR", "Thank you must have an author")
)

// UserRef identifies a user with a display name
type UserRef struct {
	ID   int64
	Name string
}

// ThankYou is a public note thanking one or more entities.
// Recipient users are always derived from the thanked entities.
type ThankYou struct {
	shared.BaseAggregateRoot
	author      UserRef
	description string
	thanked     []Thankable
	users       []UserRef
	tags        []*tag.Tag
}

// NewThankYou creates an unsaved thank you. Thanked entities are required
// before it can be saved.
func NewThankYou(author UserRef, description string, now time.Time) (*ThankYou, error) {
	if author.ID <= 0 {
		return nil, ErrNoAuthor
	}
	t := &ThankYou{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(now),
		author:            author,
	}
	if err := t.SetDescription(description); err != nil {
		return nil, err
	}
	return t, nil
}

// Restore rebuilds a persisted thank you. Thanked entries may carry only
// their reference until resolved.
func Restore(id int64, author UserRef, description string, created, updated time.Time, version int,
	thanked []Thankable, users []UserRef, tags []*tag.Tag) *ThankYou {
	t := &ThankYou{
		author:      author,
		description: description,
		thanked:     thanked,
		users:       users,
		tags:        tags,
	}
	t.ID = id
	t.CreatedAt = created
	t.UpdatedAt = updated
	t.Version = version
	return t
}

// Author returns the author reference
func (t *ThankYou) Author() UserRef { return t.author }

// SetAuthorName fills in the display name; the author id never changes
func (t *ThankYou) SetAuthorName(name string) { t.author.Name = name }

// Description returns the note text
func (t *ThankYou) Description() string { return t.description }

// DateCreated returns the creation time, fixed at construction
func (t *ThankYou) DateCreated() time.Time { return t.CreatedAt }

// Thanked returns the thanked entities in order; nil when not loaded
func (t *ThankYou) Thanked() []Thankable { return t.thanked }

// Users returns the recipient users
func (t *ThankYou) Users() []UserRef { return t.users }

// Tags returns the attached tags
func (t *ThankYou) Tags() []*tag.Tag { return t.tags }

// SetDescription replaces the description
func (t *ThankYou) SetDescription(description string) error {
	if description == "" {
		return ErrEmptyDescription
	}
	t.description = description
	return nil
}

// SetThanked replaces the thanked entities and the recipients derived from
// them. Duplicate references keep their first position.
func (t *ThankYou) SetThanked(thanked []Thankable, recipients []UserRef) error {
	if len(thanked) == 0 {
		return ErrNothingThanked
	}

	seen := make(map[Reference]struct{}, len(thanked))
	deduped := make([]Thankable, 0, len(thanked))
	for _, th := range thanked {
		if _, ok := seen[th.Ref()]; ok {
			continue
		}
		seen[th.Ref()] = struct{}{}
		deduped = append(deduped, th)
	}

	t.thanked = deduped
	t.users = uniqueUsers(recipients)
	return nil
}

// ResolveThanked swaps in resolved details for the current references
// without changing membership or recipients.
func (t *ThankYou) ResolveThanked(resolved []Thankable) {
	byRef := make(map[Reference]Thankable, len(resolved))
	for _, r := range resolved {
		byRef[r.Ref()] = r
	}
	for i, th := range t.thanked {
		if r, ok := byRef[th.Ref()]; ok {
			t.thanked[i] = r
		}
	}
}

// NameUsers fills in recipient display names
func (t *ThankYou) NameUsers(names map[int64]string) {
	for i, u := range t.users {
		if n, ok := names[u.ID]; ok {
			t.users[i].Name = n
		}
	}
}

// SetTags replaces the attached tags; nil clears them
func (t *ThankYou) SetTags(tags []*tag.Tag) {
	t.tags = tags
}

// References returns the thanked references in order
func (t *ThankYou) References() []Reference {
	refs := make([]Reference, len(t.thanked))
	for i, th := range t.thanked {
		refs[i] = th.Ref()
	}
	return refs
}

// UserIDs returns the recipient user ids
func (t *ThankYou) UserIDs() []int64 {
	ids := make([]int64, len(t.users))
	for i, u := range t.users {
		ids[i] = u.ID
	}
	return ids
}

// TagIDs returns the attached tag ids
func (t *ThankYou) TagIDs() []int64 {
	ids := make([]int64, len(t.tags))
	for i, tg := range t.tags {
		ids[i] = tg.ID
	}
	return ids
}

// NotifiableUserIDs returns recipients other than the author
func (t *ThankYou) NotifiableUserIDs() []int64 {
	ids := make([]int64, 0, len(t.users))
	for _, u := range t.users {
		if u.ID != t.author.ID {
			ids = append(ids, u.ID)
		}
	}
	return ids
}

// RecordCreated queues the created event; call once storage assigned an ID
func (t *ThankYou) RecordCreated() {
	t.Record(NewThankYouCreatedEvent(t))
}

// RecordUpdated queues the updated event
func (t *ThankYou) RecordUpdated() {
	t.Record(NewThankYouUpdatedEvent(t))
}

func uniqueUsers(users []UserRef) []UserRef {
	seen := make(map[int64]struct{}, len(users))
	out := make([]UserRef, 0, len(users))
	for _, u := range users {
		if u.ID <= 0 {
			continue
		}
		if _, ok := seen[u.ID]; ok {
			continue
		}
		seen[u.ID] = struct{}{}
		out = append(out, u)
	}
	return out
}
