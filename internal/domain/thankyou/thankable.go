package thankyou

import (
	"context"
	"fmt"
	"strings"

	"github.com/thankyou/backend/internal/domain/shared"
)

// OwnerClass identifies what kind of entity a reference points to
type OwnerClass int

// Owner classes with built-in handlers
const (
	OwnerClassUser  OwnerClass = 1
	OwnerClassGroup OwnerClass = 3
)

// Reference is an unresolved (owner class, id) pair as supplied by a client
type Reference struct {
	OwnerClass OwnerClass
	ID         int64
}

// Thankable is a resolved, displayable entity that can be thanked.
// ProfileURL and ImageURL are empty when the entity kind has none.
type Thankable struct {
	OwnerClass     OwnerClass
	ID             int64
	Name           string
	ProfileURL     string
	ImageURL       string
	ExtranetAreaID *int64
}

// Ref returns the reference this thankable was resolved from
func (t Thankable) Ref() Reference {
	return Reference{OwnerClass: t.OwnerClass, ID: t.ID}
}

// DisplayName returns the entity's display name
func (t Thankable) DisplayName() string {
	return t.Name
}

// ProfileLink returns the profile URL when the entity kind has one
func (t Thankable) ProfileLink() (string, bool) {
	return t.ProfileURL, t.ProfileURL != ""
}

// Image returns the image URL when one is available
func (t Thankable) Image() (string, bool) {
	return t.ImageURL, t.ImageURL != ""
}

// ThankableHandler resolves one owner class. Implementations are registered
// with a resolver; adding a kind never touches the resolver itself.
type ThankableHandler interface {
	OwnerClass() OwnerClass
	// Name is the human-readable class name shown to clients
	Name() string
	// Resolve looks up every id in one batch. Missing ids are absent.
	Resolve(ctx context.Context, ids []int64) (map[int64]Thankable, error)
	// Recipients returns the user ids implied by the entities with ids
	Recipients(ctx context.Context, ids []int64) ([]int64, error)
}

// UnsupportedOwnerClassError rejects a batch containing an unregistered class
type UnsupportedOwnerClassError struct {
	OwnerClass OwnerClass
	Supported  []string
}

func (e *UnsupportedOwnerClassError) Error() string {
	return fmt.Sprintf("owner class %d is not supported, supported classes: %s",
		e.OwnerClass, strings.Join(e.Supported, ", "))
}

func (e *UnsupportedOwnerClassError) Is(target error) bool {
	d, ok := target.(*shared.DomainError)
	return ok && d.Code == shared.CodeUnsupportedReference
}

// ThankableNotFoundError reports a reference whose entity does not exist
type ThankableNotFoundError struct {
	Reference Reference
	ClassName string
}

func (e *ThankableNotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.ClassName, e.Reference.ID)
}

func (e *ThankableNotFoundError) Is(target error) bool {
	d, ok := target.(*shared.DomainError)
	return ok && d.Code == shared.CodeUnsupportedReference
}

// ErrUnsupportedReference matches both resolver rejection errors
var ErrUnsupportedReference = shared.NewDomainError(shared.CodeUnsupportedReference, "Thanked reference cannot be resolved")
