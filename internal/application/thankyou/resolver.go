package thankyou

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/thankyou/backend/internal/domain/thankyou"
)

// Resolver is the registry of thankable owner classes. It resolves client
// references in batches, one handler call per owner class.
type Resolver struct {
	mu       sync.RWMutex
	handlers map[thankyou.OwnerClass]thankyou.ThankableHandler
}

// NewResolver creates a resolver with the given handlers registered
func NewResolver(handlers ...thankyou.ThankableHandler) (*Resolver, error) {
	r := &Resolver{handlers: make(map[thankyou.OwnerClass]thankyou.ThankableHandler)}
	for _, h := range handlers {
		if err := r.Register(h); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a handler; registering an owner class twice is an error
func (r *Resolver) Register(h thankyou.ThankableHandler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[h.OwnerClass()]; exists {
		return fmt.Errorf("owner class %d already registered", h.OwnerClass())
	}
	r.handlers[h.OwnerClass()] = h
	return nil
}

// SupportedNames returns the registered class names ordered by class id
func (r *Resolver) SupportedNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.supportedNamesLocked()
}

func (r *Resolver) supportedNamesLocked() []string {
	classes := make([]thankyou.OwnerClass, 0, len(r.handlers))
	for c := range r.handlers {
		classes = append(classes, c)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })

	names := make([]string, len(classes))
	for i, c := range classes {
		names[i] = r.handlers[c].Name()
	}
	return names
}

// NamesForClassIDs returns the names of the given classes in order,
// skipping unregistered ones
func (r *Resolver) NamesForClassIDs(ids ...thankyou.OwnerClass) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if h, ok := r.handlers[id]; ok {
			names = append(names, h.Name())
		}
	}
	return names
}

// ClassName returns the name for one class
func (r *Resolver) ClassName(id thankyou.OwnerClass) (string, bool) {
	names := r.NamesForClassIDs(id)
	if len(names) == 0 {
		return "", false
	}
	return names[0], true
}

// Resolve turns references into thankables. Duplicate references collapse to
// their first occurrence. If any class is unregistered, or any entity is
// missing, the whole batch fails and nothing is returned.
func (r *Resolver) Resolve(ctx context.Context, refs []thankyou.Reference) ([]thankyou.Thankable, error) {
	refs = uniqueRefs(refs)

	grouped, err := r.group(refs)
	if err != nil {
		return nil, err
	}

	found, err := r.lookup(ctx, grouped)
	if err != nil {
		return nil, err
	}

	out := make([]thankyou.Thankable, 0, len(refs))
	for _, ref := range refs {
		th, ok := found[ref]
		if !ok {
			return nil, &thankyou.ThankableNotFoundError{
				Reference: ref,
				ClassName: grouped[ref.OwnerClass].handler.Name(),
			}
		}
		out = append(out, th)
	}
	return out, nil
}

// Describe resolves references for display. Entities that no longer exist
// keep their bare reference; unregistered classes still fail.
func (r *Resolver) Describe(ctx context.Context, refs []thankyou.Reference) ([]thankyou.Thankable, error) {
	refs = uniqueRefs(refs)

	grouped, err := r.group(refs)
	if err != nil {
		return nil, err
	}

	found, err := r.lookup(ctx, grouped)
	if err != nil {
		return nil, err
	}

	out := make([]thankyou.Thankable, 0, len(refs))
	for _, ref := range refs {
		if th, ok := found[ref]; ok {
			out = append(out, th)
			continue
		}
		out = append(out, thankyou.Thankable{OwnerClass: ref.OwnerClass, ID: ref.ID})
	}
	return out, nil
}

// Recipients returns the users implied by thanked: users contribute
// themselves, groups contribute their members. Duplicates are dropped.
func (r *Resolver) Recipients(ctx context.Context, thanked []thankyou.Thankable) ([]int64, error) {
	refs := make([]thankyou.Reference, len(thanked))
	for i, th := range thanked {
		refs[i] = th.Ref()
	}

	grouped, err := r.group(uniqueRefs(refs))
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{})
	var out []int64
	for _, class := range grouped.classes() {
		batch := grouped[class]
		ids, err := batch.handler.Recipients(ctx, batch.ids)
		if err != nil {
			return nil, fmt.Errorf("recipients for %s: %w", batch.handler.Name(), err)
		}
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out, nil
}

type classBatch struct {
	handler thankyou.ThankableHandler
	ids     []int64
}

type groupedRefs map[thankyou.OwnerClass]*classBatch

func (g groupedRefs) classes() []thankyou.OwnerClass {
	out := make([]thankyou.OwnerClass, 0, len(g))
	for c := range g {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (r *Resolver) group(refs []thankyou.Reference) (groupedRefs, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	grouped := make(groupedRefs)
	for _, ref := range refs {
		h, ok := r.handlers[ref.OwnerClass]
		if !ok {
			return nil, &thankyou.UnsupportedOwnerClassError{
				OwnerClass: ref.OwnerClass,
				Supported:  r.supportedNamesLocked(),
			}
		}
		batch, ok := grouped[ref.OwnerClass]
		if !ok {
			batch = &classBatch{handler: h}
			grouped[ref.OwnerClass] = batch
		}
		batch.ids = append(batch.ids, ref.ID)
	}
	return grouped, nil
}

func (r *Resolver) lookup(ctx context.Context, grouped groupedRefs) (map[thankyou.Reference]thankyou.Thankable, error) {
	found := make(map[thankyou.Reference]thankyou.Thankable)
	for _, class := range grouped.classes() {
		batch := grouped[class]
		resolved, err := batch.handler.Resolve(ctx, batch.ids)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", batch.handler.Name(), err)
		}
		for id, th := range resolved {
			th.OwnerClass = class
			th.ID = id
			found[thankyou.Reference{OwnerClass: class, ID: id}] = th
		}
	}
	return found, nil
}

func uniqueRefs(refs []thankyou.Reference) []thankyou.Reference {
	seen := make(map[thankyou.Reference]struct{}, len(refs))
	out := make([]thankyou.Reference, 0, len(refs))
	for _, ref := range refs {
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		out = append(out, ref)
	}
	return out
}
