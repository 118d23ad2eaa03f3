// Package directory describes the identity collaborator: who users and
// groups are, how to display them, and which users hold the admin-panel
// capability. Nothing in this package caches; every lookup goes to the
// backing Directory.
package directory

import "context"

// User is a person known to the platform.
type User struct {
	ID         int64
	Name       string
	ProfileURL string
	PhotoURL   string
	IsAdmin    bool
}

// Group is a named collection of users (team, department).
type Group struct {
	ID             int64
	Name           string
	ExtranetAreaID *int64
}

// Directory is the identity lookup injected into components that need
// display names, profile links, group membership, or admin capability.
// Batch methods return only the IDs that exist; missing IDs are absent from
// the result rather than an error.
type Directory interface {
	UsersByIDs(ctx context.Context, ids []int64) (map[int64]User, error)
	GroupsByIDs(ctx context.Context, ids []int64) (map[int64]Group, error)
	// GroupMembers maps each existing group ID to its member user IDs.
	GroupMembers(ctx context.Context, groupIDs []int64) (map[int64][]int64, error)
	// HasAdminCapability reports whether the user may use the admin panel.
	HasAdminCapability(ctx context.Context, userID int64) (bool, error)
}

// UserName returns the display name for id from users, or "" when absent.
func UserName(users map[int64]User, id int64) string {
	if u, ok := users[id]; ok {
		return u.Name
	}
	return ""
}

// UniqueIDs returns ids with duplicates and non-positive values removed,
// keeping first-seen order.
func UniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
