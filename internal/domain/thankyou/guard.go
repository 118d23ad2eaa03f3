package thankyou

// Actor is the user performing a request. IsAdmin must be resolved from the
// directory for the current request.
type Actor struct {
	UserID  int64
	IsAdmin bool
}

// CanEdit reports whether actor may edit t: the author always may, anyone
// else only when adminMode is on and they hold the admin capability.
func CanEdit(t *ThankYou, actor Actor, adminMode bool) bool {
	if t == nil || actor.UserID <= 0 {
		return false
	}
	if t.author.ID == actor.UserID {
		return true
	}
	return adminMode && actor.IsAdmin
}

// CanDelete follows the same rule as CanEdit
func CanDelete(t *ThankYou, actor Actor, adminMode bool) bool {
	return CanEdit(t, actor, adminMode)
}
