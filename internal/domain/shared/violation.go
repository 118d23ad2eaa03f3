package shared

// Violation is a single field-addressable input problem. Code is a message
// key rendered by the transport layer; Args are its substitution values.
type Violation struct {
	Name string
	Code string
	Args []any
}

// Violations is an ordered list of input problems collected for one request.
type Violations []Violation

// Add appends a violation for field name.
func (v *Violations) Add(name, code string, args ...any) {
	*v = append(*v, Violation{Name: name, Code: code, Args: args})
}

// Empty reports whether no violation has been recorded.
func (v Violations) Empty() bool {
	return len(v) == 0
}

// Fields returns the field names in recorded order.
func (v Violations) Fields() []string {
	names := make([]string, len(v))
	for i, item := range v {
		names[i] = item.Name
	}
	return names
}

// ValidationError carries violations through the error channel when a caller
// cannot return them directly.
type ValidationError struct {
	Violations Violations
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

func (e *ValidationError) Is(target error) bool {
	d, ok := target.(*DomainError)
	return ok && d.Code == CodeValidation
}
