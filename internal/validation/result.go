package validation

// CrossFieldKey is the pseudo field name used for violations that span more
// than one request field.
const CrossFieldKey = "request"

// FieldError is a single rule violation on one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result is the outcome of validating a creation request: either valid, or a
// list of violations in the order the rules were evaluated.
type Result struct {
	errors []FieldError
}

// Add records a violation against a field.
func (r *Result) Add(field, message string) {
	r.errors = append(r.errors, FieldError{Field: field, Message: message})
}

// Valid reports whether no violations were recorded.
func (r *Result) Valid() bool {
	return len(r.errors) == 0
}

// Errors returns the recorded violations in evaluation order.
func (r *Result) Errors() []FieldError {
	return r.errors
}

// Fields returns the distinct field names with violations, in first-seen order.
func (r *Result) Fields() []string {
	seen := make(map[string]bool, len(r.errors))
	var fields []string
	for _, e := range r.errors {
		if !seen[e.Field] {
			seen[e.Field] = true
			fields = append(fields, e.Field)
		}
	}
	return fields
}

// ByField groups violation messages by field name.
func (r *Result) ByField() map[string][]string {
	m := make(map[string][]string, len(r.errors))
	for _, e := range r.errors {
		m[e.Field] = append(m[e.Field], e.Message)
	}
	return m
}
