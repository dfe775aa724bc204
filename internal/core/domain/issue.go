package domain

// Issue is a backlog issue as rendered to the user.
type Issue struct {
	IDReadable string `json:"idReadable"`
	Summary    string `json:"summary"`
	Votes      int    `json:"votes"`
	HasVote    bool   `json:"hasVote"`
}

// Issues is one backlog page.
type Issues []Issue

// ProjectRef identifies a tracker project.
type ProjectRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FieldValue is one selected custom-field value, carrying enough of the
// field's identity to build a create-issue request later.
type FieldValue struct {
	FieldID   string `json:"field_id"`
	FieldName string `json:"field_name"`
	Value     string `json:"value"`
}

// FieldBundle is the allowed value set of a project custom field.
type FieldBundle struct {
	FieldID   string
	FieldName string
	Values    []string
}

// Has reports whether v is an allowed value of the bundle.
func (b FieldBundle) Has(v string) bool {
	for _, val := range b.Values {
		if val == v {
			return true
		}
	}
	return false
}

// Value returns the bundle's FieldValue for v.
func (b FieldBundle) Value(v string) FieldValue {
	return FieldValue{FieldID: b.FieldID, FieldName: b.FieldName, Value: v}
}
