package domain

// IssueDraft is the finalized new-issue wizard result, handed to the
// tracker on /save.
type IssueDraft struct {
	Summary     string
	Description string
	ProjectID   string
	Project     string
	// Fields are the accumulated custom-field assignments, in the order
	// the wizard collected them.
	Fields []FieldValue
}
