package relabel

// RenameLabelInput is the input for a project-wide label rename.
type RenameLabelInput struct {
	ProjectID int
	OldLabel  string
	NewLabel  string
	DryRun    bool // Report what would change without patching anything
}

// RenameLabelOutput is the result of RenameLabel.
type RenameLabelOutput struct {
	ConfigReplacements int  // value attributes rewritten in the label config
	ConfigUpdated      bool // false when nothing matched or on dry run
	Bulk               BulkUpdateOutput
}

// BulkUpdateInput is the input for the annotation bulk update.
type BulkUpdateInput struct {
	ProjectID int
	OldLabel  string
	NewLabel  string
	DryRun    bool
}

// OutcomeStatus is the final state of one annotation update.
type OutcomeStatus string

const (
	StatusUpdated   OutcomeStatus = "updated"
	StatusUnchanged OutcomeStatus = "unchanged"
	StatusFailed    OutcomeStatus = "failed"
	StatusDryRun    OutcomeStatus = "dry_run"
)

// AnnotationOutcome reports what happened to a single annotation.
type AnnotationOutcome struct {
	AnnotationID int
	Status       OutcomeStatus
	Matched      int // result items whose label was (or would be) renamed
	Err          error
}

// BulkUpdateOutput summarizes a bulk update. Outcomes follow the order in
// which the server listed the annotations.
type BulkUpdateOutput struct {
	Total     int
	Updated   int
	Unchanged int
	Failed    int
	DryRun    int
	Outcomes  []AnnotationOutcome
}
