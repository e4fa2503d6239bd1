package model

// Project is a Label Studio project.
type Project struct {
	ID          int
	Title       string
	LabelConfig string             // Raw XML labeling configuration
	Controls    map[string]Control // parsed_label_config keyed by control name
}

// Control is one control tag of a project's parsed label config.
type Control struct {
	Type   string   // e.g. "RectangleLabels"
	ToName []string // Object tags this control annotates
	Labels []string // Label values in config order
}

// Label is a label name with its 1-based position in the project's control.
type Label struct {
	Number int
	Name   string
}
