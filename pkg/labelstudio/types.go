package labelstudio

import (
	"encoding/json"
	"time"
)

// Config configures a Client.
type Config struct {
	BaseURL    string
	Token      string
	AuthScheme string // "Token" (legacy API key) or "Bearer"

	Timeout time.Duration

	// RequestsPerSecond caps the request rate across all calls made by the
	// client. Zero or negative disables the limiter.
	RequestsPerSecond float64
	Burst             int
}

// ProjectSummary is one entry of GET /api/projects.
type ProjectSummary struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// Project is the Label Studio project object.
type Project struct {
	ID                int                   `json:"id"`
	Title             string                `json:"title"`
	LabelConfig       string                `json:"label_config"`
	ParsedLabelConfig map[string]ControlTag `json:"parsed_label_config"`
}

// ControlTag is one control entry of parsed_label_config, keyed by the
// control's name attribute.
type ControlTag struct {
	Type   string   `json:"type"`
	ToName []string `json:"to_name"`
	Labels []string `json:"labels"`
}

// UpdateProjectRequest is the body for PATCH /api/projects/{id}.
type UpdateProjectRequest struct {
	LabelConfig string `json:"label_config"`
}

// Task is a Label Studio task as returned by GET /api/projects/{id}/tasks.
type Task struct {
	ID          int             `json:"id"`
	Annotations []AnnotationRef `json:"annotations"`
}

// AnnotationRef is the part of an embedded annotation needed to address it.
type AnnotationRef struct {
	ID int `json:"id"`
}

// Annotation is the Label Studio annotation object. Result items are kept raw
// so that items the caller does not touch are sent back unchanged.
type Annotation struct {
	ID     int               `json:"id"`
	Task   int               `json:"task"`
	Result []json.RawMessage `json:"result"`
}

// UpdateAnnotationRequest is the body for PATCH /api/annotations/{id}.
type UpdateAnnotationRequest struct {
	Result []json.RawMessage `json:"result"`
}

type listProjectsResponse struct {
	Count   int              `json:"count"`
	Results []ProjectSummary `json:"results"`
}
