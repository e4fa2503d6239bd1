package repository

import (
	"context"
	"encoding/json"

	"label-renamer/internal/model"
)

// LabelStudioRepository is the data access interface for the labeling server.
type LabelStudioRepository interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
	GetProject(ctx context.Context, id int) (model.Project, error)
	UpdateLabelConfig(ctx context.Context, projectID int, labelConfig string) error
	ListTasks(ctx context.Context, projectID int) ([]model.Task, error)
	GetAnnotation(ctx context.Context, id int) (model.Annotation, error)
	UpdateAnnotationResult(ctx context.Context, id int, result []json.RawMessage) error
}
