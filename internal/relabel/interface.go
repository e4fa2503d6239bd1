package relabel

import (
	"context"

	"label-renamer/internal/model"
)

// UseCase defines the label rename operations against a labeling server.
type UseCase interface {
	// ListProjects returns all projects. Zero projects yields ErrNoProjects.
	ListProjects(ctx context.Context) ([]model.Project, error)

	// GetProjectLabels returns the project's labels numbered from 1 in server order.
	GetProjectLabels(ctx context.Context, projectID int) ([]model.Label, error)

	// RenameLabel rewrites the label in the project's config, then in every annotation.
	RenameLabel(ctx context.Context, input RenameLabelInput) (RenameLabelOutput, error)

	// BulkUpdateAnnotations renames the label in every annotation of the project.
	BulkUpdateAnnotations(ctx context.Context, input BulkUpdateInput) (BulkUpdateOutput, error)
}
