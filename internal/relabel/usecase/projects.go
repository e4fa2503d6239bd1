package usecase

import (
	"context"
	"fmt"

	"label-renamer/internal/model"
	"label-renamer/internal/relabel"
	"label-renamer/pkg/labelconfig"
)

// ListProjects returns every project visible to the token.
func (uc *implUseCase) ListProjects(ctx context.Context) ([]model.Project, error) {
	projects, err := uc.repo.ListProjects(ctx)
	if err != nil {
		return nil, remoteError("list projects", err)
	}
	if len(projects) == 0 {
		return nil, relabel.ErrNoProjects
	}

	uc.l.Debugf(ctx, "ListProjects: found %d projects", len(projects))
	return projects, nil
}

// GetProjectLabels returns the labels of the configured control, numbered
// from 1 in the order the server lists them.
func (uc *implUseCase) GetProjectLabels(ctx context.Context, projectID int) ([]model.Label, error) {
	if projectID <= 0 {
		return nil, fmt.Errorf("%w: project ID must be positive, got %d", relabel.ErrInvalidInput, projectID)
	}

	project, err := uc.repo.GetProject(ctx, projectID)
	if err != nil {
		return nil, projectError(projectID, err)
	}

	names, err := uc.labelNames(ctx, project)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("project %d, control %q: %w", projectID, uc.controlName, relabel.ErrNoLabels)
	}

	labels := make([]model.Label, 0, len(names))
	for i, name := range names {
		labels = append(labels, model.Label{Number: i + 1, Name: name})
	}
	return labels, nil
}

func (uc *implUseCase) labelNames(ctx context.Context, project model.Project) ([]string, error) {
	if project.Controls != nil {
		return project.Controls[uc.controlName].Labels, nil
	}

	// Servers that omit parsed_label_config: read the raw config instead.
	uc.l.Warnf(ctx, "GetProjectLabels: project %d has no parsed_label_config, parsing label_config", project.ID)
	names, err := labelconfig.Labels(project.LabelConfig)
	if err != nil {
		return nil, fmt.Errorf("project %d: %w: %w", project.ID, relabel.ErrNoLabels, err)
	}
	return names, nil
}
