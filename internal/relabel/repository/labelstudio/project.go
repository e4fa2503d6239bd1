package labelstudio

import (
	"context"

	"label-renamer/internal/model"
	"label-renamer/internal/relabel/repository"
	pkgLabelStudio "label-renamer/pkg/labelstudio"
	pkgLog "label-renamer/pkg/log"
)

type implRepository struct {
	client *pkgLabelStudio.Client
	l      pkgLog.Logger
}

// New creates a new Label Studio repository.
func New(client *pkgLabelStudio.Client, l pkgLog.Logger) repository.LabelStudioRepository {
	return &implRepository{
		client: client,
		l:      l,
	}
}

func (r *implRepository) ListProjects(ctx context.Context) ([]model.Project, error) {
	summaries, err := r.client.ListProjects(ctx)
	if err != nil {
		r.l.Errorf(ctx, "labelstudio repository: failed to list projects: %v", err)
		return nil, err
	}

	projects := make([]model.Project, 0, len(summaries))
	for _, s := range summaries {
		projects = append(projects, model.Project{ID: s.ID, Title: s.Title})
	}
	return projects, nil
}

func (r *implRepository) GetProject(ctx context.Context, id int) (model.Project, error) {
	p, err := r.client.GetProject(ctx, id)
	if err != nil {
		r.l.Errorf(ctx, "labelstudio repository: failed to get project %d: %v", id, err)
		return model.Project{}, err
	}
	return toProject(p), nil
}

func (r *implRepository) UpdateLabelConfig(ctx context.Context, projectID int, labelConfig string) error {
	_, err := r.client.UpdateProject(ctx, projectID, pkgLabelStudio.UpdateProjectRequest{
		LabelConfig: labelConfig,
	})
	if err != nil {
		r.l.Errorf(ctx, "labelstudio repository: failed to update label config of project %d: %v", projectID, err)
		return err
	}
	return nil
}

func toProject(p *pkgLabelStudio.Project) model.Project {
	var controls map[string]model.Control
	if p.ParsedLabelConfig != nil {
		controls = make(map[string]model.Control, len(p.ParsedLabelConfig))
		for name, c := range p.ParsedLabelConfig {
			controls[name] = model.Control{
				Type:   c.Type,
				ToName: c.ToName,
				Labels: c.Labels,
			}
		}
	}

	return model.Project{
		ID:          p.ID,
		Title:       p.Title,
		LabelConfig: p.LabelConfig,
		Controls:    controls,
	}
}
