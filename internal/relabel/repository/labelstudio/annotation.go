package labelstudio

import (
	"context"
	"encoding/json"

	"label-renamer/internal/model"
	pkgLabelStudio "label-renamer/pkg/labelstudio"
)

func (r *implRepository) ListTasks(ctx context.Context, projectID int) ([]model.Task, error) {
	tasks, err := r.client.ListTasks(ctx, projectID)
	if err != nil {
		r.l.Errorf(ctx, "labelstudio repository: failed to list tasks of project %d: %v", projectID, err)
		return nil, err
	}

	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		ids := make([]int, 0, len(t.Annotations))
		for _, a := range t.Annotations {
			ids = append(ids, a.ID)
		}
		out = append(out, model.Task{ID: t.ID, AnnotationIDs: ids})
	}
	return out, nil
}

func (r *implRepository) GetAnnotation(ctx context.Context, id int) (model.Annotation, error) {
	a, err := r.client.GetAnnotation(ctx, id)
	if err != nil {
		return model.Annotation{}, err
	}
	return model.Annotation{ID: a.ID, TaskID: a.Task, Result: a.Result}, nil
}

func (r *implRepository) UpdateAnnotationResult(ctx context.Context, id int, result []json.RawMessage) error {
	_, err := r.client.UpdateAnnotation(ctx, id, pkgLabelStudio.UpdateAnnotationRequest{Result: result})
	return err
}
