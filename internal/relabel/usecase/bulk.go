package usecase

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"label-renamer/internal/relabel"
)

// BulkUpdateAnnotations renames the label in every annotation of the
// project. Annotation updates run on a pool bounded by the configured
// concurrency. A failed annotation is recorded in the output and never
// stops the others; only a failed task listing is returned as an error.
func (uc *implUseCase) BulkUpdateAnnotations(ctx context.Context, input relabel.BulkUpdateInput) (relabel.BulkUpdateOutput, error) {
	input.NewLabel = strings.TrimSpace(input.NewLabel)
	if err := validateRename(input.ProjectID, input.OldLabel, input.NewLabel); err != nil {
		return relabel.BulkUpdateOutput{}, err
	}

	tasks, err := uc.repo.ListTasks(ctx, input.ProjectID)
	if err != nil {
		return relabel.BulkUpdateOutput{}, projectError(input.ProjectID, err)
	}

	var ids []int
	for _, t := range tasks {
		ids = append(ids, t.AnnotationIDs...)
	}

	uc.l.Infof(ctx, "BulkUpdateAnnotations: project=%d tasks=%d annotations=%d concurrency=%d",
		input.ProjectID, len(tasks), len(ids), uc.concurrency)

	// Each unit owns outcomes[i]; no locking needed.
	outcomes := make([]relabel.AnnotationOutcome, len(ids))

	var g errgroup.Group
	g.SetLimit(uc.concurrency)
	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			outcomes[i] = relabel.AnnotationOutcome{AnnotationID: id, Status: relabel.StatusFailed, Err: err}
			continue
		}
		g.Go(func() error {
			outcomes[i] = uc.updateAnnotation(ctx, id, input)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		uc.l.Errorf(ctx, "BulkUpdateAnnotations: project=%d worker pool: %v", input.ProjectID, err)
	}

	out := relabel.BulkUpdateOutput{Total: len(ids), Outcomes: outcomes}
	for _, o := range outcomes {
		switch o.Status {
		case relabel.StatusUpdated:
			out.Updated++
		case relabel.StatusUnchanged:
			out.Unchanged++
		case relabel.StatusDryRun:
			out.DryRun++
		default:
			out.Failed++
		}
	}

	uc.l.Infof(ctx, "BulkUpdateAnnotations: project=%d updated=%d unchanged=%d failed=%d dry_run=%d",
		input.ProjectID, out.Updated, out.Unchanged, out.Failed, out.DryRun)

	return out, nil
}

// updateAnnotation fetches one annotation, renames matching result items and
// patches it back when at least one item changed.
func (uc *implUseCase) updateAnnotation(ctx context.Context, id int, input relabel.BulkUpdateInput) relabel.AnnotationOutcome {
	outcome := relabel.AnnotationOutcome{AnnotationID: id}

	// Cancelled while queued for a worker.
	if err := ctx.Err(); err != nil {
		outcome.Status = relabel.StatusFailed
		outcome.Err = err
		return outcome
	}

	annotation, err := uc.repo.GetAnnotation(ctx, id)
	if err != nil {
		uc.l.Errorf(ctx, "❌ annotation %d: fetch failed: %v", id, err)
		outcome.Status = relabel.StatusFailed
		outcome.Err = remoteError("get annotation", err)
		return outcome
	}

	result, matched, err := rewriteResult(annotation.Result, uc.resultFields, input.OldLabel, input.NewLabel)
	if err != nil {
		uc.l.Errorf(ctx, "❌ annotation %d: rewrite failed: %v", id, err)
		outcome.Status = relabel.StatusFailed
		outcome.Err = err
		return outcome
	}
	outcome.Matched = matched

	switch {
	case matched == 0:
		uc.l.Debugf(ctx, "annotation %d: no %q labels, skipped", id, input.OldLabel)
		outcome.Status = relabel.StatusUnchanged
		return outcome
	case input.DryRun:
		uc.l.Infof(ctx, "annotation %d: dry run, would rename %d item(s)", id, matched)
		outcome.Status = relabel.StatusDryRun
		return outcome
	}

	if err := uc.repo.UpdateAnnotationResult(ctx, id, result); err != nil {
		uc.l.Errorf(ctx, "❌ annotation %d: update failed: %v", id, err)
		outcome.Status = relabel.StatusFailed
		outcome.Err = remoteError("update annotation", err)
		return outcome
	}

	uc.l.Infof(ctx, "✅ annotation %d: label %q renamed to %q", id, input.OldLabel, input.NewLabel)
	outcome.Status = relabel.StatusUpdated
	return outcome
}
