package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"label-renamer/internal/relabel"
	"label-renamer/pkg/labelconfig"
)

// RenameLabel rewrites oldLabel to newLabel in the project's label config,
// persists it, and then renames the label in every annotation. The bulk
// phase is skipped when any config step fails.
func (uc *implUseCase) RenameLabel(ctx context.Context, input relabel.RenameLabelInput) (relabel.RenameLabelOutput, error) {
	input.NewLabel = strings.TrimSpace(input.NewLabel)
	if err := validateRename(input.ProjectID, input.OldLabel, input.NewLabel); err != nil {
		return relabel.RenameLabelOutput{}, err
	}

	uc.l.Infof(ctx, "RenameLabel: project=%d %q -> %q dry_run=%t", input.ProjectID, input.OldLabel, input.NewLabel, input.DryRun)

	project, err := uc.repo.GetProject(ctx, input.ProjectID)
	if err != nil {
		return relabel.RenameLabelOutput{}, projectError(input.ProjectID, err)
	}

	updatedConfig, replaced, err := labelconfig.Rename(project.LabelConfig, input.OldLabel, input.NewLabel)
	if err != nil {
		if errors.Is(err, labelconfig.ErrLabelExists) {
			return relabel.RenameLabelOutput{}, fmt.Errorf("%w: %w", relabel.ErrInvalidInput, err)
		}
		return relabel.RenameLabelOutput{}, fmt.Errorf("failed to rewrite label config of project %d: %w", input.ProjectID, err)
	}

	out := relabel.RenameLabelOutput{ConfigReplacements: replaced}

	switch {
	case replaced == 0:
		uc.l.Warnf(ctx, "RenameLabel: label %q not found in config of project %d, updating annotations only", input.OldLabel, input.ProjectID)
	case input.DryRun:
		uc.l.Infof(ctx, "RenameLabel: dry run, would rewrite %d label(s) in project %d config", replaced, input.ProjectID)
	default:
		if err := uc.repo.UpdateLabelConfig(ctx, input.ProjectID, updatedConfig); err != nil {
			return out, projectError(input.ProjectID, err)
		}
		out.ConfigUpdated = true
		uc.l.Infof(ctx, "✅ RenameLabel: project %d label %q renamed to %q", input.ProjectID, input.OldLabel, input.NewLabel)
	}

	bulk, err := uc.BulkUpdateAnnotations(ctx, relabel.BulkUpdateInput{
		ProjectID: input.ProjectID,
		OldLabel:  input.OldLabel,
		NewLabel:  input.NewLabel,
		DryRun:    input.DryRun,
	})
	out.Bulk = bulk
	return out, err
}

func validateRename(projectID int, oldLabel, newLabel string) error {
	switch {
	case projectID <= 0:
		return fmt.Errorf("%w: project ID must be positive, got %d", relabel.ErrInvalidInput, projectID)
	case oldLabel == "":
		return fmt.Errorf("%w: old label is empty", relabel.ErrInvalidInput)
	case newLabel == "":
		return fmt.Errorf("%w: new label is empty", relabel.ErrInvalidInput)
	case newLabel == oldLabel:
		return fmt.Errorf("%w: new label equals old label %q", relabel.ErrInvalidInput, oldLabel)
	}
	return nil
}
