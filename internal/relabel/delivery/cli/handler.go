package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"label-renamer/internal/model"
	"label-renamer/internal/relabel"
	pkgLog "label-renamer/pkg/log"
)

type handler struct {
	l        pkgLog.Logger
	uc       relabel.UseCase
	prompter Prompter
	out      io.Writer
}

// Run walks the operator through project selection, label selection and the
// new label name, then performs the rename. Any invalid answer ends the run.
func (h *handler) Run(ctx context.Context, opts Options) error {
	projectID, err := h.selectProject(ctx, opts.ProjectID)
	if err != nil {
		return err
	}

	labels, err := h.uc.GetProjectLabels(ctx, projectID)
	if err != nil {
		h.printf("❌ No labels found for project %d: %v\n", projectID, err)
		return err
	}
	printLabels(h.out, labels)

	oldLabel, err := h.selectLabel(ctx, labels, opts.Label)
	if err != nil {
		return err
	}

	newLabel := opts.NewLabel
	if newLabel == "" {
		newLabel, err = h.prompter.Ask(ctx, "📝 Enter the new label name")
		if err != nil {
			return err
		}
	}

	out, err := h.uc.RenameLabel(ctx, relabel.RenameLabelInput{
		ProjectID: projectID,
		OldLabel:  oldLabel,
		NewLabel:  newLabel,
		DryRun:    opts.DryRun,
	})
	if err != nil {
		h.printf("❌ Failed to rename label: %v\n", err)
		if out.ConfigUpdated {
			h.printf("⚠️ The project config was already updated; run again to retry the annotations\n")
		}
		return err
	}

	printRenameResult(h.out, projectID, oldLabel, newLabel, opts.DryRun, out)
	if out.Bulk.Failed > 0 {
		h.l.Warnf(ctx, "cli: %d annotation(s) failed, rerun the same rename to retry them", out.Bulk.Failed)
	}
	return nil
}

func (h *handler) selectProject(ctx context.Context, preset int) (int, error) {
	if preset != 0 {
		return preset, nil
	}

	projects, err := h.uc.ListProjects(ctx)
	if err != nil {
		if errors.Is(err, relabel.ErrNoProjects) {
			h.printf("❌ No projects found.\n")
		} else {
			h.printf("❌ Failed to fetch projects: %v\n", err)
		}
		return 0, err
	}
	printProjects(h.out, projects)

	answer, err := h.prompter.Ask(ctx, "🔢 Enter the ID of the project to change")
	if err != nil {
		return 0, err
	}
	id, err := strconv.Atoi(answer)
	if err != nil || id <= 0 {
		h.printf("❌ Invalid project ID: %q\n", answer)
		return 0, fmt.Errorf("%w: project ID %q", relabel.ErrInvalidInput, answer)
	}
	return id, nil
}

func (h *handler) selectLabel(ctx context.Context, labels []model.Label, preset string) (string, error) {
	answer := preset
	if answer == "" {
		var err error
		answer, err = h.prompter.Ask(ctx, "🔢 Enter the number of the label to rename")
		if err != nil {
			return "", err
		}
	}

	if n, err := strconv.Atoi(answer); err == nil {
		for _, l := range labels {
			if l.Number == n {
				return l.Name, nil
			}
		}
	} else if preset != "" {
		for _, l := range labels {
			if l.Name == preset {
				return l.Name, nil
			}
		}
	}

	h.printf("❌ Invalid label: %q\n", answer)
	return "", fmt.Errorf("%w: label %q", relabel.ErrInvalidInput, answer)
}

func (h *handler) printf(format string, args ...any) {
	fmt.Fprintf(h.out, format, args...)
}
