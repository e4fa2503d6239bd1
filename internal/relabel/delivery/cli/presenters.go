package cli

import (
	"fmt"
	"io"

	"label-renamer/internal/model"
	"label-renamer/internal/relabel"
)

func printProjects(w io.Writer, projects []model.Project) {
	fmt.Fprintln(w, "\n📌 Label Studio projects")
	for _, p := range projects {
		fmt.Fprintf(w, "🆔 ID: %d - 📂 Project: %s\n", p.ID, p.Title)
	}
}

func printLabels(w io.Writer, labels []model.Label) {
	fmt.Fprintln(w, "\n🏷️ Current labels")
	for _, l := range labels {
		fmt.Fprintf(w, "%d: %s\n", l.Number, l.Name)
	}
}

func printRenameResult(w io.Writer, projectID int, oldLabel, newLabel string, dryRun bool, out relabel.RenameLabelOutput) {
	switch {
	case out.ConfigUpdated:
		fmt.Fprintf(w, "✅ Project %d: label '%s' renamed to '%s'\n", projectID, oldLabel, newLabel)
	case dryRun && out.ConfigReplacements > 0:
		fmt.Fprintf(w, "🔍 Project %d: would rename label '%s' to '%s' (%d occurrence(s))\n", projectID, oldLabel, newLabel, out.ConfigReplacements)
	default:
		fmt.Fprintf(w, "⚠️ Project %d: label '%s' not in the config, checked annotations only\n", projectID, oldLabel)
	}

	b := out.Bulk
	for _, o := range b.Outcomes {
		if o.Status == relabel.StatusFailed {
			fmt.Fprintf(w, "❌ Annotation %d: %v\n", o.AnnotationID, o.Err)
		}
	}

	if dryRun {
		fmt.Fprintf(w, "🔍 %d of %d annotation(s) would be updated\n", b.DryRun, b.Total)
		return
	}
	fmt.Fprintf(w, "✅ %d annotation(s) updated, %d unchanged, %d failed (of %d)\n", b.Updated, b.Unchanged, b.Failed, b.Total)
}
