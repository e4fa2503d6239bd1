package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"label-renamer/internal/labelstudiotest"
	"label-renamer/internal/relabel"
	"label-renamer/internal/relabel/delivery/cli"
	lsRepo "label-renamer/internal/relabel/repository/labelstudio"
	"label-renamer/internal/relabel/usecase"
	"label-renamer/pkg/labelstudio"
	pkgLog "label-renamer/pkg/log"
)

type scriptedPrompter struct {
	answers []string
	asked   []string
}

func (p *scriptedPrompter) Ask(ctx context.Context, title string) (string, error) {
	p.asked = append(p.asked, title)
	if len(p.answers) == 0 {
		return "", errors.New("no scripted answer left")
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

func setup(t *testing.T, withProject bool) *labelstudiotest.Server {
	t.Helper()
	srv := labelstudiotest.NewServer("tok")
	t.Cleanup(srv.Close)

	if withProject {
		srv.AddProject(labelstudio.Project{
			ID:    5,
			Title: "Vehicles",
			LabelConfig: `<View><Image name="image" value="$image"/>` +
				`<RectangleLabels name="label" toName="image"><Label value="Car"/><Label value="Truck"/></RectangleLabels></View>`,
			ParsedLabelConfig: map[string]labelstudio.ControlTag{
				"label": {Type: "RectangleLabels", Labels: []string{"Car", "Truck"}},
			},
		})
		srv.AddTask(5, 1,
			labelstudio.Annotation{ID: 11, Result: []json.RawMessage{json.RawMessage(`{"value":{"rectanglelabels":["Truck"]}}`)}},
			labelstudio.Annotation{ID: 12, Result: []json.RawMessage{json.RawMessage(`{"value":{"rectanglelabels":["Car"]}}`)}},
		)
	}
	return srv
}

func newHandler(t *testing.T, srv *labelstudiotest.Server, p cli.Prompter, out *bytes.Buffer) cli.Handler {
	t.Helper()
	client, err := labelstudio.NewClient(srv.ClientConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l := pkgLog.NewNop()
	uc := usecase.New(l, lsRepo.New(client, l), usecase.Config{})
	return cli.New(l, uc, p, out)
}

func TestRunInteractive(t *testing.T) {
	srv := setup(t, true)
	prompter := &scriptedPrompter{answers: []string{"5", "2", "Bus"}}
	var out bytes.Buffer

	if err := newHandler(t, srv, prompter, &out).Run(context.Background(), cli.Options{}); err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out.String())
	}

	if len(prompter.asked) != 3 {
		t.Errorf("expected 3 prompts, got %v", prompter.asked)
	}
	for _, want := range []string{
		"🆔 ID: 5 - 📂 Project: Vehicles",
		"1: Car",
		"2: Truck",
		"✅ Project 5: label 'Truck' renamed to 'Bus'",
		"✅ 1 annotation(s) updated, 1 unchanged, 0 failed (of 2)",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}

	if !strings.Contains(srv.Project(5).LabelConfig, `<Label value="Bus"/>`) {
		t.Errorf("config not updated: %s", srv.Project(5).LabelConfig)
	}
	if srv.AnnotationPatches(11) != 1 || srv.AnnotationPatches(12) != 0 {
		t.Errorf("unexpected annotation patches: 11=%d 12=%d", srv.AnnotationPatches(11), srv.AnnotationPatches(12))
	}
}

func TestRunInvalidAnswers(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
	}{
		{name: "project ID is not a number", answers: []string{"abc"}},
		{name: "label number out of range", answers: []string{"5", "3"}},
		{name: "label number is not a number", answers: []string{"5", "Truck"}},
		{name: "empty new label", answers: []string{"5", "1", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := setup(t, true)
			var out bytes.Buffer

			err := newHandler(t, srv, &scriptedPrompter{answers: tt.answers}, &out).Run(context.Background(), cli.Options{})
			if !errors.Is(err, relabel.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if !strings.Contains(out.String(), "❌") {
				t.Errorf("expected a diagnostic line:\n%s", out.String())
			}
			if srv.ProjectPatches(5) != 0 {
				t.Errorf("invalid input must not patch the project")
			}
		})
	}
}

func TestRunNoProjects(t *testing.T) {
	srv := setup(t, false)
	var out bytes.Buffer

	err := newHandler(t, srv, &scriptedPrompter{}, &out).Run(context.Background(), cli.Options{})
	if !errors.Is(err, relabel.ErrNoProjects) {
		t.Fatalf("expected ErrNoProjects, got %v", err)
	}
	if !strings.Contains(out.String(), "❌ No projects found.") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestRunNonInteractive(t *testing.T) {
	srv := setup(t, true)
	prompter := &scriptedPrompter{}
	var out bytes.Buffer

	err := newHandler(t, srv, prompter, &out).Run(context.Background(), cli.Options{
		ProjectID: 5,
		Label:     "Truck",
		NewLabel:  "Lorry",
		DryRun:    true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out.String())
	}
	if len(prompter.asked) != 0 {
		t.Errorf("non-interactive run prompted: %v", prompter.asked)
	}
	if !strings.Contains(out.String(), "🔍 1 of 2 annotation(s) would be updated") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
	if srv.ProjectPatches(5) != 0 || srv.AnnotationPatches(11) != 0 {
		t.Errorf("dry run must not patch anything")
	}
}
