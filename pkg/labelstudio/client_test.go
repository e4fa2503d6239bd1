package labelstudio_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"label-renamer/pkg/labelstudio"
)

func TestLabelStudioClient(t *testing.T) {
	var lastAuth atomic.Value
	mux := http.NewServeMux()

	mux.HandleFunc("/api/projects", func(w http.ResponseWriter, r *http.Request) {
		lastAuth.Store(r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{
			"count":   1,
			"results": []map[string]any{{"id": 5, "title": "Vehicles"}},
		})
	})

	mux.HandleFunc("/api/projects/5", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{
				"id": 5,
				"title": "Vehicles",
				"label_config": "<View><RectangleLabels name=\"label\" toName=\"image\"><Label value=\"Car\"/></RectangleLabels></View>",
				"parsed_label_config": {"label": {"type": "RectangleLabels", "to_name": ["image"], "labels": ["Car"]}}
			}`))
		case http.MethodPatch:
			var req labelstudio.UpdateProjectRequest
			json.NewDecoder(r.Body).Decode(&req)
			json.NewEncoder(w).Encode(labelstudio.Project{ID: 5, LabelConfig: req.LabelConfig})
		}
	})

	mux.HandleFunc("/api/projects/5/tasks", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 1, "annotations": [{"id": 10}, {"id": 11}]}, {"id": 2, "annotations": []}]`))
	})

	mux.HandleFunc("/api/annotations/10", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"id": 10, "task": 1, "result": [{"id": "a", "value": {"rectanglelabels": ["Car"]}}]}`))
		case http.MethodPatch:
			var req labelstudio.UpdateAnnotationRequest
			json.NewDecoder(r.Body).Decode(&req)
			json.NewEncoder(w).Encode(labelstudio.Annotation{ID: 10, Task: 1, Result: req.Result})
		}
	})

	mux.HandleFunc("/api/projects/404", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail": "Not found."}`, http.StatusNotFound)
	})
	mux.HandleFunc("/api/annotations/500", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()

	client, err := labelstudio.NewClient(labelstudio.Config{BaseURL: ts.URL + "/", Token: "test-token"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()

	t.Run("ListProjects", func(t *testing.T) {
		res, err := client.ListProjects(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res) != 1 || res[0].ID != 5 || res[0].Title != "Vehicles" {
			t.Errorf("unexpected projects: %+v", res)
		}
		if got := lastAuth.Load(); got != "Token test-token" {
			t.Errorf("unexpected Authorization header: %v", got)
		}
	})

	t.Run("GetProject", func(t *testing.T) {
		p, err := client.GetProject(ctx, 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ctrl, ok := p.ParsedLabelConfig["label"]
		if !ok || len(ctrl.Labels) != 1 || ctrl.Labels[0] != "Car" {
			t.Errorf("unexpected parsed config: %+v", p.ParsedLabelConfig)
		}
	})

	t.Run("UpdateProject", func(t *testing.T) {
		p, err := client.UpdateProject(ctx, 5, labelstudio.UpdateProjectRequest{LabelConfig: `<View><Label value="Bus"/></View>`})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.LabelConfig != `<View><Label value="Bus"/></View>` {
			t.Errorf("label config not round-tripped: %q", p.LabelConfig)
		}
	})

	t.Run("ListTasks", func(t *testing.T) {
		tasks, err := client.ListTasks(ctx, 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(tasks) != 2 || len(tasks[0].Annotations) != 2 || tasks[0].Annotations[1].ID != 11 {
			t.Errorf("unexpected tasks: %+v", tasks)
		}
	})

	t.Run("GetAndUpdateAnnotation", func(t *testing.T) {
		a, err := client.GetAnnotation(ctx, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(a.Result) != 1 {
			t.Fatalf("unexpected result: %s", a.Result)
		}
		updated, err := client.UpdateAnnotation(ctx, 10, labelstudio.UpdateAnnotationRequest{Result: a.Result})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(updated.Result) != 1 {
			t.Errorf("unexpected updated result: %s", updated.Result)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := client.GetProject(ctx, 404)
		if !errors.Is(err, labelstudio.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		var apiErr *labelstudio.APIError
		if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
			t.Errorf("expected APIError with 404, got %v", err)
		}
	})

	t.Run("ServerError", func(t *testing.T) {
		_, err := client.GetAnnotation(ctx, 500)
		if !errors.Is(err, labelstudio.ErrServerError) {
			t.Errorf("expected ErrServerError, got %v", err)
		}
	})

	t.Run("Server Down", func(t *testing.T) {
		badClient, _ := labelstudio.NewClient(labelstudio.Config{BaseURL: "http://localhost:59999", Token: "token"})
		_, err := badClient.ListProjects(ctx)
		if err == nil {
			t.Errorf("expected connection refused error")
		}
		var apiErr *labelstudio.APIError
		if errors.As(err, &apiErr) {
			t.Errorf("transport failure must not be an APIError: %v", err)
		}
	})
}

func TestNewClientValidation(t *testing.T) {
	if _, err := labelstudio.NewClient(labelstudio.Config{Token: "x"}); !errors.Is(err, labelstudio.ErrMissingURL) {
		t.Errorf("expected ErrMissingURL, got %v", err)
	}
	if _, err := labelstudio.NewClient(labelstudio.Config{BaseURL: "http://x"}); !errors.Is(err, labelstudio.ErrMissingToken) {
		t.Errorf("expected ErrMissingToken, got %v", err)
	}
}

func TestBearerScheme(t *testing.T) {
	var got string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`{"results": []}`))
	}))
	defer ts.Close()

	client, _ := labelstudio.NewClient(labelstudio.Config{BaseURL: ts.URL, Token: "jwt", AuthScheme: "bearer"})
	if _, err := client.ListProjects(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Bearer jwt" {
		t.Errorf("unexpected Authorization header: %q", got)
	}
}

func TestRateLimitHonorsContext(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	}))
	defer ts.Close()

	client, _ := labelstudio.NewClient(labelstudio.Config{
		BaseURL:           ts.URL,
		Token:             "t",
		RequestsPerSecond: 0.01,
		Burst:             1,
	})

	ctx := context.Background()
	if _, err := client.ListProjects(ctx); err != nil {
		t.Fatalf("first call should use the burst: %v", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	if _, err := client.ListProjects(ctx); err == nil {
		t.Errorf("expected limiter wait to fail once the context expires")
	}
}
