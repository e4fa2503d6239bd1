// Package labelstudiotest provides an in-memory Label Studio API server for tests.
package labelstudiotest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"label-renamer/pkg/labelconfig"
	"label-renamer/pkg/labelstudio"
)

// Server is a fake Label Studio server backed by in-memory state.
type Server struct {
	*httptest.Server

	token string

	mu              sync.Mutex
	projects        map[int]*labelstudio.Project
	tasks           map[int][]labelstudio.Task
	annotations     map[int]*labelstudio.Annotation
	failProjects    int
	failTasks       map[int]int
	failGet         map[int]int
	failPatch       map[int]int
	projectPatches  map[int]int
	annotationPatch map[int]int
	annotationDelay time.Duration
	onAnnotationGet func(id int)

	inFlight    atomic.Int64
	maxInFlight atomic.Int64
}

// NewServer starts a fake server that accepts requests carrying token.
func NewServer(token string) *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		token:           token,
		projects:        make(map[int]*labelstudio.Project),
		tasks:           make(map[int][]labelstudio.Task),
		annotations:     make(map[int]*labelstudio.Annotation),
		failTasks:       make(map[int]int),
		failGet:         make(map[int]int),
		failPatch:       make(map[int]int),
		projectPatches:  make(map[int]int),
		annotationPatch: make(map[int]int),
	}

	r := gin.New()
	r.Use(s.auth)

	api := r.Group("/api")
	api.GET("/projects", s.listProjects)
	api.GET("/projects/:id", s.getProject)
	api.PATCH("/projects/:id", s.patchProject)
	api.GET("/projects/:id/tasks", s.listTasks)
	api.GET("/annotations/:id", s.getAnnotation)
	api.PATCH("/annotations/:id", s.patchAnnotation)

	s.Server = httptest.NewServer(r)
	return s
}

// ClientConfig returns a client config pointing at the server.
func (s *Server) ClientConfig() labelstudio.Config {
	return labelstudio.Config{BaseURL: s.URL, Token: s.token}
}

// AddProject registers a project.
func (s *Server) AddProject(p labelstudio.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[p.ID] = &p
}

// AddTask registers a task under projectID with the given annotations.
// Each annotation's Task field is set to taskID.
func (s *Server) AddTask(projectID, taskID int, annotations ...labelstudio.Annotation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := labelstudio.Task{ID: taskID, Annotations: []labelstudio.AnnotationRef{}}
	for _, a := range annotations {
		a.Task = taskID
		stored := a
		s.annotations[a.ID] = &stored
		task.Annotations = append(task.Annotations, labelstudio.AnnotationRef{ID: a.ID})
	}
	s.tasks[projectID] = append(s.tasks[projectID], task)
}

// FailProjects makes GET /api/projects answer with status.
func (s *Server) FailProjects(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failProjects = status
}

// FailTasks makes GET /api/projects/{id}/tasks answer with status.
func (s *Server) FailTasks(projectID, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failTasks[projectID] = status
}

// FailAnnotationGet makes GET /api/annotations/{id} answer with status.
func (s *Server) FailAnnotationGet(id, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failGet[id] = status
}

// FailAnnotationPatch makes PATCH /api/annotations/{id} answer with status.
func (s *Server) FailAnnotationPatch(id, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failPatch[id] = status
}

// SetAnnotationDelay slows down every annotation GET by d.
func (s *Server) SetAnnotationDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.annotationDelay = d
}

// OnAnnotationGet registers fn to run at the start of every annotation GET.
func (s *Server) OnAnnotationGet(fn func(id int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onAnnotationGet = fn
}

// Project returns a copy of the stored project.
func (s *Server) Project(id int) labelstudio.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.projects[id]; ok {
		return *p
	}
	return labelstudio.Project{}
}

// Annotation returns a copy of the stored annotation.
func (s *Server) Annotation(id int) labelstudio.Annotation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.annotations[id]; ok {
		return *a
	}
	return labelstudio.Annotation{}
}

// ProjectPatches returns how many PATCH requests project id received.
func (s *Server) ProjectPatches(id int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projectPatches[id]
}

// AnnotationPatches returns how many PATCH requests annotation id received.
func (s *Server) AnnotationPatches(id int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.annotationPatch[id]
}

// MaxInFlight returns the peak number of concurrent annotation GETs.
func (s *Server) MaxInFlight() int {
	return int(s.maxInFlight.Load())
}

func (s *Server) auth(c *gin.Context) {
	fields := strings.Fields(c.GetHeader("Authorization"))
	if len(fields) != 2 || fields[1] != s.token {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
		return
	}
	c.Next()
}

func (s *Server) listProjects(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failProjects != 0 {
		c.JSON(s.failProjects, gin.H{"detail": "injected failure"})
		return
	}

	ids := make([]int, 0, len(s.projects))
	for id := range s.projects {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	results := make([]labelstudio.ProjectSummary, 0, len(ids))
	for _, id := range ids {
		results = append(results, labelstudio.ProjectSummary{ID: id, Title: s.projects[id].Title})
	}
	c.JSON(http.StatusOK, gin.H{"count": len(results), "results": results})
}

func (s *Server) getProject(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[paramID(c)]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) patchProject(c *gin.Context) {
	var req labelstudio.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := paramID(c)
	p, ok := s.projects[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}

	labels, err := labelconfig.Labels(req.LabelConfig)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"label_config": []string{err.Error()}})
		return
	}

	s.projectPatches[id]++
	p.LabelConfig = req.LabelConfig
	if len(p.ParsedLabelConfig) == 1 {
		for name, ctrl := range p.ParsedLabelConfig {
			ctrl.Labels = labels
			p.ParsedLabelConfig[name] = ctrl
		}
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) listTasks(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := paramID(c)
	if status := s.failTasks[id]; status != 0 {
		c.JSON(status, gin.H{"detail": "injected failure"})
		return
	}
	if _, ok := s.projects[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}

	tasks := s.tasks[id]
	if tasks == nil {
		tasks = []labelstudio.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) getAnnotation(c *gin.Context) {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		peak := s.maxInFlight.Load()
		if n <= peak || s.maxInFlight.CompareAndSwap(peak, n) {
			break
		}
	}

	id := paramID(c)

	s.mu.Lock()
	delay, hook := s.annotationDelay, s.onAnnotationGet
	s.mu.Unlock()
	if hook != nil {
		hook(id)
	}
	if delay > 0 {
		time.Sleep(delay)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if status := s.failGet[id]; status != 0 {
		c.JSON(status, gin.H{"detail": "injected failure"})
		return
	}
	a, ok := s.annotations[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	c.JSON(http.StatusOK, a)
}

func (s *Server) patchAnnotation(c *gin.Context) {
	var req struct {
		Result []json.RawMessage `json:"result"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := paramID(c)
	if status := s.failPatch[id]; status != 0 {
		c.JSON(status, gin.H{"detail": "injected failure"})
		return
	}
	a, ok := s.annotations[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}

	s.annotationPatch[id]++
	a.Result = req.Result
	c.JSON(http.StatusOK, a)
}

func paramID(c *gin.Context) int {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return -1
	}
	return id
}
