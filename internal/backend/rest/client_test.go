package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"todo/internal/config"
	"todo/internal/service"
)

type recorded struct {
	method      string
	path        string
	contentType string
	auth        string
	requestID   string
	body        string
}

// newServer starts a test server that records requests and answers with handler.
func newServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *[]recorded) {
	t.Helper()
	var mu sync.Mutex
	var reqs []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recorded{
			method:      r.Method,
			path:        r.URL.Path,
			contentType: r.Header.Get("Content-Type"),
			auth:        r.Header.Get("Authorization"),
			requestID:   r.Header.Get(RequestIDHeader),
			body:        string(body),
		})
		mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &reqs
}

func TestListTasks(t *testing.T) {
	srv, reqs := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"id":1,"title":"A","completed":false,"assignee":"alice","priority":"low"},
			{"id":"2","title":"B","completed":true,"assignee":"bob"}]`)
	})
	c := NewWithHTTPClient(srv.URL, srv.Client(), nil)

	tasks, err := c.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 2 || tasks[0].ID != "1" || tasks[1].ID != "2" {
		t.Fatalf("unexpected tasks: %#v", tasks)
	}

	got := (*reqs)[0]
	if got.method != http.MethodGet || got.path != "/tasks/" {
		t.Errorf("unexpected request %s %s", got.method, got.path)
	}
	if got.contentType != "application/json" {
		t.Errorf("expected JSON content type, got %q", got.contentType)
	}
	if got.requestID == "" {
		t.Error("expected a request id header")
	}
}

func TestListTasks_Malformed(t *testing.T) {
	bodies := []string{
		`{"results": []}`,
		`"tasks"`,
		``,
		`[{"id": {"nested": true}}]`,
		`[1, 2`,
	}
	for _, body := range bodies {
		body := body
		srv, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, body)
		})
		c := NewWithHTTPClient(srv.URL, srv.Client(), nil)

		_, err := c.ListTasks(context.Background())
		if !errors.Is(err, service.ErrMalformedResponse) {
			t.Errorf("body %q: expected ErrMalformedResponse, got %v", body, err)
		}
	}
}

func TestListTasks_ServerError(t *testing.T) {
	srv, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"boom"}`, http.StatusInternalServerError)
	})
	c := NewWithHTTPClient(srv.URL, srv.Client(), nil)

	_, err := c.ListTasks(context.Background())
	if !errors.Is(err, service.ErrSync) {
		t.Fatalf("expected ErrSync, got %v", err)
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("expected status in error, got %q", err.Error())
	}
}

func TestCreateTask(t *testing.T) {
	srv, reqs := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":42,"title":"New","completed":false,"assignee":"alice","priority":"medium"}`)
	})
	c := NewWithHTTPClient(srv.URL, srv.Client(), nil)

	created, err := c.CreateTask(context.Background(), service.Task{
		ID:       "ignored",
		Title:    "New",
		Assignee: "alice",
		Priority: service.PriorityMedium,
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if created.ID != "42" {
		t.Errorf("expected server id 42, got %q", created.ID)
	}

	got := (*reqs)[0]
	if got.method != http.MethodPost || got.path != "/tasks/" {
		t.Errorf("unexpected request %s %s", got.method, got.path)
	}
	var sent map[string]any
	if err := json.Unmarshal([]byte(got.body), &sent); err != nil {
		t.Fatalf("request body is not JSON: %v", err)
	}
	if _, ok := sent["id"]; ok {
		t.Error("create request must not carry an id")
	}
	if sent["assignee"] != "alice" || sent["completed"] != false {
		t.Errorf("unexpected body: %v", sent)
	}
}

func TestCreateTask_RequiresCreatedStatus(t *testing.T) {
	srv, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"id":1,"title":"x"}`)
	})
	c := NewWithHTTPClient(srv.URL, srv.Client(), nil)

	_, err := c.CreateTask(context.Background(), service.Task{Title: "x"})
	if !errors.Is(err, service.ErrSync) {
		t.Errorf("expected ErrSync for 200 response, got %v", err)
	}
}

func TestPatchTask(t *testing.T) {
	srv, reqs := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{}`)
	})
	c := NewWithHTTPClient(srv.URL, srv.Client(), nil)

	done := true
	if err := c.PatchTask(context.Background(), "7", service.Fields{Completed: &done}); err != nil {
		t.Fatalf("PatchTask: %v", err)
	}

	got := (*reqs)[0]
	if got.method != http.MethodPatch || got.path != "/tasks/7/" {
		t.Errorf("unexpected request %s %s", got.method, got.path)
	}
	if got.body != `{"completed":true}` {
		t.Errorf("unexpected body %q", got.body)
	}
}

func TestDeleteTask(t *testing.T) {
	srv, reqs := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	c := NewWithHTTPClient(srv.URL, srv.Client(), nil)

	if err := c.DeleteTask(context.Background(), "9"); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	got := (*reqs)[0]
	if got.method != http.MethodDelete || got.path != "/tasks/9/" {
		t.Errorf("unexpected request %s %s", got.method, got.path)
	}
}

func TestDeleteTask_NotFound(t *testing.T) {
	srv, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	c := NewWithHTTPClient(srv.URL, srv.Client(), nil)

	err := c.DeleteTask(context.Background(), "9")
	if !errors.Is(err, service.ErrSync) || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found sync error, got %v", err)
	}
}

func TestHealth(t *testing.T) {
	srv, reqs := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status":"OK","timestamp":"2024-01-01T00:00:00"}`)
	})
	c := NewWithHTTPClient(srv.URL, srv.Client(), nil)

	h, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if h.Status != "OK" {
		t.Errorf("expected OK, got %q", h.Status)
	}
	if (*reqs)[0].path != "/health" {
		t.Errorf("unexpected path %q", (*reqs)[0].path)
	}
}

func TestTimeout(t *testing.T) {
	srv, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	c := NewWithHTTPClient(srv.URL, srv.Client(), nil)
	c.timeout = 50 * time.Millisecond

	_, err := c.ListTasks(context.Background())
	if !errors.Is(err, service.ErrSync) || !strings.Contains(err.Error(), "timed out") {
		t.Errorf("expected timeout sync error, got %v", err)
	}
}

func TestNew_BearerToken(t *testing.T) {
	srv, reqs := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`)
	})

	cfg := &config.Config{APIURL: srv.URL, APIToken: "s3cret", Timeout: time.Second, RateLimit: 100, RateBurst: 1}
	c, err := New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.ListTasks(context.Background()); err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if got := (*reqs)[0].auth; got != "Bearer s3cret" {
		t.Errorf("expected bearer token, got %q", got)
	}
}

func TestNew_InvalidURL(t *testing.T) {
	for _, raw := range []string{"", "not a url", "ftp://example.com"} {
		if _, err := New(context.Background(), &config.Config{APIURL: raw}, nil); err == nil {
			t.Errorf("expected error for %q", raw)
		}
	}
}
