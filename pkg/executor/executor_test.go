package executor

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/surge-http/surge/pkg/model"
)

func newTestExecutor() *Executor {
	return New(model.DefaultConfig())
}

func TestExecute_EndToEnd(t *testing.T) {
	var gotBody string
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	req := &model.Request{
		ID:     "r1",
		Method: "POST",
		URL:    "{{base}}/echo",
		Body:   &model.Body{Type: model.BodyJSON, JSON: `{"t":"{{tok}}"}`},
	}

	resp, err := newTestExecutor().Execute(req, map[string]string{"base": server.URL, "tok": "abc"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if gotBody != `{"t":"abc"}` {
		t.Errorf("server received body %q, want %q", gotBody, `{"t":"abc"}`)
	}
	if gotContentType != "application/json" {
		t.Errorf("content type = %q, want default application/json", gotContentType)
	}
	if resp.Status != 200 {
		t.Errorf("status = %d, want 200", resp.Status)
	}
	if resp.Data != `{"ok":true}` {
		t.Errorf("data = %q", resp.Data)
	}
	if resp.Size != int64(len(`{"ok":true}`)) {
		t.Errorf("size = %d, want %d", resp.Size, len(`{"ok":true}`))
	}
	if resp.Time < 0 {
		t.Errorf("time = %d, want non-negative", resp.Time)
	}
}

func TestExecute_DisabledRowsExcluded(t *testing.T) {
	var gotQuery, gotHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotHeader = r.Header.Get("X-Off")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	req := &model.Request{
		ID:     "r1",
		Method: "GET",
		URL:    server.URL,
		Params: []model.Param{
			{Key: "page", Value: "1", Enabled: false},
			{Key: "limit", Value: "{{n}}", Enabled: true},
		},
		Headers: []model.Header{
			{Key: "X-Off", Value: "nope", Enabled: false},
			{Key: "X-On", Value: "yes", Enabled: true},
		},
	}

	_, err := newTestExecutor().Execute(req, map[string]string{"n": "10"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if gotQuery != "limit=10" {
		t.Errorf("query = %q, disabled params must not appear", gotQuery)
	}
	if gotHeader != "" {
		t.Errorf("X-Off = %q, disabled headers must not appear", gotHeader)
	}
}

func TestExecute_ExplicitContentTypeWins(t *testing.T) {
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
	}))
	defer server.Close()

	req := &model.Request{
		ID:     "r1",
		Method: "POST",
		URL:    server.URL,
		Headers: []model.Header{
			{Key: "content-type", Value: "application/vnd.custom+json", Enabled: true},
		},
		Body: &model.Body{Type: model.BodyJSON, JSON: `{}`},
	}

	if _, err := newTestExecutor().Execute(req, nil); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if gotContentType != "application/vnd.custom+json" {
		t.Errorf("content type = %q, explicit header must win over the hint", gotContentType)
	}
}

func TestExecute_BodyIgnoredForGET(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
	}))
	defer server.Close()

	req := &model.Request{
		ID:     "r1",
		Method: "GET",
		URL:    server.URL,
		Body:   &model.Body{Type: model.BodyRaw, Raw: "should not be sent"},
	}

	if _, err := newTestExecutor().Execute(req, nil); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if gotBody != "" {
		t.Errorf("GET carried a body %q", gotBody)
	}
}

func TestExecute_LowercaseMethodCarriesBody(t *testing.T) {
	var gotMethod, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotMethod = r.Method
		gotBody = string(body)
	}))
	defer server.Close()

	req := &model.Request{
		ID:     "r1",
		Method: "post",
		URL:    server.URL,
		Body:   &model.Body{Type: model.BodyRaw, Raw: "payload"},
	}

	if _, err := newTestExecutor().Execute(req, nil); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if gotMethod != "POST" {
		t.Errorf("method = %q, want POST", gotMethod)
	}
	if gotBody != "payload" {
		t.Errorf("body = %q, lowercase method must still carry its body", gotBody)
	}
}

func TestExecute_RedirectPolicy(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusFound)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("landed"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	req := &model.Request{ID: "r1", Method: "GET", URL: server.URL + "/start"}

	cfg := model.DefaultConfig()
	cfg.FollowRedirects = false
	resp, err := New(cfg).Execute(req, nil)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if resp.Status != 302 {
		t.Errorf("status = %d, want 302 when redirects are off", resp.Status)
	}

	cfg.FollowRedirects = true
	resp, err = New(cfg).Execute(req, nil)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if resp.Status != 200 || resp.Data != "landed" {
		t.Errorf("status = %d data = %q, want the redirect followed", resp.Status, resp.Data)
	}
}

func TestExecute_ValidateSSL(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	req := &model.Request{ID: "r1", Method: "GET", URL: server.URL}

	cfg := model.DefaultConfig()
	_, err := New(cfg).Execute(req, nil)
	var execErr *ExecutionError
	if !errors.As(err, &execErr) {
		t.Errorf("self-signed certificate with validation on: error = %v, want *ExecutionError", err)
	}

	cfg.ValidateSSL = false
	if _, err := New(cfg).Execute(req, nil); err != nil {
		t.Errorf("Execute() with validation off = %v, want success", err)
	}
}

func TestExecute_ErrorStatusIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "missing", http.StatusNotFound)
	}))
	defer server.Close()

	req := &model.Request{ID: "r1", Method: "GET", URL: server.URL}

	resp, err := newTestExecutor().Execute(req, nil)
	if err != nil {
		t.Fatalf("a 404 must be returned as a response, got error %v", err)
	}
	if resp.Status != 404 {
		t.Errorf("status = %d, want 404", resp.Status)
	}
	if resp.StatusText != "Not Found" {
		t.Errorf("statusText = %q, want Not Found", resp.StatusText)
	}
}

func TestExecute_TransportFailureRaises(t *testing.T) {
	// Closed server: connection refused, no response at all.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	req := &model.Request{ID: "r1", Method: "GET", URL: url}

	_, err := newTestExecutor().Execute(req, nil)
	if err == nil {
		t.Fatal("expected ExecutionError for refused connection")
	}
	var execErr *ExecutionError
	if !errors.As(err, &execErr) {
		t.Errorf("error type = %T, want *ExecutionError", err)
	}
}

func TestExecute_EmptyURLRejectedBeforeDispatch(t *testing.T) {
	req := &model.Request{ID: "r1", Method: "GET", URL: "  "}

	_, err := newTestExecutor().Execute(req, nil)
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Errorf("error = %v (%T), want *ValidationError", err, err)
	}
}

func TestExecute_AuthAppliedToRequest(t *testing.T) {
	var gotAuth, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("api_key")
	}))
	defer server.Close()

	tests := []struct {
		name      string
		auth      *model.Auth
		wantAuth  string
		wantQuery string
	}{
		{
			name:     "bearer header",
			auth:     &model.Auth{Type: model.AuthBearer, Bearer: &model.BearerAuth{Token: "t1"}},
			wantAuth: "Bearer t1",
		},
		{
			name: "apikey query",
			auth: &model.Auth{Type: model.AuthAPIKey, APIKey: &model.APIKeyAuth{
				Key: "api_key", Value: "k1", AddTo: model.AddToQuery,
			}},
			wantQuery: "k1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotAuth, gotQuery = "", ""
			req := &model.Request{ID: "r1", Method: "GET", URL: server.URL, Auth: tt.auth}
			if _, err := newTestExecutor().Execute(req, nil); err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if gotAuth != tt.wantAuth {
				t.Errorf("Authorization = %q, want %q", gotAuth, tt.wantAuth)
			}
			if gotQuery != tt.wantQuery {
				t.Errorf("api_key = %q, want %q", gotQuery, tt.wantQuery)
			}
		})
	}
}
