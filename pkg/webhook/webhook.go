// Package webhook runs a temporary HTTP listener that captures incoming
// requests, for inspecting callbacks from the APIs under test.
package webhook

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"
)

// Captured is one recorded incoming request.
type Captured struct {
	Method    string            `json:"method"`
	Path      string            `json:"path"`
	Headers   map[string]string `json:"headers"`
	Body      string            `json:"body"`
	Timestamp time.Time         `json:"timestamp"`
}

// Listener is a one-shot capture server. Start it, collect requests, stop it.
type Listener struct {
	server    *http.Server
	url       string
	mu        sync.Mutex
	captured  []Captured
	done      chan struct{}
	onCapture func(Captured)
}

// Start opens a TCP listener on the given port (0 picks a free one) and
// serves the capture handler on path. onCapture, when non-nil, is invoked
// for every recorded request.
func Start(port int, path string, onCapture func(Captured)) (*Listener, error) {
	if path == "" {
		path = "/webhook"
	}

	tcpListener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("failed to start listener: %w", err)
	}
	actualPort := tcpListener.Addr().(*net.TCPAddr).Port

	l := &Listener{
		url:       fmt.Sprintf("http://localhost:%d%s", actualPort, path),
		done:      make(chan struct{}),
		onCapture: onCapture,
	}

	mux := http.NewServeMux()
	mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			body = []byte(fmt.Sprintf("error reading body: %v", err))
		}
		defer r.Body.Close()

		headers := make(map[string]string)
		for key, values := range r.Header {
			if len(values) > 0 {
				headers[key] = values[0]
			}
		}

		entry := Captured{
			Method:    r.Method,
			Path:      r.URL.Path,
			Headers:   headers,
			Body:      string(body),
			Timestamp: time.Now(),
		}

		l.mu.Lock()
		l.captured = append(l.captured, entry)
		l.mu.Unlock()

		if l.onCapture != nil {
			l.onCapture(entry)
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"received"}`))
	})

	l.server = &http.Server{Handler: mux}
	go func() {
		l.server.Serve(tcpListener)
	}()

	return l, nil
}

// URL returns the address webhooks should be sent to.
func (l *Listener) URL() string { return l.url }

// Requests returns a snapshot of the captured requests in arrival order.
func (l *Listener) Requests() []Captured {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Captured, len(l.captured))
	copy(out, l.captured)
	return out
}

// Stop shuts the server down and returns the number of captured requests.
func (l *Listener) Stop() (int, error) {
	select {
	case <-l.done:
		return len(l.Requests()), nil
	default:
	}
	close(l.done)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := l.server.Shutdown(ctx); err != nil {
		return 0, fmt.Errorf("failed to shutdown listener: %w", err)
	}
	return len(l.Requests()), nil
}

// Done is closed once the listener has been stopped.
func (l *Listener) Done() <-chan struct{} { return l.done }
