// Package model defines the persisted data model for surge: requests,
// collections, folders, environments, history entries, and configuration.
// All types marshal to the JSON documents described in the storage layout.
package model

import "time"

// SupportedMethods lists the HTTP methods accepted for a Request.
var SupportedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}

// IsSupportedMethod reports whether m is one of the supported HTTP methods.
func IsSupportedMethod(m string) bool {
	for _, s := range SupportedMethods {
		if s == m {
			return true
		}
	}
	return false
}

// Param is a single query parameter row. Disabled rows are kept in the
// document but never appear in an outgoing request.
type Param struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Enabled bool   `json:"enabled"`
}

// Header is a single header row, same enable semantics as Param.
type Header struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Enabled bool   `json:"enabled"`
}

// Request is a stored request template. URL, param values, header values and
// body text may contain {{variable}} placeholders.
type Request struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Method    string    `json:"method"`
	URL       string    `json:"url"`
	Params    []Param   `json:"params,omitempty"`
	Headers   []Header  `json:"headers,omitempty"`
	Auth      *Auth     `json:"auth,omitempty"`
	Body      *Body     `json:"body,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Folder groups requests inside a collection by ID reference. Folders never
// own requests; deleting a folder only drops the reference list.
type Folder struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Requests []string `json:"requests,omitempty"`
	Folders  []Folder `json:"folders,omitempty"`
}

// Collection is the unit of persistence: one JSON document per collection.
// It owns its requests exclusively; folders reference them by ID.
type Collection struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Version     string            `json:"version,omitempty"`
	Variables   map[string]string `json:"variables,omitempty"`
	Auth        *Auth             `json:"auth,omitempty"`
	Folders     []Folder          `json:"folders,omitempty"`
	Requests    []Request         `json:"requests,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// Environment is a named variable set with a lifecycle independent of any
// collection. Selected by ID or name.
type Environment struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Variables map[string]string `json:"variables,omitempty"`
}

// Response is the normalized outcome of a successful transport exchange.
// Any HTTP status, including 4xx/5xx, is represented here rather than as an
// error.
type Response struct {
	Status     int               `json:"status"`
	StatusText string            `json:"statusText"`
	Headers    map[string]string `json:"headers"`
	Data       string            `json:"data"`
	Time       int64             `json:"time"` // elapsed wall-clock milliseconds
	Size       int64             `json:"size"` // response body bytes
}

// HistoryEntry pairs an executed request with its response.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Request   Request   `json:"request"`
	Response  Response  `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// Config is the process-wide configuration document, created with defaults on
// first run.
type Config struct {
	Theme           string `json:"theme"`
	DefaultTimeout  int    `json:"defaultTimeout"` // milliseconds
	FollowRedirects bool   `json:"followRedirects"`
	ValidateSSL     bool   `json:"validateSSL"`
	ProxyURL        string `json:"proxyUrl,omitempty"`
	MaxHistorySize  int    `json:"maxHistorySize"`
}

// DefaultConfig returns the built-in configuration used when config.json is
// missing or unreadable.
func DefaultConfig() Config {
	return Config{
		Theme:           "dark",
		DefaultTimeout:  30000,
		FollowRedirects: true,
		ValidateSSL:     true,
		MaxHistorySize:  100,
	}
}
