package executor

import (
	"testing"

	"github.com/surge-http/surge/pkg/model"
)

func TestApplyAuth_Bearer(t *testing.T) {
	headers := map[string]string{}
	query := map[string]string{}
	auth := &model.Auth{
		Type:   model.AuthBearer,
		Bearer: &model.BearerAuth{Token: "{{tok}}"},
	}

	ApplyAuth(headers, query, auth, map[string]string{"tok": "abc123"})

	if got := headers["Authorization"]; got != "Bearer abc123" {
		t.Errorf("Authorization = %q, want %q", got, "Bearer abc123")
	}
	if len(query) != 0 {
		t.Errorf("query should be untouched, got %v", query)
	}
}

func TestApplyAuth_Basic(t *testing.T) {
	headers := map[string]string{}
	auth := &model.Auth{
		Type:  model.AuthBasic,
		Basic: &model.BasicAuth{Username: "admin", Password: "secret"},
	}

	ApplyAuth(headers, map[string]string{}, auth, nil)

	if got := headers["Authorization"]; got != "Basic YWRtaW46c2VjcmV0" {
		t.Errorf("Authorization = %q, want %q", got, "Basic YWRtaW46c2VjcmV0")
	}
}

func TestApplyAuth_APIKeyRouting(t *testing.T) {
	tests := []struct {
		name   string
		addTo  model.APIKeyAddTo
		wantIn string
	}{
		{name: "header routing", addTo: model.AddToHeader, wantIn: "header"},
		{name: "query routing", addTo: model.AddToQuery, wantIn: "query"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			query := map[string]string{}
			auth := &model.Auth{
				Type:   model.AuthAPIKey,
				APIKey: &model.APIKeyAuth{Key: "X-Api-Key", Value: "{{key}}", AddTo: tt.addTo},
			}

			ApplyAuth(headers, query, auth, map[string]string{"key": "v1"})

			if tt.wantIn == "header" {
				if headers["X-Api-Key"] != "v1" {
					t.Errorf("header X-Api-Key = %q, want %q", headers["X-Api-Key"], "v1")
				}
				if len(query) != 0 {
					t.Errorf("query should be untouched, got %v", query)
				}
			} else {
				if query["X-Api-Key"] != "v1" {
					t.Errorf("query X-Api-Key = %q, want %q", query["X-Api-Key"], "v1")
				}
				if len(headers) != 0 {
					t.Errorf("headers should be untouched, got %v", headers)
				}
			}
		})
	}
}

func TestApplyAuth_JWTSentAsBearer(t *testing.T) {
	headers := map[string]string{}
	auth := &model.Auth{
		Type: model.AuthJWT,
		JWT:  &model.JWTAuth{Token: "ey.xx.yy", Algorithm: "HS256"},
	}

	ApplyAuth(headers, map[string]string{}, auth, nil)

	if got := headers["Authorization"]; got != "Bearer ey.xx.yy" {
		t.Errorf("Authorization = %q, want %q", got, "Bearer ey.xx.yy")
	}
}

func TestApplyAuth_NoopCases(t *testing.T) {
	tests := []struct {
		name string
		auth *model.Auth
	}{
		{name: "nil auth", auth: nil},
		{name: "oauth2 never touches the request", auth: &model.Auth{
			Type:   model.AuthOAuth2,
			OAuth2: &model.OAuth2Auth{ClientID: "id", ClientSecret: "secret"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			query := map[string]string{}
			ApplyAuth(headers, query, tt.auth, nil)
			if len(headers) != 0 || len(query) != 0 {
				t.Errorf("expected no mutation, got headers=%v query=%v", headers, query)
			}
		})
	}
}

func TestApplyAuth_MissingFieldsResolveEmpty(t *testing.T) {
	headers := map[string]string{}
	ApplyAuth(headers, map[string]string{}, &model.Auth{Type: model.AuthBearer}, nil)

	if got := headers["Authorization"]; got != "Bearer " {
		t.Errorf("Authorization = %q, want %q", got, "Bearer ")
	}
}
