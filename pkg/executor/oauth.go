package executor

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/surge-http/surge/pkg/model"
	"github.com/surge-http/surge/pkg/vars"
)

// FetchOAuth2Token runs the client-credentials flow against the request's
// oauth2 configuration and returns the access token. This is an explicit,
// caller-initiated flow; the request pipeline itself never acquires tokens.
func FetchOAuth2Token(ctx context.Context, auth *model.Auth, v map[string]string) (string, error) {
	if auth == nil || auth.Type != model.AuthOAuth2 || auth.OAuth2 == nil {
		return "", &ValidationError{Reason: "request has no oauth2 configuration"}
	}

	oa := auth.OAuth2
	tokenURL := vars.Resolve(oa.AccessTokenURL, v)
	if tokenURL == "" {
		return "", &ValidationError{Reason: "oauth2 accessTokenUrl is empty"}
	}
	if oa.GrantType != "" && oa.GrantType != "client_credentials" {
		return "", &ValidationError{
			Reason: fmt.Sprintf("unsupported oauth2 grant type %q (only client_credentials)", oa.GrantType),
		}
	}

	config := clientcredentials.Config{
		ClientID:     vars.Resolve(oa.ClientID, v),
		ClientSecret: vars.Resolve(oa.ClientSecret, v),
		TokenURL:     tokenURL,
	}
	if oa.Scope != "" {
		config.Scopes = []string{vars.Resolve(oa.Scope, v)}
	}

	token, err := config.Token(ctx)
	if err != nil {
		return "", &ExecutionError{URL: tokenURL, Err: err}
	}
	return token.AccessToken, nil
}
