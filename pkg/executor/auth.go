package executor

import (
	"encoding/base64"
	"fmt"

	"github.com/surge-http/surge/pkg/model"
	"github.com/surge-http/surge/pkg/vars"
)

// ApplyAuth injects the credentials for the given auth variant into the
// pending header and query maps. A nil auth is a no-op. Missing sub-fields
// resolve to empty strings rather than erroring; the resulting header is
// still set so the server reports the rejection.
func ApplyAuth(headers, query map[string]string, auth *model.Auth, v map[string]string) {
	if auth == nil {
		return
	}

	switch auth.Type {
	case model.AuthBearer:
		var token string
		if auth.Bearer != nil {
			token = vars.Resolve(auth.Bearer.Token, v)
		}
		headers["Authorization"] = "Bearer " + token

	case model.AuthBasic:
		var username, password string
		if auth.Basic != nil {
			username = vars.Resolve(auth.Basic.Username, v)
			password = vars.Resolve(auth.Basic.Password, v)
		}
		credentials := fmt.Sprintf("%s:%s", username, password)
		encoded := base64.StdEncoding.EncodeToString([]byte(credentials))
		headers["Authorization"] = "Basic " + encoded

	case model.AuthAPIKey:
		if auth.APIKey == nil {
			return
		}
		value := vars.Resolve(auth.APIKey.Value, v)
		if auth.APIKey.AddTo == model.AddToQuery {
			query[auth.APIKey.Key] = value
		} else {
			headers[auth.APIKey.Key] = value
		}

	case model.AuthJWT:
		// Algorithm is metadata only; a pre-signed JWT is sent as a
		// bearer credential.
		var token string
		if auth.JWT != nil {
			token = vars.Resolve(auth.JWT.Token, v)
		}
		headers["Authorization"] = "Bearer " + token

	case model.AuthOAuth2:
		// Token acquisition is a separate explicit flow; the pipeline
		// does not act on oauth2 config.
	}
}
