package model

// AuthType discriminates the Auth variant. Exactly one of the variant fields
// matching Type is populated.
type AuthType string

const (
	AuthBearer AuthType = "bearer"
	AuthBasic  AuthType = "basic"
	AuthAPIKey AuthType = "apikey"
	AuthOAuth2 AuthType = "oauth2"
	AuthJWT    AuthType = "jwt"
)

// APIKeyAddTo selects where an API key credential is injected.
type APIKeyAddTo string

const (
	AddToHeader APIKeyAddTo = "header"
	AddToQuery  APIKeyAddTo = "query"
)

// Auth is a closed tagged variant over the supported authentication schemes.
// A nil *Auth means no authentication.
type Auth struct {
	Type   AuthType    `json:"type"`
	Bearer *BearerAuth `json:"bearer,omitempty"`
	Basic  *BasicAuth  `json:"basic,omitempty"`
	APIKey *APIKeyAuth `json:"apikey,omitempty"`
	OAuth2 *OAuth2Auth `json:"oauth2,omitempty"`
	JWT    *JWTAuth    `json:"jwt,omitempty"`
}

// BearerAuth carries a bearer token, possibly templated.
type BearerAuth struct {
	Token string `json:"token"`
}

// BasicAuth carries username/password credentials.
type BasicAuth struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// APIKeyAuth carries a key/value pair routed to a header or query parameter.
type APIKeyAuth struct {
	Key   string      `json:"key"`
	Value string      `json:"value"`
	AddTo APIKeyAddTo `json:"addTo"`
}

// OAuth2Auth holds OAuth2 client configuration. The request pipeline never
// acts on it; token acquisition is a separate, explicit flow.
type OAuth2Auth struct {
	GrantType      string `json:"grantType"`
	ClientID       string `json:"clientId"`
	ClientSecret   string `json:"clientSecret"`
	AccessTokenURL string `json:"accessTokenUrl"`
	Scope          string `json:"scope,omitempty"`
}

// JWTAuth carries a pre-signed JWT. Algorithm is metadata only; the token is
// sent as a standard bearer credential.
type JWTAuth struct {
	Token     string `json:"token"`
	Algorithm string `json:"algorithm,omitempty"`
}
