package model

// BodyType discriminates the Body variant.
type BodyType string

const (
	BodyJSON           BodyType = "json"
	BodyGraphQL        BodyType = "graphql"
	BodyRaw            BodyType = "raw"
	BodyFormURLEncoded BodyType = "form-urlencoded"
	BodyFormData       BodyType = "form-data"
)

// Body is a closed tagged variant over the supported request payload
// encodings. A nil *Body means no body.
type Body struct {
	Type      BodyType     `json:"type"`
	JSON      string       `json:"json,omitempty"`      // serialized JSON text, possibly templated
	GraphQL   *GraphQLBody `json:"graphql,omitempty"`
	Raw       string       `json:"raw,omitempty"`
	FormEntry []FormEntry  `json:"formEntries,omitempty"` // form-urlencoded and form-data
}

// GraphQLBody holds a GraphQL query and its variables. Placeholders are
// resolved in the query text only, never inside the variables.
type GraphQLBody struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// FormEntry is one form field. IsFile marks upload entries for form-data
// bodies; those are never encoded (multipart handling is out of scope).
type FormEntry struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	IsFile bool   `json:"isFile,omitempty"`
}
