package executor

import (
	"encoding/json"
	"net/url"

	"github.com/surge-http/surge/pkg/model"
	"github.com/surge-http/surge/pkg/vars"
)

// Encoded is the wire form of a request body plus an optional default
// content type. The hint applies only when no Content-Type header was set
// explicitly on the request.
type Encoded struct {
	Payload         []byte
	ContentTypeHint string
}

// methodCarriesBody reports whether the method conventionally carries a
// payload. The encoder is not invoked for any other method, even when a body
// is configured.
func methodCarriesBody(method string) bool {
	switch method {
	case "POST", "PUT", "PATCH":
		return true
	}
	return false
}

// EncodeBody produces the wire payload for the given body variant with
// placeholders resolved against v. A nil body yields a zero Encoded.
func EncodeBody(body *model.Body, v map[string]string) Encoded {
	if body == nil {
		return Encoded{}
	}

	switch body.Type {
	case model.BodyJSON:
		// Resolve inside the serialized text first, then normalize
		// through a parse/re-marshal round trip. Text that still is
		// not valid JSON after resolution passes through unchanged;
		// the server gets to reject it.
		resolved := vars.Resolve(body.JSON, v)
		var parsed interface{}
		if err := json.Unmarshal([]byte(resolved), &parsed); err != nil {
			return Encoded{Payload: []byte(resolved), ContentTypeHint: "application/json"}
		}
		data, err := json.Marshal(parsed)
		if err != nil {
			return Encoded{Payload: []byte(resolved), ContentTypeHint: "application/json"}
		}
		return Encoded{Payload: data, ContentTypeHint: "application/json"}

	case model.BodyGraphQL:
		if body.GraphQL == nil {
			return Encoded{}
		}
		// Placeholders are resolved in the query text only, never
		// inside the variables.
		payload := map[string]interface{}{
			"query": vars.Resolve(body.GraphQL.Query, v),
		}
		if body.GraphQL.Variables != nil {
			payload["variables"] = body.GraphQL.Variables
		}
		data, _ := json.Marshal(payload)
		return Encoded{Payload: data, ContentTypeHint: "application/json"}

	case model.BodyRaw:
		return Encoded{Payload: []byte(vars.Resolve(body.Raw, v))}

	case model.BodyFormURLEncoded:
		values := url.Values{}
		for _, entry := range body.FormEntry {
			values.Add(entry.Key, vars.Resolve(entry.Value, v))
		}
		return Encoded{
			Payload:         []byte(values.Encode()),
			ContentTypeHint: "application/x-www-form-urlencoded",
		}

	case model.BodyFormData:
		// Multipart encoding is out of scope; entries are carried in
		// the document but produce no payload.
		return Encoded{}
	}

	return Encoded{}
}
