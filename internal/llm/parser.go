package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"regexp"
)

// ErrNoJSON is reported when the completion has no fenced JSON object.
var ErrNoJSON = errors.New("No valid JSON found in the response")

// fencedObject matches the first ``` block labelled json, JSON or nothing that
// wraps a {...} object. The object match is non-greedy so a later fence is
// never swallowed.
var fencedObject = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*(\\{.*?\\})\\s*```")

// Kind tags the outcome of parsing a model completion.
type Kind int

const (
	Parsed Kind = iota
	NoMatch
	InvalidJSON
)

func (k Kind) String() string {
	switch k {
	case Parsed:
		return "parsed"
	case NoMatch:
		return "no_match"
	case InvalidJSON:
		return "invalid_json"
	default:
		return "unknown"
	}
}

// Result is the outcome of ParseResponse. For Parsed, JSON holds the object
// exactly as the model wrote it (compacted). Otherwise Err says why.
type Result struct {
	Kind Kind
	JSON json.RawMessage
	Err  error
}

// ParseResponse finds the first fenced JSON object in a completion and
// validates it. Field names and types are not checked.
func ParseResponse(completion string) Result {
	m := fencedObject.FindStringSubmatch(completion)
	if m == nil {
		return Result{Kind: NoMatch, Err: ErrNoJSON}
	}

	// Bodies are served as UTF-8; stray bytes from the model become U+FFFD.
	raw := bytes.ToValidUTF8([]byte(m[1]), []byte("\uFFFD"))
	var probe any
	if err := json.Unmarshal(raw, &probe); err != nil {
		return Result{Kind: InvalidJSON, Err: err}
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return Result{Kind: InvalidJSON, Err: err}
	}
	return Result{Kind: Parsed, JSON: buf.Bytes()}
}

// Message is the caller-visible error text, empty for Parsed results.
func (r Result) Message() string {
	switch r.Kind {
	case Parsed:
		return ""
	case InvalidJSON:
		return "JSONDecodeError: " + r.Err.Error()
	default:
		return ErrNoJSON.Error()
	}
}

// Body renders the result as the JSON document returned to clients: the parsed
// object itself, or {"error": "..."}.
func (r Result) Body() []byte {
	if r.Kind == Parsed {
		return r.JSON
	}
	body, _ := json.Marshal(map[string]string{"error": r.Message()})
	return body
}

// Receipt decodes the parsed object into the requested item list. ok is false
// when the result is not Parsed or the object does not fit the shape.
func (r Result) Receipt() (Receipt, bool) {
	var rec Receipt
	if r.Kind != Parsed {
		return rec, false
	}
	if err := json.Unmarshal(r.JSON, &rec); err != nil {
		return Receipt{}, false
	}
	return rec, true
}
