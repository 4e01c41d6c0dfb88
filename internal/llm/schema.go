package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a JSON Schema a reply must satisfy. It compiles itself on
// first use; share it by pointer.
type Schema struct {
	// Name is a kebab-case identifier such as "answer-explanation".
	Name        string
	Description string
	Definition  map[string]any

	once     sync.Once
	compiled *jsonschema.Schema
	err      error
}

func (s *Schema) compile() (*jsonschema.Schema, error) {
	s.once.Do(func() {
		raw, err := json.Marshal(s.Definition)
		if err != nil {
			s.err = fmt.Errorf("marshal schema %s: %w", s.Name, err)
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			s.err = fmt.Errorf("parse schema %s: %w", s.Name, err)
			return
		}
		url := "schema://" + s.Name + ".json"
		c := jsonschema.NewCompiler()
		if err := c.AddResource(url, doc); err != nil {
			s.err = fmt.Errorf("add schema %s: %w", s.Name, err)
			return
		}
		s.compiled, s.err = c.Compile(url)
	})
	return s.compiled, s.err
}

// Check validates content against the schema. A reply that is not JSON
// or does not match yields a Malformed *Error; a schema that does not
// compile is returned as a plain error.
func (s *Schema) Check(backend string, content json.RawMessage) error {
	compiled, err := s.compile()
	if err != nil {
		return err
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(content))
	if err != nil {
		return &Error{Kind: Malformed, Backend: backend, Err: fmt.Errorf("reply is not JSON: %w", err)}
	}
	if err := compiled.Validate(doc); err != nil {
		return &Error{Kind: Malformed, Backend: backend, Err: err}
	}
	return nil
}

// finish applies the checks every backend runs on a raw reply.
func finish(backend string, req Request, text string, truncated bool) (json.RawMessage, error) {
	if truncated {
		return nil, &Error{Kind: Truncated, Backend: backend}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &Error{Kind: Malformed, Backend: backend, Err: fmt.Errorf("empty reply")}
	}
	content := json.RawMessage(text)
	if req.Schema != nil {
		if err := req.Schema.Check(backend, content); err != nil {
			return nil, err
		}
	}
	return content, nil
}
