package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid    = errors.New("schema invalid")
	ErrSchemaValidation = errors.New("schema validation failed")
)

// ValidationIssue captures a single validation failure.
type ValidationIssue struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

// PayloadValidationError surfaces validation issues with location context.
type PayloadValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *PayloadValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *PayloadValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues extracts validation issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var payloadErr *PayloadValidationError
	if errors.As(err, &payloadErr) && payloadErr != nil {
		return payloadErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	if issues := fieldIssues(err); len(issues) > 0 {
		return issues
	}
	return []ValidationIssue{{Message: err.Error()}}
}

// SchemaSet holds named JSON schemas compiled on first use.
type SchemaSet struct {
	mu       sync.Mutex
	sources  map[string][]byte
	compiled map[string]*jsonschema.Schema
}

// NewSchemaSet registers raw schema documents by name.
func NewSchemaSet(sources map[string][]byte) *SchemaSet {
	copied := make(map[string][]byte, len(sources))
	for name, raw := range sources {
		copied[strings.TrimSpace(name)] = raw
	}
	return &SchemaSet{
		sources:  copied,
		compiled: make(map[string]*jsonschema.Schema, len(sources)),
	}
}

// Names lists the registered schema names in sorted order.
func (s *SchemaSet) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.sources))
	for name := range s.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a schema is registered under name.
func (s *SchemaSet) Has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.sources[name]
	return ok
}

// Compile compiles every registered schema and reports the first failure.
func (s *SchemaSet) Compile() error {
	for _, name := range s.Names() {
		if _, err := s.schema(name); err != nil {
			return err
		}
	}
	return nil
}

// ValidateJSON validates an encoded document against the named schema.
// Unknown names pass.
func (s *SchemaSet) ValidateJSON(name, document string) error {
	if !s.Has(name) {
		return nil
	}
	var payload any
	if err := json.Unmarshal([]byte(document), &payload); err != nil {
		return &PayloadValidationError{
			Issues: []ValidationIssue{{Message: "payload is not valid JSON"}},
			Cause:  err,
		}
	}
	return s.Validate(name, payload)
}

// Validate validates a decoded payload against the named schema.
func (s *SchemaSet) Validate(name string, payload any) error {
	if !s.Has(name) {
		return nil
	}
	compiled, err := s.schema(name)
	if err != nil {
		return err
	}
	if err := compiled.Validate(payload); err != nil {
		return &PayloadValidationError{
			Issues: Issues(err),
			Cause:  err,
		}
	}
	return nil
}

func (s *SchemaSet) schema(name string) (*jsonschema.Schema, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if compiled, ok := s.compiled[name]; ok {
		return compiled, nil
	}
	compiled, err := compileSchema(name, s.sources[name])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSchemaInvalid, name, err)
	}
	s.compiled[name] = compiled
	return compiled, nil
}

func compileSchema(name string, raw []byte) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	resource := name + ".json"
	if err := compiler.AddResource(resource, bytes.NewReader(raw)); err != nil {
		return nil, err
	}
	return compiler.Compile(resource)
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
