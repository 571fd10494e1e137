package translation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed translate_response.schema.json
var responseSchemaJSON string

var (
	compileOnce       sync.Once
	compiledSchema    *jsonschema.Schema
	compiledSchemaErr error
)

// decodeResult validates body against the /translate contract and decodes it.
// Every failure is a *ProtocolError.
func decodeResult(body []byte) (*Result, error) {
	value, err := decodeStrictJSON(body)
	if err != nil {
		return nil, &ProtocolError{Field: "body", Reason: err.Error()}
	}

	schema, err := loadSchema()
	if err != nil {
		return nil, fmt.Errorf("load response schema: %w", err)
	}

	if err := schema.Validate(value); err != nil {
		return nil, schemaProtocolError(err)
	}

	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &ProtocolError{Field: "body", Reason: err.Error()}
	}
	return &result, nil
}

func loadSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020

		if err := compiler.AddResource("translate_response.schema.json", strings.NewReader(responseSchemaJSON)); err != nil {
			compiledSchemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}

		schema, err := compiler.Compile("translate_response.schema.json")
		if err != nil {
			compiledSchemaErr = fmt.Errorf("compile schema: %w", err)
			return
		}

		compiledSchema = schema
	})

	if compiledSchemaErr != nil {
		return nil, compiledSchemaErr
	}
	if compiledSchema == nil {
		return nil, fmt.Errorf("schema not initialized")
	}
	return compiledSchema, nil
}

func decodeStrictJSON(raw []byte) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("response is empty")
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}

	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("response contains trailing content")
	}
	return value, nil
}

// schemaProtocolError reduces a schema validation failure to the first
// offending field.
func schemaProtocolError(err error) *ProtocolError {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return &ProtocolError{Field: "body", Reason: err.Error()}
	}

	leaf := validationErr
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}

	field := strings.TrimPrefix(leaf.InstanceLocation, "/")
	if idx := strings.Index(field, "/"); idx >= 0 {
		field = field[:idx]
	}
	if field == "" {
		field = missingProperty(leaf.Message)
	}
	if field == "" {
		field = "body"
	}
	return &ProtocolError{Field: field, Reason: leaf.Message}
}

// missingProperty extracts the first name from a "missing properties: 'a', 'b'" message.
func missingProperty(message string) string {
	const prefix = "missing properties:"
	idx := strings.Index(message, prefix)
	if idx < 0 {
		return ""
	}
	names := strings.Split(message[idx+len(prefix):], ",")
	return strings.Trim(strings.TrimSpace(names[0]), `'"`)
}
