package models

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed mission.schema.json
var missionSchemaJSON string

const missionSchemaURL = "mission.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func missionSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(missionSchemaURL, strings.NewReader(missionSchemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile(missionSchemaURL)
	})
	return schema, schemaErr
}

// EncodeJSON serializes the tree below root in its portable form.
func EncodeJSON(root *Mission) ([]byte, error) {
	data, err := json.MarshalIndent(ToPortable(root), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal mission: %w", err)
	}
	return append(data, '\n'), nil
}

// DecodeJSON parses a portable tree. The document must describe a root
// mission and satisfy the mission schema.
func DecodeJSON(data []byte) (*Mission, error) {
	s, err := missionSchema()
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse mission json: %v: %w", err, ErrMalformed)
	}
	if err := s.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate mission json: %v: %w", err, ErrMalformed)
	}

	var p Portable
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode mission json: %v: %w", err, ErrMalformed)
	}
	if p.Kind != KindRoot.String() {
		return nil, fmt.Errorf("top-level mission %s has kind %q: %w", p.ID, p.Kind, ErrMalformed)
	}
	return FromPortable(&p, nil)
}
