// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package schema validates papers and snapshot documents against embedded
// JSON Schemas.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/pdiddy/paper-digest/pkg/types"
)

//go:embed paper.schema.json
var paperSchemaJSON string

//go:embed snapshot.schema.json
var snapshotSchemaJSON string

const (
	paperResource    = "paper.schema.json"
	snapshotResource = "snapshot.schema.json"
)

var (
	compileOnce sync.Once
	paperSchema *jsonschema.Schema
	snapSchema  *jsonschema.Schema
	compileErr  error
)

func load() error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		compiler.AssertFormat = true

		if err := compiler.AddResource(paperResource, strings.NewReader(paperSchemaJSON)); err != nil {
			compileErr = fmt.Errorf("add paper schema: %w", err)
			return
		}
		if err := compiler.AddResource(snapshotResource, strings.NewReader(snapshotSchemaJSON)); err != nil {
			compileErr = fmt.Errorf("add snapshot schema: %w", err)
			return
		}

		var err error
		if paperSchema, err = compiler.Compile(paperResource); err != nil {
			compileErr = fmt.Errorf("compile paper schema: %w", err)
			return
		}
		if snapSchema, err = compiler.Compile(snapshotResource); err != nil {
			compileErr = fmt.Errorf("compile snapshot schema: %w", err)
			return
		}
	})
	return compileErr
}

// ValidatePaper checks a normalized paper.
func ValidatePaper(p types.Paper) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode paper: %w", err)
	}
	if err := load(); err != nil {
		return fmt.Errorf("load schema: %w", err)
	}
	return validate(paperSchema, raw)
}

// ValidateSnapshot checks a snapshot document before it is decoded.
func ValidateSnapshot(raw []byte) error {
	if err := load(); err != nil {
		return fmt.Errorf("load schema: %w", err)
	}
	return validate(snapSchema, raw)
}

func validate(s *jsonschema.Schema, raw []byte) error {
	value, err := decodeStrictJSON(raw)
	if err != nil {
		return fmt.Errorf("decode JSON: %w", err)
	}
	if err := s.Validate(value); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func decodeStrictJSON(raw []byte) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("document is empty")
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("document contains trailing content")
	}
	return value, nil
}
