package a2ui

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/server_to_client.json
var serverToClientSchema []byte

const schemaURL = "https://a2ui.org/schemas/v0.8/server_to_client.json"

// Validator checks server-to-client messages against the A2UI v0.8 message
// schema. The schema constrains message structure and the catalog kinds it
// knows; unknown component kinds pass. A Validator is safe for concurrent use.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles the embedded message schema.
func NewValidator() (*Validator, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(schemaURL, bytes.NewReader(serverToClientSchema)); err != nil {
		return nil, fmt.Errorf("failed to add A2UI schema: %w", err)
	}
	schema, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile A2UI schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// Validate checks one raw message.
func (v *Validator) Validate(raw json.RawMessage) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := v.schema.Validate(doc); err != nil {
		return fmt.Errorf("A2UI schema violation: %w", err)
	}
	return nil
}

// ValidateMessages encodes and checks each message, stopping at the first
// violation.
func (v *Validator) ValidateMessages(msgs []Message) error {
	for i, m := range msgs {
		raw, err := Encode(m)
		if err != nil {
			return fmt.Errorf("message %d: %w", i, err)
		}
		if err := v.Validate(raw); err != nil {
			return fmt.Errorf("message %d (%s): %w", i, m.Key(), err)
		}
	}
	return nil
}
