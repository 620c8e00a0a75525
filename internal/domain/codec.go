package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the encoding of a quiz document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromExt maps a file extension (with or without the dot) to a Format.
func FormatFromExt(ext string) (Format, bool) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "json":
		return FormatJSON, true
	case "yaml", "yml":
		return FormatYAML, true
	}
	return "", false
}

// ParseDefinition decodes a quiz document. Structural problems are reported
// here; playability is checked separately by CheckPlayable.
func ParseDefinition(data []byte, format Format) (QuizDefinition, error) {
	var def QuizDefinition
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &def); err != nil {
			return QuizDefinition{}, fmt.Errorf("parse quiz json: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&def); err != nil {
			return QuizDefinition{}, fmt.Errorf("parse quiz yaml: %w", err)
		}
	default:
		return QuizDefinition{}, fmt.Errorf("unsupported quiz format %q", format)
	}
	for qi := range def.Questions {
		for ai := range def.Questions[qi].Answers {
			if def.Questions[qi].Answers[ai].Points == nil {
				def.Questions[qi].Answers[ai].Points = map[string]int{}
			}
		}
	}
	return def, nil
}

// EncodeJSON writes the canonical document form: two-space indentation,
// results in declaration order.
func EncodeJSON(def QuizDefinition) ([]byte, error) {
	data, err := json.MarshalIndent(def, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode quiz: %w", err)
	}
	return append(data, '\n'), nil
}
