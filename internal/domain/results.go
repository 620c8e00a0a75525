package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Results maps result keys to their content and remembers the order the
// keys were declared in. Winner ties are broken by that order, so every
// codec below preserves it.
type Results struct {
	keys  []string
	byKey map[string]Result
}

// ResultEntry pairs a key with its result for NewResults.
type ResultEntry struct {
	Key string
	Result
}

// NewResults builds Results in the order given. Later duplicates replace
// the content of the first declaration without moving it.
func NewResults(entries ...ResultEntry) Results {
	var r Results
	for _, e := range entries {
		r.Set(e.Key, e.Result)
	}
	return r
}

// Len returns the number of declared results.
func (r Results) Len() int {
	return len(r.keys)
}

// Keys returns the declared keys in declaration order.
func (r Results) Keys() []string {
	return append([]string(nil), r.keys...)
}

func (r Results) Get(key string) (Result, bool) {
	res, ok := r.byKey[key]
	return res, ok
}

func (r Results) Has(key string) bool {
	_, ok := r.byKey[key]
	return ok
}

// Set declares key (appending it if new) and stores its content.
func (r *Results) Set(key string, res Result) {
	if r.byKey == nil {
		r.byKey = make(map[string]Result)
	}
	if _, ok := r.byKey[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.byKey[key] = res
}

func (r Results) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.byKey[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *Results) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*r = Results{}
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("results: expected an object, got %v", tok)
	}

	var out Results
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		if out.Has(key) {
			return fmt.Errorf("results: duplicate key %q", key)
		}
		var res Result
		if err := dec.Decode(&res); err != nil {
			return fmt.Errorf("results: %q: %w", key, err)
		}
		out.Set(key, res)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*r = out
	return nil
}

func (r *Results) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*r = Results{}
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("results: line %d: expected a mapping", node.Line)
	}

	var out Results
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		key := keyNode.Value
		if out.Has(key) {
			return fmt.Errorf("results: line %d: duplicate key %q", keyNode.Line, key)
		}
		var res Result
		if err := valueNode.Decode(&res); err != nil {
			return fmt.Errorf("results: %q: %w", key, err)
		}
		out.Set(key, res)
	}
	*r = out
	return nil
}

func (r Results) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range r.keys {
		value := &yaml.Node{}
		if err := value.Encode(r.byKey[key]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			value,
		)
	}
	return node, nil
}
