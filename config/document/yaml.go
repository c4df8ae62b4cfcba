// Copyright (c) 2025 Team 4206 and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/frc4206/battleaid/internal/try"

	"gopkg.in/yaml.v3"
)

// Yaml represents a Source where its underlying format is YAML.
type Yaml struct {
	r io.Reader
}

// FromYaml returns a source which will parse its table
// from YAML values read from the given io.Reader.
func FromYaml(r io.Reader) Yaml {
	return Yaml{r: r}
}

// Parse implements the Source interface. Only the first document
// of a multi-document stream is read.
func (src Yaml) Parse() (*Table, error) {
	b, err := try.ReadAll(src.r)
	if err != nil {
		return nil, err
	}

	var root yaml.Node
	err = yaml.NewDecoder(bytes.NewReader(b)).Decode(&root)
	if errors.Is(err, io.EOF) {
		return NewTable(), nil
	}
	if err != nil {
		return nil, yamlSyntaxError(err)
	}

	node := &root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return NewTable(), nil
		}
		node = node.Content[0]
	}
	node = resolveAlias(node)
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		return NewTable(), nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, yamlIssue(node, "top-level value must be a mapping")
	}

	var issues []string
	t := yamlTable(node, &issues)
	if len(issues) > 0 {
		return nil, &SyntaxError{Messages: issues}
	}
	return t, nil
}

func yamlSyntaxError(err error) *SyntaxError {
	var terr *yaml.TypeError
	if errors.As(err, &terr) {
		return &SyntaxError{Messages: terr.Errors, Cause: err}
	}
	return &SyntaxError{Messages: []string{err.Error()}, Cause: err}
}

func yamlIssue(n *yaml.Node, msg string) *SyntaxError {
	return &SyntaxError{Messages: []string{yamlMessage(n, msg)}}
}

func yamlMessage(n *yaml.Node, msg string) string {
	return fmt.Sprintf("line %d, column %d: %s", n.Line, n.Column, msg)
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// yamlTable collects every issue rather than stopping at the first so
// they can all be reported together. Keys set explicitly in n take
// precedence over keys brought in by a merge key.
func yamlTable(n *yaml.Node, issues *[]string) *Table {
	explicit := make(map[string]bool)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := resolveAlias(n.Content[i])
		if k.Kind == yaml.ScalarNode && k.ShortTag() == "!!str" {
			explicit[k.Value] = true
		}
	}

	t := NewTable()
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := resolveAlias(n.Content[i])
		v := resolveAlias(n.Content[i+1])
		if k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge" {
			yamlMerge(t, v, explicit, issues)
			continue
		}
		if k.Kind != yaml.ScalarNode || k.ShortTag() != "!!str" {
			*issues = append(*issues, yamlMessage(k, "mapping keys must be strings"))
			continue
		}
		if v.Kind == yaml.ScalarNode && v.ShortTag() == "!!null" {
			continue
		}
		if t.Contains(k.Value) {
			*issues = append(*issues, yamlMessage(k, fmt.Sprintf("duplicate key %q", k.Value)))
			continue
		}
		val := yamlValue(v, issues)
		if val == nil {
			continue
		}
		t.Set(k.Value, val)
	}
	return t
}

// yamlMerge adds the entries of a merged mapping, or of each mapping in
// a merged sequence, to t. Earlier mappings in a sequence take
// precedence over later ones.
func yamlMerge(t *Table, v *yaml.Node, explicit map[string]bool, issues *[]string) {
	var sources []*yaml.Node
	switch v.Kind {
	case yaml.MappingNode:
		sources = []*yaml.Node{v}
	case yaml.SequenceNode:
		for _, el := range v.Content {
			sources = append(sources, resolveAlias(el))
		}
	default:
		*issues = append(*issues, yamlMessage(v, "merge value must be a mapping or a sequence of mappings"))
		return
	}

	for _, src := range sources {
		if src.Kind != yaml.MappingNode {
			*issues = append(*issues, yamlMessage(src, "merge value must be a mapping or a sequence of mappings"))
			continue
		}
		merged := yamlTable(src, issues)
		for _, k := range merged.Keys() {
			if explicit[k] || t.Contains(k) {
				continue
			}
			val, _ := merged.Get(k)
			t.Set(k, val)
		}
	}
}
func yamlValue(n *yaml.Node, issues *[]string) Value {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.MappingNode:
		return yamlTable(n, issues)
	case yaml.SequenceNode:
		arr := make(Array, 0, len(n.Content))
		for _, el := range n.Content {
			v := yamlValue(el, issues)
			if v == nil {
				continue
			}
			arr = append(arr, v)
		}
		return arr
	case yaml.ScalarNode:
		return yamlScalar(n, issues)
	}
	*issues = append(*issues, yamlMessage(n, "unsupported yaml node"))
	return nil
}

func yamlScalar(n *yaml.Node, issues *[]string) Value {
	switch n.ShortTag() {
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			*issues = append(*issues, yamlMessage(n, err.Error()))
			return nil
		}
		return Integer(i)
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			*issues = append(*issues, yamlMessage(n, err.Error()))
			return nil
		}
		return Float(f)
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			*issues = append(*issues, yamlMessage(n, err.Error()))
			return nil
		}
		return Bool(b)
	case "!!str", "!!timestamp":
		return String(n.Value)
	case "!!null":
		*issues = append(*issues, yamlMessage(n, "null is not a supported array element"))
		return nil
	}
	*issues = append(*issues, yamlMessage(n, fmt.Sprintf("unsupported scalar tag %s", n.ShortTag())))
	return nil
}
