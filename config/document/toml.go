// Copyright (c) 2025 Team 4206 and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package document

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/frc4206/battleaid/internal/try"

	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
)

// Toml represents a Source where its underlying format is TOML.
type Toml struct {
	r io.Reader
}

// FromToml returns a source which will parse its table
// from TOML values read from the given io.Reader.
func FromToml(r io.Reader) Toml {
	return Toml{r: r}
}

// Parse implements the Source interface.
func (src Toml) Parse() (*Table, error) {
	b, err := try.ReadAll(src.r)
	if err != nil {
		return nil, err
	}

	m := make(map[string]any)
	err = toml.Unmarshal(b, &m)
	if err != nil {
		return nil, tomlSyntaxError(err)
	}
	return tomlTable(m, "", tomlKeyOrder(b)), nil
}

func tomlSyntaxError(err error) *SyntaxError {
	var derr *toml.DecodeError
	if !errors.As(err, &derr) {
		return &SyntaxError{Messages: []string{err.Error()}, Cause: err}
	}
	row, col := derr.Position()
	return &SyntaxError{
		Messages: []string{fmt.Sprintf("line %d, column %d: %s", row, col, derr.Error())},
		Cause:    err,
	}
}

// tomlKeyOrder maps every dotted key path in b to the position it
// first appears at. Elements of an array share their array's path.
func tomlKeyOrder(b []byte) map[string]int {
	order := make(map[string]int)
	seen := func(path string) {
		if _, ok := order[path]; !ok {
			order[path] = len(order)
		}
	}

	var p unstable.Parser
	p.Reset(b)
	var current string
	for p.NextExpression() {
		e := p.Expression()
		switch e.Kind {
		case unstable.Table, unstable.ArrayTable:
			current = tomlKeyPath("", e.Key(), seen)
		case unstable.KeyValue:
			tomlKeyValueOrder(current, e, seen)
		}
	}
	return order
}

func tomlKeyValueOrder(prefix string, kv *unstable.Node, seen func(string)) {
	path := tomlKeyPath(prefix, kv.Key(), seen)
	tomlNodeOrder(path, kv.Value(), seen)
}

func tomlNodeOrder(path string, n *unstable.Node, seen func(string)) {
	switch n.Kind {
	case unstable.InlineTable:
		it := n.Children()
		for it.Next() {
			tomlKeyValueOrder(path, it.Node(), seen)
		}
	case unstable.Array:
		it := n.Children()
		for it.Next() {
			tomlNodeOrder(path, it.Node(), seen)
		}
	}
}

func tomlKeyPath(prefix string, key unstable.Iterator, seen func(string)) string {
	path := prefix
	for key.Next() {
		path = joinTomlPath(path, string(key.Node().Data))
		seen(path)
	}
	return path
}

func joinTomlPath(prefix, k string) string {
	if prefix == "" {
		return k
	}
	return prefix + "\x00" + k
}

// tomlTable sets keys in the order they appear in the source. go-toml
// decodes into a map, so keys missing from order fall back to lexical.
func tomlTable(m map[string]any, path string, order map[string]int) *Table {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	rank := func(k string) int {
		if i, ok := order[joinTomlPath(path, k)]; ok {
			return i
		}
		return len(order)
	}
	slices.SortFunc(keys, func(a, b string) int {
		return cmp.Or(cmp.Compare(rank(a), rank(b)), strings.Compare(a, b))
	})

	t := NewTable()
	for _, k := range keys {
		t.Set(k, tomlValue(m[k], joinTomlPath(path, k), order))
	}
	return t
}

func tomlValue(v any, path string, order map[string]int) Value {
	switch x := v.(type) {
	case map[string]any:
		return tomlTable(x, path, order)
	case []any:
		arr := make(Array, len(x))
		for i, el := range x {
			arr[i] = tomlValue(el, path, order)
		}
		return arr
	case int64:
		return Integer(x)
	case float64:
		return Float(x)
	case bool:
		return Bool(x)
	case string:
		return String(x)
	case time.Time:
		return String(x.Format(time.RFC3339Nano))
	case fmt.Stringer:
		// toml.LocalDate, toml.LocalTime and toml.LocalDateTime
		return String(x.String())
	default:
		return String(fmt.Sprint(x))
	}
}
