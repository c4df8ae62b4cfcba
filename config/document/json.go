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
	"strconv"
	"strings"

	"github.com/frc4206/battleaid/internal/try"

	json "github.com/goccy/go-json"
)

// Json represents a Source where its underlying format is JSON.
type Json struct {
	r io.Reader
}

// FromJson returns a source which will parse its table
// from JSON values read from the given io.Reader.
func FromJson(r io.Reader) Json {
	return Json{r: r}
}

var errTopLevelObject = errors.New("top-level value must be an object")

// Parse implements the Source interface.
func (src Json) Parse() (*Table, error) {
	b, err := try.ReadAll(src.r)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, jsonSyntaxError(err)
	}
	if tok != json.Delim('{') {
		return nil, jsonSyntaxError(errTopLevelObject)
	}

	t, err := jsonObject(dec)
	if err != nil {
		return nil, jsonSyntaxError(err)
	}

	_, err = dec.Token()
	if errors.Is(err, io.EOF) {
		return t, nil
	}
	if err != nil {
		return nil, jsonSyntaxError(err)
	}
	return nil, jsonSyntaxError(errors.New("unexpected data after top-level object"))
}

func jsonSyntaxError(err error) *SyntaxError {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	var serr *json.SyntaxError
	if errors.As(err, &serr) {
		return &SyntaxError{
			Messages: []string{fmt.Sprintf("offset %d: %s", serr.Offset, serr.Error())},
			Cause:    err,
		}
	}
	return &SyntaxError{Messages: []string{err.Error()}, Cause: err}
}

// jsonObject expects the opening brace to already be consumed.
func jsonObject(dec *json.Decoder) (*Table, error) {
	t := NewTable()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		k, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key but found %v", tok)
		}
		if t.Contains(k) {
			return nil, fmt.Errorf("duplicate key %q", k)
		}

		tok, err = dec.Token()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			// null members are treated as absent
			continue
		}
		v, err := jsonValue(dec, tok)
		if err != nil {
			return nil, err
		}
		t.Set(k, v)
	}
	_, err := dec.Token()
	return t, err
}

func jsonArray(dec *json.Decoder) (Array, error) {
	arr := Array{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			return nil, errors.New("null is not a supported array element")
		}
		v, err := jsonValue(dec, tok)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
	_, err := dec.Token()
	return arr, err
}

func jsonValue(dec *json.Decoder, tok json.Token) (Value, error) {
	switch x := tok.(type) {
	case json.Delim:
		switch x {
		case '{':
			return jsonObject(dec)
		case '[':
			return jsonArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %s", x)
	case string:
		return String(x), nil
	case bool:
		return Bool(x), nil
	case json.Number:
		return jsonNumber(string(x))
	case float64:
		return Float(x), nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func jsonNumber(s string) (Value, error) {
	if strings.ContainsAny(s, ".eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		return Float(f), nil
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}
	return Integer(i), nil
}
