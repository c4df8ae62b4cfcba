// Copyright (c) 2025 Team 4206 and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package document

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJson_Parse(t *testing.T) {
	t.Run("will parse", func(t *testing.T) {
		r := strings.NewReader(`{
	"name": "swerve",
	"wheels": 4,
	"ratio": 6.75,
	"big": 1e3,
	"enabled": false,
	"skipped": null,
	"modules": [
		{"offset": 0.25},
		{"offset": -0.5}
	],
	"ids": [1, 2, 3],
	"empty": []
}`)

		tbl, err := FromJson(r).Parse()
		require.NoError(t, err)

		assert.Equal(t, []string{"name", "wheels", "ratio", "big", "enabled", "modules", "ids", "empty"}, tbl.Keys())

		wheels, err := tbl.Integer("wheels")
		require.NoError(t, err)
		assert.Equal(t, int64(4), wheels)

		big, err := tbl.Float("big")
		require.NoError(t, err)
		assert.Equal(t, 1000.0, big)

		enabled, err := tbl.Bool("enabled")
		require.NoError(t, err)
		assert.False(t, enabled)

		modules, err := tbl.Array("modules")
		require.NoError(t, err)
		require.Equal(t, 2, modules.Len())

		ids, err := tbl.Array("ids")
		require.NoError(t, err)
		assert.Equal(t, Array{Integer(1), Integer(2), Integer(3)}, ids)

		empty, err := tbl.Array("empty")
		require.NoError(t, err)
		assert.Equal(t, 0, empty.Len())
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the underlying io.Reader fails", func(t *testing.T) {
			readErr := errors.New("failed to read")
			r := readFunc(func(b []byte) (int, error) {
				return 0, readErr
			})

			_, err := FromJson(r).Parse()
			assert.ErrorIs(t, err, readErr)
		})

		testCases := []struct {
			Name string
			Doc  string
		}{
			{Name: "if the document is empty", Doc: ``},
			{Name: "if the document is not valid JSON", Doc: `{"a": }`},
			{Name: "if the top-level value is not an object", Doc: `[1, 2]`},
			{Name: "if an array contains null", Doc: `{"a": [1, null]}`},
			{Name: "if a key is duplicated", Doc: `{"a": 1, "a": 2}`},
			{Name: "if there is data after the object", Doc: `{"a": 1} {"b": 2}`},
		}

		for _, testCase := range testCases {
			t.Run(testCase.Name, func(t *testing.T) {
				_, err := FromJson(strings.NewReader(testCase.Doc)).Parse()

				var serr *SyntaxError
				require.ErrorAs(t, err, &serr)
				assert.Len(t, serr.Messages, 1)
			})
		}
	})
}
