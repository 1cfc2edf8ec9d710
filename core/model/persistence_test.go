package model

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/carprice/pkg/errors"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	tests := []Thetas{
		{Theta0: 0, Theta1: 0},
		{Theta0: 8499.599649933216, Theta1: -0.021448963591702394},
		{Theta0: -1e-300, Theta1: 1e300},
		{Theta0: math.SmallestNonzeroFloat64, Theta1: math.MaxFloat64},
		{Theta0: 0.1 + 0.2, Theta1: 1.0 / 3.0},
	}

	dir := t.TempDir()
	for i, want := range tests {
		path := filepath.Join(dir, "thetas.json")
		require.NoError(t, Save(path, want), "case %d", i)

		got, err := LoadStrict(path)
		require.NoError(t, err)
		assert.Equal(t, want, got, "case %d", i)
		assert.Equal(t, want, Load(path), "case %d", i)
	}
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thetas.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theta0": 1, "theta1": 2, "padding": "xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx"}`), 0o644))

	require.NoError(t, Save(path, Thetas{Theta0: 5, Theta1: 6}))

	assert.Equal(t, Thetas{Theta0: 5, Theta1: 6}, Load(path))
}

func TestSaveWritesFieldNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SaveToWriter(&buf, Thetas{Theta0: 1.5, Theta1: -2}))
	assert.JSONEq(t, `{"theta0": 1.5, "theta1": -2}`, buf.String())
}

func TestSaveRejectsNonFinite(t *testing.T) {
	var buf bytes.Buffer
	err := SaveToWriter(&buf, Thetas{Theta0: math.NaN()})

	var numErr *errors.NumericalInstabilityError
	assert.True(t, errors.As(err, &numErr))
	assert.Zero(t, buf.Len())
}

func TestLoadDegradesToZero(t *testing.T) {
	var warnings []error
	errors.SetWarningHandler(func(w error) { warnings = append(warnings, w) })
	t.Cleanup(errors.ResetWarningHandler)

	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	tests := []struct {
		name string
		path string
	}{
		{name: "missing file", path: filepath.Join(dir, "does-not-exist.json")},
		{name: "empty file", path: write("empty.json", "")},
		{name: "corrupted json", path: write("corrupt.json", `{"theta0": 1.0, "theta1": `)},
		{name: "not an object", path: write("array.json", `[1, 2]`)},
		{name: "missing theta1", path: write("partial.json", `{"theta0": 3.5}`)},
		{name: "missing theta0", path: write("partial0.json", `{"theta1": 3.5}`)},
		{name: "null fields", path: write("null.json", `{"theta0": null, "theta1": null}`)},
		{name: "string field", path: write("string.json", `{"theta0": "1", "theta1": 2}`)},
		{name: "trailing garbage", path: write("trailing.json", `{"theta0": 8000, "theta1": -0.02} corrupted}}`)},
		{name: "two objects", path: write("twice.json", `{"theta0": 1, "theta1": 2}{"theta0": 3, "theta1": 4}`)},
		{name: "directory", path: dir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings = nil
			got := Load(tt.path)
			assert.Equal(t, Thetas{}, got)
			require.Len(t, warnings, 1)

			var w *errors.ParameterFileWarning
			require.True(t, errors.As(warnings[0], &w))
			assert.Equal(t, tt.path, w.Path)

			_, err := LoadStrict(tt.path)
			assert.Error(t, err)
		})
	}
}
