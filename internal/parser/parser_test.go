package parser

import (
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/mcncl/jsonalchemy/internal/errors"
	"github.com/mcncl/jsonalchemy/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewriteFloatLiterals(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "integral float", input: `{"a": 3.0}`, expected: `{"a": 3.1}`},
		{name: "every occurrence", input: `[1.0, 2.0]`, expected: `[1.1, 2.1]`},
		{name: "non overlapping runs", input: `1.00`, expected: `1.10`},
		{name: "string contents are rewritten too", input: `{"note": "version 1.0 released"}`, expected: `{"note": "version 1.1 released"}`},
		{name: "keys are rewritten too", input: `{"v1.0": 1}`, expected: `{"v1.1": 1}`},
		{name: "plain fraction untouched", input: `{"a": 3.5}`, expected: `{"a": 3.5}`},
		{name: "no match", input: `{"a": 30}`, expected: `{"a": 30}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RewriteFloatLiterals(tt.input))
		})
	}
}

func TestParse_SimpleObject(t *testing.T) {
	jsonStr := `{"name": "John Doe", "age": 30, "isStudent": false, "city": null}`
	ir, err := Parse(strings.NewReader(jsonStr))
	if err != nil {
		t.Fatalf("Parse() error = %v, wantErr nil", err)
	}

	if ir.RootIsArray {
		t.Errorf("Parse() ir.RootIsArray = true, want false for an object")
	}

	doc, ok := ir.Root.(*models.Document)
	if !ok {
		t.Fatalf("Parse() root is not a *models.Document, got %T", ir.Root)
	}

	expected := []models.Field{
		{Key: "name", Value: "John Doe"},
		{Key: "age", Value: json.Number("30")},
		{Key: "isStudent", Value: false},
		{Key: "city", Value: nil},
	}
	if !reflect.DeepEqual(doc.Fields(), expected) {
		t.Errorf("Parse() fields = %v, want %v", doc.Fields(), expected)
	}
}

func TestParse_KeyOrderPreserved(t *testing.T) {
	jsonStr := `{"zeta": 1, "alpha": 2, "mid": 3, "beta": 4}`
	ir, err := ParseString(jsonStr)
	require.NoError(t, err)

	doc := ir.Root.(*models.Document)
	assert.Equal(t, []string{"zeta", "alpha", "mid", "beta"}, doc.Keys())
}

func TestParse_DuplicateKeys(t *testing.T) {
	ir, err := ParseString(`{"a": 1, "b": 2, "a": "last"}`)
	require.NoError(t, err)

	doc := ir.Root.(*models.Document)
	assert.Equal(t, []string{"a", "b"}, doc.Keys())
	value, ok := doc.Get("a")
	require.True(t, ok)
	assert.Equal(t, "last", value)
}

func TestParse_SimpleArray(t *testing.T) {
	ir, err := Parse(strings.NewReader(`[1, "test", true, null, 3.14]`))
	if err != nil {
		t.Fatalf("Parse() error = %v, wantErr nil", err)
	}

	if !ir.RootIsArray {
		t.Errorf("Parse() ir.RootIsArray = false, want true for an array")
	}

	expectedRoot := models.JSONArray{
		json.Number("1"),
		"test",
		true,
		nil,
		json.Number("3.14"),
	}
	if !reflect.DeepEqual(ir.Root, expectedRoot) {
		t.Errorf("Parse() root = %v, want %v", ir.Root, expectedRoot)
	}
}

func TestParse_NestedValuesAreKept(t *testing.T) {
	ir, err := ParseString(`{"user": {"name": "Jane Doe", "id": 123}, "tags": ["go", "json"], "empty": []}`)
	require.NoError(t, err)

	doc := ir.Root.(*models.Document)

	user, _ := doc.Get("user")
	nested, ok := user.(*models.Document)
	require.True(t, ok, "nested object should be a *models.Document, got %T", user)
	assert.Equal(t, []string{"name", "id"}, nested.Keys())

	tags, _ := doc.Get("tags")
	assert.Equal(t, models.JSONArray{"go", "json"}, tags)

	empty, _ := doc.Get("empty")
	assert.Equal(t, models.JSONArray{}, empty)
}

func TestParse_ScalarRoot(t *testing.T) {
	ir, err := ParseString(`"hello"`)
	require.NoError(t, err)
	assert.Equal(t, "hello", ir.Root)
	assert.False(t, ir.RootIsArray)

	ir, err = ParseString(`null`)
	require.NoError(t, err)
	assert.Nil(t, ir.Root)
}

func TestParse_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t"} {
		_, err := ParseString(input)
		require.Error(t, err)

		var appErr *errors.AppError
		require.True(t, stderrors.As(err, &appErr))
		assert.Equal(t, errors.ErrorTypeParsing, appErr.Type)
		assert.Equal(t, "unexpected end of JSON input", appErr.Message)
		assert.True(t, stderrors.Is(err, errors.ErrEmptyInput))
	}
}

func TestParse_MalformedJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{name: "bare word key", input: `{ invalid`, message: "invalid character 'i'"},
		{name: "missing closing brace", input: `{"name": "John Doe", "age": 30`, message: "unexpected EOF"},
		{name: "missing closing bracket", input: `["item1", "item2",`, message: "unexpected EOF"},
		{name: "missing value", input: `{"a":`, message: "unexpected EOF"},
		{name: "missing colon", input: `{"a" 1}`, message: "invalid character '1' after object key"},
		{name: "trailing comma", input: `[1,]`, message: "invalid character ']' looking for beginning of value"},
		{name: "unterminated string", input: `{"name": "Invalid JSON, "age": 30}`, message: "invalid character 'a' after object key:value pair"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			require.Error(t, err)

			var appErr *errors.AppError
			require.True(t, stderrors.As(err, &appErr))
			assert.Equal(t, errors.ErrorTypeParsing, appErr.Type)
			assert.True(t, strings.HasPrefix(appErr.Message, tt.message), "message %q should start with %q", appErr.Message, tt.message)
			assert.True(t, stderrors.Is(err, errors.ErrInvalidJSON))
		})
	}
}

func TestParse_TrailingData(t *testing.T) {
	_, err := ParseString(`{"a": 1} {"b": 2}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after top-level value")

	_, err = ParseString("{\"a\": 1}\n\n")
	assert.NoError(t, err, "trailing whitespace is allowed")
}

func TestParseFile_SimpleObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "simple.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"product": "Laptop", "price": 1200.50}`), 0o644))

	ir, err := ParseFile(path)
	require.NoError(t, err)

	doc := ir.Root.(*models.Document)
	assert.Equal(t, []string{"product", "price"}, doc.Keys())
	price, _ := doc.Get("price")
	assert.Equal(t, json.Number("1200.50"), price)
}

func TestParseFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ParseFile(filepath.Join(dir, "missing.json"))
	assert.True(t, stderrors.Is(err, errors.ErrFileNotFound))

	emptyPath := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(emptyPath, nil, 0o644))
	_, err = ParseFile(emptyPath)
	assert.True(t, stderrors.Is(err, errors.ErrFileEmpty))

	_, err = ParseFile("  ")
	assert.True(t, stderrors.Is(err, errors.ErrInvalidFilePath))
}
