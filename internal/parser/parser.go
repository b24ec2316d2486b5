package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	stderrors "errors"

	"github.com/mcncl/jsonalchemy/internal/errors"
	"github.com/mcncl/jsonalchemy/internal/models"
)

// RewriteFloatLiterals replaces every ".0" in raw with ".1" so that a
// literal such as 3.0 still decodes to a number with a fractional part.
//
// The rewrite is purely textual. It also changes ".0" inside string values,
// keys and exponents: "version 1.0" becomes "version 1.1".
func RewriteFloatLiterals(raw string) string {
	return strings.ReplaceAll(raw, ".0", ".1")
}

// Parse converts JSON data from an io.Reader into an IntermediateRepresentation.
// Objects are decoded into *models.Document so key order survives.
func Parse(reader io.Reader) (models.IntermediateRepresentation, error) {
	decoder := json.NewDecoder(reader)
	decoder.UseNumber()

	rootValue, err := decodeValue(decoder)
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return models.IntermediateRepresentation{}, errors.NewParsingError("unexpected end of JSON input", errors.ErrEmptyInput)
		}
		return models.IntermediateRepresentation{}, parsingError(err)
	}

	// Only whitespace may follow the root value.
	if tok, err := decoder.Token(); err == nil {
		return models.IntermediateRepresentation{}, errors.NewParsingError(
			fmt.Sprintf("invalid data %v after top-level value", tok),
			errors.ErrInvalidJSON,
		)
	} else if !stderrors.Is(err, io.EOF) {
		return models.IntermediateRepresentation{}, parsingError(err)
	}

	_, isArray := rootValue.(models.JSONArray)
	return models.IntermediateRepresentation{
		Root:        rootValue,
		RootIsArray: isArray,
	}, nil
}

// parsingError keeps the decoder's message as the user-facing text.
func parsingError(err error) *errors.AppError {
	return errors.NewParsingError(err.Error(), fmt.Errorf("%w: %w", errors.ErrInvalidJSON, err))
}

// decodeValue reads one complete JSON value from the token stream.
func decodeValue(decoder *json.Decoder) (models.JSONValue, error) {
	tok, err := decoder.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		// string, json.Number, bool or nil
		return tok, nil
	}

	switch delim {
	case '{':
		doc := models.NewDocument()
		for decoder.More() {
			keyTok, err := decoder.Token()
			if err != nil {
				return nil, unexpectedEOF(err)
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("invalid object key %v", keyTok)
			}
			value, err := decodeValue(decoder)
			if err != nil {
				return nil, unexpectedEOF(err)
			}
			doc.Set(key, value)
		}
		if err := closeDelim(decoder); err != nil {
			return nil, err
		}
		return doc, nil
	case '[':
		arr := make(models.JSONArray, 0)
		for decoder.More() {
			value, err := decodeValue(decoder)
			if err != nil {
				return nil, unexpectedEOF(err)
			}
			arr = append(arr, value)
		}
		if err := closeDelim(decoder); err != nil {
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("invalid character '%v' looking for beginning of value", delim)
	}
}

func closeDelim(decoder *json.Decoder) error {
	_, err := decoder.Token()
	return unexpectedEOF(err)
}

// unexpectedEOF distinguishes a truncated document from an empty one.
func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.IntermediateRepresentation, error) {
	return Parse(strings.NewReader(jsonString))
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string) (models.IntermediateRepresentation, error) {
	data, err := ReadFile(filePath)
	if err != nil {
		return models.IntermediateRepresentation{}, err
	}
	return ParseString(string(data))
}

// ReadFile reads a JSON input file, reporting missing and empty files as
// input errors.
func ReadFile(filePath string) ([]byte, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	if len(data) == 0 {
		return nil, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}
	return data, nil
}
