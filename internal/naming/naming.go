// Package naming turns arbitrary JSON keys and type names into Python
// identifiers and class names.
package naming

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
)

// Placeholder replaces a non-empty name that sanitizes to nothing.
const Placeholder = "NAMING_FAILED"

// NumericPrefix is prepended to names made only of digits.
const NumericPrefix = "num"

// ClassNameStyle selects how a table name becomes a class name.
type ClassNameStyle string

const (
	// StyleLegacy uppercases the first character and every lowercase letter
	// that follows an underscore, removing that underscore.
	StyleLegacy ClassNameStyle = "legacy"
	// StyleCamel uses strcase.ToCamel, which drops every underscore.
	StyleCamel ClassNameStyle = "camel"
)

var (
	allDigitsRegex  = regexp.MustCompile(`^\d+$`)
	upperRegex      = regexp.MustCompile(`([A-Z])`)
	invalidRegex    = regexp.MustCompile(`[^a-zA-Z0-9_]`)
	underscoreRegex = regexp.MustCompile(`_+`)
	snakeHumpRegex  = regexp.MustCompile(`_([a-z])`)
)

var digitWords = map[byte]string{
	'0': "zero_",
	'1': "one_",
	'2': "two_",
	'3': "three_",
	'4': "four_",
	'5': "five_",
	'6': "six_",
	'7': "seven_",
	'8': "eight_",
	'9': "nine_",
}

// Format sanitizes name into a lowercase snake_case identifier.
//
// An empty name stays empty. Anything else that has no letters, digits or
// underscores left after sanitizing becomes Placeholder.
func Format(name string) string {
	if name == "" {
		return ""
	}

	if allDigitsRegex.MatchString(name) {
		name = NumericPrefix + name
	} else if word, ok := digitWords[name[0]]; ok {
		name = word + name[1:]
	}

	name = upperRegex.ReplaceAllString(name, "_${1}")
	name = invalidRegex.ReplaceAllString(name, "")
	name = underscoreRegex.ReplaceAllString(name, "_")
	name = strings.TrimPrefix(name, "_")
	name = strings.ToLower(name)

	if name == "" {
		return Placeholder
	}
	return name
}

// ClassName derives a class name from a formatted table name.
func ClassName(tableName string, style ClassNameStyle) string {
	if style == StyleCamel {
		if camel := strcase.ToCamel(tableName); camel != "" {
			return camel
		}
		return tableName
	}

	name := snakeHumpRegex.ReplaceAllStringFunc(tableName, func(m string) string {
		return strings.ToUpper(m[1:])
	})
	return upperFirst(name)
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// ValidStyle reports whether style names a known class-name style.
func ValidStyle(style ClassNameStyle) bool {
	return style == StyleLegacy || style == StyleCamel
}
