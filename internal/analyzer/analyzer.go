package analyzer

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/mcncl/jsonalchemy/internal/config"
	"github.com/mcncl/jsonalchemy/internal/models"
	"github.com/mcncl/jsonalchemy/internal/naming"
)

// The pattern is not anchored: a timestamp anywhere in the string counts.
var dateTimeRegex = regexp.MustCompile(`\d{4}-\d\d-\d\dT\d\d:\d\d:\d\d(\.\d+)?([+-]\d\d:\d\d|Z)`)

// Integral values strictly inside these bounds are Integer columns. The
// bounds themselves are BigInteger.
const (
	minInteger = -2147483648
	maxInteger = 2147483647
)

// Analyzer turns a parsed JSON document into a model declaration.
type Analyzer struct {
	config *config.Config
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return &Analyzer{config: config.NewConfig()}
}

// NewAnalyzerWithConfig creates a new Analyzer instance with custom configuration.
func NewAnalyzerWithConfig(cfg *config.Config) *Analyzer {
	return &Analyzer{config: cfg}
}

// Analyze derives the table name, class name and one column per top-level
// field of ir, in document order.
func (a *Analyzer) Analyze(ir models.IntermediateRepresentation, typeNameHint string) models.ModelDef {
	if typeNameHint == "" {
		typeNameHint = a.config.TableName
	}
	if typeNameHint == "" {
		typeNameHint = config.DefaultTableName
	}

	tableName := naming.Format(typeNameHint)
	model := models.ModelDef{
		ClassName: naming.ClassName(tableName, a.config.Naming.ClassNameStyle),
		TableName: tableName,
	}

	fields := TopLevelFields(ir.Root)
	model.Columns = make([]models.ColumnDef, 0, len(fields))
	for _, field := range fields {
		model.Columns = append(model.Columns, a.analyzeField(field))
	}
	return model
}

func (a *Analyzer) analyzeField(field models.Field) models.ColumnDef {
	column := models.ColumnDef{
		JSONKey: field.Key,
		Name:    a.config.GetFieldName(field.Key),
	}

	if mapping, found := a.config.FindTypeMapping(field.Key); found {
		column.Type = models.ColumnType(mapping.Type)
		column.Comment = mapping.Comment
		return column
	}

	if num, ok := field.Value.(json.Number); ok && a.config.Types.PreserveFloatLiterals {
		column.Type = literalNumberType(num)
		return column
	}

	column.Type = ColumnType(field.Value)
	return column
}

// TopLevelFields lists the enumerable keys of a JSON root the way an
// object-keys walk sees them: object keys in order, array indexes, or the
// character positions of a string. Other roots have no fields.
func TopLevelFields(root models.JSONValue) []models.Field {
	switch v := root.(type) {
	case *models.Document:
		return v.Fields()
	case models.JSONArray:
		fields := make([]models.Field, len(v))
		for i, elem := range v {
			fields[i] = models.Field{Key: strconv.Itoa(i), Value: elem}
		}
		return fields
	case string:
		runes := []rune(v)
		fields := make([]models.Field, len(runes))
		for i, r := range runes {
			fields[i] = models.Field{Key: strconv.Itoa(i), Value: string(r)}
		}
		return fields
	default:
		return nil
	}
}

// ColumnType infers the column type for a single JSON value.
func ColumnType(value models.JSONValue) models.ColumnType {
	switch v := value.(type) {
	case nil:
		return models.LargeBinary
	case string:
		if dateTimeRegex.MatchString(v) {
			return models.DateTime
		}
		return models.String
	case json.Number:
		f, _ := strconv.ParseFloat(string(v), 64)
		return numberType(f)
	case float64:
		return numberType(v)
	case float32:
		return numberType(float64(v))
	case int:
		return numberType(float64(v))
	case int32:
		return numberType(float64(v))
	case int64:
		return numberType(float64(v))
	case bool:
		return models.Boolean
	case *models.Document, models.JSONArray, map[string]interface{}, []interface{}:
		return models.PickleType
	default:
		return models.LargeBinary
	}
}

// numberType classifies a decoded number. Out-of-range literals decode to
// an infinity, which has no integral part and so is Numeric.
func numberType(f float64) models.ColumnType {
	if math.Mod(f, 1) != 0 {
		return models.Numeric
	}
	if f > minInteger && f < maxInteger {
		return models.Integer
	}
	return models.BigInteger
}

// literalNumberType treats any literal written with a decimal point as
// Numeric, so 3.0 stays a Numeric column without rewriting the input.
func literalNumberType(num json.Number) models.ColumnType {
	if strings.Contains(string(num), ".") {
		return models.Numeric
	}
	f, _ := strconv.ParseFloat(string(num), 64)
	return numberType(f)
}
