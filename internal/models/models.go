package models

// JSONValue is a generic type to represent any JSON value.
// This can be a string, json.Number, bool, nil, *Document, or JSONArray.
type JSONValue interface{}

// JSONArray represents a JSON array, which is a slice of JSONValues.
type JSONArray []JSONValue

// Field is one top-level key of a document and its value.
type Field struct {
	Key   string
	Value JSONValue
}

// Document is a parsed JSON object that remembers the order its keys
// appeared in. A repeated key keeps its first position and its last value.
type Document struct {
	fields []Field
	index  map[string]int
}

// NewDocument creates an empty Document.
func NewDocument() *Document {
	return &Document{index: make(map[string]int)}
}

// Set adds or replaces the value for key.
func (d *Document) Set(key string, value JSONValue) {
	if i, ok := d.index[key]; ok {
		d.fields[i].Value = value
		return
	}
	d.index[key] = len(d.fields)
	d.fields = append(d.fields, Field{Key: key, Value: value})
}

// Get returns the value stored for key.
func (d *Document) Get(key string) (JSONValue, bool) {
	i, ok := d.index[key]
	if !ok {
		return nil, false
	}
	return d.fields[i].Value, true
}

// Fields returns the fields in insertion order.
func (d *Document) Fields() []Field {
	out := make([]Field, len(d.fields))
	copy(out, d.fields)
	return out
}

// Keys returns the keys in insertion order.
func (d *Document) Keys() []string {
	keys := make([]string, len(d.fields))
	for i, f := range d.fields {
		keys[i] = f.Key
	}
	return keys
}

// Len returns the number of distinct keys.
func (d *Document) Len() int {
	return len(d.fields)
}

// IntermediateRepresentation holds the parsed JSON root. Root is a
// *Document when the input was an object.
type IntermediateRepresentation struct {
	Root        JSONValue
	RootIsArray bool
}

// ColumnType is the SQLAlchemy type placed inside a Column(...) call,
// without its namespace prefix.
type ColumnType string

const (
	LargeBinary ColumnType = "LargeBinary"
	String      ColumnType = "String"
	DateTime    ColumnType = "DateTime"
	Integer     ColumnType = "Integer"
	BigInteger  ColumnType = "BigInteger"
	Numeric     ColumnType = "Numeric"
	Boolean     ColumnType = "Boolean"
	PickleType  ColumnType = "PickleType"
)

// ColumnDef is one generated column declaration.
type ColumnDef struct {
	JSONKey string
	Name    string
	Type    ColumnType
	Comment string
}

// ModelDef is the declaration produced for one JSON document.
type ModelDef struct {
	ClassName string
	TableName string
	Columns   []ColumnDef
}
