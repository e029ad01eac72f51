package parse

// Kind is the declared type of a column.
type Kind int

const (
	// Int columns hold tags and flags. Tokens with a decimal point or
	// exponent are rejected rather than truncated.
	Int Kind = iota
	// Float columns hold coordinates, section properties and load values.
	Float
	// String columns hold bare words such as shape names.
	String
)

// Field declares one column of a record schema.
type Field struct {
	Name string
	Kind Kind
}

// Schema declares the columns of one record type, e.g. a node row or an
// element row. Every field is required; a row with fewer tokens than
// declared fields is an error, never silently dropped.
type Schema struct {
	// Record names the record type in error messages ("node", "element", ...)
	Record string

	Fields []Field

	// Rest, when non-nil, accepts any number of trailing tokens of the
	// given kind after the declared fields (used for variable-length
	// shape dimension lists).
	Rest *Field
}

// IntField is a shorthand for an integer column.
func IntField(name string) Field { return Field{Name: name, Kind: Int} }

// FloatField is a shorthand for a floating-point column.
func FloatField(name string) Field { return Field{Name: name, Kind: Float} }

// StringField is a shorthand for a word column.
func StringField(name string) Field { return Field{Name: name, Kind: String} }
