package schema

// Kind classifies how a field is edited. The set is closed; switches over Kind
// are expected to be exhaustive.
type Kind int

const (
	KindText Kind = iota
	KindChoice
	KindDirectory
	KindFile
	KindFlag
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindChoice:
		return "choice"
	case KindDirectory:
		return "directory"
	case KindFile:
		return "file"
	case KindFlag:
		return "flag"
	default:
		return "unknown"
	}
}

// IsPath reports whether the field holds a filesystem path.
func (k Kind) IsPath() bool {
	return k == KindDirectory || k == KindFile
}

// ValueType is the declared type a raw value is coerced to during parsing.
type ValueType string

const (
	TypeString ValueType = "string"
	TypeInt    ValueType = "int"
	TypeFloat  ValueType = "float"
	TypeBool   ValueType = "bool"
	TypePath   ValueType = "path"
)

// MarshalText renders the kind by name so inspection output stays readable.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
