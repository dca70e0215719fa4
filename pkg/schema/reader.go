package schema

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// AnnotationChoices is the flag annotation read as the field's choice set.
const AnnotationChoices = "argform_choices"

// MarkChoices restricts a flag of fs to the given values.
func MarkChoices(fs *pflag.FlagSet, name string, choices ...string) error {
	return fs.SetAnnotation(name, AnnotationChoices, choices)
}

// MarkDirectory tags a flag as a directory path. It uses the same annotation
// as cobra's MarkFlagDirname so shell completion picks it up too.
func MarkDirectory(fs *pflag.FlagSet, name string) error {
	return fs.SetAnnotation(name, cobra.BashCompSubdirsInDir, []string{})
}

// MarkFile tags a flag as a file path, optionally limited to extensions. It
// uses the same annotation as cobra's MarkFlagFilename.
func MarkFile(fs *pflag.FlagSet, name string, extensions ...string) error {
	return fs.SetAnnotation(name, cobra.BashCompFilenameExt, extensions)
}

// FromFlagSet reads the flags of fs, in declaration order, into a schema. The
// built-in help flag is skipped. Flag types pflag knows but a form cannot edit
// natively (slices, durations, maps) are read as free text.
func FromFlagSet(fs *pflag.FlagSet) (*Schema, error) {
	if fs == nil {
		return nil, ErrNilFlagSet
	}

	prev := fs.SortFlags
	fs.SortFlags = false
	defer func() { fs.SortFlags = prev }()

	s := New(fs.Name())
	fs.VisitAll(func(flag *pflag.Flag) {
		if flag.Name == helpName {
			return
		}
		s.Add(fieldFromFlag(flag))
	})
	return s, nil
}

// FromCommand reads the flags of a cobra command, including persistent flags
// inherited from its parents. Positional arguments are not described by cobra;
// declare them on the returned schema with Positional.
func FromCommand(cmd *cobra.Command) (*Schema, error) {
	if cmd == nil {
		return nil, ErrNilFlagSet
	}
	// InheritedFlags merges parent persistent flags into cmd.Flags().
	_ = cmd.InheritedFlags()
	s, err := FromFlagSet(cmd.Flags())
	if err != nil {
		return nil, err
	}
	s.name = cmd.Name()
	return s, nil
}

func fieldFromFlag(flag *pflag.Flag) Field {
	field := Field{
		Name:      flag.Name,
		Flag:      "--" + flag.Name,
		Shorthand: flag.Shorthand,
		Kind:      KindText,
		Usage:     flag.Usage,
		Default:   flag.DefValue,
	}

	switch valueType(flag) {
	case "bool":
		field.Type = TypeBool
		field.Kind = KindFlag
	case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
		field.Type = TypeInt
	case "float32", "float64":
		field.Type = TypeFloat
	case "string":
		field.Type = TypeString
	default:
		field.Type = TypeString
		field.Default = ""
	}

	if hasAnnotation(flag, cobra.BashCompSubdirsInDir) {
		field.Kind = KindDirectory
		field.Type = TypePath
	} else if hasAnnotation(flag, cobra.BashCompFilenameExt) {
		field.Kind = KindFile
		field.Type = TypePath
	}

	if required := flag.Annotations[cobra.BashCompOneRequiredFlag]; len(required) > 0 {
		field.Required = strings.EqualFold(required[0], "true")
	}

	if choices := flag.Annotations[AnnotationChoices]; len(choices) > 0 {
		field.Choices = append([]string(nil), choices...)
		field.Kind = KindChoice
	}
	return field
}

func valueType(flag *pflag.Flag) string {
	if flag.Value == nil {
		return ""
	}
	return flag.Value.Type()
}

func hasAnnotation(flag *pflag.Flag, key string) bool {
	if flag.Annotations == nil {
		return false
	}
	_, ok := flag.Annotations[key]
	return ok
}
