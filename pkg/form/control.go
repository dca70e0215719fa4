package form

import (
	"github.com/goliatone/go-argform/pkg/schema"
	"github.com/goliatone/go-argform/pkg/widgets"
)

// ControlKind is the closed set of editors a field can be rendered with.
type ControlKind int

const (
	// ControlText is a free text input.
	ControlText ControlKind = iota
	// ControlSelect picks one of Control.Options.
	ControlSelect
	// ControlPath is a text input paired with a browse action.
	ControlPath
	// ControlToggle is an on/off switch.
	ControlToggle
)

func (k ControlKind) String() string {
	switch k {
	case ControlText:
		return "text"
	case ControlSelect:
		return "select"
	case ControlPath:
		return "path"
	case ControlToggle:
		return "toggle"
	default:
		return "unknown"
	}
}

// PathMode tells a path control which picker to open.
type PathMode int

const (
	PathNone PathMode = iota
	PathDirectory
	PathFile
)

func (m PathMode) String() string {
	switch m {
	case PathDirectory:
		return "directory"
	case PathFile:
		return "file"
	default:
		return "none"
	}
}

// PathPlaceholder is shown in empty path controls.
const PathPlaceholder = "No file or folder selected"

// NoneOption is the display text of the empty entry offered by optional
// select controls.
const NoneOption = "(none)"

// Control is the synthesized editor for one schema field.
type Control struct {
	Field       schema.Field
	Kind        ControlKind
	Label       string
	Placeholder string
	Help        string
	// Options lists the selectable values of a ControlSelect. Optional fields
	// start with an empty entry meaning "not given".
	Options []string
	Path    PathMode
}

// Name returns the field name the control is bound to.
func (c Control) Name() string {
	return c.Field.Name
}

// Optional reports whether the control may be left empty.
func (c Control) Optional() bool {
	return !c.Field.Required
}

func kindFor(field schema.Field, widget string) (ControlKind, PathMode) {
	switch widget {
	case widgets.WidgetSelect:
		return ControlSelect, PathNone
	case widgets.WidgetDirectory:
		return ControlPath, PathDirectory
	case widgets.WidgetFile:
		return ControlPath, PathFile
	case widgets.WidgetToggle:
		return ControlToggle, PathNone
	}
	if field.Type == schema.TypeBool && !field.Positional {
		return ControlToggle, PathNone
	}
	return ControlText, PathNone
}

func (c Control) clone() Control {
	out := c
	out.Options = append([]string(nil), c.Options...)
	if len(c.Field.Choices) > 0 {
		out.Field.Choices = append([]string(nil), c.Field.Choices...)
	}
	return out
}
