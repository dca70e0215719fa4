// Package form synthesizes an editable form from an argument schema and turns
// the current form state back into an argument vector.
//
// One Control is created per schema field, in declaration order. The control
// kind is a closed set (text, select, path, toggle) chosen from the field
// descriptor; frontends switch over it exhaustively. State holds the raw value
// of every control and is the only thing frontends mutate. Argv and Collect
// read it back and validate it through the schema that produced the form.
package form
