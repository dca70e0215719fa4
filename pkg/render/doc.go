// Package render defines the contract between the argform core and the
// frontends that display a form, and a registry to look frontends up by name.
package render
