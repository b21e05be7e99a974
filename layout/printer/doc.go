// Package printer renders a layout.File and address lookups against it as
// indented text or JSON.
package printer
