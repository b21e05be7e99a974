// Package layoutfile loads layout descriptions from YAML or TOML and turns
// them into a layout.File.
//
// A description lists absolute ranges only; relative offsets, sizes and
// indices are derived by layout.Builder. Names are optional and are kept on
// the Description for display.
//
//	size: 0x100
//	slices:
//	  - name: header
//	    start: 0x0
//	    end: 0x40
//	    commands:
//	      - start: 0x0
//	        end: 0x40
//	        elements:
//	          - {start: 0x0, end: 0x4, name: magic}
//	          - {start: 0x4, end: 0x40}
//
// The TOML form uses [[slices]], [[slices.commands]] and
// [[slices.commands.elements]] tables with the same keys.
package layoutfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/janus/layout"
)

// Format identifies a description encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

var (
	// ErrUnknownFormat indicates a path whose extension maps to no Format.
	ErrUnknownFormat = errors.New("layoutfile: unknown format")
	// ErrUnknownField indicates a key the description schema does not define.
	ErrUnknownField = errors.New("layoutfile: unknown field")
)

// Description is the decoded form of a layout file.
type Description struct {
	// Size is the total file size. When zero, the end of the last slice is used.
	Size   uint64      `yaml:"size" toml:"size"`
	Slices []SliceDesc `yaml:"slices" toml:"slices"`
}

type SliceDesc struct {
	Name     string        `yaml:"name,omitempty" toml:"name,omitempty"`
	Start    uint64        `yaml:"start" toml:"start"`
	End      uint64        `yaml:"end" toml:"end"`
	Commands []CommandDesc `yaml:"commands,omitempty" toml:"commands,omitempty"`
}

type CommandDesc struct {
	Name     string        `yaml:"name,omitempty" toml:"name,omitempty"`
	Start    uint64        `yaml:"start" toml:"start"`
	End      uint64        `yaml:"end" toml:"end"`
	Elements []ElementDesc `yaml:"elements,omitempty" toml:"elements,omitempty"`
}

type ElementDesc struct {
	Name  string `yaml:"name,omitempty" toml:"name,omitempty"`
	Start uint64 `yaml:"start" toml:"start"`
	End   uint64 `yaml:"end" toml:"end"`
}

// FormatFromPath picks a Format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%q: %w", path, ErrUnknownFormat)
	}
}

// Load reads and parses the description at path.
func Load(path string) (*Description, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Parse decodes data in the given format. Unknown keys are rejected.
func Parse(data []byte, format Format) (*Description, error) {
	var d Description
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&d); err != nil {
			if strings.Contains(err.Error(), "not found in type") {
				return nil, fmt.Errorf("%w: %v", ErrUnknownField, err)
			}
			return nil, fmt.Errorf("layoutfile: yaml: %w", err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &d)
		if err != nil {
			return nil, fmt.Errorf("layoutfile: toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: %v", ErrUnknownField, undecoded)
		}
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
	return &d, nil
}

// TotalSize returns Size, or the end of the last slice when Size is zero.
func (d *Description) TotalSize() uint64 {
	if d.Size != 0 || len(d.Slices) == 0 {
		return d.Size
	}
	return d.Slices[len(d.Slices)-1].End
}

// Build feeds the description to a layout.Builder and returns the frozen file.
func (d *Description) Build(opts layout.BuilderOptions) (*layout.File, error) {
	b := layout.NewBuilder(d.TotalSize(), opts)
	for _, sd := range d.Slices {
		sb := b.Slice(sd.Start, sd.End)
		for _, cd := range sd.Commands {
			cb := sb.Command(cd.Start, cd.End)
			for _, ed := range cd.Elements {
				cb.Element(ed.Start, ed.End)
			}
		}
	}
	return b.Build()
}

// Names returns the names along the path c, slice first. Unnamed nodes are
// rendered as their level and position, e.g. "command[2]".
func (d *Description) Names(c layout.Coordinates) []string {
	if c.Slice < 0 || c.Slice >= len(d.Slices) {
		return nil
	}
	sd := d.Slices[c.Slice]
	out := []string{nameOr(sd.Name, "slice", c.Slice)}
	if c.Command < 0 || c.Command >= len(sd.Commands) {
		return out
	}
	cd := sd.Commands[c.Command]
	out = append(out, nameOr(cd.Name, "command", c.Command))
	if !c.HasElement() || c.Element < 0 || c.Element >= len(cd.Elements) {
		return out
	}
	return append(out, nameOr(cd.Elements[c.Element].Name, "element", c.Element))
}

func nameOr(name, level string, i int) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("%s[%d]", level, i)
}
