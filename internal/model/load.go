package model

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	toml "github.com/pelletier/go-toml/v2"
)

// Format identifies the encoding of a model document.
type Format string

const (
	// FormatTOML decodes with go-toml. It is used for unrecognized extensions.
	FormatTOML Format = "toml"
	// FormatYAML decodes with goccy/go-yaml.
	FormatYAML Format = "yaml"
)

// FormatFor picks a decoder from the file extension. Files without a
// recognized extension are treated as TOML.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", "":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads and decodes the model document at path. Unknown keys are
// rejected. Decode failures are returned as *LoadError.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model: %w", err)
	}
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, format, path)
}

// Parse decodes a model document. name is used only for error context.
func Parse(data []byte, format Format, name string) (*Model, error) {
	var m Model
	var err error
	switch format {
	case FormatTOML:
		err = decodeTOML(data, &m, name)
	case FormatYAML:
		err = decodeYAML(data, &m, name)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	m.SourceFile = name
	return &m, nil
}

func decodeTOML(data []byte, m *Model, name string) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	err := dec.Decode(m)
	if err == nil {
		return nil
	}

	var strictErr *toml.StrictMissingError
	if errors.As(err, &strictErr) && len(strictErr.Errors) > 0 {
		first := strictErr.Errors[0]
		row, col := first.Position()
		keys := make([]string, 0, len(strictErr.Errors))
		for _, e := range strictErr.Errors {
			keys = append(keys, strings.Join(e.Key(), "."))
		}
		return &LoadError{
			File:   name,
			Line:   row,
			Column: col,
			Detail: strictErr.String(),
			Err:    fmt.Errorf("unknown key(s): %s", strings.Join(keys, ", ")),
		}
	}

	var decErr *toml.DecodeError
	if errors.As(err, &decErr) {
		row, col := decErr.Position()
		return &LoadError{
			File:   name,
			Line:   row,
			Column: col,
			Detail: decErr.String(),
			Err:    fmt.Errorf("parsing TOML: %w", err),
		}
	}
	return &LoadError{File: name, Err: fmt.Errorf("parsing TOML: %w", err)}
}

func decodeYAML(data []byte, m *Model, name string) error {
	err := yaml.UnmarshalWithOptions(data, m, yaml.Strict())
	if err == nil {
		return nil
	}
	le := &LoadError{
		File:   name,
		Detail: yaml.FormatError(err, false, true),
		Err:    fmt.Errorf("parsing YAML: %w", err),
	}
	var yerr yaml.Error
	if errors.As(err, &yerr) {
		if tk := yerr.GetToken(); tk != nil && tk.Position != nil {
			le.Line = tk.Position.Line
			le.Column = tk.Position.Column
		}
		le.Err = fmt.Errorf("parsing YAML: %s", yerr.GetMessage())
	}
	return le
}
