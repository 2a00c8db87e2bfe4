package patterns

import (
	"bytes"
	_ "embed"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/maidsweep/pkg/errors"
	"github.com/arthur-debert/maidsweep/pkg/logging"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

//go:embed embedded/patterns.yaml
var defaultDocument []byte

// DefaultDocument returns the bundled pattern document, as written by
// `maidsweep genconfig`.
func DefaultDocument() string {
	return string(defaultDocument)
}

// Document is the on-disk shape of a pattern document
type Document struct {
	TypicalFiles map[string][]string `yaml:"typical_files" toml:"typical_files"`
	Extensions   map[string][]string `yaml:"extensions" toml:"extensions"`
	Filenames    []FilenameRule      `yaml:"filenames" toml:"filenames"`
	Synonyms     map[string][]string `yaml:"synonyms" toml:"synonyms"`
}

// FilenameRule tags entries whose name matches Pattern
type FilenameRule struct {
	Tags    []string `yaml:"tags" toml:"tags"`
	Pattern string   `yaml:"pattern" toml:"pattern"`
}

// Format is the serialization of a pattern document
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor picks the document format from a file name. Anything that is
// not .toml is read as YAML.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Load reads, parses and compiles the pattern document at path
func Load(path string) (*Table, error) {
	logger := logging.GetLogger("patterns").With().Str("path", path).Logger()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPatternsLoad,
			"Could not find patterns file at %s", path).WithDetail("path", path)
	}

	doc, err := Parse(data, FormatFor(path))
	if err != nil {
		return nil, err
	}

	table, err := Compile(doc)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Int("typical", len(table.typical)).
		Int("filenames", len(table.special)).
		Int("extensions", len(table.byExt)).
		Int("synonyms", len(table.synonyms)).
		Msg("Patterns loaded")
	return table, nil
}

// Parse decodes a pattern document. Unknown keys are rejected so that a
// misspelled section does not silently disable a whole class of rules.
func Parse(data []byte, format Format) (*Document, error) {
	var doc Document

	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(err, errors.ErrPatternsParse, "failed to parse TOML patterns")
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && err != io.EOF {
			return nil, errors.Wrap(err, errors.ErrPatternsParse, "failed to parse YAML patterns")
		}
	}

	return &doc, nil
}
