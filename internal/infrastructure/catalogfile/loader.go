// Package catalogfile loads the task catalog from JSON or YAML documents.
//
// Entries are decoded one by one: a malformed entry is skipped and reported,
// the rest of the document still loads. Only an unreadable file or a
// document whose envelope cannot be decoded fails the load.
package catalogfile

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rolandbiro/Ember/internal/domain/catalog"
	"github.com/rolandbiro/Ember/internal/domain/shared"
	"github.com/rolandbiro/Ember/pkg/logger"
)

//go:embed default_tasks.json
var defaultTasks []byte

// Format is the encoding of a catalog document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format by file extension. Unknown extensions are JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Result is a loaded catalog with per-entry diagnostics.
type Result struct {
	Catalog  *catalog.Catalog
	Rejected []catalog.EntryError
	Source   string
}

// Degraded reports whether nothing usable was loaded.
func (r Result) Degraded() bool {
	return r.Catalog.IsEmpty()
}

// ══════════════════════════════════════════════════════════════════════════════
// ENTRY
// ══════════════════════════════════════════════════════════════════════════════

type entry struct {
	ID             string           `json:"id" yaml:"id"`
	Category       string           `json:"category" yaml:"category"`
	Title          string           `json:"title" yaml:"title"`
	Description    string           `json:"description" yaml:"description"`
	UIType         string           `json:"uiType" yaml:"uiType"`
	Options        []catalog.Option `json:"options,omitempty" yaml:"options,omitempty"`
	Duration       *int             `json:"duration,omitempty" yaml:"duration,omitempty"`
	StardustReward *int             `json:"stardustReward" yaml:"stardustReward"`
	Slider         *catalog.Slider  `json:"slider,omitempty" yaml:"slider,omitempty"`
	FollowUp       string           `json:"followUp,omitempty" yaml:"followUp,omitempty"`
	NotePrompt     string           `json:"notePrompt,omitempty" yaml:"notePrompt,omitempty"`
}

var errMissingField = errors.New("missing required field")

func (e entry) definition() (catalog.TaskDefinition, error) {
	switch {
	case e.ID == "":
		return catalog.TaskDefinition{}, fmt.Errorf("%w: id", errMissingField)
	case e.Title == "":
		return catalog.TaskDefinition{}, fmt.Errorf("%w: title", errMissingField)
	case e.UIType == "":
		return catalog.TaskDefinition{}, fmt.Errorf("%w: uiType", errMissingField)
	case e.StardustReward == nil:
		return catalog.TaskDefinition{}, fmt.Errorf("%w: stardustReward", errMissingField)
	}

	def := catalog.TaskDefinition{
		ID:          e.ID,
		Category:    catalog.Category(e.Category),
		Title:       e.Title,
		Description: e.Description,
		UIKind:      catalog.UIKind(e.UIType),
		Reward:      *e.StardustReward,
		Options:     e.Options,
		Slider:      e.Slider,
		FollowUp:    e.FollowUp,
		NotePrompt:  e.NotePrompt,
	}
	if e.Duration != nil {
		def.DurationSeconds = *e.Duration
	}
	return def, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// DECODING
// ══════════════════════════════════════════════════════════════════════════════

type jsonDocument struct {
	Version string            `json:"version"`
	Tasks   []json.RawMessage `json:"tasks"`
}

type yamlDocument struct {
	Version string      `yaml:"version"`
	Tasks   []yaml.Node `yaml:"tasks"`
}

// decodedEntry keeps the document index of each entry that decoded.
type decodedEntry struct {
	index int
	def   catalog.TaskDefinition
}

// Decode reads a catalog document. On failure the result holds catalog.Empty().
func Decode(r io.Reader, format Format, log *logger.Logger) (Result, error) {
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("catalog")

	data, err := io.ReadAll(r)
	if err != nil {
		return Result{Catalog: catalog.Empty()}, loadError("read document", err)
	}

	var (
		version  string
		decoded  []decodedEntry
		rejected []catalog.EntryError
	)

	switch format {
	case FormatYAML:
		var doc yamlDocument
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return Result{Catalog: catalog.Empty()}, loadError("decode yaml document", err)
		}
		version = doc.Version
		for i := range doc.Tasks {
			var e entry
			err := doc.Tasks[i].Decode(&e)
			decoded, rejected = collect(decoded, rejected, i, e, err)
		}
	default:
		var doc jsonDocument
		if err := json.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
			return Result{Catalog: catalog.Empty()}, loadError("decode json document", err)
		}
		version = doc.Version
		for i, raw := range doc.Tasks {
			var e entry
			err := json.Unmarshal(raw, &e)
			decoded, rejected = collect(decoded, rejected, i, e, err)
		}
	}

	defs := make([]catalog.TaskDefinition, len(decoded))
	for i, d := range decoded {
		defs[i] = d.def
	}

	cat, invalid := catalog.New(version, defs)
	for _, ee := range invalid {
		ee.Index = decoded[ee.Index].index
		rejected = append(rejected, ee)
	}

	for _, ee := range rejected {
		log.Warn("catalog entry skipped",
			logger.Int("index", ee.Index),
			logger.TaskID(ee.TaskID),
			logger.Err(ee.Err),
		)
	}
	if cat.IsEmpty() {
		log.Warn("catalog has no usable tasks", logger.Int("rejected", len(rejected)))
	}

	return Result{Catalog: cat, Rejected: rejected}, nil
}

func collect(decoded []decodedEntry, rejected []catalog.EntryError, index int, e entry, decodeErr error) ([]decodedEntry, []catalog.EntryError) {
	if decodeErr != nil {
		return decoded, append(rejected, catalog.EntryError{Index: index, TaskID: e.ID, Err: decodeErr})
	}
	def, err := e.definition()
	if err != nil {
		return decoded, append(rejected, catalog.EntryError{Index: index, TaskID: e.ID, Err: err})
	}
	return append(decoded, decodedEntry{index: index, def: def}), rejected
}

func loadError(message string, err error) error {
	return shared.WrapError("catalog", "Load", shared.ErrCatalogLoad, message, err)
}

// ══════════════════════════════════════════════════════════════════════════════
// SOURCES
// ══════════════════════════════════════════════════════════════════════════════

// LoadFile reads the document at path, choosing the format by extension.
func LoadFile(path string, log *logger.Logger) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{Catalog: catalog.Empty(), Source: path}, loadError("open "+path, err)
	}
	defer f.Close()

	res, err := Decode(f, FormatFromPath(path), log)
	res.Source = path
	return res, err
}

// LoadDefault decodes the catalog compiled into the binary.
func LoadDefault(log *logger.Logger) (Result, error) {
	res, err := Decode(bytes.NewReader(defaultTasks), FormatJSON, log)
	res.Source = "embedded"
	return res, err
}

// Load reads path when set and the embedded catalog otherwise.
func Load(path string, log *logger.Logger) (Result, error) {
	if path == "" {
		return LoadDefault(log)
	}
	return LoadFile(path, log)
}
