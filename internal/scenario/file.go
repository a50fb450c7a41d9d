package scenario

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/semver"

	"github.com/abhisek/internsim/internal/llm"
)

// CurrentFormat is the scenario pack format written by WriteFile.
// Packs with the same major version are readable.
const CurrentFormat = "v1.0.0"

// ErrUnsupportedFormat is returned for packs whose format version is
// missing, malformed, or from another major version.
var ErrUnsupportedFormat = errors.New("unsupported scenario pack format")

// Pack is the on-disk envelope of a scenario.
type Pack struct {
	Format   string    `json:"format"`
	Scenario *Scenario `json:"scenario"`
}

// FileProvider serves a scenario stored in a pack file. The file is read
// on every Fetch so edits are picked up on restart.
type FileProvider struct {
	path       string
	validators []Validator
}

var _ Provider = (*FileProvider)(nil)

// NewFileProvider creates a FileProvider for the pack at path.
// With no validators the default chain is used.
func NewFileProvider(path string, validators ...Validator) *FileProvider {
	return &FileProvider{path: path, validators: validators}
}

// Fetch reads, checks and decodes the pack.
func (p *FileProvider) Fetch(ctx context.Context) (*Scenario, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadFile(p.path, p.validators...)
}

// LoadFile reads and decodes the pack at path.
func LoadFile(path string, validators ...Validator) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario pack: %w", err)
	}
	s, err := Decode(data, validators...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return s, nil
}

// Decode parses a pack, checking its format version and JSON shape before
// running the validator chain.
func Decode(data []byte, validators ...Validator) (*Scenario, error) {
	var head struct {
		Format string `json:"format"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("parse scenario pack: %w", err)
	}
	if err := checkFormat(head.Format); err != nil {
		return nil, err
	}

	if err := llm.ValidateJSON(PackSchema, data); err != nil {
		return nil, err
	}

	var pack Pack
	if err := json.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("decode scenario pack: %w", err)
	}
	if err := Validate(pack.Scenario, validators...); err != nil {
		return nil, err
	}
	return pack.Scenario, nil
}

// WriteFile stores s as a pack at path, creating parent directories.
func WriteFile(path string, s *Scenario) error {
	data, err := json.MarshalIndent(Pack{Format: CurrentFormat, Scenario: s}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode scenario pack: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create pack directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write scenario pack: %w", err)
	}
	return nil
}

func checkFormat(format string) error {
	if format == "" {
		return fmt.Errorf("%w: format version missing", ErrUnsupportedFormat)
	}
	if !semver.IsValid(format) {
		return fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedFormat, format)
	}
	if semver.Major(format) != semver.Major(CurrentFormat) {
		return fmt.Errorf("%w: %s (this build reads %s.x)", ErrUnsupportedFormat, format, semver.Major(CurrentFormat))
	}
	return nil
}

// PackSchema is the JSON schema of a scenario pack file.
var PackSchema = &llm.Schema{
	Name:        "scenario-pack",
	Description: "An internship scenario stored on disk",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"format", "scenario"},
		"properties": map[string]any{
			"format": map[string]any{"type": "string"},
			"scenario": map[string]any{
				"type":     "object",
				"required": []any{"title", "brief", "stages"},
				"properties": map[string]any{
					"title":    map[string]any{"type": "string"},
					"role":     map[string]any{"type": "string"},
					"bossName": map[string]any{"type": "string"},
					"brief":    map[string]any{"type": "string"},
					"dataset": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"additionalProperties": map[string]any{
								"type": []any{"string", "number", "null"},
							},
						},
					},
					"stages": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items": map[string]any{
							"type":     "object",
							"required": []any{"type", "question", "options"},
							"properties": map[string]any{
								"id": map[string]any{"type": "integer"},
								"type": map[string]any{
									"enum": []any{
										string(StageObservation),
										string(StageAction),
										string(StageValidation),
									},
								},
								"question": map[string]any{"type": "string"},
								"options": map[string]any{
									"type":     "array",
									"minItems": 1,
									"items": map[string]any{
										"type":     "object",
										"required": []any{"id", "text", "isCorrect"},
										"properties": map[string]any{
											"id":             map[string]any{"type": "string"},
											"text":           map[string]any{"type": "string"},
											"isCorrect":      map[string]any{"type": "boolean"},
											"feedback":       map[string]any{"type": "string"},
											"businessImpact": map[string]any{"type": "string"},
										},
									},
								},
								"correctExplanation": map[string]any{"type": "string"},
							},
						},
					},
				},
			},
		},
	},
}
