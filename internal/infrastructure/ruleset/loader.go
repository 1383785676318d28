// Package ruleset loads fuzzy variable and rule definitions from YAML or JSON
// documents and builds a validated inference engine from them.
package ruleset

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/akulaahhhh/Loan-Risk-Evaluator/pkg/fuzzy"
)

// ErrInvalidRuleset is returned for documents that fail schema or semantic validation.
var ErrInvalidRuleset = errors.New("invalid rule set")

const schemaURL = "https://risk.bib.dev/schemas/ruleset.json"

//go:embed schema.json
var schemaJSON string

//go:embed default_ruleset.yaml
var defaultRuleset []byte

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add rule set schema: %w", err)
	}
	return c.Compile(schemaURL)
})

// Document is the serialized form of a rule set.
type Document struct {
	Version     int            `yaml:"version" json:"version"`
	Name        string         `yaml:"name" json:"name,omitempty"`
	Description string         `yaml:"description" json:"description,omitempty"`
	Inputs      []VariableSpec `yaml:"inputs" json:"inputs"`
	Output      VariableSpec   `yaml:"output" json:"output"`
	Rules       []RuleSpec     `yaml:"rules" json:"rules"`
}

// VariableSpec declares a linguistic variable.
type VariableSpec struct {
	Name  string    `yaml:"name" json:"name"`
	Label string    `yaml:"label" json:"label,omitempty"`
	Unit  string    `yaml:"unit" json:"unit,omitempty"`
	Min   float64   `yaml:"min" json:"min"`
	Max   float64   `yaml:"max" json:"max"`
	Sets  []SetSpec `yaml:"sets" json:"sets"`
}

// SetSpec declares a trapezoid by its breakpoints a, b, c, d.
type SetSpec struct {
	Name  string    `yaml:"name" json:"name"`
	Shape []float64 `yaml:"shape" json:"shape"`
}

// ClauseSpec is a "variable is set" proposition.
type ClauseSpec struct {
	Variable string `yaml:"variable" json:"variable"`
	Set      string `yaml:"set" json:"set"`
}

// RuleSpec declares one conjunctive rule.
type RuleSpec struct {
	If          []ClauseSpec `yaml:"if" json:"if"`
	Then        ClauseSpec   `yaml:"then" json:"then"`
	Description string       `yaml:"description" json:"description,omitempty"`
}

// Ruleset is a loaded, validated rule set.
type Ruleset struct {
	Name    string
	Version int
	Engine  *fuzzy.Engine
}

// Default returns the embedded loan-risk rule set.
func Default() (*Ruleset, error) {
	rs, err := Parse(defaultRuleset)
	if err != nil {
		return nil, fmt.Errorf("default rule set: %w", err)
	}
	return rs, nil
}

// Load reads and parses the rule set at path. JSON documents are accepted as YAML.
func Load(path string) (*Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule set %s: %w", path, err)
	}
	rs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("rule set %s: %w", path, err)
	}
	return rs, nil
}

// Parse validates data against the rule set schema, then builds the engine.
// Schema violations and semantic errors (unordered breakpoints, unknown
// variables or sets) both wrap ErrInvalidRuleset.
func Parse(data []byte) (*Ruleset, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrInvalidRuleset, err)
	}

	engine, err := doc.Build()
	if err != nil {
		return nil, err
	}
	return &Ruleset{Name: doc.Name, Version: doc.Version, Engine: engine}, nil
}

func validateSchema(data []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: parse: %w", ErrInvalidRuleset, err)
	}
	// Round-trip through JSON so numbers and maps take the shapes the validator expects.
	encoded, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRuleset, err)
	}
	var doc any
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRuleset, err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRuleset, err)
	}
	return nil
}

// Build turns the document into an engine, validating every reference.
func (d Document) Build() (*fuzzy.Engine, error) {
	output, err := d.Output.build()
	if err != nil {
		return nil, err
	}
	inputs := make([]*fuzzy.Variable, 0, len(d.Inputs))
	for _, spec := range d.Inputs {
		v, err := spec.build()
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, v)
	}

	reg, err := fuzzy.NewRegistry(output, inputs...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRuleset, err)
	}

	rules := make([]fuzzy.Rule, len(d.Rules))
	for i, r := range d.Rules {
		antecedents := make([]fuzzy.Clause, len(r.If))
		for j, c := range r.If {
			antecedents[j] = fuzzy.Clause(c)
		}
		rules[i] = fuzzy.Rule{
			Antecedents: antecedents,
			Consequent:  fuzzy.Clause(r.Then),
			Description: r.Description,
		}
	}

	engine, err := fuzzy.NewEngine(reg, rules...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRuleset, err)
	}
	return engine, nil
}

func (s VariableSpec) build() (*fuzzy.Variable, error) {
	sets := make([]fuzzy.Set, len(s.Sets))
	for i, set := range s.Sets {
		if len(set.Shape) != 4 {
			return nil, fmt.Errorf("%w: variable %s set %s: shape needs 4 breakpoints, got %d",
				ErrInvalidRuleset, s.Name, set.Name, len(set.Shape))
		}
		shape, err := fuzzy.NewTrapezoid(set.Shape[0], set.Shape[1], set.Shape[2], set.Shape[3])
		if err != nil {
			return nil, fmt.Errorf("%w: variable %s set %s: %w", ErrInvalidRuleset, s.Name, set.Name, err)
		}
		sets[i] = fuzzy.Set{Name: set.Name, Shape: shape}
	}

	v, err := fuzzy.NewVariable(s.Name, s.Min, s.Max, sets, fuzzy.WithLabel(s.Label), fuzzy.WithUnit(s.Unit))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRuleset, err)
	}
	return v, nil
}
