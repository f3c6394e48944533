package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// DefaultGraph is the graph name used when a scenario does not set one
const DefaultGraph = "main"

// Scenario is a scripted session run against a fresh world and domain service
type Scenario struct {
	// Name uniquely identifies this scenario; golden files are keyed by it
	Name string `yaml:"name"`

	// Description explains what this scenario validates
	Description string `yaml:"description"`

	// Graph is the active domain graph; node and edge names are used as IDs
	Graph string `yaml:"graph,omitempty"`

	// Steps run in order; the world settles after each one
	Steps []Step `yaml:"steps"`

	// Expect is checked against the final snapshot
	Expect Expect `yaml:"expect"`
}

// Step is exactly one of: a raw inbound event, a domain operation, an input intent, or extra ticks
type Step struct {
	// Event injects an inbound event by registry name, bypassing the domain
	Event   string         `yaml:"event,omitempty"`
	Payload map[string]any `yaml:"payload,omitempty"`

	// Do runs a domain operation, see Op* constants
	Do string `yaml:"do,omitempty"`

	// Input submits an intent to the interaction system: click, drag, key
	Input string `yaml:"input,omitempty"`

	// Ticks advances the scheduler without doing anything else
	Ticks int `yaml:"ticks,omitempty"`

	Node     string            `yaml:"node,omitempty"`
	Nodes    []string          `yaml:"nodes,omitempty"`
	Edge     string            `yaml:"edge,omitempty"`
	Source   string            `yaml:"source,omitempty"`
	Target   string            `yaml:"target,omitempty"`
	Position []float64         `yaml:"position,omitempty"`
	Label    string            `yaml:"label,omitempty"`
	Weight   float64           `yaml:"weight,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
	On       bool              `yaml:"on,omitempty"`

	Exclusive bool `yaml:"exclusive,omitempty"`

	At    []int  `yaml:"at,omitempty"`
	From  []int  `yaml:"from,omitempty"`
	To    []int  `yaml:"to,omitempty"`
	Key   string `yaml:"key,omitempty"`
	Shift bool   `yaml:"shift,omitempty"`
}

// Domain operations
const (
	OpCreateNode  = "create_node"
	OpRemoveNode  = "remove_node"
	OpConnect     = "connect"
	OpRemoveEdge  = "remove_edge"
	OpMove        = "move"
	OpSetMetadata = "set_metadata"
	OpHighlight   = "highlight"
	OpWeight      = "weight"
	OpSelect      = "select"
	OpLayout      = "layout"
	OpClear       = "clear"
)

// Input intents
const (
	InputClick = "click"
	InputDrag  = "drag"
	InputKey   = "key"
)

// Expect holds optional checks; unset fields are not checked
type Expect struct {
	Nodes       *int                 `yaml:"nodes,omitempty"`
	Edges       *int                 `yaml:"edges,omitempty"`
	Selected    *[]string            `yaml:"selected,omitempty"`
	Highlighted *[]string            `yaml:"highlighted,omitempty"`
	Positions   map[string][]float64 `yaml:"positions,omitempty"`
	Labels      map[string]string    `yaml:"labels,omitempty"`
	Weights     map[string]float64   `yaml:"weights,omitempty"`
	Sounds      *[]string            `yaml:"sounds,omitempty"`
	Rejected    *int                 `yaml:"rejected,omitempty"`
}

// LoadScenario reads and validates a scenario YAML file
// Unknown fields are rejected to catch typos
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes and validates scenario YAML
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := validateScenario(&s); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	if s.Graph == "" {
		s.Graph = DefaultGraph
	}
	return &s, nil
}

// LoadDir loads every .yaml/.yml scenario in dir, sorted by file name
func LoadDir(dir string) ([]*Scenario, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, st := range s.Steps {
		kinds := 0
		if st.Event != "" {
			kinds++
		}
		if st.Do != "" {
			kinds++
		}
		if st.Input != "" {
			kinds++
		}
		if st.Ticks > 0 {
			kinds++
		}
		if kinds != 1 {
			return fmt.Errorf("step %d: exactly one of event, do, input, ticks is required", i)
		}
	}
	return nil
}
