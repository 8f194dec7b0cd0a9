package setup

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AISide names which side(s) the search agent plays.
type AISide string

const (
	AIBoth     AISide = "both"
	AIAttacker AISide = "attacker"
	AIDefender AISide = "defender"
)

// Config holds the runtime settings. Fields left unset in the YAML file or
// on the command line keep their defaults.
type Config struct {
	// TestMode runs every scenario from ScenarioFile back to back with the
	// search agent on both sides instead of starting an interactive game.
	TestMode bool `yaml:"test_mode"`
	// MaxMoves is the full-move budget. A game ends in a draw once both
	// sides have moved this many times.
	MaxMoves int `yaml:"max_moves"`
	// AISide selects which side the search agent plays in interactive mode.
	AISide AISide `yaml:"ai_side"`
	// SearchPly bounds the lookahead depth of the search agents.
	SearchPly int `yaml:"search_ply"`
	// Seed fixes the tie-breaking randomness. Zero seeds from the clock.
	Seed uint64 `yaml:"seed"`
	// ScenarioFile is the scenario list consumed by test mode.
	ScenarioFile string `yaml:"scenario_file"`
	// ResultFile receives the plain-text board transcript.
	ResultFile string `yaml:"result_file"`
	// RecordDir is the root directory for per-game CSV records.
	RecordDir string `yaml:"record_dir"`
}

func DefaultConfig() Config {
	return Config{
		MaxMoves:     35,
		AISide:       AIBoth,
		SearchPly:    4,
		ScenarioFile: "testCase.txt",
		ResultFile:   "gameResult.txt",
		RecordDir:    "records",
	}
}

// LoadConfig overlays the YAML file at path onto the defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}
	return config, nil
}

// MaxPly converts the full-move budget into the ply budget: each side gets
// MaxMoves moves.
func (c Config) MaxPly() int {
	return c.MaxMoves * 2
}

func (c Config) Validate() error {
	if c.MaxMoves <= 0 {
		return fmt.Errorf("max_moves must be positive, got %d", c.MaxMoves)
	}
	if c.SearchPly <= 0 {
		return fmt.Errorf("search_ply must be positive, got %d", c.SearchPly)
	}
	switch c.AISide {
	case AIBoth, AIAttacker, AIDefender:
	default:
		return fmt.Errorf("ai_side must be one of both, attacker, defender; got %q", c.AISide)
	}
	return nil
}
