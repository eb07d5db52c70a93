package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure
type Config struct {
	Seed        int64             `yaml:"seed"`
	Encoder     EncoderConfig     `yaml:"encoder"`
	GA          GAConfig          `yaml:"ga"`
	Termination TerminationConfig `yaml:"termination"`
	Logging     LogConfig         `yaml:"logging"`
}

// EncoderConfig selects the optimization problem
type EncoderConfig struct {
	Problem string `yaml:"problem"` // onemax|targetsum
	Length  int    `yaml:"length"`
	Min     int64  `yaml:"min"`    // targetsum
	Max     int64  `yaml:"max"`    // targetsum
	Target  int64  `yaml:"target"` // targetsum
}

// DecayConfig names a decay schedule; an empty type disables it
type DecayConfig struct {
	Type string  `yaml:"type"` // lin|pol|exp
	Rate float64 `yaml:"rate"`
}

// SelectionConfig selects the selection scheme
type SelectionConfig struct {
	Scheme         string `yaml:"scheme"` // prop|rank|tournament
	TournamentSize int    `yaml:"tournament_size"`
	Chosen         int    `yaml:"chosen"`
	Inner          string `yaml:"inner"` // prop|rank, tournament only
}

// MutatorConfig selects the mutation operator
type MutatorConfig struct {
	Type   string `yaml:"type"` // point|swap|shuffle|inversion
	Points int    `yaml:"points"`
}

// GAConfig defines genetic algorithm parameters. Nil elitism and bias
// values disable the corresponding mechanism.
type GAConfig struct {
	InitPopSize              int             `yaml:"init_pop_size"`
	MaxPopSize               int             `yaml:"max_pop_size"`
	ExpansionFactor          float64         `yaml:"expansion_factor"`
	SurvivalFactor           float64         `yaml:"survival_factor"`
	SurvivalDecay            DecayConfig     `yaml:"survival_decay"`
	SurvivalElitism          *float64        `yaml:"survival_elitism"`
	Replacement              bool            `yaml:"replacement"`
	ReproductionElitism      *float64        `yaml:"reproduction_elitism"`
	ReproductionElitismDecay DecayConfig     `yaml:"reproduction_elitism_decay"`
	MutationFactor           float64         `yaml:"mutation_factor"`
	MutationDecay            DecayConfig     `yaml:"mutation_decay"`
	DiversityBias            *float64        `yaml:"diversity_bias"`
	DiversityBiasDecay       DecayConfig     `yaml:"diversity_bias_decay"`
	Selection                SelectionConfig `yaml:"selection"`
	Crossover                string          `yaml:"crossover"` // point|split|uniform
	Mutator                  MutatorConfig   `yaml:"mutator"`
}

// TerminationConfig defines the stopping conditions
type TerminationConfig struct {
	MaxGenerations     int      `yaml:"max_generations"`
	FitnessThreshold   *float64 `yaml:"fitness_threshold"`
	StagnationLimit    int      `yaml:"stagnation_limit"`
	StagnationFraction *float64 `yaml:"stagnation_fraction"`
}

// LogConfig defines reporting outputs
type LogConfig struct {
	CSVPath     string `yaml:"csv_path"`
	JSONPath    string `yaml:"json_path"`
	MetricsAddr string `yaml:"metrics_addr"` // optional prometheus listen address
}

// Load reads a YAML config file and returns a Config
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Seed == 0 {
		cfg.Seed = 1337
	}
	if cfg.Encoder.Problem == "" {
		cfg.Encoder.Problem = "onemax"
	}
	if cfg.Encoder.Length == 0 {
		cfg.Encoder.Length = 32
	}
	if cfg.Encoder.Max == 0 && cfg.Encoder.Min == 0 {
		cfg.Encoder.Max = 100
	}
	if cfg.GA.InitPopSize == 0 {
		cfg.GA.InitPopSize = 100
	}
	if cfg.GA.MaxPopSize == 0 {
		cfg.GA.MaxPopSize = 200
	}
	if cfg.GA.ExpansionFactor == 0 {
		cfg.GA.ExpansionFactor = 1.5
	}
	if cfg.GA.SurvivalFactor == 0 {
		cfg.GA.SurvivalFactor = 0.5
	}
	if cfg.GA.MutationFactor == 0 {
		cfg.GA.MutationFactor = 0.1
	}
	if cfg.GA.Selection.Scheme == "" {
		cfg.GA.Selection.Scheme = "prop"
	}
	if cfg.GA.Selection.TournamentSize == 0 {
		cfg.GA.Selection.TournamentSize = 3
	}
	if cfg.GA.Selection.Chosen == 0 {
		cfg.GA.Selection.Chosen = 1
	}
	if cfg.GA.Crossover == "" {
		cfg.GA.Crossover = "point"
	}
	if cfg.GA.Mutator.Type == "" {
		cfg.GA.Mutator.Type = "point"
	}
	if cfg.GA.Mutator.Points == 0 {
		cfg.GA.Mutator.Points = 1
	}
	if cfg.Termination.MaxGenerations == 0 {
		cfg.Termination.MaxGenerations = 100
	}
	if cfg.Logging.CSVPath == "" {
		cfg.Logging.CSVPath = "runs/run.csv"
	}
	if cfg.Logging.JSONPath == "" {
		cfg.Logging.JSONPath = "runs/run.jsonl"
	}
}
