package config

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/cricklet/chessai/internal/evaluation"
	. "github.com/cricklet/chessai/internal/helpers"
	"github.com/cricklet/chessai/internal/rules"
	"github.com/cricklet/chessai/internal/search"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Search     SearchConfig     `yaml:"search"`
	Evaluation EvaluationConfig `yaml:"evaluation"`
	Log        LogConfig        `yaml:"log"`
}

type SearchConfig struct {
	Depth             int  `yaml:"depth" validate:"gte=0,lte=16"`
	PreviousBestFirst bool `yaml:"previous_best_first"`
}

type PieceValues struct {
	Pawn   int `yaml:"pawn" validate:"gte=0"`
	Knight int `yaml:"knight" validate:"gte=0"`
	Bishop int `yaml:"bishop" validate:"gte=0"`
	Rook   int `yaml:"rook" validate:"gte=0"`
	Queen  int `yaml:"queen" validate:"gte=0"`
	King   int `yaml:"king" validate:"gte=0,lt=100000"`
}

type EvaluationConfig struct {
	PieceValues        PieceValues `yaml:"piece_values"`
	DoubledPawnPenalty int         `yaml:"doubled_pawn_penalty" validate:"gte=0"`
	MobilityWeight     int         `yaml:"mobility_weight" validate:"gte=0"`
}

type LogConfig struct {
	Verbose         bool `yaml:"verbose"`
	DebugSearchTree bool `yaml:"debug_search_tree"`
}

var validate = validator.New()

func Default() Config {
	e := evaluation.DefaultConfig()
	return Config{
		Search: SearchConfig{
			Depth: 3,
		},
		Evaluation: EvaluationConfig{
			PieceValues: PieceValues{
				Pawn:   int(e.PieceValues[rules.Pawn]),
				Knight: int(e.PieceValues[rules.Knight]),
				Bishop: int(e.PieceValues[rules.Bishop]),
				Rook:   int(e.PieceValues[rules.Rook]),
				Queen:  int(e.PieceValues[rules.Queen]),
				King:   int(e.PieceValues[rules.King]),
			},
			DoubledPawnPenalty: int(e.DoubledPawnPenalty),
			MobilityWeight:     int(e.MobilityWeight),
		},
	}
}

// Parse overlays the YAML document in data on the defaults. Unknown keys
// are rejected.
func Parse(data []byte) (Config, Error) {
	c := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, Errorf("invalid config: %w", err)
	}

	if err := c.Validate(); err.HasError() {
		return Config{}, err
	}
	return c, NilError
}

func Load(path string) (Config, Error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, Wrap(err)
	}
	return Parse(data)
}

func (c Config) Validate() Error {
	if err := validate.Struct(c); err != nil {
		return Errorf("invalid config: %w", err)
	}
	if err := c.EvaluatorConfig().Validate(); err.HasError() {
		return Join(Errorf("invalid evaluation config"), err)
	}
	return NilError
}

func (c Config) Marshal() ([]byte, Error) {
	return WrapReturn(yaml.Marshal(c))
}

func (c Config) EvaluatorConfig() evaluation.Config {
	result := evaluation.Config{
		DoubledPawnPenalty: evaluation.Score(c.Evaluation.DoubledPawnPenalty),
		MobilityWeight:     evaluation.Score(c.Evaluation.MobilityWeight),
	}
	values := c.Evaluation.PieceValues
	result.PieceValues[rules.Pawn] = evaluation.Score(values.Pawn)
	result.PieceValues[rules.Knight] = evaluation.Score(values.Knight)
	result.PieceValues[rules.Bishop] = evaluation.Score(values.Bishop)
	result.PieceValues[rules.Rook] = evaluation.Score(values.Rook)
	result.PieceValues[rules.Queen] = evaluation.Score(values.Queen)
	result.PieceValues[rules.King] = evaluation.Score(values.King)
	return result
}

func (c Config) SearcherOptions(logger Logger) []search.SearchOption {
	opts := []search.SearchOption{
		search.WithEvaluator{Evaluator: evaluation.NewEvaluator(c.EvaluatorConfig())},
	}
	if c.Log.Verbose && logger != nil {
		opts = append(opts, search.WithLogger{Logger: logger})
	}
	if c.Search.PreviousBestFirst {
		opts = append(opts, search.WithPreviousBestFirst{})
	}
	if c.Log.DebugSearchTree {
		opts = append(opts, search.WithDebugSearchTree{})
	}
	return opts
}

func (c Config) NewSearcher(logger Logger) *search.Searcher {
	return search.NewSearcher(c.SearcherOptions(logger)...)
}
