// Package tokens provides LLM token counters backed by tiktoken or a
// HuggingFace tokenizer.
package tokens

import (
	"strings"

	tiktoken "github.com/pkoukk/tiktoken-go"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
	hf "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
)

// Tokenizer kinds.
const (
	Tiktoken    = "tiktoken"
	HuggingFace = "huggingface"
)

const (
	DefaultTiktokenModel = "gpt-4o"
	DefaultHFModel       = "gpt2"
)

// Counter counts the tokens in a piece of text.
type Counter interface {
	CountTokens(text string) int
}

// Options selects and configures a tokenizer.
type Options struct {
	Kind  string // tiktoken or huggingface
	Model string // model name; empty selects the kind's default
	File  string // local tokenizer.json, huggingface only
}

// --- tiktoken ---

type TiktokenCounter struct {
	ttk *tiktoken.Tiktoken
}

func (c *TiktokenCounter) CountTokens(text string) int {
	if c == nil || c.ttk == nil {
		return 0
	}
	return len(c.ttk.EncodeOrdinary(text))
}

// --- HuggingFace (sugarme) ---

type HFCounter struct {
	htk *hf.Tokenizer
}

func (c *HFCounter) CountTokens(text string) int {
	if c == nil || c.htk == nil {
		return 0
	}
	en, err := c.htk.EncodeSingle(text)
	if err != nil {
		logger.Warn("HuggingFace tokenizer failed to encode text", "error", err.Error())
		return 0
	}
	return len(en.Tokens)
}

// Kind normalizes a tokenizer name, accepting "hf" for huggingface.
func Kind(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", Tiktoken:
		return Tiktoken, nil
	case HuggingFace, "hf":
		return HuggingFace, nil
	default:
		return "", serr.F("unsupported tokenizer type %q, use 'tiktoken' or 'huggingface'", name)
	}
}

// Load builds the counter described by opts. HuggingFace models not found
// locally are downloaded into the sugarme cache.
func Load(opts Options) (Counter, error) {
	kind, err := Kind(opts.Kind)
	if err != nil {
		return nil, err
	}
	logger.Debug("Initializing tokenizer", "type", kind, "model", opts.Model, "file", opts.File)

	if kind == HuggingFace {
		return loadHuggingFace(opts)
	}
	return loadTiktoken(opts.Model)
}

func loadTiktoken(model string) (*TiktokenCounter, error) {
	if model == "" {
		model = DefaultTiktokenModel
	}

	tke, err := tiktoken.EncodingForModel(model)
	if err != nil {
		logger.Warn("Tiktoken model not found, falling back to default",
			"model", model, "default", DefaultTiktokenModel, "error", err.Error())
		tke, err = tiktoken.EncodingForModel(DefaultTiktokenModel)
		if err != nil {
			return nil, serr.Wrap(err, "failed to get tiktoken encoding for "+DefaultTiktokenModel)
		}
	}
	return &TiktokenCounter{ttk: tke}, nil
}

func loadHuggingFace(opts Options) (*HFCounter, error) {
	path := opts.File
	if path == "" {
		model := opts.Model
		if model == "" {
			model = DefaultHFModel
		}
		logger.Info("Loading HuggingFace tokenizer (this may download files)", "model", model)

		cached, err := hf.CachedPath(model, "tokenizer.json")
		if err != nil {
			return nil, serr.Wrap(err, "failed to get cache path for model "+model)
		}
		path = cached
	}

	htk, err := pretrained.FromFile(path)
	if err != nil {
		return nil, serr.Wrap(err, "failed to load tokenizer from "+path)
	}
	return &HFCounter{htk: htk}, nil
}
