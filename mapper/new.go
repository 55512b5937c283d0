package mapper

import (
	"context"
	"net/http"

	"github.com/etnz/rebalancer/config"
	"github.com/rs/zerolog"
)

// New returns the column mapper configured by s.
//
// Without an API key for the selected provider only the pattern heuristic is
// used. Otherwise the LLM is asked first.
func New(ctx context.Context, s config.Settings, log zerolog.Logger) (ColumnMapper, error) {
	log = log.With().Str("component", "mapper").Logger()
	if s.APIKey() == "" {
		log.Debug().Str("provider", s.Provider).Msg("no API key, using pattern column detection")
		return PatternMapper{}, nil
	}

	var base http.RoundTripper
	if s.LLMCache {
		base = &DiskCache{Dir: s.CacheDir, Log: log}
	}
	httpClient := NewHTTPClient(base, s.LLMTimeout, log)
	var completer Completer
	switch s.Provider {
	case config.Gemini:
		gc, err := NewGeminiCompleter(ctx, s.GeminiAPIKey, s.GeminiModel, httpClient)
		if err != nil {
			return nil, err
		}
		completer = gc
	default:
		completer = NewOpenAICompleter(s.GroqAPIKey, s.GroqBaseURL, s.GroqModel, httpClient)
	}

	return Fallback{
		Primary:   LLMMapper{Name: s.Provider, Completer: completer, Log: log},
		Secondary: PatternMapper{},
		Log:       log,
	}, nil
}
