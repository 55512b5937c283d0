package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rebalancer/config"
	"github.com/google/subcommands"
)

type keyCmd struct {
	provider string
}

func (*keyCmd) Name() string     { return "key" }
func (*keyCmd) Synopsis() string { return "save, show or clear the LLM API key" }
func (*keyCmd) Usage() string {
	return `rebal key [-provider groq|gemini] set <key> | clear | show

  Manages the API key used to detect columns with an LLM. The key is saved in
  the file given by -config-file. A key in the environment (GROQ_API_KEY,
  GEMINI_API_KEY) takes precedence over the saved one.
`
}

func (c *keyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.provider, "provider", "", "LLM provider (default $REBAL_LLM_PROVIDER or groq)")
}

func (c *keyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: expected set, clear or show")
		return subcommands.ExitUsageError
	}
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return subcommands.ExitFailure
	}
	provider := c.provider
	if provider == "" {
		provider = a.settings.Provider
	}
	if provider != config.Groq && provider != config.Gemini {
		fmt.Fprintf(os.Stderr, "Error: unknown provider %q\n", provider)
		return subcommands.ExitUsageError
	}

	switch f.Arg(0) {
	case "set":
		if f.NArg() != 2 || f.Arg(1) == "" {
			fmt.Fprintln(os.Stderr, "Error: expected the key to save")
			return subcommands.ExitUsageError
		}
		if err := a.store.SetAPIKey(provider, f.Arg(1)); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving key: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(out, "Saved %s API key to %s\n", provider, a.store.Path)

	case "clear":
		if err := a.store.ClearAPIKey(provider); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing key: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(out, "Cleared %s API key from %s\n", provider, a.store.Path)

	case "show":
		saved, err := a.store.APIKey(provider)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading key: %v\n", err)
			return subcommands.ExitFailure
		}
		key := a.settings.GroqAPIKey
		if provider == config.Gemini {
			key = a.settings.GeminiAPIKey
		}
		switch {
		case key == "":
			fmt.Fprintf(out, "No %s API key, columns are detected with patterns\n", provider)
		case key == saved:
			fmt.Fprintf(out, "%s API key %s (from %s)\n", provider, mask(key), a.store.Path)
		default:
			fmt.Fprintf(out, "%s API key %s (from environment)\n", provider, mask(key))
		}

	default:
		fmt.Fprintf(os.Stderr, "Error: unknown action %q, expected set, clear or show\n", f.Arg(0))
		return subcommands.ExitUsageError
	}
	return subcommands.ExitSuccess
}

// mask hides all but the ends of a secret.
func mask(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
