package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/rs/zerolog"
)

// Environment passed to extensions.
const (
	EnvConfigFile = "REBAL_CONFIG_FILE"
	EnvCurrency   = "REBAL_CURRENCY"
	EnvVerbose    = "REBAL_VERBOSE"
)

// RunExtension attempts to find and execute an external rebal-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string, log zerolog.Logger) (bool, int) {
	name := "rebal-" + subcommand

	lp, err := exec.LookPath(name)
	if err != nil {
		log.Debug().Err(err).Str("extension", name).Msg("extension not found in PATH")
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// Pass global flags as environment variables
	cmd.Env = os.Environ()
	if *configFile != "" {
		cmd.Env = append(cmd.Env, EnvConfigFile+"="+*configFile)
	}
	if *currency != "" {
		cmd.Env = append(cmd.Env, EnvCurrency+"="+*currency)
	}
	cmd.Env = append(cmd.Env, EnvVerbose+"="+strconv.FormatBool(*Verbose))

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return true, exitErr.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
