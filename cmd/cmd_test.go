package cmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	sourceCSV = "Symbol,Quantity,Avg Price\nAAA,10,100\nBBB,30,50\nSGBJUN29,5,5000\n"
	targetCSV = "Client,X1\n\nSymbol,Quantity\nAAA,20\nCCC,10\nAAA,5\n"
)

// setup isolates the commands from the user environment and returns a folder
// holding source.csv and target.csv.
func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("REBAL_LLM_PROVIDER", "groq")
	t.Setenv("REBAL_LOG_LEVEL", "error")
	t.Setenv("REBAL_CURRENCY", "USD")
	*configFile = filepath.Join(dir, "config.json")
	t.Cleanup(func() { *configFile = "" })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "source.csv"), []byte(sourceCSV), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "target.csv"), []byte(targetCSV), 0o600))
	return dir
}

// run executes c with args and returns its status and report output.
func run(t *testing.T, c subcommands.Command, args ...string) (subcommands.ExitStatus, string) {
	t.Helper()
	var buf bytes.Buffer
	out = &buf
	t.Cleanup(func() { out = os.Stdout })

	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	require.NoError(t, f.Parse(args))
	return c.Execute(context.Background(), f), buf.String()
}

func TestDriftCmd(t *testing.T) {
	dir := setup(t)
	output := filepath.Join(dir, "drift.xlsx")

	status, report := run(t, &driftCmd{}, "-o", output, filepath.Join(dir, "source.csv"), filepath.Join(dir, "target.csv"))
	require.Equal(t, subcommands.ExitSuccess, status)

	assert.Contains(t, report, "Portfolio Drift")
	assert.Contains(t, report, "Missing") // BBB
	assert.Contains(t, report, "Extra")   // CCC
	assert.Contains(t, report, "+41.67%") // AAA 25% -> 66.67%
	assert.NotContains(t, report, "SGBJUN29")
	assert.FileExists(t, output)
}

func TestDriftCmd_Usage(t *testing.T) {
	dir := setup(t)
	status, _ := run(t, &driftCmd{}, filepath.Join(dir, "source.csv"))
	assert.Equal(t, subcommands.ExitUsageError, status)

	status, _ = run(t, &driftCmd{}, filepath.Join(dir, "source.csv"), filepath.Join(dir, "missing.csv"))
	assert.Equal(t, subcommands.ExitFailure, status)
}

func TestRebalanceCmd(t *testing.T) {
	dir := setup(t)
	output := filepath.Join(dir, "actions.csv")

	status, report := run(t, &rebalanceCmd{}, "-o", output, filepath.Join(dir, "source.csv"), filepath.Join(dir, "target.csv"))
	require.Equal(t, subcommands.ExitSuccess, status)

	assert.Contains(t, report, "0.7500")
	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "Symbol,Action,Action Qty,Source Qty,Target Qty,Ideal Qty,Exact Action Qty\n"+
		"BBB,Buy,23,30,0,23,22.5\n"+
		"AAA,Sell,-13,10,20,8,-12.5\n"+
		"CCC,Sell,-10,0,10,0,-10\n", string(content))
}

func TestInvestCmd(t *testing.T) {
	dir := setup(t)

	status, report := run(t, &investCmd{}, "-amount", "10000", filepath.Join(dir, "source.csv"))
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, report, "Fresh Investment Plan")
	assert.Contains(t, report, "$10,000.00")
	assert.Contains(t, report, "150")
}

func TestInvestCmd_ManualPrices(t *testing.T) {
	dir := setup(t)
	path := filepath.Join(dir, "noprice.csv")
	require.NoError(t, os.WriteFile(path, []byte("Symbol,Quantity\naaa,10\nBBB,30\n"), 0o600))

	status, _ := run(t, &investCmd{}, "-amount", "10000", "-price", "AAA=100", path)
	assert.Equal(t, subcommands.ExitUsageError, status, "BBB has no price")

	status, report := run(t, &investCmd{}, "-amount", "10000", "-price", "aaa=100", "-price", "BBB=50", path)
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, report, "150")
}

func TestInvestCmd_Usage(t *testing.T) {
	dir := setup(t)
	status, _ := run(t, &investCmd{}, filepath.Join(dir, "source.csv"))
	assert.Equal(t, subcommands.ExitUsageError, status, "missing amount")
}

func TestColumnsCmd(t *testing.T) {
	dir := setup(t)

	status, report := run(t, &columnsCmd{}, filepath.Join(dir, "source.csv"))
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, report, "Avg Price")

	status, _ = run(t, &columnsCmd{}, "-symbol-col", "Ticker", filepath.Join(dir, "source.csv"))
	assert.Equal(t, subcommands.ExitFailure, status)
}

func TestKeyCmd(t *testing.T) {
	setup(t)

	status, report := run(t, &keyCmd{}, "show")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, report, "No groq API key")

	status, report = run(t, &keyCmd{}, "set", "gsk_1234567890")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, report, "Saved groq API key")

	status, report = run(t, &keyCmd{}, "show")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, report, "gsk_...7890")
	assert.NotContains(t, report, "1234567890")

	status, _ = run(t, &keyCmd{}, "clear")
	require.Equal(t, subcommands.ExitSuccess, status)
	_, report = run(t, &keyCmd{}, "show")
	assert.Contains(t, report, "No groq API key")

	status, _ = run(t, &keyCmd{}, "-provider", "openai", "show")
	assert.Equal(t, subcommands.ExitUsageError, status)
	status, _ = run(t, &keyCmd{}, "rotate")
	assert.Equal(t, subcommands.ExitUsageError, status)
}

func TestTopicCmd(t *testing.T) {
	setup(t)
	status, report := run(t, &topicCmd{}, "invest")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, report, "-amount")

	status, _ = run(t, &topicCmd{}, "nope")
	assert.Equal(t, subcommands.ExitFailure, status)

	status, report = run(t, &topicCmd{}, "-list")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, report, "rebalance  Rebalance\n")
}

func TestPriceFlag(t *testing.T) {
	p := make(priceFlag)
	require.NoError(t, p.Set("infy=1,400.5"))
	require.NoError(t, p.Set("TCS=3000"))
	assert.Equal(t, "INFY=1400.5,TCS=3000", p.String())

	assert.Error(t, p.Set("INFY"))
	assert.Error(t, p.Set("=10"))
	assert.Error(t, p.Set("INFY=-1"))
	assert.Error(t, p.Set("INFY=abc"))
}

func TestCompletion(t *testing.T) {
	commander := subcommands.NewCommander(flag.NewFlagSet("rebal", flag.ContinueOnError), "rebal")
	Register(commander)
	var names []string
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		names = append(names, c.Name())
	})
	sort.Strings(names)
	assert.Equal(t, []string{"columns", "drift", "invest", "key", "rebalance", "topic"}, names)

	sub := Completion().Sub
	for _, name := range names {
		assert.Contains(t, sub, name)
	}
}

func TestMask(t *testing.T) {
	assert.Equal(t, "****", mask("short"))
	assert.Equal(t, "abcd...wxyz", mask("abcdefghijklmnopqrstuvwxyz"))
}
