package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"arbor/internal/logging"
	"arbor/lsys/config"
)

var rootCmd = &cobra.Command{
	Use:   "arbor",
	Short: "Arbor grows an L-system one symbol per tick",
	Long: `Arbor expands a bracketed L-system grammar and replays it through a 3D turtle,
one symbol per frame, re-expanding the grammar whenever playback reaches the end.`,
	SilenceUsage: true,
	RunE:         runWindow,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringP("config", "c", "", "YAML config file (defaults are used when empty)")
	f.String("log-level", "", "Log level: debug|info|warn|error")
	f.String("log-json", "", "Also write JSON logs to this file")
	f.String("axiom", "", "Override the axiom")
	f.StringArray("rule", nil, "Override the rules, as SYMBOL=BODY (repeatable)")
	f.Int("generations", 0, "Expansions done before playback starts")
	f.Float64("angle", 0, "Turn angle in degrees")
	f.String("underflow", "", "Pop on an empty stack: ignore|error")
	f.Int("max-generation", 0, "Stop growing after this generation (0 = unlimited)")
	f.Uint64("max-symbols", 0, "Stop growing before exceeding this many symbols (0 = unlimited)")
	f.String("on-limit", "", "At the growth limit: freeze|stop")
	f.String("listen", "", "Serve /state, /segments and /metrics on this address")
}

// loadConfig reads --config and applies every flag the user set on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	f := cmd.Flags()
	cfg := config.Default()
	if path, _ := f.GetString("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, err
		}
	}

	if f.Changed("log-level") {
		cfg.Log.Level, _ = f.GetString("log-level")
	}
	if f.Changed("log-json") {
		cfg.Log.JSONFile, _ = f.GetString("log-json")
	}
	if f.Changed("axiom") {
		cfg.Axiom, _ = f.GetString("axiom")
	}
	if f.Changed("rule") {
		lines, _ := f.GetStringArray("rule")
		rules, err := parseRuleFlags(lines)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Rules = rules
	}
	if f.Changed("generations") {
		cfg.Generations, _ = f.GetInt("generations")
	}
	if f.Changed("angle") {
		cfg.Angle, _ = f.GetFloat64("angle")
	}
	if f.Changed("underflow") {
		cfg.Underflow, _ = f.GetString("underflow")
	}
	if f.Changed("max-generation") {
		cfg.Limits.MaxGeneration, _ = f.GetInt("max-generation")
	}
	if f.Changed("max-symbols") {
		cfg.Limits.MaxSymbols, _ = f.GetUint64("max-symbols")
	}
	if f.Changed("on-limit") {
		cfg.Limits.OnLimit, _ = f.GetString("on-limit")
	}
	if f.Changed("listen") {
		cfg.Listen, _ = f.GetString("listen")
	}
	return cfg, cfg.Validate()
}

func parseRuleFlags(lines []string) (map[string]string, error) {
	rules := make(map[string]string, len(lines))
	for _, line := range lines {
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("rule %q: expected SYMBOL=BODY", line)
		}
		if _, dup := rules[k]; dup {
			return nil, fmt.Errorf("rule %q: duplicate symbol %q", line, k)
		}
		rules[k] = v
	}
	return rules, nil
}

func newLogger(cfg config.Config) (*slog.Logger, func() error, error) {
	lvl, err := cfg.LogLevel()
	if err != nil {
		return nil, nil, err
	}
	return logging.New(logging.Options{Level: lvl, JSONFile: cfg.Log.JSONFile})
}

// ignoreQuit treats a clean shutdown as success.
func ignoreQuit(err error, quit ...error) error {
	for _, q := range quit {
		if errors.Is(err, q) {
			return nil
		}
	}
	return err
}
