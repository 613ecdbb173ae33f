package lexergen

import "github.com/projectdiscovery/gologger/levels"

// Config tunes the pipeline's optional stages and diagnostics.
type Config struct {
	// SkipMinimization builds and shapes the raw subset-construction DFA
	// without running Hopcroft partition refinement first. Off by
	// default: a generated scanner built from an unminimized DFA still
	// behaves correctly, it is just larger than it needs to be.
	// Default: false
	SkipMinimization bool

	// LogLevel caps the verbosity of the stage diagnostics Generate logs
	// through gologger.DefaultLogger. Default: levels.LevelInfo
	LogLevel levels.Level
}

// DefaultConfig returns the configuration Generate uses when called via
// the package-level helpers.
func DefaultConfig() Config {
	return Config{
		SkipMinimization: false,
		LogLevel:         levels.LevelInfo,
	}
}
