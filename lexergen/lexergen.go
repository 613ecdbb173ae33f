package lexergen

import (
	"github.com/projectdiscovery/gologger"

	"github.com/OlegKalashnikov2001/lexergen/dfa"
	"github.com/OlegKalashnikov2001/lexergen/encoding"
	"github.com/OlegKalashnikov2001/lexergen/minimize"
	"github.com/OlegKalashnikov2001/lexergen/nfa"
	"github.com/OlegKalashnikov2001/lexergen/ruledef"
	"github.com/OlegKalashnikov2001/lexergen/shape"
)

// Generate runs the full pipeline over a rule-definition source: parse,
// build the NFA, determinize, minimize (unless Config.SkipMinimization
// is set), and shape. It returns the first stage's error, wrapped in a
// *StageError naming that stage; there is no partial Program on failure.
func Generate(source string, enc *encoding.Encoding, cfg Config) (*shape.Program, error) {
	gologger.DefaultLogger.SetMaxLevel(cfg.LogLevel)

	file, err := ruledef.Parse(source)
	if err != nil {
		return nil, wrapStage("parse", err)
	}
	gologger.Debug().Msgf("lexergen: parsed %d state block(s)", len(file.States))

	n, err := nfa.Build(file, enc)
	if err != nil {
		return nil, wrapStage("nfa", err)
	}
	gologger.Debug().Msgf("lexergen: built nfa with %d state(s)", n.Len())

	d, err := dfa.Build(n)
	if err != nil {
		return nil, wrapStage("dfa", err)
	}
	gologger.Debug().Msgf("lexergen: determinized to %d dfa state(s)", d.Len())

	if !cfg.SkipMinimization {
		before := d.Len()
		d, err = minimize.Minimize(d)
		if err != nil {
			return nil, wrapStage("minimize", err)
		}
		gologger.Debug().Msgf("lexergen: minimized %d dfa state(s) to %d", before, d.Len())
	} else {
		gologger.Debug().Msg("lexergen: skipping minimization (Config.SkipMinimization)")
	}

	prog, err := shape.Shape(d, enc)
	if err != nil {
		return nil, wrapStage("shape", err)
	}
	gologger.Info().Msgf("lexergen: shaped %d state(s), %d jump table entries", len(prog.States), len(prog.Jumps))

	return prog, nil
}

// MustGenerate is Generate for callers who would panic on error anyway
// (build scripts, generated `main` wrappers over a fixed grammar).
func MustGenerate(source string, enc *encoding.Encoding, cfg Config) *shape.Program {
	prog, err := Generate(source, enc, cfg)
	if err != nil {
		panic("lexergen: Generate: " + err.Error())
	}
	return prog
}
