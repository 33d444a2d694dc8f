package pipeline_test

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/chopinballadeno4/static-program-analysis/internal/pipeline"
	"github.com/chopinballadeno4/static-program-analysis/internal/sign"
)

// program groups one .tip source with its expected .signs assertions, as
// parsed out of the shared golden archive.
type program struct {
	source string
	signs  map[string]sign.Sign
}

func loadPrograms(t *testing.T) map[string]*program {
	t.Helper()
	data, err := os.ReadFile("../../testdata/golden/programs.txtar")
	require.NoError(t, err)

	archive := txtar.Parse(data)
	programs := map[string]*program{}
	get := func(name string) *program {
		if p, ok := programs[name]; ok {
			return p
		}
		p := &program{signs: map[string]sign.Sign{}}
		programs[name] = p
		return p
	}

	for _, f := range archive.Files {
		base, ext, ok := strings.Cut(f.Name, ".")
		require.True(t, ok, "golden file name %q must have an extension", f.Name)
		p := get(base)
		switch ext {
		case "tip":
			p.source = string(f.Data)
		case "signs":
			for _, line := range strings.Split(strings.TrimSpace(string(f.Data)), "\n") {
				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				name, want, ok := strings.Cut(line, ":")
				require.True(t, ok, "malformed signs line %q in %s", line, f.Name)
				p.signs[name] = parseSign(t, want)
			}
		case "types":
			// Reserved for a future type-relation assertion; the straight-line
			// fixture carries one today only to document the expected shape.
		default:
			t.Fatalf("unrecognized golden file extension %q", f.Name)
		}
	}
	return programs
}

func parseSign(t *testing.T, s string) sign.Sign {
	t.Helper()
	switch s {
	case "0":
		return sign.Zero
	case "-":
		return sign.Neg
	case "+":
		return sign.Pos
	case "top":
		return sign.Top
	case "bottom":
		return sign.Bottom
	default:
		t.Fatalf("unknown sign literal %q", s)
		return sign.Bottom
	}
}

func TestGoldenProgramsSignAnalysis(t *testing.T) {
	for name, p := range loadPrograms(t) {
		p := p
		t.Run(name, func(t *testing.T) {
			require.NotEmpty(t, p.source, "missing .tip source for %s", name)

			ctx := pipeline.NewContext(name+".tip", p.source)
			ctx = pipeline.Default().Run(ctx)
			require.Empty(t, ctx.Errors, "%s: unexpected analyzer errors", name)
			require.NotNil(t, ctx.Signs)

			exit := ctx.Signs.At(ctx.CFG.Exit)
			for varName, want := range p.signs {
				require.Equalf(t, want, exit.Get(varName),
					"%s: expected %s to have sign %s at exit, got %s",
					name, varName, want, exit.Get(varName))
			}
		})
	}
}
