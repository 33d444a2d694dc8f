// Command tip runs the TIP static analyzer over one source file or every
// .tip file in a directory, printing the solved type relation and the
// per-program-point sign stores.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/chopinballadeno4/static-program-analysis/internal/config"
	"github.com/chopinballadeno4/static-program-analysis/internal/modules"
	"github.com/chopinballadeno4/static-program-analysis/internal/pipeline"
	"github.com/chopinballadeno4/static-program-analysis/internal/printer"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [--json] [--no-color] <file.tip | dir>\n", filepath.Base(os.Args[0]))
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	jsonOut := false
	noColor := false
	var target string

	for _, a := range args {
		switch a {
		case "--json":
			jsonOut = true
		case "--no-color":
			noColor = true
		default:
			if target != "" {
				usage()
				return 2
			}
			target = a
		}
	}
	if target == "" {
		usage()
		return 2
	}

	sources, err := modules.Load(target)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	isTTY := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	color := isTTY && !noColor

	exit := 0
	for _, src := range sources {
		proj, err := config.LoadProject(filepath.Dir(src.Path))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			exit = 1
			continue
		}

		ctx := pipeline.NewContext(src.Path, src.Text)
		ctx = pipeline.Default().Run(ctx)

		if len(ctx.Errors) > 0 {
			for _, e := range ctx.Errors {
				fmt.Fprintf(os.Stderr, "%s: %s\n", src.Path, e.Error())
			}
			exit = 1
			continue
		}

		if jsonOut {
			writeJSON(ctx)
			continue
		}
		writeText(src.Path, ctx, proj, color && proj.Color)
	}
	return exit
}

func writeText(path string, ctx *pipeline.Context, proj config.Project, color bool) {
	p := printer.New()
	if proj.PrintTypes && ctx.UnionFind != nil {
		p.TypeRelation(ctx.UnionFind)
	}
	if proj.PrintSigns && ctx.CFG != nil && ctx.Signs != nil {
		p.SignStores(ctx.CFG, ctx.Signs)
	}
	fmt.Printf("%s\n%s", bold(fmt.Sprintf("== %s ==", path), color), p.String())
}

func bold(s string, color bool) string {
	if !color {
		return s
	}
	return "\033[1m" + s + "\033[22m"
}

func writeJSON(ctx *pipeline.Context) {
	// A minimal, dependency-free encoding: the type relation and sign
	// stores rendered as text, quoted into a single JSON string field.
	// Structured per-field JSON is left to a future CLI revision.
	p := printer.New()
	if ctx.UnionFind != nil {
		p.TypeRelation(ctx.UnionFind)
	}
	if ctx.CFG != nil && ctx.Signs != nil {
		p.SignStores(ctx.CFG, ctx.Signs)
	}
	fmt.Printf("{\"file\":%q,\"runId\":%q,\"report\":%q}\n", ctx.FilePath, ctx.RunID, p.String())
}
