package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"golang.org/x/sync/errgroup"

	"github.com/fractalqb/typeshape/html"
	"github.com/fractalqb/typeshape/linker"
	"github.com/fractalqb/typeshape/lookup"
	"github.com/fractalqb/typeshape/textmessage"
	"github.com/fractalqb/typeshape/typeref"
)

type app struct {
	parser typeref.Parser
	linker linker.Linker
	ok     int
	failed int
}

func main() {
	shapes := flag.String("shapes", "", "shape table file (JSON or YAML)")
	asHTML := flag.Bool("html", false, "render HTML instead of text")
	href := flag.String("href", "", "link target pattern for HTML, %s is replaced by the qualified class name")
	vars := flag.String("vars", "", "comma separated names of type variables")
	interactive := flag.Bool("i", false, "prompt for type expressions")
	lang := flag.String("lang", "en", "language of the summary")
	watch := flag.Bool("watch", false, "reload the shape table when it changes (with -shapes and -i)")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("typeshape: ")

	tbl := lookup.NewTable()
	if *shapes != "" {
		var err error
		if tbl, err = lookup.LoadFile(*shapes); err != nil {
			log.Fatalf("failed to load shapes: %v", err)
		}
	}

	a := app{
		parser: typeref.Parser{Vars: parseVars(*vars)},
		linker: linker.Linker{Shapes: tbl, HTML: *asHTML},
	}
	if *href != "" {
		pattern := *href
		a.linker.Href = func(qname string) string {
			return strings.ReplaceAll(pattern, "%s", qname)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if *watch && *shapes != "" && *interactive {
		w, err := lookup.NewWatcher(*shapes, tbl)
		if err != nil {
			log.Fatal(err)
		}
		defer w.Close()
		go w.Run(ctx, func(err error) { log.Print(err) })
	}

	a.renderAll(ctx, flag.Args())
	if *interactive {
		a.prompt()
	}

	textmessage.Msg(textmessage.Printer(*lang),
		"%d types rendered, %d failed\n",
		a.ok,
		a.failed,
	).Emit(os.Stderr)
	if a.failed > 0 {
		cancel()
		os.Exit(1)
	}
}

func parseVars(names string) map[string]*typeref.Ref {
	res := make(map[string]*typeref.Ref)
	for _, nm := range strings.Split(names, ",") {
		if nm = strings.TrimSpace(nm); nm != "" {
			res[nm] = typeref.Var(nm, "")
		}
	}
	return res
}

type result struct {
	out string
	err error
}

// renderAll renders exprs concurrently and prints them in order.
func (a *app) renderAll(ctx context.Context, exprs []string) {
	res := make([]result, len(exprs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, expr := range exprs {
		i, expr := i, expr
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res[i].out, res[i].err = a.convert(expr)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
	for _, r := range res {
		a.report(r)
	}
}

func (a *app) render(expr string) {
	var r result
	r.out, r.err = a.convert(expr)
	a.report(r)
}

func (a *app) report(r result) {
	if r.err != nil {
		log.Print(r.err)
		a.failed++
		return
	}
	fmt.Println(r.out)
	a.ok++
}

// convert parses and renders one type expression. It is safe for
// concurrent use.
func (a *app) convert(expr string) (string, error) {
	ref, err := a.parser.Parse(expr)
	if err != nil {
		return "", err
	}
	out, err := a.linker.Render(ref)
	if err != nil {
		return "", fmt.Errorf("%s: %w", expr, err)
	}
	if a.linker.HTML {
		out = html.Sanitize(out)
	}
	return out, nil
}

func (a *app) prompt() {
	for {
		var expr string
		err := survey.AskOne(&survey.Input{
			Message: "Type:",
			Help:    "a type expression like App<List,Integer>, empty to quit",
		}, &expr)
		if errors.Is(err, terminal.InterruptErr) {
			return
		} else if err != nil {
			log.Fatalf("prompt failed: %v", err)
		}
		if strings.TrimSpace(expr) == "" {
			return
		}
		a.render(expr)
	}
}
