package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	firstbase "github.com/zdavatz/firstbase-validator"
	"github.com/zdavatz/firstbase-validator/i18n"
	"github.com/zdavatz/firstbase-validator/swagger"
)

const maxPatternsShown = 50

func main() {
	var (
		verbose  bool
		refresh  bool
		dumpName string
		dir      string
		cacheDir string
		lang     string
	)
	flag.BoolVar(&verbose, "v", false, "show per-file details")
	flag.BoolVar(&verbose, "verbose", false, "show per-file details")
	flag.BoolVar(&refresh, "refresh", false, "drop cached swagger specs before validating")
	flag.StringVar(&dumpName, "dump-schema", "", "print a schema definition and exit")
	flag.StringVar(&dir, "dir", "firstbase_json", "directory scanned for *.json when no files are given")
	flag.StringVar(&cacheDir, "cache-dir", ".", "directory holding cached swagger specs")
	flag.StringVar(&lang, "lang", "en", "issue label language (en/de)")
	flag.Usage = usage
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
	i18n.SetLanguage(lang)

	ctx := context.Background()
	fsys := afero.NewOsFs()
	fetcher := swagger.NewFetcher(cacheDir)
	if refresh {
		_ = fetcher.DropCaches()
	}

	specs := make(map[string]firstbase.Schema, len(swagger.Endpoints))
	for _, ep := range swagger.Endpoints {
		schema, err := fetcher.Fetch(ctx, ep)
		if err != nil {
			fatalf("loading %s: %v", ep.Label, err)
		}
		specs[ep.Key] = schema
	}

	if dumpName != "" {
		dumpDefinition(specs, dumpName)
		return
	}

	files, err := collectFiles(fsys, flag.Args(), dir)
	if err != nil {
		fatalf("%v", err)
	}
	if len(files) == 0 {
		fatalf("no JSON files to validate")
	}
	fmt.Printf("Validating %d files...\n", len(files))

	docs := make(map[string][]byte, len(files))
	for _, f := range files {
		data, err := afero.ReadFile(fsys, f)
		if err != nil {
			fatalf("reading %s: %v", f, err)
		}
		docs[filepath.Base(f)] = data
	}

	allOK := true
	for _, ep := range swagger.Endpoints {
		schema := specs[ep.Key]
		v := firstbase.NewValidator(schema, ep.Label)
		runner, ok := firstbase.NewRunner(v)
		if !ok {
			fatalf("TradeItem not found in %s", ep.Label)
		}
		fmt.Printf("%s: %d definitions, TradeItem has %d properties\n",
			ep.Label, len(schema), len(schema[runner.RootDef].Properties))

		results := runner.ValidateAll(docs)
		rep := firstbase.Summarize(ep.Label, results)
		printSummary(rep, results, verbose)
		if !rep.Passed() {
			allOK = false
		}
	}
	if !allOK {
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `firstbase-validate — check firstbase JSON exports against the GS1 Swagger schemas

Usage:
  firstbase-validate [flags] [file.json ...]

Without file arguments every *.json under -dir is validated, against both the
Product API and the Catalogue Item API schema.`)
	flag.PrintDefaults()
}

// collectFiles returns the explicit file arguments, or every *.json under dir
// when none are given.
func collectFiles(fsys afero.Fs, args []string, dir string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	files, err := afero.Glob(fsys, filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

func printSummary(rep firstbase.Report, results firstbase.Result, verbose bool) {
	line := strings.Repeat("=", 66)
	thin := strings.Repeat("-", 66)

	fmt.Printf("\n%s\n  %s\n%s\n", line, rep.Label, line)
	fmt.Printf("Files validated : %d\n", rep.Total)
	fmt.Printf("Valid           : %s\n", color.GreenString("%d", rep.Valid))
	fmt.Printf("With issues     : %s\n", color.RedString("%d", rep.Invalid))

	if verbose {
		fmt.Printf("\n%s\n", thin)
		for _, name := range results.Names() {
			issues := results[name]
			status := color.GreenString("PASS")
			if len(issues) > 0 {
				status = color.RedString("FAIL")
			}
			fmt.Printf("  [%s] %s\n", status, name)
			for _, it := range issues {
				fmt.Printf("    %s %s: %s\n", i18n.T(it.Category, nil), it.Path, it.Message)
			}
		}
	}

	if len(rep.Patterns) == 0 {
		fmt.Printf("\nAll %d files passed validation.\n", rep.Total)
		return
	}
	fmt.Printf("\n%s\nISSUE PATTERNS (unique path + message, count = files affected):\n%s\n", thin, thin)
	for i, p := range rep.Patterns {
		if i >= maxPatternsShown {
			break
		}
		fmt.Printf("  %4dx  %s\n", p.Count, p.Key)
	}
}

// dumpDefinition pretty-prints one definition from every loaded spec, with
// substring suggestions when the name does not resolve.
func dumpDefinition(specs map[string]firstbase.Schema, name string) {
	for _, ep := range swagger.Endpoints {
		schema := specs[ep.Key]
		idx := firstbase.BuildIndex(schema)
		if full, ok := firstbase.Resolve(name, schema, idx); ok {
			b, err := json.MarshalIndent(schema[full], "", "  ")
			if err != nil {
				fatalf("marshaling %s: %v", full, err)
			}
			fmt.Printf("\n[%s] %s:\n%s\n", ep.Label, full, b)
			continue
		}

		lower := strings.ToLower(name)
		var matches []string
		for n := range schema {
			if strings.Contains(strings.ToLower(n), lower) {
				matches = append(matches, n)
			}
		}
		sort.Strings(matches)
		if len(matches) == 0 {
			fmt.Printf("\n[%s] %q not found in %d definitions.\n", ep.Label, name, len(schema))
			continue
		}
		fmt.Printf("\n[%s] %q not found. Did you mean:\n", ep.Label, name)
		for i, m := range matches {
			if i >= 10 {
				break
			}
			fmt.Printf("  %s\n", m)
		}
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
