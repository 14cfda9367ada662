// Command glowy runs the information-flow analyzer over one or more Go-
// subset source files and reports every insecure flow it finds.
//
// Usage:
//
//	glowy [-format=text|yaml] FILE...
//
// With no FILE arguments, source is read from standard input.
//
// Exit codes:
//
//	0  no findings, or warnings only
//	1  at least one insecure flow (E002/E003)
//	2  parse, unsupported-construct or timeout errors (E001/E004/E005), no insecure flow
//	3  usage or I/O failure
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/viant/glowy/diagnostic"
	"github.com/viant/glowy/loader"
	"github.com/viant/glowy/program"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("glowy", flag.ContinueOnError)
	format := fs.String("format", "text", "output format: text or yaml")
	if err := fs.Parse(args); err != nil {
		return 3
	}

	ctx := context.Background()
	ld := loader.New()

	var sources []program.Source
	if fs.NArg() == 0 {
		src, err := loader.LoadStdin(os.Stdin)
		if err != nil {
			log.Printf("glowy: %v", err)
			return 3
		}
		sources = []program.Source{src}
	} else {
		var err error
		sources, err = ld.Load(ctx, fs.Args())
		if err != nil {
			log.Printf("glowy: %v", err)
			return 3
		}
	}

	report := program.AnalyzeSources(sources)
	if fs.NArg() > 0 {
		report.Module = program.DetectModule(ctx, fs.Arg(0))
	}

	switch *format {
	case "yaml":
		out, err := yaml.Marshal(report)
		if err != nil {
			log.Printf("glowy: %v", err)
			return 3
		}
		fmt.Print(string(out))
	default:
		printText(report)
	}

	return exitCode(report)
}

func printText(report *diagnostic.Report) {
	if report.Module != "" {
		fmt.Printf("module: %s\n", report.Module)
	}
	for _, d := range report.Diagnostics {
		if d.Label != "" || d.Required != "" {
			fmt.Printf("%s:%d:%d: %s: %s (label=%s required=%s)\n",
				d.File, d.Line, d.Column, d.Code, d.Message, d.Label, d.Required)
			continue
		}
		fmt.Printf("%s:%d:%d: %s: %s\n", d.File, d.Line, d.Column, d.Code, d.Message)
	}
}

// exitCode classifies by diagnostic code, not severity: E002/E003 are
// insecure flows (exit 1) even though they share SeverityError with
// E001/E004/E005 parse/analysis failures (exit 2). A run reporting both
// exits 1 — a leak found is the more actionable signal for a CI consumer
// keying on exit code.
func exitCode(report *diagnostic.Report) int {
	sawInsecureFlow := false
	sawParseError := false
	for _, d := range report.Diagnostics {
		switch d.Code {
		case diagnostic.CodeInsecureFlow, diagnostic.CodeImplicitBranch:
			sawInsecureFlow = true
		case diagnostic.CodeLexParse, diagnostic.CodeUnsupported, diagnostic.CodeAnalysisTimeout:
			sawParseError = true
		}
	}
	switch {
	case sawInsecureFlow:
		return 1
	case sawParseError:
		return 2
	default:
		return 0
	}
}
