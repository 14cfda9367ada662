// Package program ties together one analysis run's parsed input: the
// files, their combined AST, and the project the input resolved from (for
// diagnostic provenance only, never for module-aware type checking).
package program

import (
	"github.com/viant/glowy/analyzer"
	"github.com/viant/glowy/ast"
	"github.com/viant/glowy/diagnostic"
	"github.com/viant/glowy/lexer"
	"github.com/viant/glowy/parser"
)

// Source is one input file's name and text, as read by the loader.
type Source struct {
	Name string
	Text string
}

// Program is every parsed input file plus the diagnostics the lexer and
// parser collected along the way.
type Program struct {
	AST         *ast.Program
	LexErrors   []*lexer.Error
	ParseErrors []*parser.Error
}

// Parse parses every source in order and aggregates the result into one
// Program. A lex or parse failure in one file does not stop the others
// from being parsed and analyzed.
func Parse(sources []Source) *Program {
	p := &Program{AST: &ast.Program{}}
	for _, src := range sources {
		res := parser.Parse(src.Name, src.Text)
		p.AST.Files = append(p.AST.Files, res.File)
		p.LexErrors = append(p.LexErrors, res.LexErrors...)
		p.ParseErrors = append(p.ParseErrors, res.ParseErrors...)
	}
	return p
}

// HasSyntaxErrors reports whether any file failed to lex or parse
// cleanly.
func (p *Program) HasSyntaxErrors() bool {
	return len(p.LexErrors) > 0 || len(p.ParseErrors) > 0
}

// AnalyzeSources parses every source and runs the analyzer over the
// result, returning a single report. Lex and parse failures are folded
// into the report as CodeLexParse diagnostics, except unsupported
// constructs (CodeUnsupported) and dropped annotations
// (CodeDroppedAnnotation, a warning); the analyzer still runs over every
// file's best-effort AST, so one broken file never hides findings from
// the others.
func AnalyzeSources(sources []Source) *diagnostic.Report {
	p := Parse(sources)

	report := &diagnostic.Report{}
	for _, e := range p.LexErrors {
		report.Add(diagnostic.FromSpan(diagnostic.CodeLexParse, diagnostic.SeverityError, e.Span, e.Msg))
	}
	for _, e := range p.ParseErrors {
		switch e.Kind {
		case "Unsupported":
			report.Add(diagnostic.FromSpan(diagnostic.CodeUnsupported, diagnostic.SeverityError, e.Span, e.Msg))
		case "DroppedAnnotation":
			report.Add(diagnostic.FromSpan(diagnostic.CodeDroppedAnnotation, diagnostic.SeverityWarning, e.Span, e.Msg))
		default:
			report.Add(diagnostic.FromSpan(diagnostic.CodeLexParse, diagnostic.SeverityError, e.Span, e.Msg))
		}
	}

	analyzed := analyzer.Analyze(p.AST)
	report.Diagnostics = append(report.Diagnostics, analyzed.Diagnostics...)
	report.Sort()
	return report
}
