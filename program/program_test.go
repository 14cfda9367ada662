package program_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/glowy/diagnostic"
	"github.com/viant/glowy/program"
)

func TestParseAggregatesMultipleFiles(t *testing.T) {
	p := program.Parse([]program.Source{
		{Name: "a.gw", Text: "package main\nfunc a() {\n\treturn 1\n}\n"},
		{Name: "b.gw", Text: "package main\nfunc b() {\n\treturn 2\n}\n"},
	})
	require.False(t, p.HasSyntaxErrors())
	require.Len(t, p.AST.Files, 2)
	assert.Equal(t, "a.gw", p.AST.Files[0].Name)
	assert.Equal(t, "b.gw", p.AST.Files[1].Name)
}

func TestParseCollectsSyntaxErrorsWithoutStoppingOtherFiles(t *testing.T) {
	p := program.Parse([]program.Source{
		{Name: "broken.gw", Text: "package main\nfunc a( {\n"},
		{Name: "ok.gw", Text: "package main\nfunc b() {\n\treturn 1\n}\n"},
	})
	assert.True(t, p.HasSyntaxErrors())
	require.Len(t, p.AST.Files, 2)
}

func TestAnalyzeSourcesReportsSyntaxErrorsAsE001(t *testing.T) {
	report := program.AnalyzeSources([]program.Source{
		{Name: "broken.gw", Text: "package main\nfunc a( {\n"},
	})
	require.NotEmpty(t, report.Diagnostics)
	found := false
	for _, d := range report.Diagnostics {
		if d.Code == diagnostic.CodeLexParse {
			found = true
		}
	}
	assert.True(t, found, "expected at least one E001 diagnostic")
}

func TestAnalyzeSourcesRunsAnalyzerOnCleanInput(t *testing.T) {
	report := program.AnalyzeSources([]program.Source{
		{Name: "t.gw", Text: `package main

// glowy::label::{high}
const secret = 1

func main() {
	// glowy::sink::{}
	Println(secret)
}
`},
	})
	require.Len(t, report.Diagnostics, 1)
	assert.Equal(t, diagnostic.CodeInsecureFlow, report.Diagnostics[0].Code)
}
