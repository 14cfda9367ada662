package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/glowy/diagnostic"
)

func TestExitCodeCleanReportIsZero(t *testing.T) {
	assert.Equal(t, 0, exitCode(&diagnostic.Report{}))
}

func TestExitCodeWarningsOnlyIsZero(t *testing.T) {
	report := &diagnostic.Report{Diagnostics: []diagnostic.Diagnostic{
		{Code: diagnostic.CodeDroppedAnnotation, Severity: diagnostic.SeverityWarning},
	}}
	assert.Equal(t, 0, exitCode(report))
}

func TestExitCodeParseErrorIsTwo(t *testing.T) {
	report := &diagnostic.Report{Diagnostics: []diagnostic.Diagnostic{
		{Code: diagnostic.CodeLexParse, Severity: diagnostic.SeverityError},
	}}
	assert.Equal(t, 2, exitCode(report))
}

func TestExitCodeInsecureFlowIsOne(t *testing.T) {
	report := &diagnostic.Report{Diagnostics: []diagnostic.Diagnostic{
		{Code: diagnostic.CodeInsecureFlow, Severity: diagnostic.SeverityError},
	}}
	assert.Equal(t, 1, exitCode(report))
}

func TestExitCodeImplicitBranchIsOne(t *testing.T) {
	report := &diagnostic.Report{Diagnostics: []diagnostic.Diagnostic{
		{Code: diagnostic.CodeImplicitBranch, Severity: diagnostic.SeverityError},
	}}
	assert.Equal(t, 1, exitCode(report))
}

func TestExitCodeInsecureFlowTakesPriorityOverParseError(t *testing.T) {
	report := &diagnostic.Report{Diagnostics: []diagnostic.Diagnostic{
		{Code: diagnostic.CodeLexParse, Severity: diagnostic.SeverityError},
		{Code: diagnostic.CodeInsecureFlow, Severity: diagnostic.SeverityError},
	}}
	assert.Equal(t, 1, exitCode(report))
}
