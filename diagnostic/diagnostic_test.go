package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/viant/glowy/token"
)

func TestSortOrdersByPositionThenCode(t *testing.T) {
	r := &Report{}
	r.Add(Diagnostic{Code: CodeInsecureFlow, File: "b.gw", Line: 1, Column: 1})
	r.Add(Diagnostic{Code: CodeInsecureFlow, File: "a.gw", Line: 5, Column: 1})
	r.Add(Diagnostic{Code: CodeImplicitBranch, File: "a.gw", Line: 1, Column: 1})
	r.Add(Diagnostic{Code: CodeInsecureFlow, File: "a.gw", Line: 1, Column: 1})

	r.Sort()

	assert.Equal(t, "a.gw", r.Diagnostics[0].File)
	assert.Equal(t, CodeInsecureFlow, r.Diagnostics[0].Code)
	assert.Equal(t, CodeImplicitBranch, r.Diagnostics[1].Code)
	assert.Equal(t, 5, r.Diagnostics[2].Line)
}

func TestHasErrorsIgnoresWarnings(t *testing.T) {
	r := &Report{}
	r.Add(Diagnostic{Code: CodeDroppedAnnotation, Severity: SeverityWarning})
	assert.False(t, r.HasErrors())

	r.Add(Diagnostic{Code: CodeInsecureFlow, Severity: SeverityError})
	assert.True(t, r.HasErrors())
}

func TestReportMarshalsModuleOnlyWhenSet(t *testing.T) {
	r := &Report{}
	out, err := yaml.Marshal(r)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "module:")

	r.Module = "example.com/widgets"
	out, err = yaml.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(out), "module: example.com/widgets")
}

func TestFromSpanUsesBeginPosition(t *testing.T) {
	sp := token.Span{File: "x.gw", Begin: token.Position{File: "x.gw", Line: 3, Column: 7}}
	d := FromSpan(CodeInsecureFlow, SeverityError, sp, "leak")
	assert.Equal(t, "x.gw", d.File)
	assert.Equal(t, 3, d.Line)
	assert.Equal(t, 7, d.Column)
}
