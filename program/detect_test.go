package program_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/glowy/program"
)

func TestDetectModuleFindsEnclosingGoMod(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/widgets\n\ngo 1.23\n"), 0644))
	nested := filepath.Join(root, "pkg", "sub")
	require.NoError(t, os.MkdirAll(nested, 0755))
	filePath := filepath.Join(nested, "main.gw")
	require.NoError(t, os.WriteFile(filePath, []byte("package main\n"), 0644))

	got := program.DetectModule(context.Background(), filePath)
	assert.Equal(t, "example.com/widgets", got)
}

func TestDetectModuleReturnsEmptyWithoutGoMod(t *testing.T) {
	root := t.TempDir()
	filePath := filepath.Join(root, "main.gw")
	require.NoError(t, os.WriteFile(filePath, []byte("package main\n"), 0644))

	got := program.DetectModule(context.Background(), filePath)
	assert.Equal(t, "", got)
}
