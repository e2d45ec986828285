package main

import (
	"commission-central/internal/service"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func runGenerator(t *testing.T, args ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "import.xlsx")

	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--output", path}, args...))
	require.NoError(t, cmd.Execute())
	return path
}

func TestGenerateSampleImport(t *testing.T) {
	f, err := excelize.OpenFile(runGenerator(t))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(service.SheetImportData)
	require.NoError(t, err)
	assert.Equal(t, service.ImportTemplateHeaders, rows[0])
	assert.Equal(t, "Judd", rows[1][0])
}

func TestGenerateBlankImport(t *testing.T) {
	f, err := excelize.OpenFile(runGenerator(t, "--blank"))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(service.SheetImportData, "A2")
	require.NoError(t, err)
	assert.Empty(t, v)
}
