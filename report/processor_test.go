package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vforvarun/aws-auto-inventory/types"
)

func TestProcessor_EndToEnd(t *testing.T) {
	dir := t.TempDir()

	results := []types.ScanResult{
		{
			Inventory: "main",
			AccountResults: []types.RegionResult{
				{
					Region: "us-east-1",
					Services: []types.ServiceResult{
						{
							Service: "storage-buckets",
							Success: true,
							Result: []any{
								map[string]any{"Name": "logs"},
								map[string]any{"Name": "backups"},
							},
						},
					},
				},
			},
		},
	}

	p := NewProcessor(zerolog.Nop())
	formats := []string{FormatJSON}
	wantFiles := 2
	if p.excel.Available() {
		formats = append(formats, FormatExcel)
		wantFiles = 3
	}

	outcome, err := p.Process(results, dir, formats)
	require.NoError(t, err)

	assert.Equal(t, 2, outcome.Summary.TotalResources)
	assert.Equal(t, 1, outcome.Summary.TotalRegions)
	assert.Equal(t, 1, outcome.Summary.TotalServices)
	require.Len(t, outcome.Files, wantFiles)

	for _, file := range outcome.Files {
		_, err := os.Stat(file)
		assert.NoError(t, err, file)
	}
}

func TestProcessor_UnknownFormatSkipped(t *testing.T) {
	dir := t.TempDir()

	p := NewProcessor(zerolog.Nop())
	outcome, err := p.Process(testResults(), dir, []string{"parquet", FormatJSON})
	require.NoError(t, err)

	// The unknown format produced no file and no error; JSON still ran.
	require.Len(t, outcome.Files, 2)
	for _, file := range outcome.Files {
		assert.True(t, strings.HasSuffix(file, ".json"), file)
	}
}

func TestProcessor_FailingWriterDoesNotStopSibling(t *testing.T) {
	dir := t.TempDir()
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	p := NewProcessor(zerolog.Nop())
	p.json.now = func() time.Time { return fixed }
	p.excel.now = func() time.Time { return fixed }

	// Block the workbook path so the Excel writer cannot save. (In a
	// noexcel build the stub refuses on its own.)
	blocked := filepath.Join(dir, "aws_inventory_20240301_120000.xlsx")
	require.NoError(t, os.MkdirAll(blocked, 0750))

	outcome, err := p.Process(testResults(), dir, []string{FormatExcel, FormatJSON})
	require.Error(t, err)

	// The JSON pair still landed despite the earlier failure.
	require.Len(t, outcome.Files, 2)
	assert.Equal(t, filepath.Join(dir, "aws_inventory_20240301_120000.json"), outcome.Files[0])
	assert.Equal(t, filepath.Join(dir, "aws_inventory_summary_20240301_120000.json"), outcome.Files[1])
	for _, file := range outcome.Files {
		_, statErr := os.Stat(file)
		assert.NoError(t, statErr, file)
	}
}

func TestProcessor_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports", "nested")

	p := NewProcessor(zerolog.Nop())
	_, err := p.Process(testResults(), dir, []string{FormatJSON})
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Running again into the same directory is fine.
	_, err = p.Process(testResults(), dir, []string{FormatJSON})
	assert.NoError(t, err)
}

func TestProcessor_NoFormats(t *testing.T) {
	p := NewProcessor(zerolog.Nop())
	outcome, err := p.Process(testResults(), t.TempDir(), nil)
	require.NoError(t, err)
	assert.Empty(t, outcome.Files)
}
