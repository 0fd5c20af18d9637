package ingestion_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchprep/ingestion"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sections.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadSections_MapsRowsByColumnName(t *testing.T) {
	path := writeCSV(t, "name,id,description\nWidget,w-1,A small widget\nGadget,g-2,A large gadget\n")

	sections, header, err := ingestion.ReadSections(path, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "id", "description"}, header)
	require.Len(t, sections, 2)
	assert.Equal(t, "w-1", sections[0].ID)
	assert.Equal(t, "Widget", sections[0].Name)
	assert.Equal(t, "A small widget", sections[0].Description)
	assert.Empty(t, sections[0].Category)
	assert.Equal(t, "g-2", sections[1].ID)
}

func TestReadSections_StripsByteOrderMark(t *testing.T) {
	path := writeCSV(t, "\xEF\xBB\xBFid,name,description\n1,One,First\n")

	sections, header, err := ingestion.ReadSections(path, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "description"}, header)
	require.Len(t, sections, 1)
	assert.Equal(t, "1", sections[0].ID)
}

func TestReadSections_AttachesCategory(t *testing.T) {
	path := writeCSV(t, "id,name,description\n1,One,First\n")

	sections, _, err := ingestion.ReadSections(path, "manuals")
	require.NoError(t, err)

	require.Len(t, sections, 1)
	assert.Equal(t, "manuals", sections[0].Category)
}

func TestReadSections_MissingColumnFails(t *testing.T) {
	path := writeCSV(t, "id,name\n1,One\n")

	_, header, err := ingestion.ReadSections(path, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "description")
	assert.Equal(t, []string{"id", "name"}, header)
}

func TestReadSections_HeaderOnlyYieldsNoSections(t *testing.T) {
	path := writeCSV(t, "id,name,description\n")

	sections, _, err := ingestion.ReadSections(path, "")
	require.NoError(t, err)
	assert.Empty(t, sections)
}

func TestReadSections_EmptyFileFails(t *testing.T) {
	path := writeCSV(t, "")

	_, _, err := ingestion.ReadSections(path, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestReadSections_MissingFileFails(t *testing.T) {
	_, _, err := ingestion.ReadSections(filepath.Join(t.TempDir(), "nope.csv"), "")
	require.Error(t, err)
}
