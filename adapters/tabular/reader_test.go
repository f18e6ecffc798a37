package tabular

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"respcheck/internal/errors"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadDatasetCSV(t *testing.T) {
	path := writeTempCSV(t, "ExternalId, duration ,Q10\n101,300, dobrý produkt \n102,250,nevím\n")

	reader := NewReader(nil)
	ds, err := reader.ReadDataset(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"ExternalId", "duration", "Q10"}, ds.Columns, "headers are trimmed")
	require.Len(t, ds.Rows, 2)
	assert.Equal(t, "dobrý produkt", ds.Rows[0]["Q10"], "cells are trimmed")
	assert.Equal(t, "101", ds.Rows[0]["ExternalId"])
	assert.Equal(t, "nevím", ds.Rows[1]["Q10"])
}

func TestReadDatasetRaggedCSV(t *testing.T) {
	path := writeTempCSV(t, "a,b,c\n1,2\n3,4,5,6\n")

	reader := NewReader(nil)
	ds, err := reader.ReadDataset(path)
	require.NoError(t, err)

	require.Len(t, ds.Rows, 2)
	assert.Equal(t, "", ds.Rows[0]["c"], "short rows leave trailing columns missing")
	assert.Equal(t, "5", ds.Rows[1]["c"], "extra cells beyond the header are dropped")
}

func TestReadDatasetEmptyCSV(t *testing.T) {
	path := writeTempCSV(t, "")

	reader := NewReader(nil)
	ds, err := reader.ReadDataset(path)
	require.NoError(t, err)
	assert.Equal(t, 0, ds.RowCount())
	assert.Empty(t, ds.Columns)
}

func TestReadDatasetHeaderOnlyCSV(t *testing.T) {
	path := writeTempCSV(t, "ExternalId,Q1\n")

	reader := NewReader(nil)
	ds, err := reader.ReadDataset(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"ExternalId", "Q1"}, ds.Columns)
	assert.Equal(t, 0, ds.RowCount())
}

func TestReadDatasetMissingFile(t *testing.T) {
	reader := NewReader(nil)
	_, err := reader.ReadDataset(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestReadDatasetUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.sav")
	require.NoError(t, os.WriteFile(path, []byte("binary"), 0o644))

	reader := NewReader(nil)
	_, err := reader.ReadDataset(path)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}
