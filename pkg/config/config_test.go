package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadFirstRunWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rectorado.toml")

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	// The defaults must have been persisted for the operator to edit.
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rectorado.toml")
	want := &Config{
		Listen:            ":9090",
		SpreadsheetID:     "abc123",
		SheetName:         "Documentos",
		CalendarSheetName: "Agenda",
		FolderID:          "folder-1",
		CredentialsFile:   "creds.json",
	}
	assert.NoError(t, Save(path, want))

	got, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadFillsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rectorado.toml")
	err := os.WriteFile(path, []byte("spreadsheet_id = \"abc123\"\n"), 0644)
	assert.NoError(t, err)

	got, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "abc123", got.SpreadsheetID)
	assert.Equal(t, ":8080", got.Listen)
	assert.Equal(t, "Hoja1", got.SheetName)
	assert.Equal(t, "Hoja2", got.CalendarSheetName)
}
