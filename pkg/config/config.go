package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the external identifiers the service needs: the backing
// spreadsheet, its two tabs, and the Drive folder for attachments. All of it
// is deployment configuration, none of it is schema.
type Config struct {
	Listen            string `toml:"listen"`
	SpreadsheetID     string `toml:"spreadsheet_id"`
	SheetName         string `toml:"sheet_name"`
	CalendarSheetName string `toml:"calendar_sheet_name"`
	FolderID          string `toml:"folder_id"`
	CredentialsFile   string `toml:"credentials_file"`
}

func Default() *Config {
	return &Config{
		Listen:            ":8080",
		SheetName:         "Hoja1",
		CalendarSheetName: "Hoja2",
		CredentialsFile:   "credentials.json",
	}
}

// Load reads the toml config, writing the defaults out on first run so the
// operator has a file to fill in.
func Load(filename string) (*Config, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if err := Save(filename, cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, err
	}
	cfg := &Config{}
	if err := toml.Unmarshal(b, cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the config out to a toml file.
func Save(filename string, cfg *Config) error {
	b, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}

func (c *Config) applyDefaults() {
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	if c.SheetName == "" {
		c.SheetName = "Hoja1"
	}
	if c.CalendarSheetName == "" {
		c.CalendarSheetName = "Hoja2"
	}
	if c.CredentialsFile == "" {
		c.CredentialsFile = "credentials.json"
	}
}
