package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
database:
  driver: postgres
  host: db.local
  port: 5432
  user: hgt
  password: secret
  name: hgtscan
annotator:
  enabled: true
  databases: [plasmidfinder, card]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed in Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port: %d", cfg.Server.Port)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("driver: %s", cfg.Database.Driver)
	}
	if !cfg.Annotator.Enabled || len(cfg.Annotator.Databases) != 2 {
		t.Errorf("annotator: %+v", cfg.Annotator)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "server: {}\n"))
	if err != nil {
		t.Fatalf("failed in Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port: %d", cfg.Server.Port)
	}
	if cfg.Database.Driver != "mysql" {
		t.Errorf("default driver: %s", cfg.Database.Driver)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestDSNs(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
database:
  host: db.local
  port: 3306
  user: hgt
  password: pw
  name: hgtscan
`))
	if err != nil {
		t.Fatalf("failed in Load: %v", err)
	}

	mysql := cfg.MySQLDSN()
	if !strings.Contains(mysql, "hgt:pw@tcp(db.local:3306)/hgtscan") {
		t.Errorf("mysql dsn: %s", mysql)
	}

	pg := cfg.PostgresDSN()
	for _, part := range []string{"host=db.local", "user=hgt", "dbname=hgtscan"} {
		if !strings.Contains(pg, part) {
			t.Errorf("postgres dsn missing %q: %s", part, pg)
		}
	}
}
