package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ignisVeneficus/bistro/config"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logging.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCompileLogger(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"stdout json", writeFile(t, "writers:\n  - type: stdout\n    format: json\n"), ""},
		{"missing file", filepath.Join(t.TempDir(), "absent.yaml"), "no such file"},
		{"broken yaml", writeFile(t, "writers: [\n"), "not valid yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := compileLogger(tt.path)
			if tt.wantErr == "" {
				if err != nil || logger == nil {
					t.Fatalf("compileLogger: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadLoggingNeedsConfigInProduction(t *testing.T) {
	t.Setenv(config.LogConfigEnv, "")
	err := LoadLogging(config.EnvProduction)
	if err == nil || !strings.Contains(err.Error(), config.LogConfigEnv) {
		t.Errorf("err = %v, want a missing %s error", err, config.LogConfigEnv)
	}
}
