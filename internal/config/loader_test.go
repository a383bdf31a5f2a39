package config_test

import (
	"strings"
	"testing"

	"github.com/nairkartik/shuddhi/internal/config"
	"github.com/nairkartik/shuddhi/internal/rules"
)

func TestLoadFromReader(t *testing.T) {
	t.Parallel()

	yml := `
server:
  listen_addr: ":9090"
  log_level: debug
pipeline:
  profile: legacy
  name_threshold: 90
  max_candidates: 4
lexicon:
  path: /etc/shuddhi/names.txt
`
	cfg, err := config.LoadFromReader(strings.NewReader(yml))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}

	if cfg.Server.ListenAddr != ":9090" {
		t.Errorf("ListenAddr = %q, want :9090", cfg.Server.ListenAddr)
	}
	if cfg.Server.LogLevel != config.LogDebug {
		t.Errorf("LogLevel = %q, want debug", cfg.Server.LogLevel)
	}
	if cfg.Pipeline.Profile != rules.ProfileLegacy {
		t.Errorf("Profile = %q, want legacy", cfg.Pipeline.Profile)
	}
	if cfg.Pipeline.NameThreshold != 90 {
		t.Errorf("NameThreshold = %v, want 90", cfg.Pipeline.NameThreshold)
	}
	if cfg.Pipeline.MaxCandidates != 4 {
		t.Errorf("MaxCandidates = %d, want 4", cfg.Pipeline.MaxCandidates)
	}
	if cfg.Lexicon.Path != "/etc/shuddhi/names.txt" {
		t.Errorf("Lexicon.Path = %q, want /etc/shuddhi/names.txt", cfg.Lexicon.Path)
	}
}

func TestLoadFromReader_UnknownField(t *testing.T) {
	t.Parallel()

	if _, err := config.LoadFromReader(strings.NewReader("serverr: {}\n")); err == nil {
		t.Error("LoadFromReader with unknown field: err=nil, want decode error")
	}
}

func TestLoadFromReader_EmptyDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadFromReader(strings.NewReader("{}\n"))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.Pipeline.Profile != "" {
		t.Errorf("Profile = %q, want empty (profile default deferred to caller)", cfg.Pipeline.Profile)
	}
	if cfg.Server.ListenAddr != "" {
		t.Errorf("ListenAddr = %q, want empty", cfg.Server.ListenAddr)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{
			name: "valid full config",
			cfg: config.Config{
				Server:   config.ServerConfig{LogLevel: config.LogInfo},
				Pipeline: config.PipelineConfig{Profile: rules.ProfileStandard, NameThreshold: 85, MaxCandidates: 8},
				Lexicon:  config.LexiconConfig{Path: "names.txt"},
			},
		},
		{
			name: "zero values are valid",
			cfg:  config.Config{},
		},
		{
			name:    "bad log level",
			cfg:     config.Config{Server: config.ServerConfig{LogLevel: "trace"}},
			wantErr: true,
		},
		{
			name:    "bad profile",
			cfg:     config.Config{Pipeline: config.PipelineConfig{Profile: "modern"}},
			wantErr: true,
		},
		{
			name:    "threshold out of range",
			cfg:     config.Config{Pipeline: config.PipelineConfig{NameThreshold: 101}},
			wantErr: true,
		},
		{
			name:    "negative candidate cap",
			cfg:     config.Config{Pipeline: config.PipelineConfig{MaxCandidates: -1}},
			wantErr: true,
		},
		{
			name: "two lexicon sources",
			cfg: config.Config{Lexicon: config.LexiconConfig{
				Path:        "names.txt",
				PostgresDSN: "postgres://localhost/shuddhi",
			}},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := config.Validate(&tc.cfg)
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestValidate_ReportsAllFailures(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		Server:   config.ServerConfig{LogLevel: "loud"},
		Pipeline: config.PipelineConfig{Profile: "fancy", NameThreshold: -3},
	}
	err := config.Validate(&cfg)
	if err == nil {
		t.Fatal("Validate: err=nil, want joined failures")
	}
	for _, frag := range []string{"log_level", "profile", "name_threshold"} {
		if !strings.Contains(err.Error(), frag) {
			t.Errorf("Validate error %q missing %q", err, frag)
		}
	}
}
