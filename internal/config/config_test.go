package config

import (
	"strings"
	"testing"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("http:\n  port: 9090\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("port = %d", cfg.HTTP.Port)
	}
	if cfg.Database.Driver != DriverMemory {
		t.Errorf("driver = %q, want memory", cfg.Database.Driver)
	}
	if cfg.Storage.KeyPrefix != "hireboard:" {
		t.Errorf("key prefix = %q", cfg.Storage.KeyPrefix)
	}
	a := cfg.Analytics
	if a.UrgencyThresholdDays != 7 || a.TopCompanies != 5 || a.UpcomingDeadlines != 5 ||
		a.DashboardDeadlines != 3 || a.RecentApplications != 3 {
		t.Errorf("analytics defaults = %+v", a)
	}
}

func TestParse_ExpandsEnv(t *testing.T) {
	t.Setenv("HB_TEST_ADDR", "cache:6379")
	doc := `
database:
  driver: ${HB_TEST_DRIVER:-redis}
  addrs: ["${HB_TEST_ADDR}"]
  password: "${HB_TEST_UNSET}"
`
	cfg, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Driver != "redis" {
		t.Errorf("driver = %q", cfg.Database.Driver)
	}
	if len(cfg.Database.Addrs) != 1 || cfg.Database.Addrs[0] != "cache:6379" {
		t.Errorf("addrs = %v", cfg.Database.Addrs)
	}
	if cfg.Database.Password != "" {
		t.Errorf("unset var must expand to empty, got %q", cfg.Database.Password)
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		c := Config{}
		c.ApplyDefaults()
		return c
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"memory ok", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.HTTP.Port = 70000 }, "http.port"},
		{"bad driver", func(c *Config) { c.Database.Driver = "mongo" }, "database.driver"},
		{"redis needs addrs", func(c *Config) { c.Database.Driver = DriverRedis }, "database.addrs"},
		{"valkey ok", func(c *Config) {
			c.Database.Driver = DriverValkey
			c.Database.Addrs = []string{"localhost:6379"}
		}, ""},
		{"postgres needs url", func(c *Config) { c.Database.Driver = DriverPostgres }, "database.url"},
		{"limit above max", func(c *Config) {
			c.Analytics.DefaultListLimit = 1000
			c.Analytics.MaxListLimit = 10
		}, "exceeds"},
		{"blank api key", func(c *Config) { c.Auth.APIKeys = []string{"k1", " "} }, "auth.api_keys[1]"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("err = %v, want mention of %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoad_Local(t *testing.T) {
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("Load(local): %v", err)
	}
	if !cfg.Database.Seed {
		t.Error("local config should seed fixtures")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("GetEnv() = %q", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("GetEnv() = %q", got)
	}
}
