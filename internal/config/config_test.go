package config

import "testing"

func validConfig() *Config {
	return &Config{
		AppEnv:      "dev",
		HTTPAddr:    ":8080",
		MetricsAddr: ":9090",
		StoreType:   "memory",
		AdminAPIKey: "admin-123",
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr == "" || cfg.MetricsAddr == "" {
		t.Fatalf("defaults missing: %+v", cfg)
	}
	if cfg.StoreType != "memory" && cfg.StoreType != "postgres" {
		t.Fatalf("unexpected default store type %q", cfg.StoreType)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantField string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{
			name:      "unknown store type",
			mutate:    func(c *Config) { c.StoreType = "redis" },
			wantField: "STORE_TYPE",
		},
		{
			name:      "postgres without dsn",
			mutate:    func(c *Config) { c.StoreType = "postgres"; c.DatabaseDSN = "" },
			wantField: "DB_DSN",
		},
		{
			name:      "missing http addr",
			mutate:    func(c *Config) { c.HTTPAddr = "" },
			wantField: "APP_HTTP_ADDR",
		},
		{
			name:      "missing metrics addr",
			mutate:    func(c *Config) { c.MetricsAddr = "" },
			wantField: "METRICS_ADDR",
		},
		{
			name:      "default admin key in prod",
			mutate:    func(c *Config) { c.AppEnv = "prod" },
			wantField: "ADMIN_API_KEY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}

			verr, ok := err.(ValidationError)
			if !ok {
				t.Fatalf("got %T (%v), want ValidationError", err, err)
			}
			if verr.Field != tt.wantField {
				t.Fatalf("field = %s, want %s", verr.Field, tt.wantField)
			}
		})
	}
}
