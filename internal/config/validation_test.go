// internal/config/validation_test.go - Configuration validation tests
package config

import (
	"testing"
	"time"
)

func TestValidateSource(t *testing.T) {
	tests := []struct {
		name    string
		config  SourceConfig
		wantErr bool
	}{
		{"valid auto/http", SourceConfig{Type: "auto", DefaultType: "http"}, false},
		{"valid local/local", SourceConfig{Type: "local", DefaultType: "local"}, false},
		{"unknown type", SourceConfig{Type: "ftp", DefaultType: "http"}, true},
		{"unknown default type", SourceConfig{Type: "auto", DefaultType: "ftp"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSource(&tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateSource(%+v) error = %v, wantErr %v", tt.config, err, tt.wantErr)
			}
		})
	}
}

func TestValidateServer(t *testing.T) {
	tests := []struct {
		name    string
		config  ServerConfig
		wantErr bool
	}{
		{"empty base_url is allowed", ServerConfig{}, false},
		{
			"complete config is valid",
			ServerConfig{BaseURL: "https://tiles.example.com", Timeout: 30 * time.Second, MaxRetries: 3, URLTemplate: "{base_url}/{z}/{x}/{y}.mvt"},
			false,
		},
		{
			"missing url_template when base_url set",
			ServerConfig{BaseURL: "https://tiles.example.com", Timeout: 30 * time.Second, MaxRetries: 3},
			true,
		},
		{
			"negative max_retries",
			ServerConfig{BaseURL: "https://tiles.example.com", Timeout: 30 * time.Second, MaxRetries: -1, URLTemplate: "{base_url}/{z}/{x}/{y}.mvt"},
			true,
		},
		{
			"non-positive timeout",
			ServerConfig{BaseURL: "https://tiles.example.com", Timeout: 0, MaxRetries: 3, URLTemplate: "{base_url}/{z}/{x}/{y}.mvt"},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateServer(&tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateServer(%+v) error = %v, wantErr %v", tt.config, err, tt.wantErr)
			}
		})
	}
}

func TestValidateLocal(t *testing.T) {
	existingDir := t.TempDir()

	tests := []struct {
		name    string
		config  LocalConfig
		wantErr bool
	}{
		{"empty base_path is allowed", LocalConfig{}, false},
		{
			"complete config is valid",
			LocalConfig{BasePath: existingDir, PathTemplate: "{base_path}/{z}/{x}/{y}.mvt", Extension: ".mvt"},
			false,
		},
		{
			"nonexistent base_path",
			LocalConfig{BasePath: existingDir + "/does-not-exist", PathTemplate: "{base_path}/{z}/{x}/{y}.mvt", Extension: ".mvt"},
			true,
		},
		{
			"path_template missing placeholder",
			LocalConfig{BasePath: existingDir, PathTemplate: "{base_path}/{z}/{x}.mvt", Extension: ".mvt"},
			true,
		},
		{
			"extension missing leading dot",
			LocalConfig{BasePath: existingDir, PathTemplate: "{base_path}/{z}/{x}/{y}.mvt", Extension: "mvt"},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateLocal(&tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateLocal(%+v) error = %v, wantErr %v", tt.config, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutput(t *testing.T) {
	tests := []struct {
		name    string
		config  OutputConfig
		wantErr bool
	}{
		{"geojson to stdout", OutputConfig{Format: "geojson", Stdout: true}, false},
		{"json to directory", OutputConfig{Format: "json", Directory: "/tmp/out"}, false},
		{"unsupported format", OutputConfig{Format: "xml", Stdout: true}, true},
		{"directory required when not stdout", OutputConfig{Format: "geojson", Stdout: false}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateOutput(&tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateOutput(%+v) error = %v, wantErr %v", tt.config, err, tt.wantErr)
			}
		})
	}
}

func TestValidateBatch(t *testing.T) {
	tests := []struct {
		name    string
		config  BatchConfig
		wantErr bool
	}{
		{"valid config", BatchConfig{Concurrency: 10, ChunkSize: 100, Timeout: time.Minute}, false},
		{"non-positive concurrency", BatchConfig{Concurrency: 0, ChunkSize: 100, Timeout: time.Minute}, true},
		{"concurrency over limit", BatchConfig{Concurrency: 1001, ChunkSize: 100, Timeout: time.Minute}, true},
		{"non-positive chunk_size", BatchConfig{Concurrency: 10, ChunkSize: 0, Timeout: time.Minute}, true},
		{"non-positive timeout", BatchConfig{Concurrency: 10, ChunkSize: 100, Timeout: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateBatch(&tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateBatch(%+v) error = %v, wantErr %v", tt.config, err, tt.wantErr)
			}
		})
	}
}

func TestValidateLogging(t *testing.T) {
	tests := []struct {
		name    string
		config  LoggingConfig
		wantErr bool
	}{
		{"valid config", LoggingConfig{Level: "info", Format: "text", Output: "stderr"}, false},
		{"invalid level", LoggingConfig{Level: "verbose", Format: "text", Output: "stderr"}, true},
		{"invalid format", LoggingConfig{Level: "info", Format: "yaml", Output: "stderr"}, true},
		{"invalid output", LoggingConfig{Level: "info", Format: "text", Output: "syslog"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateLogging(&tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateLogging(%+v) error = %v, wantErr %v", tt.config, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFullConfig(t *testing.T) {
	dir := t.TempDir()

	valid := &Config{
		Source: SourceConfig{Type: "local", DefaultType: "http", AutoDetect: false},
		Local: LocalConfig{
			BasePath:     dir,
			PathTemplate: "{base_path}/{z}/{x}/{y}.mvt",
			Extension:    ".mvt",
		},
		Output: OutputConfig{Format: "geojson", Stdout: true},
		Batch:  BatchConfig{Concurrency: 10, ChunkSize: 100, Timeout: time.Minute},
		Network: NetworkConfig{
			UserAgent:       "mvtcodec-test/1.0",
			MaxIdleConns:    10,
			KeepAlive:       30 * time.Second,
			IdleConnTimeout: 90 * time.Second,
		},
		Logging: LoggingConfig{Level: "info", Format: "text", Output: "stderr"},
	}

	if err := Validate(valid); err != nil {
		t.Errorf("Validate() on a fully-populated local config returned an error: %v", err)
	}

	invalid := *valid
	invalid.Source.Type = "carrier-pigeon"
	if err := Validate(&invalid); err == nil {
		t.Error("Validate() with an invalid source type should return an error")
	}
}

func TestContains(t *testing.T) {
	slice := []string{"HTTP", "Local", "auto"}

	if !contains(slice, "http") {
		t.Error("contains should match case-insensitively")
	}
	if !contains(slice, "AUTO") {
		t.Error("contains should match case-insensitively")
	}
	if contains(slice, "ftp") {
		t.Error("contains should not match an absent value")
	}
}
