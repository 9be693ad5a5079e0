package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/image-transform/internal/pipeline"
	"github.com/ironsheep/image-transform/internal/transform"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "inverse_output: image_solutions/lake_inverse.jpg\n"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Input != pipeline.DefaultInput {
		t.Fatalf("expected default input, got %s", cfg.Input)
	}
	if cfg.Output != pipeline.DefaultOutput {
		t.Fatalf("expected default output, got %s", cfg.Output)
	}
	if cfg.Weights != "literal" || cfg.Domain != "8bit" {
		t.Fatalf("expected literal/8bit, got %s/%s", cfg.Weights, cfg.Domain)
	}
	if cfg.JPEGQuality != 95 {
		t.Fatalf("expected jpeg_quality 95, got %d", cfg.JPEGQuality)
	}
	if cfg.Stretch == nil || !*cfg.Stretch {
		t.Fatalf("expected stretch default true")
	}

	opts, err := cfg.Options()
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.Weights != transform.LiteralWeights || opts.Domain != transform.Domain8Bit {
		t.Fatalf("unexpected options: %+v", opts)
	}
	if opts.InverseOutput != "image_solutions/lake_inverse.jpg" {
		t.Fatalf("inverse output not carried over: %s", opts.InverseOutput)
	}
}

func TestLoadExplicitValues(t *testing.T) {
	data := `
input: photos/in.png
output: out/grey.png
weights: rec709
domain: unit
jpeg_quality: 70
stretch: false
`
	cfg, err := Load(writeConfig(t, data))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	opts, err := cfg.Options()
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.Input != "photos/in.png" || opts.Output != "out/grey.png" {
		t.Fatalf("unexpected paths: %+v", opts)
	}
	if opts.Weights != transform.Rec709Weights {
		t.Fatalf("expected rec709 weights, got %+v", opts.Weights)
	}
	if opts.Domain != transform.DomainUnit {
		t.Fatalf("expected unit domain, got %v", opts.Domain)
	}
	if opts.JPEGQuality != 70 || opts.Stretch {
		t.Fatalf("expected quality 70 without stretch, got %d/%v", opts.JPEGQuality, opts.Stretch)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown weights", "weights: bt601\n"},
		{"unknown domain", "domain: 16bit\n"},
		{"quality too high", "jpeg_quality: 101\n"},
		{"quality negative", "jpeg_quality: -5\n"},
		{"same outputs", "output: a.jpg\ninverse_output: a.jpg\n"},
		{"malformed yaml", "weights: [literal\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.data)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	opts, err := cfg.Options()
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts != pipeline.DefaultOptions() {
		t.Fatalf("default config differs from pipeline defaults: %+v", opts)
	}
}
