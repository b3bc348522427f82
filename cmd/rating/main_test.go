package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/rating/pkg/star"
)

var testColors = star.Colors{Filled: "#f5b400", Placeholder: "#d0d0d0"}

func TestWriteStar(t *testing.T) {
	tests := []struct {
		name    string
		size    string
		format  string
		want    string
		warn    bool
		wantErr bool
	}{
		{"small svg", "s", "svg", `width="16"`, false, false},
		{"large svg", "l", "svg", `width="24"`, false, false},
		{"unknown size falls back", "xl", "svg", `width="16"`, true, false},
		{"unknown format", "m", "gif", "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errw bytes.Buffer
			err := writeStar(&out, &errw, tt.size, tt.format, 1, testColors)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output missing %q", tt.want)
			}
			if got := strings.Contains(errw.String(), "E201"); got != tt.warn {
				t.Errorf("E201 warning = %v, want %v (stderr %q)", got, tt.warn, errw.String())
			}
		})
	}
}

func TestWriteStarPNG(t *testing.T) {
	var out, errw bytes.Buffer
	if err := writeStar(&out, &errw, "m", "png", 2, testColors); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&out)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 {
		t.Errorf("width = %d, want 40", b.Dx())
	}
}

func TestStarCommandUsesConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "rating.yaml"), []byte("star:\n  size: l\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	outFile := filepath.Join(dir, "star.svg")

	cmd := rootCmd()
	cmd.SetArgs([]string{"star", "--config", dir, "--out", outFile})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `width="24"`) {
		t.Errorf("star did not use configured size: %s", data)
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version", "--short"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != version {
		t.Errorf("version = %q, want %q", out.String(), version)
	}
}
