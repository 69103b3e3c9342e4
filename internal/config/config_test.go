package config

import (
	"math"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"CATALOG_ROWS", "CATALOG_COLS", "CATALOG_PAGE_SIZE", "CATALOG_ORIENTATION", "CATALOG_MARGIN", "CATALOG_LINE_HEIGHT", "CATALOG_CONCURRENCY"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Layout.Rows != 4 || cfg.Layout.Cols != 3 {
		t.Errorf("expected 4x3 grid, got %dx%d", cfg.Layout.Rows, cfg.Layout.Cols)
	}
	if cfg.Layout.PageSize != "a4" {
		t.Errorf("expected a4, got %q", cfg.Layout.PageSize)
	}
	if cfg.Layout.Orientation != "portrait" {
		t.Errorf("expected portrait, got %q", cfg.Layout.Orientation)
	}
	if cfg.Layout.MarginPt != 36 {
		t.Errorf("expected 36pt margin, got %.2f", cfg.Layout.MarginPt)
	}
	if cfg.Layout.LineHeight != 10 {
		t.Errorf("expected 10pt line height, got %.2f", cfg.Layout.LineHeight)
	}
	if cfg.Concurrency != 8 {
		t.Errorf("expected concurrency 8, got %d", cfg.Concurrency)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("CATALOG_ROWS", "2")
	t.Setenv("CATALOG_COLS", "5")
	t.Setenv("CATALOG_PAGE_SIZE", "Letter")
	t.Setenv("CATALOG_MARGIN", "18.5")
	t.Setenv("CATALOG_TITLE", "Field Survey")

	cfg := Load()

	if cfg.Layout.Rows != 2 || cfg.Layout.Cols != 5 {
		t.Errorf("expected 2x5 grid, got %dx%d", cfg.Layout.Rows, cfg.Layout.Cols)
	}
	if cfg.Layout.PageSize != "letter" {
		t.Errorf("expected letter, got %q", cfg.Layout.PageSize)
	}
	if cfg.Layout.MarginPt != 18.5 {
		t.Errorf("expected 18.5pt margin, got %.2f", cfg.Layout.MarginPt)
	}
	if cfg.Document.Title != "Field Survey" {
		t.Errorf("expected title from env, got %q", cfg.Document.Title)
	}
}

func TestEnvInt_Invalid(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"abc", 7},
		{"0", 7},
		{"-3", 7},
		{"12", 12},
	}
	for _, tt := range tests {
		t.Setenv("CATALOG_TEST_INT", tt.value)
		if got := envInt("CATALOG_TEST_INT", 7); got != tt.want {
			t.Errorf("envInt(%q) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestEnvFloat_Invalid(t *testing.T) {
	t.Setenv("CATALOG_TEST_FLOAT", "-1")
	if got := envFloat("CATALOG_TEST_FLOAT", 3.5); got != 3.5 {
		t.Errorf("expected default for negative value, got %.2f", got)
	}
	t.Setenv("CATALOG_TEST_FLOAT", "0")
	if got := envFloat("CATALOG_TEST_FLOAT", 3.5); got != 0 {
		t.Errorf("expected zero to be accepted, got %.2f", got)
	}
}

func TestPageSize(t *testing.T) {
	cfg := Load()

	w, h, err := cfg.PageSize("A4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(w-595.28) > 0.01 || math.Abs(h-841.89) > 0.01 {
		t.Errorf("A4: expected 595.28x841.89, got %.2fx%.2f", w, h)
	}

	for _, name := range cfg.PageSizeNames() {
		w, h, err := cfg.PageSize(name)
		if err != nil {
			t.Errorf("%s: %v", name, err)
		}
		if w <= 0 || h < w {
			t.Errorf("%s: expected portrait size, got %.2fx%.2f", name, w, h)
		}
	}

	if _, _, err := cfg.PageSize("napkin"); err == nil {
		t.Error("expected error for unknown page size")
	}
}
