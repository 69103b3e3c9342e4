package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed pagesizes.yaml
var pageSizesYAML []byte

// Config holds catalog defaults read from the environment. CLI flags override them.
type Config struct {
	Layout    LayoutConfig
	Document  DocumentConfig
	PageSizes PageSizesConfig
	// Concurrency is the number of workers probing image headers.
	Concurrency int
}

type LayoutConfig struct {
	Rows        int     // defaults to 4
	Cols        int     // defaults to 3
	PageSize    string  // named size from pagesizes.yaml, defaults to a4
	Orientation string  // portrait or landscape
	MarginPt    float64 // defaults to 36 (half an inch)
	LineHeight  float64 // text band height in points, defaults to 10
}

type DocumentConfig struct {
	Title    string
	Author   string
	Keywords string
}

type PageSizeEntry struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type PageSizesConfig struct {
	Sizes map[string]PageSizeEntry `yaml:"sizes"`
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envFloat reads an environment variable as a non-negative float.
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= 0 {
		return f
	}
	return defaultVal
}

func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

func Load() *Config {
	var sizes PageSizesConfig
	if err := yaml.Unmarshal(pageSizesYAML, &sizes); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded pagesizes.yaml: " + err.Error())
	}

	return &Config{
		Layout: LayoutConfig{
			Rows:        envInt("CATALOG_ROWS", 4),
			Cols:        envInt("CATALOG_COLS", 3),
			PageSize:    strings.ToLower(envString("CATALOG_PAGE_SIZE", "a4")),
			Orientation: envString("CATALOG_ORIENTATION", "portrait"),
			MarginPt:    envFloat("CATALOG_MARGIN", 36),
			LineHeight:  envFloat("CATALOG_LINE_HEIGHT", 10),
		},
		Document: DocumentConfig{
			Title:    os.Getenv("CATALOG_TITLE"),
			Author:   os.Getenv("CATALOG_AUTHOR"),
			Keywords: os.Getenv("CATALOG_KEYWORDS"),
		},
		PageSizes:   sizes,
		Concurrency: envInt("CATALOG_CONCURRENCY", 8),
	}
}

// PageSize returns the portrait width and height in points for a named size.
func (c *Config) PageSize(name string) (width, height float64, err error) {
	entry, ok := c.PageSizes.Sizes[strings.ToLower(name)]
	if !ok {
		return 0, 0, fmt.Errorf("unknown page size %q (known: %s)", name, strings.Join(c.PageSizeNames(), ", "))
	}
	return entry.Width, entry.Height, nil
}

// PageSizeNames returns the known page size names in sorted order.
func (c *Config) PageSizeNames() []string {
	names := make([]string, 0, len(c.PageSizes.Sizes))
	for name := range c.PageSizes.Sizes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
