// Package config supplies flag defaults from the environment and optional
// .env files.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment keys read by the pagepack tools.
const (
	FontDir     = "PAGEPACK_FONT_DIR"
	FontPattern = "PAGEPACK_FONT_PATTERN"
	FontSizes   = "PAGEPACK_FONT_SIZES"
	Format      = "PAGEPACK_FORMAT"
	Addr        = "PAGEPACK_ADDR"
	Mask        = "PAGEPACK_MASK"
	Scale       = "PAGEPACK_SCALE"
)

// Load reads the given .env files, or ".env" when none are given. Files that
// do not exist are skipped; variables already set in the environment win.
func Load(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, file := range files {
		if _, err := os.Stat(file); os.IsNotExist(err) {
			continue
		}

		if err := godotenv.Load(file); err != nil {
			return err
		}
	}

	return nil
}

// String returns the value of key, or def when it is unset or empty.
func String(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}

	return def
}

// Int returns the integer value of key, or def when it is unset or invalid.
func Int(key string, def int) int {
	v, err := strconv.Atoi(String(key, ""))
	if err != nil {
		return def
	}

	return v
}

// List splits a comma separated value, dropping empty items.
func List(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}

	return out
}
