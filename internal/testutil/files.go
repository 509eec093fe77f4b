package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleChartJSON is a four-Mahadasha chart in the shape chart backends
// produce: only the first record carries a start date.
const SampleChartJSON = `{"periods": [
	{"planet": "Rahu", "start_date": "1980-01-01", "end_date": "1998-01-01"},
	{"planet": "Jupiter", "end_date": "2014-01-01"},
	{"planet": "Saturn", "endDate": "2033-01-01"},
	{"lord": "Mercury", "end": "2050-01-01", "children": []}
]}`

// WriteFile writes content to name inside a fresh temp dir and returns the
// full path.
func WriteFile(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// Chdir changes the working directory to dir and restores the previous
// one when the test finishes (equivalent to testing.T.Chdir in Go 1.24+).
func Chdir(t testing.TB, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restoring working directory %s: %v", old, err)
		}
	})
}
