package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "request.json")

	if FileExists(path) {
		t.Errorf("FileExists(%s) should be false before creation", path)
	}

	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	if !FileExists(path) {
		t.Errorf("FileExists(%s) should be true after creation", path)
	}

	if FileExists(dir) {
		t.Error("FileExists() should be false for a directory")
	}
}

func TestContains(t *testing.T) {
	currencies := []string{"USD", "EUR", "GBP"}

	if !Contains(currencies, "EUR") {
		t.Error("Contains() should find EUR")
	}
	if Contains(currencies, "JPY") {
		t.Error("Contains() should not find JPY")
	}
}

func TestMap(t *testing.T) {
	amounts := []int{1, 2, 3}
	doubled := Map(amounts, func(v int) int { return v * 2 })

	if len(doubled) != 3 {
		t.Fatalf("Map() returned %d elements, want 3", len(doubled))
	}
	for i, v := range doubled {
		if v != amounts[i]*2 {
			t.Errorf("Map()[%d] = %d, want %d", i, v, amounts[i]*2)
		}
	}
}
