package common

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestGenerateUUID(t *testing.T) {
	// Test without prefix
	id1 := GenerateUUID("")
	if id1 == "" {
		t.Error("GenerateUUID() returned empty string")
	}

	// Validate it's a proper UUID format
	if _, err := uuid.Parse(id1); err != nil {
		t.Errorf("GenerateUUID() returned invalid UUID: %v", err)
	}

	// Test with prefix
	prefix := "test"
	id2 := GenerateUUID(prefix)
	if !strings.HasPrefix(id2, prefix+"_") {
		t.Errorf("GenerateUUID() with prefix %s should start with %s_, got %s", prefix, prefix, id2)
	}

	// Test uniqueness
	id3 := GenerateUUID("")
	if id1 == id3 {
		t.Error("GenerateUUID() should generate unique UUIDs")
	}
}

func TestGenerateCalculationID(t *testing.T) {
	calcID := GenerateCalculationID()

	if !strings.HasPrefix(calcID, "calc_") {
		t.Errorf("GenerateCalculationID() should start with 'calc_', got %s", calcID)
	}

	// Test uniqueness
	calcID2 := GenerateCalculationID()
	if calcID == calcID2 {
		t.Error("GenerateCalculationID() should generate unique IDs")
	}
}

func TestGenerateDocumentID(t *testing.T) {
	docID := GenerateDocumentID()

	if !strings.HasPrefix(docID, "doc_") {
		t.Errorf("GenerateDocumentID() should start with 'doc_', got %s", docID)
	}
}

func TestGenerateTermsID(t *testing.T) {
	termsID := GenerateTermsID()

	if !strings.HasPrefix(termsID, "csa_") {
		t.Errorf("GenerateTermsID() should start with 'csa_', got %s", termsID)
	}
}

// Benchmark tests
func BenchmarkGenerateUUID(b *testing.B) {
	for i := 0; i < b.N; i++ {
		GenerateUUID("test")
	}
}

func BenchmarkGenerateCalculationID(b *testing.B) {
	for i := 0; i < b.N; i++ {
		GenerateCalculationID()
	}
}
