package common

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GenerateUUID generates a UUID with an optional prefix
func GenerateUUID(prefix string) string {
	id := uuid.New()
	if prefix != "" {
		return fmt.Sprintf("%s_%s", prefix, strings.ReplaceAll(id.String(), "-", ""))
	}
	return id.String()
}

// GenerateCalculationID generates a calculation ID with "calc" prefix
func GenerateCalculationID() string {
	return GenerateUUID("calc")
}

// GenerateDocumentID generates a document ID with "doc" prefix
func GenerateDocumentID() string {
	return GenerateUUID("doc")
}

// GenerateTermsID generates a CSA terms ID with "csa" prefix
func GenerateTermsID() string {
	return GenerateUUID("csa")
}
