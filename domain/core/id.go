package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	RunID        ID
	RespondentID ID
	QuestionCode ID
)

// String conversions for domain IDs
func (id RunID) String() string        { return ID(id).String() }
func (id RespondentID) String() string { return ID(id).String() }
func (id QuestionCode) String() string { return ID(id).String() }

// IsBlank reports whether the respondent identifier is empty after trimming.
// Blank identifiers are excluded from flagged sets and risk groups.
func (id RespondentID) IsBlank() bool {
	return strings.TrimSpace(string(id)) == ""
}

// ParseRunID parses a string into RunID
func ParseRunID(s string) (RunID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("run ID cannot be empty")
	}
	return RunID(s), nil
}

// ParseQuestionCode parses a string into QuestionCode
func ParseQuestionCode(s string) (QuestionCode, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("question code cannot be empty")
	}
	return QuestionCode(s), nil
}
