package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestRespondentIDIsBlank tests blank detection on respondent identifiers
func TestRespondentIDIsBlank(t *testing.T) {
	tests := []struct {
		id    RespondentID
		blank bool
	}{
		{"", true},
		{"   ", true},
		{"101", false},
		{"abc-1", false},
	}

	for _, test := range tests {
		if test.id.IsBlank() != test.blank {
			t.Errorf("IsBlank(%q) = %v, expected %v", test.id, !test.blank, test.blank)
		}
	}
}

// TestParseRunID tests run ID parsing
func TestParseRunID(t *testing.T) {
	tests := []struct {
		input    string
		expected RunID
		hasError bool
	}{
		{"valid-id", RunID("valid-id"), false},
		{"", "", true},
		{"   ", "", true},
	}

	for _, test := range tests {
		result, err := ParseRunID(test.input)
		if test.hasError && err == nil {
			t.Errorf("Expected error for input '%s', but got none", test.input)
		}
		if !test.hasError && err != nil {
			t.Errorf("Unexpected error for input '%s': %v", test.input, err)
		}
		if result != test.expected {
			t.Errorf("Expected %s, got %s", test.expected, result)
		}
	}
}

// TestParseQuestionCode tests question code parsing
func TestParseQuestionCode(t *testing.T) {
	tests := []struct {
		input    string
		expected QuestionCode
		hasError bool
	}{
		{"Q5", QuestionCode("Q5"), false},
		{"", "", true},
	}

	for _, test := range tests {
		result, err := ParseQuestionCode(test.input)
		if test.hasError && err == nil {
			t.Errorf("Expected error for input '%s', but got none", test.input)
		}
		if !test.hasError && err != nil {
			t.Errorf("Unexpected error for input '%s': %v", test.input, err)
		}
		if result != test.expected {
			t.Errorf("Expected %s, got %s", test.expected, result)
		}
	}
}
