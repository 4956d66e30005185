package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeBatch(t *testing.T) {
	tests := []struct {
		name            string
		result          *BatchResult
		expectSuccess   bool
		expectedMessage string
	}{
		{
			name:            "all rows clean",
			result:          &BatchResult{Total: 5, Created: 3, Updated: 2},
			expectSuccess:   true,
			expectedMessage: "Bulk upload completed successfully. 3 created, 2 updated.",
		},
		{
			name: "mixed outcome still succeeds with errors surfaced",
			result: &BatchResult{
				Total: 5, Created: 2, Updated: 1,
				Errors: []RowError{{Row: 2}, {Row: 4}},
			},
			expectSuccess:   true,
			expectedMessage: "Bulk upload completed with 2 errors",
		},
		{
			name: "every row failed",
			result: &BatchResult{
				Total:  2,
				Errors: []RowError{{Row: 1}, {Row: 2}},
			},
			expectSuccess:   false,
			expectedMessage: "All listings failed to process",
		},
		{
			name:            "aborted batch",
			result:          &BatchResult{Total: 3, Created: 3, Incomplete: true},
			expectSuccess:   false,
			expectedMessage: "Bulk upload aborted after 3 rows: listing store unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			success, message := SummarizeBatch(tt.result)
			assert.Equal(t, tt.expectSuccess, success)
			assert.Equal(t, tt.expectedMessage, message)
		})
	}
}
