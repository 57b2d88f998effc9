package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaymentTerms(t *testing.T) {
	cases := []struct {
		label string
		want  PaymentTerms
	}{
		{"Net 30", Net30},
		{"net30", Net30},
		{"Net 15", Net15},
		{"Net 60", Net60},
		{"Due on Receipt", DueOnReceipt},
		{"due on receipt", DueOnReceipt},
		{"", Net30},
		{"whenever", Net30},
		{"Payment due in 15 days", Net15},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParsePaymentTerms(tc.label), "label %q", tc.label)
	}
}

func TestDueDate(t *testing.T) {
	cases := []struct {
		issue string
		label string
		want  string
	}{
		{"2025-01-01", "Net 30", "2025-01-31"},
		{"2025-01-01", "Net 15", "2025-01-16"},
		{"2025-01-01", "Net 60", "2025-03-02"},
		{"2025-01-01", "Due on Receipt", "2025-01-01"},
		// month rollover, leap year
		{"2024-02-15", "Net 15", "2024-03-01"},
	}
	for _, tc := range cases {
		issue, err := ParseIssueDate(tc.issue)
		require.NoError(t, err)
		due := ParsePaymentTerms(tc.label).DueDate(issue)
		assert.Equal(t, tc.want, FormatDate(due), "%s + %s", tc.issue, tc.label)
	}
}

func TestParseIssueDateInvalid(t *testing.T) {
	for _, s := range []string{"", "not-a-date", "2025-13-40", "01/02/2025"} {
		_, err := ParseIssueDate(s)
		assert.ErrorIs(t, err, ErrInvalidDate, "input %q", s)
	}
}

func TestTermsDays(t *testing.T) {
	assert.Equal(t, 0, DueOnReceipt.Days())
	assert.Equal(t, 15, Net15.Days())
	assert.Equal(t, 30, Net30.Days())
	assert.Equal(t, 60, Net60.Days())
}
