package id

import (
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLedgerID(t *testing.T) {
	got := NewLedgerID()
	_, err := uuid.Parse(got)
	require.NoError(t, err)
	assert.NotEqual(t, got, NewLedgerID())
}

func TestNewEditID_Ordered(t *testing.T) {
	ts := time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 20; i++ {
		ids = append(ids, NewEditID(ts))
	}
	assert.True(t, sort.StringsAreSorted(ids), "IDs issued for the same instant must sort in issue order")

	got, err := EditTime(ids[0])
	require.NoError(t, err)
	assert.True(t, got.Equal(ts))
}

func TestNewEditID_ZeroTime(t *testing.T) {
	before := time.Now().Add(-time.Second)
	var editID string
	require.NotPanics(t, func() { editID = NewEditID(time.Time{}) })

	got, err := EditTime(editID)
	require.NoError(t, err)
	assert.True(t, got.After(before))
}

func TestEditTime_Invalid(t *testing.T) {
	_, err := EditTime("not-a-ulid")
	assert.Error(t, err)
}

func TestFormatLineCode(t *testing.T) {
	tests := []struct {
		prefix string
		seq    int
		want   string
	}{
		{"BS", 10, "BS-010"},
		{"IS", 5, "IS-005"},
		{"BS-CA", 120, "BS-CA-120"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatLineCode(tt.prefix, tt.seq))
	}
}

func TestParseLineCode(t *testing.T) {
	prefix, seq, err := ParseLineCode("BS-CA-120")
	require.NoError(t, err)
	assert.Equal(t, "BS-CA", prefix)
	assert.Equal(t, 120, seq)
}

func TestParseLineCode_Errors(t *testing.T) {
	badInputs := []string{
		"",
		"BS",
		"BS-",
		"-010",
		"BS-xyz",
	}
	for _, input := range badInputs {
		_, _, err := ParseLineCode(input)
		assert.Error(t, err, "expected error for input: %s", input)
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Trade Receivables", "trade-receivables"},
		{"Property, Plant & Equipment", "property-plant-equipment"},
		{"  Cash ", "cash"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slug(tt.input))
	}
}
