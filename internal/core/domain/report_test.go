package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFinding(t *testing.T, kind FindingKind, dep, excl string) Finding {
	t.Helper()
	e, err := ParseCoordinate(excl)
	require.NoError(t, err)
	return Finding{
		Kind:       kind,
		Dependency: NewDependency(mustArtifact(t, dep)),
		Exclusion:  Exclusion{Coordinate: e},
	}
}

func TestFinding_Message(t *testing.T) {
	tests := []struct {
		kind     FindingKind
		expected string
	}{
		{FindingInvalid, "Dependency com.other:util is excluded from com.acme:lib:1.0 but is not one of its dependencies"},
		{FindingUnnecessary, "Dependency com.other:util is excluded from com.acme:lib:1.0 but it would not clash with any other dependency"},
		{FindingNecessary, ""},
		{FindingSuppressed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			f := testFinding(t, tt.kind, "com.acme:lib:1.0", "com.other:util")
			assert.Equal(t, tt.expected, f.Message())
		})
	}
}

func TestFinding_MessageShowsClassifierAndType(t *testing.T) {
	f := testFinding(t, FindingInvalid, "com.acme:lib:1.0:tests:test-jar", "com.other:util")
	assert.Contains(t, f.Message(), "excluded from com.acme:lib:1.0:tests:test-jar but")
}

func TestFindingKind_String(t *testing.T) {
	assert.Equal(t, "suppressed", FindingSuppressed.String())
	assert.Equal(t, "invalid", FindingInvalid.String())
	assert.Equal(t, "unnecessary", FindingUnnecessary.String())
	assert.Equal(t, "necessary", FindingNecessary.String())
	assert.Equal(t, "FindingKind(42)", FindingKind(42).String())
}

func TestFindingKind_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(map[string]FindingKind{"kind": FindingUnnecessary})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"unnecessary"}`, string(data))
}

func TestFindingKind_IsRedundant(t *testing.T) {
	assert.True(t, FindingInvalid.IsRedundant())
	assert.True(t, FindingUnnecessary.IsRedundant())
	assert.False(t, FindingNecessary.IsRedundant())
	assert.False(t, FindingSuppressed.IsRedundant())
}

func TestReport_EmptyHasNoErrors(t *testing.T) {
	r := NewReport("run-1")
	messages, hasErrors := r.Finalize()
	assert.Empty(t, messages)
	assert.False(t, hasErrors)
	assert.NoError(t, r.Err())
	assert.Equal(t, "run-1", r.RunID)
}

func TestReport_RecordKeepsOrder(t *testing.T) {
	r := NewReport("")
	r.Record(testFinding(t, FindingUnnecessary, "g:b:1", "x:second"))
	r.Record(testFinding(t, FindingNecessary, "g:c:1", "x:skipped"))
	r.Record(testFinding(t, FindingSuppressed, "g:d:1", "x:skipped"))
	r.Record(testFinding(t, FindingInvalid, "g:a:1", "x:third"))

	messages, hasErrors := r.Finalize()
	require.True(t, hasErrors)
	require.Len(t, messages, 2)
	assert.Contains(t, messages[0], "x:second")
	assert.Contains(t, messages[1], "x:third")
	assert.Len(t, r.Findings(), 4)
	assert.Equal(t, 2, r.ErrorCount())
}

func TestReport_WarningsDoNotFail(t *testing.T) {
	r := NewReport("")
	r.Warn("Could not fetch details for com.acme:lib")
	_, hasErrors := r.Finalize()
	assert.False(t, hasErrors)
	assert.Equal(t, []string{"Could not fetch details for com.acme:lib"}, r.Warnings())
}

func TestReport_Err(t *testing.T) {
	r := NewReport("")
	r.Record(testFinding(t, FindingInvalid, "g:a:1", "x:y"))
	r.Record(testFinding(t, FindingUnnecessary, "g:a:1", "x:z"))

	err := r.Err()
	require.Error(t, err)
	assert.Equal(t, "Redundant dependency exclusions detected (2 errors, check previous logs)", err.Error())
	assert.True(t, errors.Is(err, ErrRedundantExclusions))
	assert.True(t, IsRedundantExclusions(err))

	var typed *RedundantExclusionsError
	require.True(t, errors.As(err, &typed))
	assert.Equal(t, 2, typed.Count)
}
