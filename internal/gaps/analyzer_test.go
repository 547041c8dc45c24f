package gaps

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KalebGordon/Rivoney/internal/resume"
)

// stubOracle replays canned responses per strictness and records calls.
type stubOracle struct {
	strictItems []map[string]any
	strictErr   error
	looseItems  []map[string]any
	looseErr    error

	strictCalls int
	looseCalls  int
}

func (s *stubOracle) ProposeGaps(_ context.Context, _ *resume.Document, _ string, _ int, strict bool) ([]map[string]any, error) {
	if strict {
		s.strictCalls++
		return s.strictItems, s.strictErr
	}
	s.looseCalls++
	return s.looseItems, s.looseErr
}

func questionItem(text string) map[string]any {
	return map[string]any{"question": text, "coverage_status": "weak"}
}

func TestAnalyze_StrictSuccessSkipsLoose(t *testing.T) {
	oracle := &stubOracle{strictItems: []map[string]any{questionItem("Q1?"), questionItem("Q2?")}}
	a := NewAnalyzer(oracle, 5)

	qs, err := a.Analyze(context.Background(), &resume.Document{}, "JD text")
	require.NoError(t, err)

	require.Len(t, qs, 2)
	assert.Equal(t, "Q1?", qs[0].Question)
	assert.Equal(t, 1, oracle.strictCalls)
	assert.Equal(t, 0, oracle.looseCalls)
}

func TestAnalyze_StrictFailureFallsBackToLoose(t *testing.T) {
	oracle := &stubOracle{
		strictErr:  errors.New("schema rejected"),
		looseItems: []map[string]any{questionItem("Loose?")},
	}
	a := NewAnalyzer(oracle, 5)

	qs, err := a.Analyze(context.Background(), &resume.Document{}, "JD")
	require.NoError(t, err)

	require.Len(t, qs, 1)
	assert.Equal(t, "Loose?", qs[0].Question)
	assert.Equal(t, 1, oracle.looseCalls)
}

func TestAnalyze_EmptyStrictResultTriggersLooseRetry(t *testing.T) {
	oracle := &stubOracle{
		strictItems: []map[string]any{},
		looseItems:  []map[string]any{questionItem("Retry?")},
	}
	a := NewAnalyzer(oracle, 5)

	qs, err := a.Analyze(context.Background(), &resume.Document{}, "JD")
	require.NoError(t, err)
	require.Len(t, qs, 1)
}

func TestAnalyze_DoubleFailureReturnsEmptyWithoutError(t *testing.T) {
	oracle := &stubOracle{strictErr: errors.New("down"), looseErr: errors.New("still down")}
	a := NewAnalyzer(oracle, 5)

	qs, err := a.Analyze(context.Background(), &resume.Document{}, "JD")
	require.NoError(t, err)
	assert.NotNil(t, qs)
	assert.Empty(t, qs)
}

func TestAnalyze_NilOracleReturnsEmpty(t *testing.T) {
	a := NewAnalyzer(nil, 5)

	qs, err := a.Analyze(context.Background(), &resume.Document{}, "JD")
	require.NoError(t, err)
	assert.Empty(t, qs)
}

func TestAnalyze_DuplicateQuestionTextCollapses(t *testing.T) {
	oracle := &stubOracle{strictItems: []map[string]any{
		questionItem("Same?"),
		questionItem("Same?"),
		questionItem("Other?"),
	}}
	a := NewAnalyzer(oracle, 5)

	qs, err := a.Analyze(context.Background(), &resume.Document{}, "JD")
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, "Same?", qs[0].Question)
	assert.Equal(t, "Other?", qs[1].Question)
}

func TestAnalyze_CapsAtMaxQuestions(t *testing.T) {
	items := make([]map[string]any, 8)
	for i := range items {
		items[i] = questionItem(fmt.Sprintf("Q%d?", i))
	}
	oracle := &stubOracle{strictItems: items}
	a := NewAnalyzer(oracle, 3)

	qs, err := a.Analyze(context.Background(), &resume.Document{}, "JD")
	require.NoError(t, err)
	assert.Len(t, qs, 3)
}

func TestAnalyze_MalformedItemsDroppedIndividually(t *testing.T) {
	oracle := &stubOracle{strictItems: []map[string]any{
		nil,
		{"gap_reason": 5},
		questionItem("Kept?"),
	}}
	a := NewAnalyzer(oracle, 5)

	qs, err := a.Analyze(context.Background(), &resume.Document{}, "JD")
	require.NoError(t, err)

	// The item with no question text still synthesizes a generic prompt, so
	// only the nil entry disappears entirely.
	require.Len(t, qs, 2)
	assert.Equal(t, fallbackQuestion, qs[0].Question)
	assert.Equal(t, "Kept?", qs[1].Question)
}

func TestNewAnalyzer_NonPositiveMaxSelectsDefault(t *testing.T) {
	a := NewAnalyzer(&stubOracle{}, 0)
	assert.Equal(t, DefaultMaxQuestions, a.maxQuestions)
}
