package ops

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KalebGordon/Rivoney/internal/resume"
)

type stubOpsOracle struct {
	items []json.RawMessage
	err   error
	calls int
	gotQA []QA
}

func (s *stubOpsOracle) ProposeOperations(_ context.Context, _ *resume.Document, _ string, qa []QA) ([]json.RawMessage, error) {
	s.calls++
	s.gotQA = qa
	return s.items, s.err
}

func answeredQA() []QA {
	return []QA{{
		Index:    0,
		Question: "What did you build?",
		Rows:     []AnswerRow{{Text: "Built an ETL pipeline in Python moving 2M rows daily", Experience: "Acme"}},
	}}
}

func TestSynthesize_OracleSuccessIsFiltered(t *testing.T) {
	oracle := &stubOpsOracle{items: []json.RawMessage{
		json.RawMessage(`{"op":"add_skill_keywords","keywords":["Python"]}`),
		json.RawMessage(`{"op":"bogus"}`),
	}}
	s := NewSynthesizer(oracle)

	got := s.Synthesize(context.Background(), &resume.Document{}, "JD", answeredQA())

	require.Len(t, got, 1)
	assert.Equal(t, OpAddSkillKeywords, got[0].Op)
	assert.Equal(t, 1, oracle.calls)
}

func TestSynthesize_OracleErrorFallsBackToHeuristic(t *testing.T) {
	oracle := &stubOpsOracle{err: errors.New("quota exceeded")}
	s := NewSynthesizer(oracle)

	got := s.Synthesize(context.Background(), &resume.Document{}, "JD", answeredQA())

	require.Len(t, got, 1)
	assert.Equal(t, OpAddHighlight, got[0].Op)
	assert.Equal(t, "Acme", got[0].Anchor)
}

func TestSynthesize_NilOracleUsesHeuristic(t *testing.T) {
	s := NewSynthesizer(nil)

	got := s.Synthesize(context.Background(), &resume.Document{}, "JD", answeredQA())

	require.Len(t, got, 1)
	assert.Equal(t, OpAddHighlight, got[0].Op)
}

func TestSynthesize_EmptyRowsNeverReachOracle(t *testing.T) {
	oracle := &stubOpsOracle{}
	s := NewSynthesizer(oracle)

	got := s.Synthesize(context.Background(), &resume.Document{}, "JD", []QA{
		{Index: 0, Rows: []AnswerRow{{Text: "  "}}},
	})

	assert.Nil(t, got)
	assert.Equal(t, 0, oracle.calls)
}

func TestSynthesize_BlankRowsStrippedBeforeOracle(t *testing.T) {
	oracle := &stubOpsOracle{items: []json.RawMessage{}}
	s := NewSynthesizer(oracle)

	s.Synthesize(context.Background(), &resume.Document{}, "JD", []QA{
		{Index: 0, Rows: []AnswerRow{{Text: ""}, {Text: "Real answer"}}},
		{Index: 1, Rows: []AnswerRow{{Text: "   "}}},
	})

	require.Len(t, oracle.gotQA, 1)
	require.Len(t, oracle.gotQA[0].Rows, 1)
	assert.Equal(t, "Real answer", oracle.gotQA[0].Rows[0].Text)
}
