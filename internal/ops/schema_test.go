package ops

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raw(items ...string) []json.RawMessage {
	out := make([]json.RawMessage, len(items))
	for i, s := range items {
		out[i] = json.RawMessage(s)
	}
	return out
}

func TestFilterValid_AllVariants(t *testing.T) {
	got := FilterValid(raw(
		`{"op":"add_highlight","section":"work","anchor":"Acme","text":"Shipped the thing"}`,
		`{"op":"rewrite_highlight","section":"projects","anchor":"P","find":"old text","text":"rewritten text"}`,
		`{"op":"add_skill_keywords","keywords":["SQL","AWS"]}`,
		`{"op":"add_education_highlight","anchor":"","text":"Capstone project"}`,
		`{"op":"add_certificate","name":"AWS SAA","summary":"Solutions Architect"}`,
		`{"op":"update_summary","mode":"append","text":"Pipeline builder"}`,
	))

	require.Len(t, got, 6)
	assert.Equal(t, OpAddHighlight, got[0].Op)
	assert.Equal(t, OpRewriteHighlight, got[1].Op)
	assert.Equal(t, []string{"SQL", "AWS"}, got[2].Keywords)
	assert.Equal(t, OpAddEducationHighlight, got[3].Op)
	assert.Equal(t, "AWS SAA", got[4].Name)
	assert.Equal(t, ModeAppend, got[5].Mode)
}

func TestFilterValid_InvalidItemsSkippedIndividually(t *testing.T) {
	got := FilterValid(raw(
		`{"op":"add_highlight","section":"work","anchor":"Acme","text":"Valid highlight one"}`,
		`{"op":"add_highlight","section":"hobbies","anchor":"Acme","text":"Bad section value"}`,
		`{"op":"add_highlight","section":"work","anchor":"Acme","text":"tiny"}`,
		`{"op":"no_such_op"}`,
		`not json at all`,
		`{"op":"update_summary","mode":"replace","text":"Wrong mode value"}`,
		`{"op":"add_certificate","name":"CKA"}`,
	))

	require.Len(t, got, 2)
	assert.Equal(t, OpAddHighlight, got[0].Op)
	assert.Equal(t, OpAddCertificate, got[1].Op)
}

func TestFilterValid_UnknownFieldRejected(t *testing.T) {
	got := FilterValid(raw(
		`{"op":"add_skill_keywords","keywords":["Go"],"level":"expert"}`,
	))
	assert.Empty(t, got)
}

func TestFilterValid_EmptyInput(t *testing.T) {
	assert.Empty(t, FilterValid(nil))
}

func TestOperationValidate_Variants(t *testing.T) {
	tests := []struct {
		name    string
		op      Operation
		wantErr bool
	}{
		{"valid highlight", Operation{Op: OpAddHighlight, Section: "work", Text: "Did a real thing"}, false},
		{"highlight bad section", Operation{Op: OpAddHighlight, Section: "skills", Text: "Did a real thing"}, true},
		{"highlight too short", Operation{Op: OpAddHighlight, Section: "work", Text: "tiny"}, true},
		{"rewrite missing find", Operation{Op: OpRewriteHighlight, Section: "work", Text: "New bullet text"}, true},
		{"skills nil keywords", Operation{Op: OpAddSkillKeywords}, true},
		{"skills empty list ok", Operation{Op: OpAddSkillKeywords, Keywords: []string{}}, false},
		{"certificate short name", Operation{Op: OpAddCertificate, Name: "X"}, true},
		{"summary wrong mode", Operation{Op: OpUpdateSummary, Mode: "replace", Text: "Summary text"}, true},
		{"summary valid", Operation{Op: OpUpdateSummary, Mode: ModeAppend, Text: "Summary text"}, false},
		{"unknown op", Operation{Op: "drop_section"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.op.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
