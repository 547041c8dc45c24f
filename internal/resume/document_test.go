package resume

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_TypedSections(t *testing.T) {
	doc, err := Parse([]byte(`{
		"basics": {"name": "Jane Doe", "summary": "Data engineer."},
		"work": [{"name": "Acme Corp", "position": "Engineer", "highlights": ["Did X."]}],
		"skills": ["SQL", {"name": "Cloud", "keywords": ["AWS", "S3"]}],
		"certificates": [{"name": "AWS SAA"}]
	}`))
	require.NoError(t, err)

	require.NotNil(t, doc.Basics)
	assert.Equal(t, "Data engineer.", doc.Basics.Summary)
	assert.Contains(t, doc.Basics.Extra, "name")

	require.Len(t, doc.Work, 1)
	assert.Equal(t, "Acme Corp", doc.Work[0].DisplayName())
	assert.Equal(t, []string{"Did X."}, doc.Work[0].Highlights)
	assert.Contains(t, doc.Work[0].Extra, "position")

	require.Len(t, doc.Skills, 2)
	assert.True(t, doc.Skills[0].IsBare())
	assert.Equal(t, "SQL", doc.Skills[0].FlatName())
	assert.True(t, doc.Skills[1].IsBucket())
	assert.Equal(t, []string{"AWS", "S3"}, doc.Skills[1].Keywords)

	require.Len(t, doc.Certificates, 1)
	assert.Equal(t, "AWS SAA", doc.Certificates[0].Name)
}

func TestParse_UnknownSectionsRoundTrip(t *testing.T) {
	src := []byte(`{
		"basics": {"summary": "Hi."},
		"publications": [{"name": "Paper", "releaseDate": "2020-01-01"}],
		"languages": [{"language": "English"}]
	}`)
	doc, err := Parse(src)
	require.NoError(t, err)

	assert.Contains(t, doc.Extra, "publications")
	assert.Contains(t, doc.Extra, "languages")

	out, err := json.Marshal(doc)
	require.NoError(t, err)

	var got, want map[string]any
	require.NoError(t, json.Unmarshal(out, &got))
	require.NoError(t, json.Unmarshal(src, &want))
	assert.Equal(t, want, got)
}

func TestParse_MalformedSectionFallsToExtra(t *testing.T) {
	doc, err := Parse([]byte(`{"work": "not an array", "projects": [{"name": "P"}]}`))
	require.NoError(t, err)

	assert.Nil(t, doc.Work)
	assert.Contains(t, doc.Extra, "work")
	require.Len(t, doc.Projects, 1)
}

func TestEntry_MalformedHighlightsTreatedAsAbsent(t *testing.T) {
	doc, err := Parse([]byte(`{"work": [{"name": "Acme", "highlights": "oops"}]}`))
	require.NoError(t, err)

	require.Len(t, doc.Work, 1)
	assert.Nil(t, doc.Work[0].Highlights)
	assert.Contains(t, doc.Work[0].Extra, "highlights")
}

func TestEntry_CompanyAliasDisplayName(t *testing.T) {
	doc, err := Parse([]byte(`{"work": [{"company": "Globex"}]}`))
	require.NoError(t, err)

	require.Len(t, doc.Work, 1)
	assert.Equal(t, "Globex", doc.Work[0].DisplayName())
}

func TestClone_Independence(t *testing.T) {
	doc, err := Parse([]byte(`{
		"basics": {"summary": "Original."},
		"work": [{"name": "Acme", "highlights": ["Did X."]}],
		"skills": [{"name": "Cloud", "keywords": ["AWS"]}],
		"extraSection": {"k": 1}
	}`))
	require.NoError(t, err)

	clone := doc.Clone()
	clone.SetSummary("Changed.")
	clone.Work[0].Highlights[0] = "Changed highlight."
	clone.Work[0].Highlights = append(clone.Work[0].Highlights, "New.")
	clone.Skills[0].AddKeyword("S3")

	assert.Equal(t, "Original.", doc.Summary())
	assert.Equal(t, []string{"Did X."}, doc.Work[0].Highlights)
	assert.Equal(t, []string{"AWS"}, doc.Skills[0].Keywords)
}

func TestSetSummary_CreatesBasics(t *testing.T) {
	doc := &Document{}
	assert.Equal(t, "", doc.Summary())

	doc.SetSummary("Now present.")
	require.NotNil(t, doc.Basics)
	assert.Equal(t, "Now present.", doc.Summary())
}

func TestSkillItem_BareStringRoundTrip(t *testing.T) {
	doc, err := Parse([]byte(`{"skills": ["SQL"]}`))
	require.NoError(t, err)

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"skills": ["SQL"]}`, string(out))
}

func TestSkillItem_ObjectWithoutKeywordsIsFlat(t *testing.T) {
	doc, err := Parse([]byte(`{"skills": [{"name": "SQL", "level": "expert"}]}`))
	require.NoError(t, err)

	require.Len(t, doc.Skills, 1)
	assert.False(t, doc.Skills[0].IsBucket())
	assert.Equal(t, "SQL", doc.Skills[0].FlatName())
	assert.Contains(t, doc.Skills[0].Extra, "level")
}

func TestMeta_ProvenanceRoundTrip(t *testing.T) {
	doc := &Document{Meta: &Meta{GeneratedAt: "2025-01-02T03:04:05Z", Source: "rivoney"}}

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"meta": {"generatedAt": "2025-01-02T03:04:05Z", "source": "rivoney"}}`, string(out))
}
