package merge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KalebGordon/Rivoney/internal/ops"
	"github.com/KalebGordon/Rivoney/internal/resume"
)

func baselineDoc(t *testing.T) *resume.Document {
	t.Helper()
	doc, err := resume.Parse([]byte(`{
		"basics": {"summary": "Data engineer."},
		"work": [
			{"name": "Acme Corporation", "highlights": ["Did X."]},
			{"name": "Globex", "highlights": []}
		],
		"skills": ["SQL"]
	}`))
	require.NoError(t, err)
	return doc
}

func TestApply_BaselineNeverMutated(t *testing.T) {
	base := baselineDoc(t)

	tailored := Apply(base, []ops.Operation{
		{Op: ops.OpAddHighlight, Section: "work", Anchor: "Acme Corporation", Text: "Shipped the pipeline"},
		{Op: ops.OpUpdateSummary, Mode: ops.ModeAppend, Text: "Cloud builder"},
	})

	assert.Equal(t, []string{"Did X."}, base.Work[0].Highlights)
	assert.Equal(t, "Data engineer.", base.Summary())
	assert.Len(t, tailored.Work[0].Highlights, 2)
}

func TestApply_AddHighlightGetsPunctuation(t *testing.T) {
	got := Apply(baselineDoc(t), []ops.Operation{
		{Op: ops.OpAddHighlight, Section: "work", Anchor: "Acme Corporation", Text: "Led migration of 50 services to Kubernetes"},
	})

	assert.Equal(t, []string{"Did X.", "Led migration of 50 services to Kubernetes."}, got.Work[0].Highlights)
}

func TestApply_AddHighlightFuzzyAnchor(t *testing.T) {
	got := Apply(baselineDoc(t), []ops.Operation{
		{Op: ops.OpAddHighlight, Section: "work", Anchor: "Acme Corp", Text: "Found by fuzzy anchor"},
	})

	assert.Contains(t, got.Work[0].Highlights, "Found by fuzzy anchor.")
	assert.Empty(t, got.Work[1].Highlights)
}

func TestApply_AddHighlightUnknownAnchorLandsOnFirst(t *testing.T) {
	got := Apply(baselineDoc(t), []ops.Operation{
		{Op: ops.OpAddHighlight, Section: "work", Anchor: "Wayne Enterprises", Text: "Anchor miss goes first"},
	})

	assert.Contains(t, got.Work[0].Highlights, "Anchor miss goes first.")
}

func TestApply_AddHighlightDeduped(t *testing.T) {
	got := Apply(baselineDoc(t), []ops.Operation{
		{Op: ops.OpAddHighlight, Section: "work", Anchor: "Acme Corporation", Text: "Same bullet text"},
		{Op: ops.OpAddHighlight, Section: "work", Anchor: "Acme Corporation", Text: "Same bullet text."},
	})

	assert.Equal(t, []string{"Did X.", "Same bullet text."}, got.Work[0].Highlights)
}

func TestApply_WorkHighlightCapEnforced(t *testing.T) {
	operations := make([]ops.Operation, 0, 12)
	for i := 0; i < 12; i++ {
		operations = append(operations, ops.Operation{
			Op: ops.OpAddHighlight, Section: "work", Anchor: "Acme Corporation",
			Text: "Unique highlight number " + strings.Repeat("x", i+1),
		})
	}

	got := Apply(baselineDoc(t), operations)
	assert.Len(t, got.Work[0].Highlights, workHighlightCap)
}

func TestApply_RewriteHighlightReplacesCloseMatch(t *testing.T) {
	base := baselineDoc(t)
	base.Work[0].Highlights = []string{"Maintained legacy ETL scripts in Python."}

	got := Apply(base, []ops.Operation{{
		Op: ops.OpRewriteHighlight, Section: "work", Anchor: "Acme Corporation",
		Find: "Maintained legacy ETL scripts",
		Text: "Rebuilt legacy ETL scripts into a monitored Python pipeline",
	}})

	require.Len(t, got.Work[0].Highlights, 1)
	assert.Equal(t, "Rebuilt legacy ETL scripts into a monitored Python pipeline.", got.Work[0].Highlights[0])
}

func TestApply_RewriteHighlightNoMatchAppends(t *testing.T) {
	got := Apply(baselineDoc(t), []ops.Operation{{
		Op: ops.OpRewriteHighlight, Section: "work", Anchor: "Acme Corporation",
		Find: "completely unrelated text nowhere in the document",
		Text: "Appended because nothing matched",
	}})

	assert.Equal(t, []string{"Did X.", "Appended because nothing matched."}, got.Work[0].Highlights)
}

func TestApply_ProjectCreatedByAnchor(t *testing.T) {
	got := Apply(baselineDoc(t), []ops.Operation{{
		Op: ops.OpAddHighlight, Section: "projects", Anchor: "Side Project", Text: "Built a CLI tool in Go",
	}})

	require.Len(t, got.Projects, 1)
	assert.Equal(t, "Side Project", got.Projects[0].Name)
	assert.Equal(t, []string{"Built a CLI tool in Go."}, got.Projects[0].Highlights)
}

func TestApply_ProjectDefaultNameWhenAnchorEmpty(t *testing.T) {
	got := Apply(baselineDoc(t), []ops.Operation{{
		Op: ops.OpAddHighlight, Section: "projects", Anchor: "", Text: "Landed on the default project",
	}})

	require.Len(t, got.Projects, 1)
	assert.Equal(t, "Project A", got.Projects[0].Name)
}

func TestApply_SkillKeywordsFoldIntoSingleBucket(t *testing.T) {
	got := Apply(baselineDoc(t), []ops.Operation{
		{Op: ops.OpAddSkillKeywords, Keywords: []string{"AWS", "S3"}},
		{Op: ops.OpAddSkillKeywords, Keywords: []string{"AWS", "Terraform", " "}},
	})

	// Flat skill stays; exactly one bucket holds the deduped keywords.
	require.Len(t, got.Skills, 2)
	assert.Equal(t, "SQL", got.Skills[0].FlatName())
	require.True(t, got.Skills[1].IsBucket())
	assert.Equal(t, "Core Skills", got.Skills[1].FlatName())
	assert.Equal(t, []string{"AWS", "S3", "Terraform"}, got.Skills[1].Keywords)
}

func TestApply_EducationHighlightCreatesEntry(t *testing.T) {
	got := Apply(baselineDoc(t), []ops.Operation{{
		Op: ops.OpAddEducationHighlight, Anchor: "State University", Text: "Capstone on stream processing",
	}})

	require.Len(t, got.Education, 1)
	assert.Equal(t, "State University", got.Education[0].Institution)
	assert.Equal(t, []string{"Capstone on stream processing."}, got.Education[0].Highlights)
}

func TestApply_CertificateDedupedByName(t *testing.T) {
	got := Apply(baselineDoc(t), []ops.Operation{
		{Op: ops.OpAddCertificate, Name: "AWS SAA", Summary: "Solutions Architect"},
		{Op: ops.OpAddCertificate, Name: " AWS SAA "},
	})

	require.Len(t, got.Certificates, 1)
	assert.Equal(t, "AWS SAA", got.Certificates[0].Name)
	assert.Equal(t, "Solutions Architect", got.Certificates[0].Summary)
}

func TestApply_SummaryAppendAndContainmentDedupe(t *testing.T) {
	got := Apply(baselineDoc(t), []ops.Operation{
		{Op: ops.OpUpdateSummary, Mode: ops.ModeAppend, Text: "Cloud builder"},
		{Op: ops.OpUpdateSummary, Mode: ops.ModeAppend, Text: "Data engineer"},
	})

	// The second text is already contained in the existing summary.
	assert.Equal(t, "Data engineer. • Cloud builder", got.Summary())
}

func TestApply_SummaryClampedToBudget(t *testing.T) {
	base := baselineDoc(t)
	base.SetSummary(strings.Repeat("a", 990))

	got := Apply(base, []ops.Operation{
		{Op: ops.OpUpdateSummary, Mode: ops.ModeAppend, Text: "Trailing summary text"},
	})

	assert.Len(t, []rune(got.Summary()), summaryMaxRunes)
}

func TestApply_InvalidOperationsSkippedNotFatal(t *testing.T) {
	got := Apply(baselineDoc(t), []ops.Operation{
		{Op: "drop_everything"},
		{Op: ops.OpAddHighlight, Section: "work", Anchor: "Acme Corporation", Text: "tiny"},
		{Op: ops.OpAddHighlight, Section: "work", Anchor: "Acme Corporation", Text: "Survived the bad batch"},
	})

	assert.Equal(t, []string{"Did X.", "Survived the bad batch."}, got.Work[0].Highlights)
}

func TestApply_EmptyWorkSectionCreatesEntryFromAnchor(t *testing.T) {
	doc := &resume.Document{}

	got := Apply(doc, []ops.Operation{{
		Op: ops.OpAddHighlight, Section: "work", Anchor: "Fresh Start Inc", Text: "First ever highlight",
	}})

	require.Len(t, got.Work, 1)
	assert.Equal(t, "Fresh Start Inc", got.Work[0].Name)
	assert.Equal(t, []string{"First ever highlight."}, got.Work[0].Highlights)
}
