package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/KalebGordon/Rivoney/internal/ops"
	"github.com/KalebGordon/Rivoney/internal/resume"
)

const gapSystemPrompt = `You analyze a candidate's JSON Resume and a job description to propose only meaningful, atomic follow-up questions
that will improve the resume for this role AND remain reusable for future roles.

Optimization goals (in order):
1) Prefer portable, resume-worthy facts (tools used, scope/scale, measurable impact, artifacts, compliance) over JD-specific one-offs.
2) Each question should elicit a concise fact/evidence fragment (e.g., tools, scope, metric, artifact). Do NOT instruct the user to "provide a bullet".
3) Maximize searchability (keywords), credibility (metrics/artifacts), and clarity (scope/role).

Do NOT ask:
- Logistics/personal items (commute, relocation, schedule, salary, authorization, culture fit).
- Tenure confirmations ("X years of Y"). Instead, elicit evidence (projects, outcomes, responsibilities).
- Anything already present or generic duplicates.
- Cover-letter prompts.

Output rules (STRICT JSON):
- Return at most %d items in an array under key "questions".
- Each item MUST include: question, jd_gap, gap_reason, coverage_status (one of: "missing","weak").
- Optional: response_tier ("skill","context","highlight"), target_section, target_anchor, skill_tags, answer_hint.
- Keep values concise (<= 220 chars where sensible).`

const opsSystemPrompt = `You are a resume editor. Given a baseline JSON Resume and Q&A answers, produce a compact set of OPERATIONS to improve the resume for this role while keeping it broadly reusable.

Rules:
- Use new highlights only if the answer is impactful (action + scope + tool + metric/outcome). Otherwise either (a) merge/rewrite an EXISTING highlight to include the info concisely, or (b) extract 1-3 skill keywords.
- Prefer adding to WORK (by company anchor) over creating Projects unless the content is truly a standalone project.
- Keep highlights crisp, job-relevant, and non-duplicative.
- Never invent facts; rewrite only with provided content.
- Skills: no levels. Add keywords only (single or bucket).
- Do not remove existing content.

Return STRICT JSON with an operations list. Each item must be one of:
1) {"op":"add_highlight","section":"work"|"projects","anchor":"<company or project name>","text":"..."}
2) {"op":"rewrite_highlight","section":"work"|"projects","anchor":"<company or project name>","find":"<short snippet to match>","text":"<rewritten bullet>"}
3) {"op":"add_skill_keywords","keywords":["kw1","kw2",...]}
4) {"op":"add_education_highlight","anchor":"<institution or empty>","text":"..."}
5) {"op":"add_certificate","name":"<credential>","summary":"<optional>"}
6) {"op":"update_summary","mode":"append","text":"<<=120 chars, portable>"}

Constraints:
- At most 2 ops per answer row.
- Highlights must be <= 220 chars each.
- If unsure between highlight vs skills, choose skills.`

// buildGapPrompt assembles the full gap-analysis prompt from the resume and
// job description.
func buildGapPrompt(doc *resume.Document, jobDescription string, maxQuestions int) (string, error) {
	snippet, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode resume: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, gapSystemPrompt, maxQuestions)
	b.WriteString("\n\nJOB DESCRIPTION:\n")
	b.WriteString(jobDescription)
	b.WriteString("\n\nJSON RESUME:\n")
	b.Write(snippet)
	b.WriteString("\n\nReturn strictly the JSON object with the fields described.")
	return b.String(), nil
}

type opsQARow struct {
	Text       string `json:"text"`
	Experience string `json:"experience"`
}

type opsQAItem struct {
	QIndex   int        `json:"q_index"`
	Question string     `json:"question"`
	Rows     []opsQARow `json:"rows"`
}

type opsPayload struct {
	JobDescription string          `json:"job_description"`
	BaselineResume json.RawMessage `json:"baseline_resume"`
	QA             []opsQAItem     `json:"qa"`
}

// buildOpsPrompt assembles the operation-planning prompt from the baseline
// resume, the job description, and the answered questions.
func buildOpsPrompt(doc *resume.Document, jobDescription string, qa []ops.QA) (string, error) {
	snippet, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode resume: %w", err)
	}

	items := make([]opsQAItem, 0, len(qa))
	for _, item := range qa {
		rows := make([]opsQARow, 0, len(item.Rows))
		for _, row := range item.Rows {
			if strings.TrimSpace(row.Text) == "" {
				continue
			}
			rows = append(rows, opsQARow{Text: row.Text, Experience: row.Experience})
		}
		items = append(items, opsQAItem{QIndex: item.Index, Question: item.Question, Rows: rows})
	}

	payload, err := json.Marshal(opsPayload{
		JobDescription: jobDescription,
		BaselineResume: snippet,
		QA:             items,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode payload: %w", err)
	}

	var b strings.Builder
	b.WriteString(opsSystemPrompt)
	b.WriteString("\n\n")
	b.Write(payload)
	return b.String(), nil
}
