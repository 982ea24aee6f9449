package judge

import (
	"encoding/json"
	"strings"

	"github.com/genieai/rag-eval-agent/internal/config"
	"github.com/genieai/rag-eval-agent/internal/models"
)

// rawVerdict is the JSON shape the judge prompt asks for. Score is a
// pointer so that a missing score is distinguishable from 0.0.
type rawVerdict struct {
	Score     *float64 `json:"score"`
	Judgment  string   `json:"judgment"`
	Rationale string   `json:"rationale"`
}

// parseVerdict validates one model response against the dimension spec.
// It returns ok=false for anything that is not a legal verdict: unparsable
// JSON, missing fields, score out of range, judgment outside the label
// set. The caller decides whether to retry; parsing never throws.
func parseVerdict(spec config.DimensionSpec, content string) (models.JudgeVerdict, bool) {
	stripped := stripMarkdownCodeBlock(content)

	var raw rawVerdict
	if err := json.Unmarshal([]byte(stripped), &raw); err != nil {
		return models.JudgeVerdict{}, false
	}

	if raw.Score == nil || !spec.ScoreInRange(*raw.Score) {
		return models.JudgeVerdict{}, false
	}
	if !spec.LegalJudgment(raw.Judgment) {
		return models.JudgeVerdict{}, false
	}

	return models.JudgeVerdict{
		Dimension: spec.Name,
		Score:     *raw.Score,
		Judgment:  raw.Judgment,
		Rationale: raw.Rationale,
		RawOutput: content,
	}, true
}

// stripMarkdownCodeBlock removes markdown code block formatting if present.
func stripMarkdownCodeBlock(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		firstNewline := strings.Index(content, "\n")
		if firstNewline == -1 {
			return content
		}

		closingBackticks := strings.LastIndex(content, "```")
		if closingBackticks == -1 || closingBackticks <= firstNewline {
			return content
		}

		content = content[firstNewline+1 : closingBackticks]
		content = strings.TrimSpace(content)
	}

	return content
}
