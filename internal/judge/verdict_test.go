package judge

import (
	"testing"
)

func TestParseVerdict_PlainJSON(t *testing.T) {
	spec := testSpec()

	verdict, ok := parseVerdict(spec, `{"score": 0.7, "judgment": "partially_correct_or_faithful", "rationale": "some support"}`)
	if !ok {
		t.Fatal("Expected verdict to parse")
	}
	if verdict.Score != 0.7 {
		t.Errorf("Expected score=0.7, got %f", verdict.Score)
	}
	if verdict.Rationale != "some support" {
		t.Errorf("Unexpected rationale '%s'", verdict.Rationale)
	}
}

func TestParseVerdict_MarkdownFence(t *testing.T) {
	spec := testSpec()
	content := "```json\n{\"score\": 1.0, \"judgment\": \"fully_correct_and_faithful\", \"rationale\": \"ok\"}\n```"

	verdict, ok := parseVerdict(spec, content)
	if !ok {
		t.Fatal("Expected fenced verdict to parse")
	}
	if verdict.RawOutput != content {
		t.Error("Expected RawOutput to preserve the original response")
	}
}

func TestParseVerdict_Rejections(t *testing.T) {
	spec := testSpec()

	cases := []struct {
		name    string
		content string
	}{
		{"not json", "the answer looks fine to me"},
		{"missing score", `{"judgment": "fully_correct_and_faithful", "rationale": "x"}`},
		{"score above range", `{"score": 1.5, "judgment": "fully_correct_and_faithful", "rationale": "x"}`},
		{"score below range", `{"score": -0.1, "judgment": "fully_correct_and_faithful", "rationale": "x"}`},
		{"unknown judgment", `{"score": 0.5, "judgment": "maybe", "rationale": "x"}`},
		{"case mismatch judgment", `{"score": 0.5, "judgment": "FULLY_CORRECT_AND_FAITHFUL", "rationale": "x"}`},
		{"empty", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := parseVerdict(spec, tc.content); ok {
				t.Errorf("Expected %q to be rejected", tc.content)
			}
		})
	}
}

func TestParseVerdict_BoundaryScoresAccepted(t *testing.T) {
	spec := testSpec()

	for _, score := range []string{"0", "1"} {
		content := `{"score": ` + score + `, "judgment": "incorrect_or_unfaithful", "rationale": "boundary"}`
		if _, ok := parseVerdict(spec, content); !ok {
			t.Errorf("Expected boundary score %s to be accepted", score)
		}
	}
}

func TestStripMarkdownCodeBlock(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{`{"a":1}`, `{"a":1}`},
		{"```no closing fence", "```no closing fence"},
	}

	for _, tc := range cases {
		if got := stripMarkdownCodeBlock(tc.in); got != tc.want {
			t.Errorf("stripMarkdownCodeBlock(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
