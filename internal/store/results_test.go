package store

import (
	"testing"
	"time"

	"github.com/genieai/rag-eval-agent/internal/models"
)

func TestRecordDocument_Flattening(t *testing.T) {
	record := models.EvaluationRecord{
		Turn: models.Turn{
			ChatID:    "chat-1",
			MessageID: "m1",
			GuestMode: true,
			Query:     "q",
			Answer:    "a",
		},
		EvaluationDate: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Results: map[string]models.JudgeVerdict{
			"accuracy":  {Dimension: "accuracy", Score: 0.9, Judgment: "fully_correct_and_faithful"},
			"coherence": {Dimension: "coherence", Score: 0.6, Judgment: "mostly_coherent"},
		},
	}

	doc := recordDocument(record)

	if doc["chat_id"] != "chat-1" || doc["message_id"] != "m1" || doc["guest_mode"] != true {
		t.Errorf("Identity fields wrong: %v", doc)
	}
	if doc["accuracy_score"] != 0.9 {
		t.Errorf("Expected accuracy_score=0.9, got %v", doc["accuracy_score"])
	}
	if doc["accuracy_judgment"] != "fully_correct_and_faithful" {
		t.Errorf("Unexpected accuracy_judgment: %v", doc["accuracy_judgment"])
	}
	if doc["coherence_score"] != 0.6 {
		t.Errorf("Expected coherence_score=0.6, got %v", doc["coherence_score"])
	}

	// Failed dimensions are absent, never null-padded.
	if _, present := doc["relevance_score"]; present {
		t.Error("Unscored dimension must not appear in the document")
	}
	if _, present := doc["relevance_judgment"]; present {
		t.Error("Unscored dimension must not appear in the document")
	}
}

func TestRecordDocument_KeepsFullResults(t *testing.T) {
	record := models.EvaluationRecord{
		Turn: models.Turn{ChatID: "c", MessageID: "m"},
		Results: map[string]models.JudgeVerdict{
			"accuracy": {Dimension: "accuracy", Score: 1, Judgment: "fully_correct_and_faithful", Rationale: "all claims supported"},
		},
	}

	doc := recordDocument(record)

	results, ok := doc["evaluation_results"].(map[string]models.JudgeVerdict)
	if !ok {
		t.Fatalf("evaluation_results has unexpected type %T", doc["evaluation_results"])
	}
	if results["accuracy"].Rationale != "all claims supported" {
		t.Error("Expected rationale to survive in the nested results")
	}
}
