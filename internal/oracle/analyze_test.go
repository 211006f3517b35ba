package oracle

import (
	"context"
	"testing"

	"github.com/echodeck/echodeck/internal/model"
)

func makeItems(ids ...string) []model.InboxItem {
	items := make([]model.InboxItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, model.InboxItem{ID: id, Subject: "s", Content: "c"})
	}
	return items
}

func validResult() *model.AnalysisResult {
	return &model.AnalysisResult{
		TopPriorities: []model.PrioritizedTask{
			{ID: "t1", OriginalItemID: "a", UrgencyScore: 9, ImportanceScore: 8},
		},
		ProductivityScore: 70,
		Distribution:      model.Distribution{Urgent: 1, Noise: 1},
		ItemClassifications: []model.ItemClassification{
			{ItemID: "a", Category: model.CategoryUrgent},
			{ItemID: "b", Category: model.CategoryNoise},
		},
	}
}

func TestAnalyzeEmptyInputShortCircuits(t *testing.T) {
	// The zero client never talks to the API for empty input.
	c := &Client{}

	result, err := c.AnalyzePriorities(context.Background(), nil)
	if err != nil {
		t.Fatalf("AnalyzePriorities(nil) error = %v", err)
	}
	if result.ProductivityScore != 100 {
		t.Errorf("ProductivityScore = %d, want 100", result.ProductivityScore)
	}
	if len(result.TopPriorities) != 0 || len(result.ItemClassifications) != 0 {
		t.Error("empty input must produce the zero-state analysis")
	}
	if result.Distribution.Total() != 0 {
		t.Errorf("Distribution.Total() = %d, want 0", result.Distribution.Total())
	}
}

func TestValidateAnalysis(t *testing.T) {
	tests := []struct {
		name    string
		items   []model.InboxItem
		mutate  func(*model.AnalysisResult)
		wantErr bool
	}{
		{
			name:   "valid result passes",
			items:  makeItems("a", "b"),
			mutate: func(*model.AnalysisResult) {},
		},
		{
			name:  "unknown classified item",
			items: makeItems("a", "b"),
			mutate: func(r *model.AnalysisResult) {
				r.ItemClassifications[1].ItemID = "ghost"
			},
			wantErr: true,
		},
		{
			name:  "duplicate classification",
			items: makeItems("a", "b"),
			mutate: func(r *model.AnalysisResult) {
				r.ItemClassifications[1].ItemID = "a"
			},
			wantErr: true,
		},
		{
			name:  "missing classification",
			items: makeItems("a", "b", "c"),
			mutate: func(r *model.AnalysisResult) {
				r.Distribution.Noise = 2
			},
			wantErr: true,
		},
		{
			name:  "invalid category",
			items: makeItems("a", "b"),
			mutate: func(r *model.AnalysisResult) {
				r.ItemClassifications[1].Category = "Whatever"
			},
			wantErr: true,
		},
		{
			name:  "top priority referencing unknown item",
			items: makeItems("a", "b"),
			mutate: func(r *model.AnalysisResult) {
				r.TopPriorities[0].OriginalItemID = "ghost"
			},
			wantErr: true,
		},
		{
			name:  "distribution sum mismatch",
			items: makeItems("a", "b"),
			mutate: func(r *model.AnalysisResult) {
				r.Distribution.Routine = 5
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validResult()
			tt.mutate(result)
			err := ValidateAnalysis(tt.items, result)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAnalysis() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeAnalysis(t *testing.T) {
	result := &model.AnalysisResult{
		TopPriorities: []model.PrioritizedTask{
			{OriginalItemID: "a", UrgencyScore: 40, ImportanceScore: 0},
		},
		ProductivityScore: 130,
	}

	normalizeAnalysis(result)

	task := result.TopPriorities[0]
	if task.ID == "" {
		t.Error("missing task id was not generated")
	}
	if task.UrgencyScore != 10 {
		t.Errorf("UrgencyScore = %d, want clamped to 10", task.UrgencyScore)
	}
	if task.ImportanceScore != 1 {
		t.Errorf("ImportanceScore = %d, want clamped to 1", task.ImportanceScore)
	}
	if task.Origin != model.OriginRich {
		t.Errorf("Origin = %q, want rich", task.Origin)
	}
	if result.ProductivityScore != 100 {
		t.Errorf("ProductivityScore = %d, want clamped to 100", result.ProductivityScore)
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:  "bare object",
			input: `{"productivityScore": 50}`,
		},
		{
			name:  "object wrapped in prose",
			input: "Here is the analysis:\n```json\n{\"productivityScore\": 50}\n```\nDone.",
		},
		{
			name:    "no object at all",
			input:   "I could not produce an analysis.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result model.AnalysisResult
			err := decodeJSON(tt.input, &result)
			if (err != nil) != tt.wantErr {
				t.Fatalf("decodeJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && result.ProductivityScore != 50 {
				t.Errorf("ProductivityScore = %d, want 50", result.ProductivityScore)
			}
		})
	}
}
