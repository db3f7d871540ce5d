package memory

import (
	"context"
	"testing"

	"actlog/internal/core"
)

func TestAppendAndLoad(t *testing.T) {
	s := New()
	ctx := context.Background()

	ref, err := s.Append(ctx, core.Record{Date: core.NewDate(2024, 1, 1), Category: "Research", Hours: 2})
	if err != nil || ref != "mem:0" {
		t.Fatalf("unexpected append: ref=%q err=%v", ref, err)
	}

	records, err := s.Load(ctx)
	if err != nil || len(records) != 1 {
		t.Fatalf("unexpected load: %v err=%v", records, err)
	}
}

func TestLoadReturnsCopy(t *testing.T) {
	s := New(core.Record{Date: core.NewDate(2024, 1, 1), Category: "A", Hours: 1})
	ctx := context.Background()

	records, _ := s.Load(ctx)
	records[0].Category = "mutated"

	again, _ := s.Load(ctx)
	if again[0].Category != "A" {
		t.Fatal("Load should return a disposable copy")
	}
}

func TestDeleteKeepsOrder(t *testing.T) {
	s := New(
		core.Record{Date: core.NewDate(2024, 1, 1), Category: "A", Hours: 1},
		core.Record{Date: core.NewDate(2024, 1, 2), Category: "B", Hours: 2},
		core.Record{Date: core.NewDate(2024, 1, 3), Category: "C", Hours: 3},
	)
	removed, err := s.Delete(context.Background(), []int{1, 9})
	if err != nil || removed != 1 {
		t.Fatalf("removed=%d err=%v", removed, err)
	}
	records, _ := s.Load(context.Background())
	if len(records) != 2 || records[0].Category != "A" || records[1].Category != "C" {
		t.Fatalf("unexpected survivors: %+v", records)
	}
}
