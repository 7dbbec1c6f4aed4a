package paging_test

import (
	"testing"

	"github.com/dalemusser/cityfix/internal/app/system/paging"
)

func TestLimitPlusOne(t *testing.T) {
	if got := paging.LimitPlusOne(20); got != 21 {
		t.Errorf("LimitPlusOne(20): got %d, want 21", got)
	}
}

func TestTrim_MoreRows(t *testing.T) {
	rows := []int{1, 2, 3, 4}
	hasMore := paging.Trim(&rows, 3)
	if !hasMore {
		t.Error("expected hasMore=true")
	}
	if len(rows) != 3 {
		t.Errorf("rows: got %d, want 3", len(rows))
	}
}

func TestTrim_ExactPage(t *testing.T) {
	rows := []int{1, 2, 3}
	hasMore := paging.Trim(&rows, 3)
	if hasMore {
		t.Error("expected hasMore=false")
	}
	if len(rows) != 3 {
		t.Errorf("rows: got %d, want 3", len(rows))
	}
}

func TestTrim_Empty(t *testing.T) {
	var rows []string
	if paging.Trim(&rows, 10) {
		t.Error("expected hasMore=false for empty slice")
	}
}
