package ui

import (
	"testing"

	"github.com/samuli/duview/internal/model"
)

func TestListCursorFollowsPathAcrossUpdates(t *testing.T) {
	var l EntryList
	l.SetSize(80, 10)

	l.SetEntries([]model.Entry{
		{Path: "/x/a", Name: "a", Size: 30},
		{Path: "/x/b", Name: "b", Size: 20},
		{Path: "/x/c", Name: "c", Size: 10},
	}, 60)

	l.MoveDown()
	if e, _ := l.Selected(); e.Path != "/x/b" {
		t.Fatalf("selected %q, want /x/b", e.Path)
	}

	// b grows past a and the list is re-sorted; the cursor should stay
	// on b at its new position.
	l.SetEntries([]model.Entry{
		{Path: "/x/b", Name: "b", Size: 50},
		{Path: "/x/a", Name: "a", Size: 30},
		{Path: "/x/c", Name: "c", Size: 10},
	}, 90)

	if e, _ := l.Selected(); e.Path != "/x/b" {
		t.Errorf("selected %q after update, want /x/b", e.Path)
	}
}

func TestListCursorClamping(t *testing.T) {
	var l EntryList
	l.SetSize(80, 10)
	l.SetEntries([]model.Entry{
		{Path: "/x/a", Name: "a", Size: 5},
		{Path: "/x/b", Name: "b", Size: 3},
	}, 8)

	l.MoveUp()
	if e, _ := l.Selected(); e.Path != "/x/a" {
		t.Errorf("cursor moved above first entry")
	}

	l.MoveDown()
	l.MoveDown()
	l.MoveDown()
	if e, _ := l.Selected(); e.Path != "/x/b" {
		t.Errorf("cursor moved past last entry")
	}

	l.SetEntries(nil, 0)
	if _, ok := l.Selected(); ok {
		t.Errorf("Selected reported an entry for an empty list")
	}
}
