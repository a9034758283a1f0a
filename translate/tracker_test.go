package translate

import "testing"

func TestTrackerRecord(t *testing.T) {
	tr := tracker{local: make([]int, 8), cursor: -1}
	tr.record(2, 3, 0, 2) // contraction
	tr.record(5, 1, 2, 3) // expansion
	tr.record(6, 0, 5, 1) // insertion
	if !equalInts(tr.local[:6], []int{2, 3, 5, 5, 5, 6}) {
		t.Errorf("unexpected local mapping %v", tr.local[:6])
	}
	if tr.resolved {
		t.Errorf("expected no cursor to be resolved")
	}
}

func TestTrackerResolve(t *testing.T) {
	tr := tracker{local: make([]int, 8), cursor: 1, resolving: true, midpoint: true}
	tr.record(0, 2, 4, 3)
	if !tr.resolved || tr.at != 5 {
		t.Errorf("expected cursor at midpoint 5, is %d (%v)", tr.at, tr.resolved)
	}
	tr.record(1, 1, 7, 1)
	if tr.at != 5 {
		t.Errorf("expected cursor to be resolved only once, is at %d", tr.at)
	}
	tr = tracker{local: make([]int, 8), cursor: 6, resolving: true}
	tr.skip(5, 3, 3)
	if !tr.resolved || tr.at != 2 {
		t.Errorf("expected skipped cursor at 2, is %d (%v)", tr.at, tr.resolved)
	}
}

func TestTrackerHold(t *testing.T) {
	tr := tracker{local: make([]int, 8), cursor: 1, resolving: true, midpoint: true}
	tr.hold(0, 2, 3)
	if !tr.resolved || tr.at != 3 {
		t.Errorf("expected cursor on an indicator at 3, is %d (%v)", tr.at, tr.resolved)
	}
	tr.record(2, 1, 3, 1)
	if tr.at != 3 {
		t.Errorf("expected cursor to stay at 3, is at %d", tr.at)
	}
}

func TestTrackerFollow(t *testing.T) {
	tr := tracker{local: []int{0, 0, 2, 3}, cursor: 1}
	if !tr.follow(4) || tr.at != 2 {
		t.Errorf("expected cursor to follow to 2, is %d", tr.at)
	}
	tr.cursor = 4
	if tr.follow(4) {
		t.Errorf("expected cursor beyond output not to be followed")
	}
	tr.cursor = -1
	if tr.follow(4) {
		t.Errorf("expected missing cursor not to be followed")
	}
}
