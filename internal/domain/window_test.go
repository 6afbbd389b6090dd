package domain

import (
	"testing"
	"time"
)

func at(hour int) time.Time {
	return time.Date(2026, 3, 10, hour, 0, 0, 0, time.UTC)
}

func TestTimeWindowValid(t *testing.T) {
	t.Parallel()

	if (TimeWindow{Start: at(9), End: at(11)}).Valid() != true {
		t.Error("forward window should be valid")
	}
	if (TimeWindow{Start: at(11), End: at(9)}).Valid() {
		t.Error("reversed window should be invalid")
	}
	if (TimeWindow{Start: at(9), End: at(9)}).Valid() {
		t.Error("zero-length window should be invalid")
	}
}

func TestTimeWindowOverlaps(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		a, b TimeWindow
		want bool
	}{
		{"partial overlap", TimeWindow{at(9), at(11)}, TimeWindow{at(10), at(12)}, true},
		{"contained", TimeWindow{at(9), at(14)}, TimeWindow{at(10), at(12)}, true},
		{"identical", TimeWindow{at(9), at(11)}, TimeWindow{at(9), at(11)}, true},
		{"touching end to start", TimeWindow{at(9), at(11)}, TimeWindow{at(11), at(13)}, true},
		{"touching start to end", TimeWindow{at(11), at(13)}, TimeWindow{at(9), at(11)}, true},
		{"disjoint", TimeWindow{at(9), at(11)}, TimeWindow{at(12), at(14)}, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.a.Overlaps(tc.b); got != tc.want {
				t.Errorf("Overlaps() = %v, want %v", got, tc.want)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.want {
				t.Errorf("reverse Overlaps() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRequestTransitions(t *testing.T) {
	t.Parallel()

	allowed := []struct {
		from, to RequestStatus
	}{
		{RequestStatusPending, RequestStatusAssigned},
		{RequestStatusPending, RequestStatusRejected},
		{RequestStatusPending, RequestStatusCancelled},
		{RequestStatusAssigned, RequestStatusInProgress},
		{RequestStatusAssigned, RequestStatusCancelled},
		{RequestStatusInProgress, RequestStatusCompleted},
	}
	for _, tr := range allowed {
		if !tr.from.CanTransitionTo(tr.to) {
			t.Errorf("%s -> %s should be allowed", tr.from, tr.to)
		}
	}

	denied := []struct {
		from, to RequestStatus
	}{
		{RequestStatusPending, RequestStatusInProgress},
		{RequestStatusPending, RequestStatusCompleted},
		{RequestStatusAssigned, RequestStatusRejected},
		{RequestStatusInProgress, RequestStatusCancelled},
		{RequestStatusCompleted, RequestStatusInProgress},
		{RequestStatusRejected, RequestStatusPending},
		{RequestStatusCancelled, RequestStatusAssigned},
	}
	for _, tr := range denied {
		if tr.from.CanTransitionTo(tr.to) {
			t.Errorf("%s -> %s should be denied", tr.from, tr.to)
		}
	}

	for _, s := range []RequestStatus{RequestStatusCompleted, RequestStatusRejected, RequestStatusCancelled} {
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []RequestStatus{RequestStatusPending, RequestStatusAssigned, RequestStatusInProgress} {
		if s.IsTerminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}
