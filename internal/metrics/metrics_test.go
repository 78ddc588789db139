package metrics

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/labworks/labextract/internal/result"
	"github.com/labworks/labextract/internal/words"
)

// fixedClock returns a recorder whose clock advances by step on each call.
func fixedClock(capacity int, step time.Duration) *Recorder {
	r := NewRecorder(capacity)
	t := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time {
		t = t.Add(step)
		return t
	}
	return r
}

func TestRecorder_Record(t *testing.T) {
	r := fixedClock(10, time.Second)
	doc := result.Document{SampleID: "1001", Pairs: []result.Pair{
		{Code: "LBXGLU", Value: "95"},
		{Code: "LBXSKSI", Value: ""},
	}}

	m := r.Record(RecordOpts{
		SampleID:  "1001",
		Operation: OpUpload,
		Rows:      12,
		Document:  &doc,
		Start:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	if m.ID == "" {
		t.Error("expected id")
	}
	if !m.Success || m.ErrorType != "" {
		t.Errorf("expected success, got %+v", m)
	}
	if m.Matched != 1 {
		t.Errorf("expected 1 matched, got %d", m.Matched)
	}
	if m.TotalSeconds != 1 {
		t.Errorf("expected 1 second, got %v", m.TotalSeconds)
	}
}

func TestErrorType(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{&words.DecodeError{Err: errors.New("x")}, "decode"},
		{result.ErrInvalidSampleID, "invalid_seqn"},
		{errors.New("boom"), "internal"},
	}
	for _, tt := range tests {
		if got := errorType(tt.err); got != tt.want {
			t.Errorf("errorType(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestRecorder_Wraps(t *testing.T) {
	r := fixedClock(3, time.Second)
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		r.Record(RecordOpts{SampleID: id, Operation: OpUpload})
	}

	got := r.List(Filter{}, 0)
	if len(got) != 3 {
		t.Fatalf("expected 3 metrics, got %d", len(got))
	}
	want := []string{"e", "d", "c"}
	for i := range want {
		if got[i].SampleID != want[i] {
			t.Errorf("metric %d: expected %s, got %s", i, want[i], got[i].SampleID)
		}
	}
}

func TestRecorder_List(t *testing.T) {
	r := fixedClock(10, time.Second)
	r.Record(RecordOpts{SampleID: "1", Operation: OpUpload})
	r.Record(RecordOpts{SampleID: "2", Operation: OpRaw})
	r.Record(RecordOpts{SampleID: "3", Operation: OpUpload, Err: errors.New("boom")})

	t.Run("by operation", func(t *testing.T) {
		if got := len(r.List(Filter{Operation: OpUpload}, 0)); got != 2 {
			t.Errorf("expected 2, got %d", got)
		}
	})

	t.Run("errors only", func(t *testing.T) {
		failed := false
		got := r.List(Filter{Success: &failed}, 0)
		if len(got) != 1 || got[0].SampleID != "3" {
			t.Errorf("unexpected %+v", got)
		}
	})

	t.Run("limit", func(t *testing.T) {
		got := r.List(Filter{}, 1)
		if len(got) != 1 || got[0].SampleID != "3" {
			t.Errorf("expected newest metric, got %+v", got)
		}
	})
}

func TestGetDetailedStats(t *testing.T) {
	r := fixedClock(10, time.Second)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r.Record(RecordOpts{Operation: OpUpload, Start: start})                        // 1s
	r.Record(RecordOpts{Operation: OpUpload, Start: start})                        // 2s
	r.Record(RecordOpts{Operation: OpUpload, Start: start, Err: errors.New("x")}) // 3s

	stats := r.GetDetailedStats(Filter{})
	if stats.Count != 3 || stats.SuccessCount != 2 || stats.ErrorCount != 1 {
		t.Errorf("unexpected counts %+v", stats.Summary)
	}
	if stats.LatencyMin != 1 || stats.LatencyMax != 3 {
		t.Errorf("expected min 1 max 3, got %v %v", stats.LatencyMin, stats.LatencyMax)
	}
	if stats.LatencyP50 != 2 {
		t.Errorf("expected p50 2, got %v", stats.LatencyP50)
	}
	if math.Abs(stats.AvgTimeSeconds-2) > 1e-9 {
		t.Errorf("expected avg 2, got %v", stats.AvgTimeSeconds)
	}
	if stats.Errors["internal"] != 1 {
		t.Errorf("expected 1 internal error, got %v", stats.Errors)
	}

	if ops := r.OperationStats(); len(ops) != 1 || ops[OpUpload].Count != 3 {
		t.Errorf("unexpected operation stats %v", ops)
	}
}

func TestPercentile(t *testing.T) {
	if got := percentile(nil, 50); got != 0 {
		t.Errorf("percentile(nil) = %v, want 0", got)
	}
	if got := percentile([]float64{4}, 99); got != 4 {
		t.Errorf("percentile single = %v, want 4", got)
	}
	if got := percentile([]float64{0, 10}, 50); got != 5 {
		t.Errorf("percentile interpolated = %v, want 5", got)
	}
}
