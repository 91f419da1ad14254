package pipeline

import (
	"testing"
	"time"
)

func TestContentHashHex_Consistency(t *testing.T) {
	data := []byte("hello world")
	h1 := ContentHashHex(data)
	h2 := ContentHashHex(data)
	if h1 != h2 {
		t.Errorf("expected identical hashes, got %q and %q", h1, h2)
	}
	// SHA-256 of "hello world" is well-known.
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if h1 != want {
		t.Errorf("expected hash %q, got %q", want, h1)
	}
}

func TestContentHashHex_EmptyInput(t *testing.T) {
	h := ContentHashHex([]byte{})
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if h != want {
		t.Errorf("expected hash %q, got %q", want, h)
	}
}

func TestNewJob(t *testing.T) {
	job := NewJob("notes", "notes.md")
	if len(job.ID) != 20 {
		t.Errorf("expected 20 char id, got %q", job.ID)
	}
	if job.Status != StatusQueued || job.Phase != "queued" {
		t.Errorf("expected queued job, got %s/%s", job.Status, job.Phase)
	}
	if job.Name != "notes" || job.Filename != "notes.md" {
		t.Errorf("unexpected job %+v", job.Snapshot())
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := NewJob("x", "")

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusParsing, "parsing"},
		{StatusBuilding, "building"},
		{StatusRendering, "rendering"},
		{StatusStoring, "storing"},
		{StatusConverting, "converting"},
		{StatusCompleted, "done"},
	}

	for _, tr := range transitions {
		before := job.UpdatedAt
		// Small sleep to ensure time difference is detectable.
		time.Sleep(time.Millisecond)
		job.SetStatus(tr.status, tr.phase)

		if job.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, job.Status)
		}
		if job.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, job.Phase)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", tr.status)
		}
	}
}

func TestJob_AddError(t *testing.T) {
	job := &Job{ID: "err-test", UpdatedAt: time.Now()}
	job.AddError("rendering: disk full")
	job.AddError("storing: disk full")

	snap := job.Snapshot()
	if len(snap.Progress.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(snap.Progress.Errors))
	}
	if snap.Progress.Errors[0] != "rendering: disk full" {
		t.Errorf("expected first error %q, got %q", "rendering: disk full", snap.Progress.Errors[0])
	}

	snap.Progress.Errors[0] = "mutated"
	if job.Snapshot().Progress.Errors[0] == "mutated" {
		t.Error("expected snapshot errors to be a copy")
	}
}

func TestJob_Progress(t *testing.T) {
	job := &Job{ID: "progress"}
	job.SetBuilt(4, 6, 1)
	job.SetDocument("DOC", "hash")
	job.SetPDF()

	snap := job.Snapshot()
	if snap.Progress.Lines != 4 || snap.Progress.Nodes != 6 || snap.Progress.TOCEntries != 1 || !snap.Progress.PDF {
		t.Errorf("unexpected progress %+v", snap.Progress)
	}
	if snap.DocID != "DOC" || snap.ContentHash != "hash" {
		t.Errorf("unexpected document fields %+v", snap)
	}
}

func TestJob_SnapshotErrorsNotNil(t *testing.T) {
	job := &Job{ID: "snap-test", UpdatedAt: time.Now()}
	snap := job.Snapshot()
	if snap.Progress.Errors == nil {
		t.Error("expected non-nil errors slice in snapshot")
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := &Job{ID: "store-1", UpdatedAt: time.Now()}
	store.Put(job)

	got := store.Get("store-1")
	if got == nil {
		t.Fatal("expected to get job back")
	}
	if got.ID != "store-1" {
		t.Errorf("expected ID %q, got %q", "store-1", got.ID)
	}
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing job")
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 job, got %d", store.Len())
	}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	expired := &Job{ID: "old", UpdatedAt: time.Now()}
	store.Put(expired)

	// Wait for the TTL to pass.
	time.Sleep(100 * time.Millisecond)

	fresh := &Job{ID: "new", UpdatedAt: time.Now()}
	store.Put(fresh)

	store.Cleanup()

	if store.Get("old") != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get("new") == nil {
		t.Error("expected fresh job to survive cleanup")
	}
}

func TestBackoff(t *testing.T) {
	for attempt, base := range []time.Duration{time.Second, 2 * time.Second, 4 * time.Second} {
		d := Backoff(attempt)
		if d < base || d >= base+base/2 {
			t.Errorf("Backoff(%d) = %v, want in [%v, %v)", attempt, d, base, base+base/2)
		}
	}
	if d := Backoff(10); d < 30*time.Second || d >= 45*time.Second {
		t.Errorf("expected capped backoff, got %v", d)
	}
}
