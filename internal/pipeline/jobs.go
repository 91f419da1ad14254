package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"
)

// JobStatus represents the state of a generation job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusParsing    JobStatus = "parsing"
	StatusBuilding   JobStatus = "building"
	StatusRendering  JobStatus = "rendering"
	StatusStoring    JobStatus = "storing"
	StatusConverting JobStatus = "converting"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Job tracks the state of a single document generation.
type Job struct {
	mu sync.Mutex

	ID    string `json:"job_id"`
	DocID string `json:"doc_id"`

	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Name     string    `json:"name"`
	Filename string    `json:"filename,omitempty"`

	Progress Progress `json:"progress"`

	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	errors []string
}

// Progress counts what a job has produced so far.
type Progress struct {
	Lines      int      `json:"lines"`
	Nodes      int      `json:"nodes"`
	TOCEntries int      `json:"toc_entries"`
	PDF        bool     `json:"pdf"`
	Errors     []string `json:"errors"`
}

// NewJob returns a queued job.
func NewJob(name, filename string) *Job {
	now := time.Now()
	return &Job{
		ID:        ContentHashHex([]byte(fmt.Sprintf("%s-%s-%d", name, filename, now.UnixNano())))[:20],
		Status:    StatusQueued,
		Phase:     "queued",
		Name:      name,
		Filename:  filename,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Len returns the number of tracked jobs.
func (s *JobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		job.mu.Lock()
		updated := job.UpdatedAt
		job.mu.Unlock()
		if now.Sub(updated) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetBuilt records the size of the built document.
func (j *Job) SetBuilt(lines, nodes, tocEntries int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Lines = lines
	j.Progress.Nodes = nodes
	j.Progress.TOCEntries = tocEntries
	j.UpdatedAt = time.Now()
}

// SetDocument records the stored document and its content hash.
func (j *Job) SetDocument(docID, contentHash string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.DocID = docID
	j.ContentHash = contentHash
	j.UpdatedAt = time.Now()
}

// SetPDF marks the PDF as produced.
func (j *Job) SetPDF() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.PDF = true
	j.UpdatedAt = time.Now()
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string    `json:"job_id"`
	DocID       string    `json:"doc_id,omitempty"`
	Status      JobStatus `json:"status"`
	Phase       string    `json:"phase"`
	Name        string    `json:"name"`
	Filename    string    `json:"filename,omitempty"`
	ContentHash string    `json:"content_hash,omitempty"`
	Progress    Progress  `json:"progress"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Snapshot returns a consistent copy of the job.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := make([]string, len(j.Progress.Errors))
	copy(errs, j.Progress.Errors)
	p := j.Progress
	p.Errors = errs
	return JobSnapshot{
		ID:          j.ID,
		DocID:       j.DocID,
		Status:      j.Status,
		Phase:       j.Phase,
		Name:        j.Name,
		Filename:    j.Filename,
		ContentHash: j.ContentHash,
		Progress:    p,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
