package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dgallion1/notegen/internal/builder"
	"github.com/dgallion1/notegen/internal/config"
	"github.com/dgallion1/notegen/internal/docstore"
	"github.com/dgallion1/notegen/internal/doctree"
	"github.com/dgallion1/notegen/internal/markup"
	"github.com/dgallion1/notegen/internal/metrics"
	"github.com/dgallion1/notegen/internal/parser"
	"github.com/dgallion1/notegen/internal/render"
)

// ErrEmptyInput is returned when a request carries neither text nor a file.
var ErrEmptyInput = errors.New("no text or file to generate from")

// ErrNoConverter is returned for PDF requests when conversion is disabled.
var ErrNoConverter = errors.New("pdf conversion is not configured")

// Converter produces a PDF next to a .docx and returns its path.
type Converter interface {
	Convert(ctx context.Context, docxPath string) (string, error)
}

// Request describes one document to generate. Text is markup; a file in
// Data is imported by its extension and takes precedence over Text.
type Request struct {
	Name     string
	Text     string
	Filename string
	Data     []byte
	PDF      bool
}

// Document is markup that has been built into nodes, ready to serialize.
type Document struct {
	Markup string
	Lines  int
	Nodes  []doctree.Node
	TOC    doctree.TOC
	Title  string
	Hash   string
}

// Prepare imports the request's input and builds the node sequence.
func Prepare(req Request, opts parser.Options) (Document, error) {
	text := req.Text
	if len(req.Data) > 0 {
		imported, err := parser.Import(bytes.NewReader(req.Data), req.Filename, opts)
		if err != nil {
			return Document{}, fmt.Errorf("import %s: %w", req.Filename, err)
		}
		text = imported
	}
	if strings.TrimSpace(text) == "" {
		return Document{}, ErrEmptyInput
	}

	lines := markup.Lines(text)
	nodes := builder.Build(lines)
	toc := nodes[len(nodes)-1].(doctree.TOC)
	doc := Document{
		Markup: text,
		Lines:  len(lines),
		Nodes:  nodes,
		TOC:    toc,
		Hash:   ContentHashHex([]byte(text)),
	}
	for _, e := range toc.Entries {
		if e.Level == doctree.LevelMain {
			doc.Title = e.Title
			break
		}
	}
	return doc, nil
}

// Generator runs generation requests against a document store.
type Generator struct {
	store      *docstore.Store
	conv       Converter
	jobs       *JobStore
	log        *slog.Logger
	parseOpts  parser.Options
	renderOpts render.Options
	backoff    func(attempt int) time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewGenerator wires a generator. conv may be nil to disable PDFs.
func NewGenerator(cfg config.Config, store *docstore.Store, conv Converter, log *slog.Logger) *Generator {
	return &Generator{
		store:      store,
		conv:       conv,
		jobs:       NewJobStore(cfg.JobTTL),
		log:        log,
		parseOpts:  parser.Options{PDFFallbackPdftotext: cfg.PDFFallbackPdftotext},
		renderOpts: render.Options{Font: cfg.DefaultFont},
		backoff:    Backoff,
	}
}

// Start launches the job store cleanup loop.
func (g *Generator) Start(ctx context.Context) {
	loopCtx, cancel := context.WithCancel(ctx)
	g.cancel = cancel

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticker.C:
				g.jobs.Cleanup()
			}
		}
	}()
}

// Stop ends the cleanup loop.
func (g *Generator) Stop() {
	if g.cancel != nil {
		g.cancel()
	}
	g.wg.Wait()
}

// Store returns the document store.
func (g *Generator) Store() *docstore.Store { return g.store }

// GetJob returns a job by ID.
func (g *Generator) GetJob(id string) *Job { return g.jobs.Get(id) }

// Generate builds, serializes and stores one document, then converts it to
// PDF when asked. The returned job is tracked even when an error is
// returned; if only the PDF step failed the document is still stored.
func (g *Generator) Generate(ctx context.Context, req Request) (*Job, error) {
	if req.Name == "" {
		req.Name = docstore.DefaultName
	}
	start := time.Now()
	job := NewJob(req.Name, req.Filename)
	g.jobs.Put(job)
	log := g.log.With("job_id", job.ID, "name", req.Name)

	fail := func(phase string, err error) (*Job, error) {
		log.Error("generation failed", "phase", phase, "error", err)
		job.AddError(fmt.Sprintf("%s: %s", phase, err))
		job.SetStatus(StatusFailed, phase)
		metrics.Generations.WithLabelValues(string(StatusFailed), phase).Inc()
		return job, err
	}

	job.SetStatus(StatusParsing, "parsing")
	if req.Filename != "" && len(req.Data) > 0 && !parser.IsSupportedExtension(req.Filename) {
		return fail("parsing", fmt.Errorf("unsupported file type: %s", req.Filename))
	}

	job.SetStatus(StatusBuilding, "building")
	doc, err := Prepare(req, g.parseOpts)
	if err != nil {
		return fail("building", err)
	}
	job.SetBuilt(doc.Lines, len(doc.Nodes), len(doc.TOC.Entries))

	job.SetStatus(StatusRendering, "rendering")
	var buf bytes.Buffer
	if err := render.DOCX(&buf, doc.Nodes, g.renderOpts); err != nil {
		return fail("rendering", err)
	}

	job.SetStatus(StatusStoring, "storing")
	meta, err := g.store.Save(docstore.Meta{
		Name:        req.Name,
		Title:       doc.Title,
		ContentHash: doc.Hash,
		Nodes:       len(doc.Nodes),
		TOC:         doc.TOC.Entries,
	}, buf.Bytes(), doc.Markup)
	if err != nil {
		return fail("storing", err)
	}
	job.SetDocument(meta.ID, doc.Hash)
	metrics.GenerationLatency.Observe(time.Since(start).Seconds())
	metrics.TOCEntries.Observe(float64(len(doc.TOC.Entries)))
	log = log.With("doc_id", meta.ID)
	log.Info("document stored", "nodes", len(doc.Nodes), "toc_entries", len(doc.TOC.Entries), "bytes", buf.Len())

	if req.PDF {
		job.SetStatus(StatusConverting, "converting")
		if _, err := g.ConvertPDF(ctx, meta.ID); err != nil {
			return fail("converting", err)
		}
		job.SetPDF()
	}

	job.SetStatus(StatusCompleted, "done")
	metrics.Generations.WithLabelValues(string(StatusCompleted), "done").Inc()
	return job, nil
}

// ConvertPDF converts a stored document, retrying converter timeouts.
func (g *Generator) ConvertPDF(ctx context.Context, docID string) (docstore.Meta, error) {
	if g.conv == nil {
		return docstore.Meta{}, ErrNoConverter
	}
	docxPath, err := g.store.DOCXPath(docID)
	if err != nil {
		return docstore.Meta{}, err
	}
	log := g.log.With("doc_id", docID)

	var lastErr error
	for attempt := range MaxRetries {
		_, lastErr = g.conv.Convert(ctx, docxPath)
		switch {
		case lastErr == nil:
			metrics.Conversions.WithLabelValues("ok").Inc()
		case IsRetryable(lastErr):
			metrics.Conversions.WithLabelValues("retry").Inc()
		default:
			metrics.Conversions.WithLabelValues("error").Inc()
		}
		if lastErr == nil || !IsRetryable(lastErr) || attempt == MaxRetries-1 {
			break
		}
		log.Warn("retryable conversion error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(g.backoff(attempt)):
		case <-ctx.Done():
			return docstore.Meta{}, ctx.Err()
		}
	}
	if lastErr != nil {
		return docstore.Meta{}, lastErr
	}
	return g.store.MarkPDF(docID)
}

// Preview renders a stored document as an HTML page.
func (g *Generator) Preview(docID string) ([]byte, error) {
	meta, err := g.store.Meta(docID)
	if err != nil {
		return nil, err
	}
	text, err := g.store.Markup(docID)
	if err != nil {
		return nil, err
	}
	return render.HTML(meta.Name, builder.BuildText(text))
}
