package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// minimalPDF returns a one-page PDF with a correct cross-reference table.
func minimalPDF() []byte {
	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>",
	}
	var b strings.Builder
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, o := range objs {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}
	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return []byte(b.String())
}

// fakeSoffice writes a script that behaves like soffice --convert-to pdf,
// running body with $out and $base set.
func fakeSoffice(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported")
	}
	dir := t.TempDir()
	script := filepath.Join(dir, "soffice")
	content := "#!/bin/sh\nout=\"$5\"\nbase=$(basename \"$6\" .docx)\n" + body + "\n"
	if err := os.WriteFile(script, []byte(content), 0o755); err != nil {
		t.Fatal(err)
	}
	return script
}

func writeDOCX(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notes.docx")
	if err := os.WriteFile(path, []byte("docx"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConvert_Success(t *testing.T) {
	fixture := filepath.Join(t.TempDir(), "fixture.pdf")
	if err := os.WriteFile(fixture, minimalPDF(), 0o644); err != nil {
		t.Fatal(err)
	}
	bin := fakeSoffice(t, fmt.Sprintf("cp %q \"$out/$base.pdf\"", fixture))
	docx := writeDOCX(t)

	c := New(bin, 10*time.Second, discard)
	pdf, err := c.Convert(context.Background(), docx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := strings.TrimSuffix(docx, ".docx") + ".pdf"
	if pdf != want {
		t.Errorf("expected %q, got %q", want, pdf)
	}
	if n, err := PageCount(pdf); err != nil || n != 1 {
		t.Errorf("expected 1 page, got %d (%v)", n, err)
	}
}

func TestConvert_MissingBinary(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "no-such-soffice"), time.Second, discard)
	_, err := c.Convert(context.Background(), writeDOCX(t))
	var ce *ConversionError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConversionError, got %v", err)
	}
	if ce.Retryable {
		t.Error("expected missing binary to be permanent")
	}
}

func TestConvert_FailingConverter(t *testing.T) {
	bin := fakeSoffice(t, "echo 'source file could not be loaded' >&2\nexit 1")
	c := New(bin, 10*time.Second, discard)
	_, err := c.Convert(context.Background(), writeDOCX(t))
	var ce *ConversionError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConversionError, got %v", err)
	}
	if !strings.Contains(err.Error(), "could not be loaded") {
		t.Errorf("expected converter output in error, got %v", err)
	}
}

func TestConvert_NoOutput(t *testing.T) {
	bin := fakeSoffice(t, "exit 0")
	c := New(bin, 10*time.Second, discard)
	_, err := c.Convert(context.Background(), writeDOCX(t))
	var ce *ConversionError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConversionError, got %v", err)
	}
}

func TestConvert_InvalidPDF(t *testing.T) {
	bin := fakeSoffice(t, "echo garbage > \"$out/$base.pdf\"")
	c := New(bin, 10*time.Second, discard)
	if _, err := c.Convert(context.Background(), writeDOCX(t)); err == nil {
		t.Fatal("expected error for unreadable pdf")
	}
}

func TestConvert_TimeoutIsRetryable(t *testing.T) {
	bin := fakeSoffice(t, "exec sleep 5")
	c := New(bin, 100*time.Millisecond, discard)
	_, err := c.Convert(context.Background(), writeDOCX(t))
	var ce *ConversionError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConversionError, got %v", err)
	}
	if !ce.Retryable {
		t.Error("expected timeout to be retryable")
	}
}
