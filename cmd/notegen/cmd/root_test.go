package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/notegen/internal/pipeline"
	"github.com/fumiama/go-docx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const notes = "# Main Heading: Intro #\n# - point one - #\n# Sub Heading: Part #\n"

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestGenerateFromStdin(t *testing.T) {
	out := filepath.Join(t.TempDir(), "notes")
	stdout, err := run(t, notes, "generate", "-o", out, "--preview")
	require.NoError(t, err)
	assert.Contains(t, stdout, "wrote "+out+".docx (6 nodes, 2 toc entries)")

	data, err := os.ReadFile(out + ".docx")
	require.NoError(t, err)
	_, err = docx.Parse(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	page, err := os.ReadFile(out + ".html")
	require.NoError(t, err)
	assert.Contains(t, string(page), "Table of Contents")
}

func TestGenerateFromFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "outline.md")
	require.NoError(t, os.WriteFile(in, []byte("# Overview\n\n- a\n"), 0o644))
	out := filepath.Join(dir, "result.docx")

	stdout, err := run(t, "", "generate", "-i", in, "-o", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 toc entries")
	assert.FileExists(t, out)
}

func TestGenerateEmptyInput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "x.docx")
	_, err := run(t, "  \n", "generate", "-o", out)
	require.ErrorIs(t, err, pipeline.ErrEmptyInput)
	assert.NoFileExists(t, out)
}

func TestGenerateMissingInputFile(t *testing.T) {
	_, err := run(t, "", "generate", "-i", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestGeneratePDFWithoutConverter(t *testing.T) {
	out := filepath.Join(t.TempDir(), "x.docx")
	_, err := run(t, notes, "generate", "-o", out, "--pdf", "--soffice", filepath.Join(t.TempDir(), "no-soffice"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "convert x.docx to pdf")
	assert.FileExists(t, out, "the docx is kept when conversion fails")
}

func TestDelete(t *testing.T) {
	dir := t.TempDir()
	docxPath := filepath.Join(dir, "output.docx")
	pdfPath := filepath.Join(dir, "output.pdf")
	require.NoError(t, os.WriteFile(docxPath, []byte("d"), 0o644))
	require.NoError(t, os.WriteFile(pdfPath, []byte("p"), 0o644))

	stdout, err := run(t, "", "delete", filepath.Join(dir, "output"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "deleted")
	assert.NoFileExists(t, docxPath)
	assert.NoFileExists(t, pdfPath)

	_, err = run(t, "", "delete", docxPath)
	assert.Error(t, err)
}

func TestClassify(t *testing.T) {
	stdout, err := run(t, "# Main Heading: A #\nloose text\n# -- b -- #\n", "classify")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"1", "main_heading", "A"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"2", "ignored", "loose", "text"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"3", "sub_bullet", "b"}, strings.Fields(lines[2]))
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "output.docx", outputPath(""))
	assert.Equal(t, "a.docx", outputPath("a"))
	assert.Equal(t, "b.DOCX", outputPath("b.DOCX"))
}
