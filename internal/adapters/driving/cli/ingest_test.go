package cli

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bureau-cli/internal/core/domain"
)

func TestExtractCmd_RequiresExactlyOneArg(t *testing.T) {
	_, err := execute(t, "extract")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestExtractCmd_PrintsJSON(t *testing.T) {
	cleanup, env := setupTestEnv()
	defer cleanup()

	path := writeXML(t, t.TempDir(), "report.xml", experianXML)
	out, err := execute(t, "extract", path)
	require.NoError(t, err)

	var report domain.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "Ravi Kumar", report.BasicDetails.Name)
	assert.Equal(t, 745.0, report.BasicDetails.CreditScore)
	assert.Equal(t, domain.FormatExperian, report.Format)
	assert.Equal(t, "report.xml", report.SourceFile)
	assert.Empty(t, report.ID)

	listings, err := env.reports.List(context.Background(), domain.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, listings, "extract stores nothing")
}

func TestExtractCmd_Pretty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writeXML(t, t.TempDir(), "report.xml", experianXML)
	out, err := execute(t, "extract", "--pretty", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Ravi Kumar")
	assert.Contains(t, out, "Basic Details")
	assert.Contains(t, out, "Credit Accounts (1)")
	assert.Contains(t, out, "Status: 11")
}

func TestExtractCmd_Malformed(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writeXML(t, t.TempDir(), "bad.xml", "<Broken>")
	_, err := execute(t, "extract", path)
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
}

func TestExtractCmd_MissingFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "extract", filepath.Join(t.TempDir(), "missing.xml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestIngestCmd(t *testing.T) {
	cleanup, env := setupTestEnv()
	defer cleanup()

	dir := t.TempDir()
	good := writeXML(t, dir, "good.xml", genericXML)
	bad := writeXML(t, dir, "notes.txt", genericXML)

	out, err := execute(t, "ingest", good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files failed")
	assert.Contains(t, out, "Test User")
	assert.Contains(t, out, "only XML files are accepted")

	listings, err := env.reports.List(context.Background(), domain.ListOptions{})
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "Test User", listings[0].BasicDetails.Name)
}

func TestSeedCmd(t *testing.T) {
	cleanup, env := setupTestEnv()
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, env.reports.Save(ctx, &domain.Report{BasicDetails: domain.BasicDetails{Name: "Old"}}))

	dir := t.TempDir()
	writeXML(t, dir, "a.xml", genericXML)
	writeXML(t, dir, "b.xml", experianXML)
	writeXML(t, dir, "c.xml", "<Broken>")

	out, err := execute(t, "seed", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Loaded a.xml")
	assert.Contains(t, out, "Loaded b.xml")
	assert.Contains(t, out, "c.xml")
	assert.Contains(t, out, "Seeded 2 report(s), 1 failed.")

	listings, err := env.reports.List(ctx, domain.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, listings, 2, "seed clears old reports")
}

func TestSeedCmd_Keep(t *testing.T) {
	cleanup, env := setupTestEnv()
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, env.reports.Save(ctx, &domain.Report{BasicDetails: domain.BasicDetails{Name: "Old"}}))

	dir := t.TempDir()
	writeXML(t, dir, "a.xml", genericXML)

	_, err := execute(t, "seed", "--keep", dir)
	require.NoError(t, err)

	listings, err := env.reports.List(ctx, domain.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, listings, 2)
}

func TestSeedCmd_DefaultsToConfiguredDir(t *testing.T) {
	cleanup, env := setupTestEnv()
	defer cleanup()

	dir := t.TempDir()
	writeXML(t, dir, "a.xml", genericXML)
	require.NoError(t, env.config.Set("ingest.samples_dir", dir))

	out, err := execute(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 1 report(s), 0 failed.")
}

func TestWatchCmd_Flags(t *testing.T) {
	assert.Equal(t, "watch [dir]", watchCmd.Use)
	assert.Error(t, watchCmd.Args(watchCmd, []string{"a", "b"}))
}
