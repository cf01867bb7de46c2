package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDocs(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	site := filepath.Join(dir, "site.json")
	aff := filepath.Join(dir, "affiliates.json")
	require.NoError(t, os.WriteFile(site, []byte(`{"reviewSafe":false}`), 0o644))
	require.NoError(t, os.WriteFile(aff, []byte(`{
		"topDeals":[{"name":"Anker 737","merchant":"Anker","url":"https://www.anker.com/"}],
		"categories":[{"id":"cleaning","title":"Cleaning Robots","offers":[
			{"name":"Roborock S8","merchant":"Roborock","url":"https://us.roborock.com/","blurb":"Self-emptying dock."}]}]}`), 0o644))
	return site, aff
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestQuickPickCommand_MatchedCategory(t *testing.T) {
	site, aff := writeDocs(t)

	out, err := execute(t, "--site", site, "--affiliates", aff, "robot", "vacuum")
	require.NoError(t, err)
	assert.Contains(t, out, "Category: cleaning")
	assert.Contains(t, out, "1. Roborock S8 (Roborock) https://us.roborock.com/")
	assert.Contains(t, out, "Self-emptying dock.")
}

func TestQuickPickCommand_TopDealsJSON(t *testing.T) {
	site, aff := writeDocs(t)

	out, err := execute(t, "--site", site, "--affiliates", aff, "--json", "keyboard")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "Anker 737"`)
	assert.NotContains(t, out, `"category"`)
}

func TestQuickPickCommand_Categories(t *testing.T) {
	site, aff := writeDocs(t)

	out, err := execute(t, "--site", site, "--affiliates", aff, "categories")
	require.NoError(t, err)
	assert.Contains(t, out, "cleaning")
	assert.Contains(t, out, "[vacuum, mop, roborock, roomba]")
}

func TestQuickPickCommand_MissingCatalog(t *testing.T) {
	_, err := execute(t, "--site", "/nonexistent/site.json", "--affiliates", "/nonexistent/aff.json", "tv")
	assert.Error(t, err)
}
