package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/Flaque/filet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UnknownOlympus/hrnet/internal/services/employees"
	"github.com/UnknownOlympus/hrnet/internal/tableview"
)

func writeConfig(t *testing.T) string {
	t.Helper()

	return writeConfigWithState(t, "state.json")
}

// writeConfigWithState points the file backend at statePath, relative to a fresh temp dir.
func writeConfigWithState(t *testing.T, statePath string) string {
	t.Helper()

	dir := filet.TmpDir(t, "")
	path := filepath.Join(dir, "config.yaml")
	filet.File(t, path, `
env: production
storage:
  backend: file
  path: `+filepath.Join(dir, statePath)+`
`)

	return path
}

func execute(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--config", configPath}, args...))

	err := cmd.ExecuteContext(t.Context())

	return out.String(), err
}

var jeanFlags = []string{
	"--first-name", "Jean",
	"--last-name", "Dupont",
	"--date-of-birth", "1990-01-15",
	"--start-date", "2024-01-01",
	"--street", "123 Main Street",
	"--city", "Los Angeles",
	"--state", "California",
	"--zip-code", "90001",
	"--department", "Sales",
}

func TestAddAndList(t *testing.T) {
	defer filet.CleanUp(t)
	path := writeConfig(t)

	out, err := execute(t, path, append([]string{"add"}, jeanFlags...)...)
	require.NoError(t, err)
	assert.Equal(t, "Employee added successfully !\n", out)

	out, err = execute(t, path, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "LAST NAME")
	assert.Contains(t, out, "Dupont")
	assert.Contains(t, out, "15/01/1990")
	assert.Contains(t, out, "Page 1 of 1 (1 of 1 entries)")
}

func TestAddRejected(t *testing.T) {
	defer filet.CleanUp(t)
	path := writeConfig(t)

	_, err := execute(t, path, "add", "--last-name", "Dupont")
	require.EqualError(t, err, "First Name is required")

	out, err := execute(t, path, "--format", "json", "list")
	require.NoError(t, err)

	var page tableview.Page
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, 0, page.TotalRecords)
	assert.Equal(t, 1, page.PageCount)
}

func TestAddDuplicateJSON(t *testing.T) {
	defer filet.CleanUp(t)
	path := writeConfig(t)

	_, err := execute(t, path, append([]string{"add"}, jeanFlags...)...)
	require.NoError(t, err)

	out, err := execute(t, path, append([]string{"--format", "json", "add"}, jeanFlags...)...)
	require.ErrorIs(t, err, ErrRejected)
	assert.JSONEq(t, `{"error":"DuplicateEmployee","message":"This employee already exists"}`, out)
}

func TestAddFailsWhenStateCannotBeSaved(t *testing.T) {
	defer filet.CleanUp(t)
	path := writeConfigWithState(t, filepath.Join("missing-dir", "state.json"))

	out, err := execute(t, path, append([]string{"add"}, jeanFlags...)...)

	require.ErrorIs(t, err, employees.ErrNotSaved)
	assert.Empty(t, out)
	assert.NoFileExists(t, filepath.Join(filepath.Dir(path), "missing-dir", "state.json"))
}

func TestSeedFailsWhenStateCannotBeSaved(t *testing.T) {
	defer filet.CleanUp(t)
	path := writeConfigWithState(t, filepath.Join("missing-dir", "state.json"))

	out, err := execute(t, path, "--format", "json", "seed", "--count", "3")

	require.ErrorIs(t, err, employees.ErrNotSaved)
	assert.Empty(t, out)
}

func TestListRejectsUnknownField(t *testing.T) {
	defer filet.CleanUp(t)
	path := writeConfig(t)

	_, err := execute(t, path, "list", "--filter", "salary")
	require.ErrorIs(t, err, tableview.ErrUnknownField)

	_, err = execute(t, path, "list", "--sort", "salary")
	require.ErrorIs(t, err, tableview.ErrUnknownField)
}

func TestSeed(t *testing.T) {
	defer filet.CleanUp(t)
	path := writeConfig(t)

	out, err := execute(t, path, "--format", "json", "seed", "--count", "5")
	require.NoError(t, err)

	var result SeedResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 5, result.Added+result.Skipped)

	out, err = execute(t, path, "--format", "json", "list", "--size", "50")
	require.NoError(t, err)

	var page tableview.Page
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, result.Added, page.TotalRecords)
}

func TestInvalidFormat(t *testing.T) {
	defer filet.CleanUp(t)

	_, err := execute(t, writeConfig(t), "--format", "xml", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestListOptions_ViewState(t *testing.T) {
	opts := &ListOptions{Filter: "department", Value: "sal", Sort: "lastName", Desc: true, Page: 3, Size: 25}

	state, err := opts.viewState(10)
	require.NoError(t, err)

	assert.Equal(t, tableview.Filter{Field: "department", Value: "sal"}, state.Filter)
	assert.Equal(t, tableview.Sort{Field: "lastName", Direction: tableview.Descending}, state.Sort)
	assert.Equal(t, 2, state.PageIndex)
	assert.Equal(t, 25, state.PageSize)

	state, err = (&ListOptions{Page: 0}).viewState(20)
	require.NoError(t, err)
	assert.Equal(t, 0, state.PageIndex)
	assert.Equal(t, 20, state.PageSize)
}
