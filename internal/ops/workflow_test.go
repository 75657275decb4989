package ops

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"hourzero/internal/config"
	"hourzero/internal/db"
	"hourzero/internal/errors"
)

// TestFullWorkflow exercises the complete run lifecycle:
// generate+save → fetch → list → export → delete → fetch (not found)
func TestFullWorkflow(t *testing.T) {
	tmpDir := t.TempDir()
	database, err := db.Init(tmpDir)
	require.NoError(t, err)
	defer database.Close()

	exportDir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.AllowedPaths = []string{exportDir}

	// 1. Generate and save
	genOut, err := Generate(database, cfg, GenerateInput{
		Start: "22:30",
		End:   "05:15",
		Days:  7,
		Save:  true,
		Name:  strPtr("night-window"),
		Note:  strPtr("## Night shift\n\nNarrow across midnight."),
	})
	require.NoError(t, err)
	require.NotNil(t, genOut.RunID)
	require.Len(t, genOut.Rows, 7)
	require.Equal(t, "22:30", genOut.Rows[0].Start)
	require.Equal(t, "05:15", genOut.Rows[0].End)
	id := *genOut.RunID

	// 2. Fetch - rows recomputed from stored parameters
	fetchOut, err := Fetch(database, id)
	require.NoError(t, err)
	require.Equal(t, id, fetchOut.Run.ID)
	require.Equal(t, genOut.Rows, fetchOut.Rows)
	require.NotNil(t, fetchOut.Run.Note)
	require.Contains(t, *fetchOut.Run.Note, "Night shift")

	// 3. List - run appears with its summary
	listOut, err := List(database, ListInput{})
	require.NoError(t, err)
	require.Len(t, listOut.Runs, 1)
	require.Equal(t, id, listOut.Runs[0].ID)
	require.Equal(t, 405, listOut.Runs[0].Summary.LengthMin)

	// 4. Export to CSV
	dest := filepath.Join(exportDir, "night.csv")
	exportOut, err := Export(database, cfg, ExportInput{ID: id, Path: dest})
	require.NoError(t, err)
	require.Equal(t, 7, exportOut.Rows)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "id,start,end\n"))
	require.Contains(t, string(data), "# days: 7")

	// 5. Delete
	deleteOut, err := Delete(database, id)
	require.NoError(t, err)
	require.True(t, deleteOut.Deleted)

	// 6. Fetch after delete
	_, err = Fetch(database, id)
	require.True(t, errors.Is(err, errors.ErrNotFound))
}
