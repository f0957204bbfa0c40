package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-catalog/models"
)

func candidates() []*models.CatalogItem {
	return []*models.CatalogItem{
		{ID: "r1", Kind: models.KindRoom, Name: "Deluxe King", Category: "deluxe", Capacity: 2, Price: 100,
			Discount: &models.Discount{Active: true, PublishWebsite: true, Type: models.DiscountPercentage, Value: 20},
			Images:   []string{"a.jpg"}},
		{ID: "s1", Kind: models.KindSpa, Name: "Hot Stone", Specialist: "anna", Price: 75},
	}
}

func TestCSVWriterWritesCandidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "candidates.csv")
	w, err := NewCSVWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.WriteCandidates(candidates()))
	require.NoError(t, w.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "id", rows[0][0])
	assert.Equal(t, []string{"r1", "room", "Deluxe King", "deluxe", "", "2", "100.00", "80.00", "20% off", "a.jpg"}, rows[1])
	assert.Equal(t, "75.00", rows[2][7])
	assert.Equal(t, "", rows[2][8])
}

func TestItemInsertPlaceholders(t *testing.T) {
	query, args := itemInsert(models.KindRoom, 50, candidates())

	require.Len(t, args, 2*itemColumns)
	assert.Contains(t, query, "($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)")
	assert.Contains(t, query, "($16,")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(query), "$30)"))

	assert.Equal(t, "room", args[0])
	assert.Equal(t, 50, args[2], "position continues from the batch offset")
	assert.Equal(t, 51, args[itemColumns+2])
}

func TestCSVWriterToStream(t *testing.T) {
	var buf strings.Builder
	w, err := NewCSVWriterTo(&buf)
	require.NoError(t, err)
	require.NoError(t, w.WriteCandidates(candidates()[1:]))
	require.NoError(t, w.Close())

	assert.Equal(t, 1, w.Rows())
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "id,kind,name"))
	assert.Equal(t, "s1,spa,Hot Stone,,anna,0,75.00,75.00,,", lines[1])
}
