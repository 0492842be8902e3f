package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placeviz/internal/dataset"
	"placeviz/internal/domain"
)

func writeCSV(t *testing.T, header []string, rows ...map[string]string) string {
	t.Helper()
	var b strings.Builder
	w := csv.NewWriter(&b)
	require.NoError(t, w.Write(header))
	for _, r := range rows {
		cells := make([]string, len(header))
		for i, h := range header {
			cells[i] = r[h]
		}
		require.NoError(t, w.Write(cells))
	}
	w.Flush()
	require.NoError(t, w.Error())

	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func TestProviderLoad(t *testing.T) {
	header := append(dataset.RequiredColumns(), "BUILDING")
	path := writeCSV(t, header,
		map[string]string{
			"file": "t1", "Experience Group": "Survivor", "Country": "Poland", "Gender": "M",
			"BUILDING": "3", "BUILDING_texts": `["house","house","barn"]`,
		},
		map[string]string{
			"file": "t2", "Gender": "F",
			"BUILDING_texts": dataset.FormatTexts([]string{"house", "shed"}),
		},
	)

	tbl, err := NewProvider(path).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, tbl.Len())

	rows := tbl.Rows()
	assert.Equal(t, "t1", rows[0].File)
	assert.Equal(t, 3, rows[0].Count(domain.Building))
	assert.Equal(t, []string{"house", "shed"}, rows[1].TextsFor(domain.Building))
	assert.Empty(t, rows[1].Country)
	assert.Empty(t, rows[1].TextsFor(domain.River))
}

func TestReadMissingHeaderColumn(t *testing.T) {
	header := []string{"file", "Gender"}
	path := writeCSV(t, header)

	_, err := NewProvider(path).Load(context.Background())
	var se *domain.SchemaError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, domain.ColumnExperienceGroup, se.Column)
}

func TestReadEmpty(t *testing.T) {
	_, err := Read(context.Background(), strings.NewReader(""))
	var se *domain.SchemaError
	assert.True(t, errors.As(err, &se))
}
