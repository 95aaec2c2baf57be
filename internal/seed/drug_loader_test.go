package seed

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmstore/m/internal/repository"
	"pharmstore/m/internal/testdb"
)

const catalog = `name,code,manufacturer,price
Aspirin,A1,Acme,500
Ibuprofen,B2,Acme,750
Aspirin copy,A1,Other,100
Blank code,,Acme,10
Paracetamol,D4,Acme,cheap
Vitamin C,E5,Acme,-5
Short row,F6
Zinc,G7,Acme,0
`

func TestLoadDrugs(t *testing.T) {
	ctx := context.Background()
	store := repository.New(testdb.New(t))

	sum, err := LoadDrugs(ctx, store.Drugs, strings.NewReader(catalog), zerolog.New(io.Discard))
	require.NoError(t, err)
	assert.Equal(t, Summary{Inserted: 3, Skipped: 5}, sum)

	drugs, err := store.Drugs.List(ctx, repository.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, drugs, 3)
	assert.Equal(t, "A1", drugs[0].Code)
	assert.Equal(t, "Aspirin", drugs[0].Name)
	assert.Equal(t, int64(500), drugs[0].Price)
	assert.Equal(t, "G7", drugs[2].Code)
	assert.Equal(t, int64(0), drugs[2].Price)

	// loading again only produces duplicates
	sum, err = LoadDrugs(ctx, store.Drugs, strings.NewReader(catalog), zerolog.New(io.Discard))
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Inserted)
}

func TestLoadDrugsBadHeader(t *testing.T) {
	store := repository.New(testdb.New(t))

	_, err := LoadDrugs(context.Background(), store.Drugs, strings.NewReader("code,name\nA1,Aspirin\n"), zerolog.New(io.Discard))
	assert.ErrorContains(t, err, `missing "manufacturer"`)

	_, err = LoadDrugs(context.Background(), store.Drugs, strings.NewReader(""), zerolog.New(io.Discard))
	assert.Error(t, err)
}

func TestLoadDrugsFile(t *testing.T) {
	store := repository.New(testdb.New(t))
	path := filepath.Join(t.TempDir(), "drugs.csv")
	require.NoError(t, os.WriteFile(path, []byte("code,name,manufacturer,price\nA1,Aspirin,Acme,500\n"), 0o600))

	sum, err := LoadDrugsFile(context.Background(), store.Drugs, path, zerolog.New(io.Discard))
	require.NoError(t, err)
	assert.Equal(t, Summary{Inserted: 1}, sum)

	_, err = LoadDrugsFile(context.Background(), store.Drugs, filepath.Join(t.TempDir(), "missing.csv"), zerolog.New(io.Discard))
	assert.Error(t, err)
}
