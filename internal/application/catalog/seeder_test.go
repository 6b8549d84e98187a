package catalog_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/Insumos-api/internal/application/catalog"
	"github.com/jhoicas/Insumos-api/internal/domain"
	"github.com/jhoicas/Insumos-api/internal/infrastructure/memory"
)

func TestSeeder_EsIdempotente(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repos()
	seeder := catalog.NewSeeder(repos)
	rows := catalog.DefaultSeed()

	res, err := seeder.Seed(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, len(rows), res.Created)
	assert.Zero(t, res.Skipped)

	res, err = seeder.Seed(ctx, rows)
	require.NoError(t, err)
	assert.Zero(t, res.Created, "la segunda carga no duplica")
	assert.Equal(t, len(rows), res.Skipped)

	cats, err := catalog.NewCategoryUseCase(repos.Categories).List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, cats, 6)
}

func TestParseSeedCSV_Latin1YEncabezado(t *testing.T) {
	text := "tipo,nombre,descripcion,extra\nvariedad,Tobalá,Silvestre,Sierra Sur\ncategoria,Etiquetas,,hojas\n"
	latin1, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(text))
	require.NoError(t, err)

	rows, err := catalog.ParseSeedCSV(bytes.NewReader(latin1))
	require.NoError(t, err)
	require.Len(t, rows, 2, "el encabezado se omite")
	assert.Equal(t, "Tobalá", rows[0].Name, "Latin-1 se convierte a UTF-8")
	assert.Equal(t, "Sierra Sur", rows[0].Extra)
	assert.Equal(t, catalog.SeedCategory, rows[1].Kind)
	assert.Equal(t, "hojas", rows[1].Extra)
}

func TestParseSeedCSV_TipoDesconocido(t *testing.T) {
	_, err := catalog.ParseSeedCSV(strings.NewReader("marca,Don Agave\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
