// seed carga los catálogos base (categorías de insumo, presentaciones y variedades de agave).
//
// Uso: go run ./cmd/seed [ruta/catalogos.csv]
// Sin argumento usa los catálogos predeterminados. El CSV tiene columnas
// tipo,nombre,descripcion,extra y puede venir en UTF-8 o ISO-8859-1.
// Las filas cuyo nombre ya existe se omiten, así que puede ejecutarse varias veces.
package main

import (
	"context"
	"os"
	"time"

	"github.com/jhoicas/Insumos-api/internal/application/catalog"
	"github.com/jhoicas/Insumos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Insumos-api/pkg/config"
	"github.com/jhoicas/Insumos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{Env: "development", Level: "info"}).Fatal().Err(err).Msg("config")
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed")

	rows := catalog.DefaultSeed()
	if len(os.Args) > 1 {
		f, err := os.Open(os.Args[1])
		if err != nil {
			log.Fatal().Err(err).Str("file", os.Args[1]).Msg("abrir CSV")
		}
		rows, err = catalog.ParseSeedCSV(f)
		f.Close()
		if err != nil {
			log.Fatal().Err(err).Str("file", os.Args[1]).Msg("leer CSV")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conectar a PostgreSQL")
	}
	defer pool.Close()

	res, err := catalog.NewSeeder(postgres.NewRepos(pool)).Seed(ctx, rows)
	if err != nil {
		log.Fatal().Err(err).Int("created", res.Created).Msg("cargar catálogos")
	}
	log.Info().Int("created", res.Created).Int("skipped", res.Skipped).Msg("catálogos cargados")
}
