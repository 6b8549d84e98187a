package catalog

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/Insumos-api/internal/application/dto"
	"github.com/jhoicas/Insumos-api/internal/domain"
	"github.com/jhoicas/Insumos-api/internal/domain/repository"
)

// Tipos de fila admitidos en el archivo de catálogos base.
const (
	SeedCategory     = "categoria"
	SeedPresentation = "presentacion"
	SeedVariety      = "variedad"
)

// SeedRow fila del archivo de catálogos: tipo,nombre,descripcion,extra.
// Extra es la unidad en categorías y la región en variedades.
type SeedRow struct {
	Kind        string
	Name        string
	Description string
	Extra       string
}

// SeedResult resumen de una carga.
type SeedResult struct {
	Created int
	Skipped int
}

// DefaultSeed catálogos con los que arranca una envasadora nueva.
func DefaultSeed() []SeedRow {
	return []SeedRow{
		{SeedCategory, "Botellas", "Botellas de vidrio para envasado de mezcal", "piezas"},
		{SeedCategory, "Tapones", "Tapones de corcho y sintéticos", "piezas"},
		{SeedCategory, "Cintillos", "Cintillos de seguridad para botellas", "piezas"},
		{SeedCategory, "Sellos Térmicos", "Sellos térmicos retráctiles", "piezas"},
		{SeedCategory, "Etiquetas", "Etiquetas adhesivas y de papel", "hojas"},
		{SeedCategory, "Cajas", "Cajas de cartón para empaque", "piezas"},
		{SeedPresentation, "50ml", "Presentación miniatura", ""},
		{SeedPresentation, "200ml", "Presentación pequeña", ""},
		{SeedPresentation, "375ml", "Media botella", ""},
		{SeedPresentation, "500ml", "Medio litro", ""},
		{SeedPresentation, "750ml", "Botella estándar", ""},
		{SeedPresentation, "1000ml", "Litro completo", ""},
		{SeedVariety, "Espadín", "Variedad más común", "Valles Centrales"},
		{SeedVariety, "Tobalá", "Agave silvestre de sabor complejo", "Sierra Sur"},
		{SeedVariety, "Cuishe", "Agave silvestre con notas herbales", "Valles Centrales"},
		{SeedVariety, "Arroqueño", "Agave silvestre de gran tamaño", "Sierra Sur"},
		{SeedVariety, "Tepeztate", "Agave silvestre de maduración lenta", "Sierra Mixe"},
		{SeedVariety, "Madrecuixe", "Agave silvestre de sabor intenso", "Valles Centrales"},
	}
}

// ParseSeedCSV lee el archivo de catálogos. Los archivos exportados desde Excel suelen
// venir en ISO-8859-1: si el contenido no es UTF-8 válido se decodifica como Latin-1.
// La primera fila se ignora si es el encabezado (tipo,...).
func ParseSeedCSV(r io.Reader) ([]SeedRow, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(raw) {
		raw, err = charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("decodificar ISO-8859-1: %w", err)
		}
	}
	cr := csv.NewReader(bytes.NewReader(raw))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: csv: %v", domain.ErrInvalidInput, err)
	}

	out := make([]SeedRow, 0, len(records))
	for i, rec := range records {
		if i == 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "tipo") {
			continue
		}
		if len(rec) < 2 {
			return nil, fmt.Errorf("%w: fila %d requiere tipo y nombre", domain.ErrInvalidInput, i+1)
		}
		row := SeedRow{Kind: strings.ToLower(strings.TrimSpace(rec[0])), Name: strings.TrimSpace(rec[1])}
		if len(rec) > 2 {
			row.Description = strings.TrimSpace(rec[2])
		}
		if len(rec) > 3 {
			row.Extra = strings.TrimSpace(rec[3])
		}
		switch row.Kind {
		case SeedCategory, SeedPresentation, SeedVariety:
		default:
			return nil, fmt.Errorf("%w: fila %d tipo %q", domain.ErrInvalidInput, i+1, row.Kind)
		}
		if row.Name == "" {
			return nil, fmt.Errorf("%w: fila %d sin nombre", domain.ErrInvalidInput, i+1)
		}
		out = append(out, row)
	}
	return out, nil
}

// Seeder carga catálogos base sin duplicar los que ya existen (por nombre).
type Seeder struct {
	categories    *CategoryUseCase
	presentations *PresentationUseCase
	varieties     *VarietyUseCase
}

// NewSeeder construye el cargador sobre los repositorios.
func NewSeeder(repos repository.Repos) *Seeder {
	return &Seeder{
		categories:    NewCategoryUseCase(repos.Categories),
		presentations: NewPresentationUseCase(repos.Presentations),
		varieties:     NewVarietyUseCase(repos.Varieties),
	}
}

// Seed crea las filas que falten. Es idempotente.
func (s *Seeder) Seed(ctx context.Context, rows []SeedRow) (SeedResult, error) {
	existing, err := s.existingNames(ctx)
	if err != nil {
		return SeedResult{}, err
	}
	var res SeedResult
	for _, row := range rows {
		key := row.Kind + "|" + strings.ToLower(row.Name)
		if existing[key] {
			res.Skipped++
			continue
		}
		switch row.Kind {
		case SeedCategory:
			_, err = s.categories.Create(ctx, dto.CategoryRequest{Name: row.Name, Description: row.Description, Unit: row.Extra})
		case SeedPresentation:
			_, err = s.presentations.Create(ctx, dto.PresentationRequest{Volume: row.Name, Description: row.Description})
		case SeedVariety:
			_, err = s.varieties.Create(ctx, dto.VarietyRequest{Name: row.Name, Region: row.Extra, Description: row.Description})
		default:
			err = fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, row.Kind)
		}
		if err != nil {
			return res, fmt.Errorf("%s %q: %w", row.Kind, row.Name, err)
		}
		existing[key] = true
		res.Created++
	}
	return res, nil
}

func (s *Seeder) existingNames(ctx context.Context) (map[string]bool, error) {
	names := map[string]bool{}
	cats, err := s.categories.List(ctx, false)
	if err != nil {
		return nil, err
	}
	for _, c := range cats {
		names[SeedCategory+"|"+strings.ToLower(c.Name)] = true
	}
	pres, err := s.presentations.List(ctx, false)
	if err != nil {
		return nil, err
	}
	for _, p := range pres {
		names[SeedPresentation+"|"+strings.ToLower(p.Volume)] = true
	}
	vars, err := s.varieties.List(ctx, false)
	if err != nil {
		return nil, err
	}
	for _, v := range vars {
		names[SeedVariety+"|"+strings.ToLower(v.Name)] = true
	}
	return names, nil
}
