package http

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Insumos-api/internal/application/dto"
	"github.com/jhoicas/Insumos-api/internal/domain"
)

var errInvalidBody = errors.New("cuerpo inválido")

var validate = newValidator()

// newValidator usa el nombre JSON de cada campo en los mensajes de error.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bindJSON parsea el body y valida las etiquetas `validate` del DTO.
func bindJSON(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return errInvalidBody
	}
	return validateStruct(out)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
}

// requireID lee el parámetro :id; vacío responde 400 MISSING_ID.
func requireID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	return id, id != ""
}

func missingID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id requerido"})
}

// queryBool lee un booleano opcional del query string.
func queryBool(c *fiber.Ctx, key string) (*bool, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s debe ser true o false", domain.ErrInvalidInput, key)
	}
	return &b, nil
}

// activeOnly interpreta ?all=true como "incluir inactivos" en los catálogos.
func activeOnly(c *fiber.Ctx) bool {
	return !c.QueryBool("all", false)
}

func pageQuery(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
}

func documentQuery(c *fiber.Ctx) dto.DocumentListQuery {
	return dto.DocumentListQuery{
		From:        c.Query("from"),
		To:          c.Query("to"),
		ClientID:    c.Query("client_id"),
		SupplierID:  c.Query("supplier_id"),
		LotID:       c.Query("production_lot_id"),
		Status:      c.Query("status"),
		PageRequest: pageQuery(c),
	}
}

func inventoryQuery(c *fiber.Ctx) (dto.InventoryListQuery, error) {
	active, err := queryBool(c, "active")
	if err != nil {
		return dto.InventoryListQuery{}, err
	}
	return dto.InventoryListQuery{
		CategoryID:     c.Query("category_id"),
		ClientID:       c.Query("client_id"),
		BrandID:        c.Query("brand_id"),
		VarietyID:      c.Query("variety_id"),
		PresentationID: c.Query("presentation_id"),
		ShipmentType:   c.Query("shipment_type"),
		Search:         c.Query("search"),
		StockLevel:     c.Query("stockLevel"),
		Active:         active,
	}, nil
}
