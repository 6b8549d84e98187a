package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsPattern_EscapaComodines(t *testing.T) {
	assert.Equal(t, `%LOT\_1%`, containsPattern("LOT_1"), "el guion bajo se busca literal")
	assert.Equal(t, `%50\%%`, containsPattern("50%"))
	assert.Equal(t, `%A\\B%`, containsPattern(`A\B`), "la barra se duplica antes que los comodines")
	assert.Equal(t, "%ETQ-01%", containsPattern("ETQ-01"))
}

func TestFilter_NumeraPlaceholders(t *testing.T) {
	var w filter
	w.add("a = $%d", 1)
	w.add(`b ILIKE $%d ESCAPE '\'`, containsPattern("x"))
	assert.Equal(t, ` WHERE a = $1 AND b ILIKE $2 ESCAPE '\'`, w.where())

	tail, args := w.page(20, 40)
	assert.Equal(t, " LIMIT $3 OFFSET $4", tail)
	assert.Len(t, args, 4)
}
