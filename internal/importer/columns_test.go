package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"n_documento", "ndocumento"},
		{"N° DOCUMENTO", "ndocumento"},
		{"Número Documento", "numerodocumento"},
		{"NOMBRES Y APELLIDOS", "nombresyapellidos"},
		{"enero_2025", "enero2025"},
		{"  FECHA DE INGRESO  ", "fechadeingreso"},
		{"ÑOÑO", "nono"},
		{"---", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeHeader(tt.input), "input %q", tt.input)
	}
}

func TestColumnsLookup(t *testing.T) {
	cols := NewColumns([]string{"N° DOCUMENTO", "Nombres y Apellidos", "SEXO", "", "Teléfono"})

	idx, ok := cols.Lookup([]string{"n_documento"})
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	idx, ok = cols.Lookup([]string{"telefono", "celular"})
	require.True(t, ok)
	assert.Equal(t, 4, idx)

	// priority order: first candidate that matches wins
	idx, ok = cols.Lookup([]string{"sexo", "nombres_y_apellidos"})
	require.True(t, ok)
	assert.Equal(t, 2, idx)

	_, ok = cols.Lookup([]string{"direccion"})
	assert.False(t, ok)

	// memoized misses stay misses
	_, ok = cols.Lookup([]string{"direccion"})
	assert.False(t, ok)
}

func TestColumnsDuplicateHeadersFirstWins(t *testing.T) {
	cols := NewColumns([]string{"SEXO", "sexo"})

	idx, ok := cols.Lookup([]string{"sexo"})
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestColumnsValue(t *testing.T) {
	cols := NewColumns([]string{"N° DOCUMENTO", "NOMBRES Y APELLIDOS", "OBSERVACION"})

	row := []string{" 12345678 ", "<b>Ana Ríos</b>"}

	assert.Equal(t, "12345678", cols.Value(row, []string{"n_documento"}))
	assert.Equal(t, "Ana Ríos", cols.Value(row, []string{"nombres_y_apellidos"}))
	// row shorter than the header: treated as absent
	assert.Equal(t, "", cols.Value(row, []string{"observacion"}))
	// unmatched candidate set
	assert.Equal(t, "", cols.Value(row, []string{"telefono"}))
}
