package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saludmental/mindtrack/internal/domain/attempt"
	"github.com/saludmental/mindtrack/internal/domain/consumption"
	"github.com/saludmental/mindtrack/internal/domain/disorder"
	"github.com/saludmental/mindtrack/internal/domain/patient"
)

func TestCleanString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Ana Ríos", "Ana Ríos"},
		{"surrounding whitespace", "  Ana Ríos \t", "Ana Ríos"},
		{"markup stripped", "<b>Ana</b> Ríos", "Ana Ríos"},
		{"markup only", "<br/>", ""},
		{"empty", "   ", ""},
		{"markup leaves outer space", " <i> Ana </i> ", "Ana"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanString(tt.input))
		})
	}
}

func TestCleanPhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single number", "3105551234", "3105551234"},
		{"dash separated, first wins", "3105551234-3216667788", "3105551234"},
		{"first token too short", "310-5551234", ""},
		{"slash separated", "3105551234/3216667788", "3105551234"},
		{"comma separated", "3105551234, 3216667788", "3105551234"},
		{"strips non digits", "(310)5551234", "3105551234"},
		{"too short", "12345", ""},
		{"too long", "123456789012345678901", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanPhone(tt.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "abc", Truncate("abcde", 3))
	// rune-based, not byte-based
	assert.Equal(t, "áéí", Truncate("áéíóú", 3))
	assert.Equal(t, "", Truncate("", 10))
}

func TestIsValidDocument(t *testing.T) {
	assert.True(t, IsValidDocument("123456"))
	assert.True(t, IsValidDocument("12.345.678"))
	assert.True(t, IsValidDocument("123456789012345"))
	assert.False(t, IsValidDocument("12345"))
	assert.False(t, IsValidDocument("1234567890123456"))
	assert.False(t, IsValidDocument("sin documento"))
	assert.False(t, IsValidDocument(""))
}

func TestParseDate(t *testing.T) {
	t.Run("iso layout", func(t *testing.T) {
		got, ok := ParseDate("2024-03-15")
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("latin layout", func(t *testing.T) {
		got, ok := ParseDate("15/03/2024")
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("spreadsheet serial", func(t *testing.T) {
		got, ok := ParseDate("45000")
		require.True(t, ok)
		assert.Equal(t, time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("serial out of range", func(t *testing.T) {
		_, ok := ParseDate("0")
		assert.False(t, ok)
		_, ok = ParseDate("-5")
		assert.False(t, ok)
		_, ok = ParseDate("200001")
		assert.False(t, ok)
	})

	t.Run("garbage", func(t *testing.T) {
		_, ok := ParseDate("mañana")
		assert.False(t, ok)
		_, ok = ParseDate("")
		assert.False(t, ok)
	})
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Marihuana", "Bazuco"}, SplitList("Marihuana, Bazuco"))
	assert.Equal(t, []string{"a", "b", "c"}, SplitList("a;b ,c"))
	assert.Nil(t, SplitList("  ,; "))
	assert.Nil(t, SplitList(""))
}

func TestMapDocumentType(t *testing.T) {
	tests := []struct {
		input string
		want  patient.DocumentType
	}{
		{"CC", patient.DocumentCC},
		{"cc", patient.DocumentCC},
		{"CEDULA", patient.DocumentCC},
		{"CEDULA DE CIUDADANIA", patient.DocumentCC},
		{"TARJETA DE IDENTIDAD", patient.DocumentTI},
		{"CEDULA EXTRANJERIA", patient.DocumentCE},
		{"PASAPORTE", patient.DocumentPA},
		{"REGISTRO CIVIL", patient.DocumentRC},
		{"RC", patient.DocumentRC},
		{"MS", patient.DocumentMS},
		{"", patient.DocumentCC},
		{"XX", patient.DocumentCC},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MapDocumentType(tt.input), "input %q", tt.input)
	}
}

func TestMapGender(t *testing.T) {
	assert.Equal(t, patient.GenderMasculino, MapGender("M"))
	assert.Equal(t, patient.GenderMasculino, MapGender("masculino"))
	assert.Equal(t, patient.GenderFemenino, MapGender("F"))
	assert.Equal(t, patient.GenderFemenino, MapGender("Mujer"))
	assert.Equal(t, patient.GenderOtro, MapGender(""))
	assert.Equal(t, patient.GenderOtro, MapGender("NB"))
}

func TestMapAdmissionType(t *testing.T) {
	assert.Equal(t, disorder.AdmissionHospitalario, MapAdmissionType("HOSPITALARIO"))
	assert.Equal(t, disorder.AdmissionHospitalario, MapAdmissionType("hospitalizado"))
	assert.Equal(t, disorder.AdmissionUrgencias, MapAdmissionType("URGENCIAS"))
	assert.Equal(t, disorder.AdmissionAmbulatorio, MapAdmissionType("AMBULATORIO"))
	assert.Equal(t, disorder.AdmissionAmbulatorio, MapAdmissionType(""))
}

func TestMapVias(t *testing.T) {
	assert.Equal(t, disorder.ViaConsultaExterna, MapDisorderVia("consulta externa"))
	assert.Equal(t, disorder.ViaUrgencias, MapDisorderVia("URGENCIAS"))
	assert.Equal(t, disorder.ViaConsultaExterna, MapDisorderVia(""))
	// COMUNIDAD is only valid for attempts and consumptions
	assert.Equal(t, disorder.ViaConsultaExterna, MapDisorderVia("COMUNIDAD"))
	assert.Equal(t, attempt.ViaComunidad, MapAttemptVia("Comunidad"))
	assert.Equal(t, consumption.ViaComunidad, MapConsumptionVia("COMUNIDAD"))
}

func TestMapDiagnosisType(t *testing.T) {
	assert.Equal(t, disorder.DiagnosisRelacionado, MapDiagnosisType("Diagnostico Relacionado"))
	assert.Equal(t, disorder.DiagnosisPrincipal, MapDiagnosisType("Diagnostico Principal"))
	assert.Equal(t, disorder.DiagnosisPrincipal, MapDiagnosisType("otro"))
	assert.Equal(t, disorder.DiagnosisPrincipal, MapDiagnosisType(""))
}

func TestMapConsumptionLevel(t *testing.T) {
	assert.Equal(t, consumption.LevelAltoRiesgo, MapConsumptionLevel("Alto Riesgo"))
	assert.Equal(t, consumption.LevelAltoRiesgo, MapConsumptionLevel("ALTO"))
	assert.Equal(t, consumption.LevelRiesgoModerado, MapConsumptionLevel("moderado"))
	assert.Equal(t, consumption.LevelBajoRiesgo, MapConsumptionLevel("BAJO"))
	assert.Equal(t, consumption.LevelPerjudicial, MapConsumptionLevel("Perjudicial"))
	assert.Equal(t, consumption.LevelBajoRiesgo, MapConsumptionLevel(""))
	assert.Equal(t, consumption.LevelBajoRiesgo, MapConsumptionLevel("desconocido"))
}

func TestParseAttemptNumber(t *testing.T) {
	assert.Equal(t, 3, ParseAttemptNumber("3"))
	assert.Equal(t, 1, ParseAttemptNumber(""))
	assert.Equal(t, 1, ParseAttemptNumber("0"))
	assert.Equal(t, 1, ParseAttemptNumber("varios"))
}

func TestParseWeekNumber(t *testing.T) {
	w := ParseWeekNumber("12")
	require.NotNil(t, w)
	assert.Equal(t, 12, *w)

	assert.Nil(t, ParseWeekNumber(""))
	assert.Nil(t, ParseWeekNumber("0"))
	assert.Nil(t, ParseWeekNumber("54"))
	assert.Nil(t, ParseWeekNumber("semana 3"))
}
