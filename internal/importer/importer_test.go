package importer

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/saludmental/mindtrack/internal/config"
	"github.com/saludmental/mindtrack/internal/domain/attempt"
	"github.com/saludmental/mindtrack/internal/domain/consumption"
	"github.com/saludmental/mindtrack/internal/domain/disorder"
	"github.com/saludmental/mindtrack/internal/domain/followup"
	"github.com/saludmental/mindtrack/internal/domain/patient"
)

var testOperator = uuid.MustParse("11111111-1111-1111-1111-111111111111")

func testConfig() config.ImportConfig {
	return config.ImportConfig{
		DisordersSheet:    config.SheetConfig{Name: "TRASTORNOS 2025", HeaderRow: 1},
		AttemptsSheet:     config.SheetConfig{Name: "EVENTO 356 2025", HeaderRow: 1},
		ConsumptionsSheet: config.SheetConfig{Name: "CONSUMO SPA 2025", HeaderRow: 1},
		FollowupYear:      2025,
		MaxErrors:         50,
	}
}

type testEnv struct {
	patients     *memPatients
	disorders    *memDisorders
	attempts     *memAttempts
	consumptions *memConsumptions
	followups    *memFollowups
	imp          *Importer
}

func newTestEnv() *testEnv {
	env := &testEnv{
		patients:     newMemPatients(),
		disorders:    newMemDisorders(),
		attempts:     newMemAttempts(),
		consumptions: newMemConsumptions(),
		followups:    newMemFollowups(),
	}
	env.imp = New(Repos{
		Patients:     env.patients,
		Disorders:    env.disorders,
		Attempts:     env.attempts,
		Consumptions: env.consumptions,
		Followups:    env.followups,
	}, testConfig(), zap.NewNop())
	env.imp.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return env
}

var disorderHeaders = []string{
	"N° DOCUMENTO", "TIPO DE DOCUMENTO", "NOMBRES Y APELLIDOS", "SEXO",
	"FECHA DE NACIMIENTO", "TELEFONO", "DIRECCION", "VEREDA",
	"EPS CODIGO", "EPS NOMBRE",
	"FECHA DE INGRESO", "TIPO DE INGRESO", "INGRESO POR",
	"AREA SERVICIO DE ATENCION",
	"DIAG CODIGO", "DIAGNOSTICO", "FECHA DIAGNOSTICO", "TIPO DIAGNOSTICO",
	"OBSERVACION ADICIONAL",
	"ENERO_2025", "FEBRERO_2025", "MARZO_2025",
}

var attemptHeaders = []string{
	"N° DOCUMENTO", "TIPO DOC", "NOMBRES Y APELLIDOS", "SEXO",
	"FECHA DE NACIMIENTO", "TELEFONO", "DIRECCION", "BARRIO", "VEREDA",
	"FECHA DE INGRESO", "SEMANA", "INGRESO POR", "N° INTENTOS",
	"PLAN DE BENEFICIOS", "DESENCADENANTE", "FACTORES DE RIESGO", "MECANISMO",
	"OBSERVACION ADICIONAL",
	"ENERO_2025",
}

var consumptionHeaders = []string{
	"DOCUMENTO", "NOMBRE COMPLETO", "EPS",
	"FECHA DE INGRESO", "INGRESO POR", "DIAGNOSTICO",
	"SUSTANCIAS", "NIVEL CONSUMO", "OBSERVACIONES",
	"ENERO_2025",
}

func emptySheets() map[string][][]string {
	return map[string][][]string{
		"TRASTORNOS 2025":  {disorderHeaders},
		"EVENTO 356 2025":  {attemptHeaders},
		"CONSUMO SPA 2025": {consumptionHeaders},
	}
}

func TestRunEndToEnd(t *testing.T) {
	sheets := emptySheets()
	sheets["TRASTORNOS 2025"] = [][]string{
		disorderHeaders,
		{
			"12345678", "CEDULA", "Ana Ríos", "F",
			"1990-04-12", "3105551234", "Calle 10 #4-20", "La Esperanza",
			"EPS001", "Salud Total",
			"2025-02-03", "HOSPITALIZADO", "URGENCIAS",
			"Salud Mental",
			"F33.1", "Trastorno depresivo recurrente", "2025-02-04", "Diagnostico Principal",
			"Requiere seguimiento mensual",
			"Visita domiciliaria efectiva", "x", "ok",
		},
	}
	env := newTestEnv()
	wb := newTestWorkbook(t, sheets)

	stats, err := env.imp.Run(context.Background(), wb, testOperator)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Imported)
	assert.Equal(t, 0, stats.Updated)
	assert.Equal(t, 0, stats.Skipped)
	assert.Equal(t, 1, stats.CasesCreated)
	assert.Equal(t, 2, stats.FollowupsCreated) // "x" is below the content threshold
	assert.Equal(t, 0, stats.TotalErrors)

	p, err := env.patients.GetByDocumentNumber(context.Background(), "12345678")
	require.NoError(t, err)
	assert.Equal(t, patient.DocumentCC, p.DocumentType)
	assert.Equal(t, "Ana Ríos", p.FullName)
	require.NotNil(t, p.Gender)
	assert.Equal(t, patient.GenderFemenino, *p.Gender)
	assert.Equal(t, time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC), p.BirthDate)
	assert.Equal(t, "3105551234", p.Phone)
	assert.Equal(t, "Salud Total", p.EPSName)
	assert.Equal(t, patient.StatusActive, p.Status)
	assert.Equal(t, testOperator, p.CreatedBy)

	d, err := env.disorders.GetByPatientID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, disorder.AdmissionHospitalario, d.AdmissionType)
	assert.Equal(t, disorder.ViaUrgencias, d.AdmissionVia)
	assert.Equal(t, "F33.1", d.DiagnosisCode)
	assert.Equal(t, disorder.DiagnosisPrincipal, d.DiagnosisType)
	assert.Equal(t, disorder.StatusActive, d.Status)

	ref := followup.CaseRef{Type: followup.CaseMentalDisorder, ID: d.ID}
	fus, err := env.followups.ListByCase(context.Background(), ref)
	require.NoError(t, err)
	require.Len(t, fus, 2)

	months := map[int]*followup.MonthlyFollowup{}
	for _, f := range fus {
		months[f.Month] = f
	}
	require.Contains(t, months, 1)
	require.Contains(t, months, 3)

	jan := months[1]
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), jan.FollowupDate)
	assert.Equal(t, 2025, jan.Year)
	assert.Equal(t,
		"TRASTORNO MENTAL - Visita domiciliaria efectiva | Dx: Trastorno depresivo recurrente | CIE: F33.1",
		jan.Description)
	assert.Equal(t, followup.StatusCompleted, jan.Status)
	assert.Equal(t, []string{"Seguimiento trastorno mental"}, jan.ActionsTaken)
	assert.Equal(t, testOperator, jan.PerformedBy)
}

func TestRunIsIdempotent(t *testing.T) {
	sheets := emptySheets()
	sheets["TRASTORNOS 2025"] = [][]string{
		disorderHeaders,
		{
			"12345678", "CC", "Ana Ríos", "F",
			"1990-04-12", "3105551234", "", "",
			"", "",
			"2025-02-03", "AMBULATORIO", "CONSULTA EXTERNA",
			"",
			"F33.1", "Trastorno depresivo recurrente", "", "",
			"",
			"Visita efectiva",
		},
	}
	env := newTestEnv()

	wb := newTestWorkbook(t, sheets)
	first, err := env.imp.Run(context.Background(), wb, testOperator)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Imported)
	assert.Equal(t, 1, first.CasesCreated)
	assert.Equal(t, 1, first.FollowupsCreated)

	second, err := env.imp.Run(context.Background(), wb, testOperator)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Imported)
	assert.Equal(t, 1, second.Updated)
	assert.Equal(t, 0, second.CasesCreated)
	assert.Equal(t, 0, second.FollowupsCreated)
	assert.Equal(t, 0, second.TotalErrors)

	count, err := env.followups.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRunMergesPatientAcrossSheets(t *testing.T) {
	sheets := emptySheets()
	sheets["TRASTORNOS 2025"] = [][]string{
		disorderHeaders,
		{
			"12345678", "CC", "Ana Ríos", "F",
			"1990-04-12", "3105551234", "Calle 10", "",
			"", "",
			"2025-02-03", "AMBULATORIO", "CONSULTA EXTERNA",
			"", "F33.1", "Depresión", "", "", "",
		},
	}
	sheets["EVENTO 356 2025"] = [][]string{
		attemptHeaders,
		{
			"12345678", "CC", "Ana Ríos", "F",
			"", "", "", "Centro", "",
			"2025-03-01", "9", "COMUNIDAD", "2",
			"Subsidiado", "Conflicto familiar", "Aislamiento, Antecedente previo", "Intoxicación",
			"",
			"Contacto telefónico efectivo",
		},
	}
	env := newTestEnv()
	wb := newTestWorkbook(t, sheets)

	stats, err := env.imp.Run(context.Background(), wb, testOperator)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Imported)
	assert.Equal(t, 1, stats.Updated) // second sheet merges into the same patient
	assert.Equal(t, 2, stats.CasesCreated)

	n, err := env.patients.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	p, err := env.patients.GetByDocumentNumber(context.Background(), "12345678")
	require.NoError(t, err)
	// absent cells in the second sheet do not erase known demographics
	assert.Equal(t, "3105551234", p.Phone)
	assert.Equal(t, "Centro", p.Neighborhood)

	a, err := env.attempts.GetByPatientID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, attempt.ViaComunidad, a.AdmissionVia)
	assert.Equal(t, 2, a.AttemptNumber)
	require.NotNil(t, a.WeekNumber)
	assert.Equal(t, 9, *a.WeekNumber)
	assert.Equal(t, []string{"Aislamiento", "Antecedente previo"}, a.RiskFactors)
}

func TestRunSkipsInvalidDocuments(t *testing.T) {
	sheets := emptySheets()
	sheets["TRASTORNOS 2025"] = [][]string{
		disorderHeaders,
		{"123", "CC", "Corto Documento", "M"},
		{"sin documento", "CC", "Sin Documento", "M"},
		{"", "CC", "Vacío", "M"},
		{"12.345.678", "CC", "Puntos Válidos", "M", "", "", "", "", "", "", "2025-01-10", "AMBULATORIO", "CONSULTA EXTERNA", "", "F20", "Esquizofrenia", "", "", ""},
	}
	env := newTestEnv()
	wb := newTestWorkbook(t, sheets)

	stats, err := env.imp.Run(context.Background(), wb, testOperator)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Skipped)
	assert.Equal(t, 1, stats.Imported)
	assert.Equal(t, 0, stats.TotalErrors) // silent skips, not errors

	_, err = env.patients.GetByDocumentNumber(context.Background(), "12.345.678")
	assert.NoError(t, err)
}

func TestRunRowFailureIsolation(t *testing.T) {
	sheets := emptySheets()
	sheets["TRASTORNOS 2025"] = [][]string{
		disorderHeaders,
		{"11111111", "CC", "Primera Paciente", "F", "", "", "", "", "", "", "", "AMBULATORIO", "", "", "F32", "Depresión", "", "", ""},
		{"99999999", "CC", "Fila Dañada", "M", "", "", "", "", "", "", "", "AMBULATORIO", "", "", "F32", "Depresión", "", "", ""},
		{"22222222", "CC", "Tercera Paciente", "F", "", "", "", "", "", "", "", "AMBULATORIO", "", "", "F32", "Depresión", "", "", ""},
	}
	env := newTestEnv()
	env.patients.failDoc = "99999999"
	wb := newTestWorkbook(t, sheets)

	stats, err := env.imp.Run(context.Background(), wb, testOperator)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Imported)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 1, stats.TotalErrors)
	require.Len(t, stats.Errors, 1)
	assert.Contains(t, stats.Errors[0], "TRASTORNOS 2025 row 3")
	assert.Contains(t, stats.Errors[0], "99999999")
}

func TestRunMergeNeverErasesFields(t *testing.T) {
	sheets := emptySheets()
	sheets["TRASTORNOS 2025"] = [][]string{
		disorderHeaders,
		{"12345678", "CC", "Ana Ríos", "F", "", "3105551234", "Calle 10", "", "", "", "", "AMBULATORIO", "", "", "F32", "Depresión", "", "", ""},
		{"12345678", "CC", "Ana Ríos Actualizada", "F", "", "", "Carrera 5 #1-2", "", "", "", "", "AMBULATORIO", "", "", "F32", "Depresión", "", "", ""},
	}
	env := newTestEnv()
	wb := newTestWorkbook(t, sheets)

	stats, err := env.imp.Run(context.Background(), wb, testOperator)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Imported)
	assert.Equal(t, 1, stats.Updated)

	p, err := env.patients.GetByDocumentNumber(context.Background(), "12345678")
	require.NoError(t, err)
	assert.Equal(t, "Ana Ríos Actualizada", p.FullName)
	assert.Equal(t, "3105551234", p.Phone) // blank cell left the phone alone
	assert.Equal(t, "Carrera 5 #1-2", p.Address)
}

func TestRunAttemptAndConsumptionDefaults(t *testing.T) {
	sheets := emptySheets()
	sheets["EVENTO 356 2025"] = [][]string{
		attemptHeaders,
		{"33333333", "CC", "Paciente Attempt", "M", "", "", "", "", "", "", "", "", "", "", "", "", "", ""},
	}
	sheets["CONSUMO SPA 2025"] = [][]string{
		consumptionHeaders,
		{"44444444", "Paciente Consumo", "", "", "", "", "", "", ""},
	}
	env := newTestEnv()
	wb := newTestWorkbook(t, sheets)

	stats, err := env.imp.Run(context.Background(), wb, testOperator)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Imported)
	assert.Equal(t, 2, stats.CasesCreated)

	p1, err := env.patients.GetByDocumentNumber(context.Background(), "33333333")
	require.NoError(t, err)
	a, err := env.attempts.GetByPatientID(context.Background(), p1.ID)
	require.NoError(t, err)
	assert.Equal(t, "No especificado", a.TriggerFactor)
	assert.Equal(t, "No especificado", a.Mechanism)
	assert.Equal(t, 1, a.AttemptNumber)
	assert.Equal(t, attempt.ViaConsultaExterna, a.AdmissionVia)
	assert.Nil(t, a.WeekNumber)
	// unparseable event date falls back to the run clock
	assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), a.EventDate)

	p2, err := env.patients.GetByDocumentNumber(context.Background(), "44444444")
	require.NoError(t, err)
	// missing birth date is backdated instead of zeroed
	assert.Equal(t, time.Date(1995, 6, 1, 12, 0, 0, 0, time.UTC), p2.BirthDate)

	c, err := env.consumptions.GetByPatientID(context.Background(), p2.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sin diagnóstico específico", c.Diagnosis)
	assert.Equal(t, []string{"No especificada"}, c.SubstancesUsed)
	assert.Equal(t, consumption.LevelBajoRiesgo, c.ConsumptionLevel)
}

func TestRunMissingSheetIsFatal(t *testing.T) {
	sheets := emptySheets()
	delete(sheets, "CONSUMO SPA 2025")
	env := newTestEnv()
	wb := newTestWorkbook(t, sheets)

	_, err := env.imp.Run(context.Background(), wb, testOperator)
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestRunFollowupFailureKeepsRow(t *testing.T) {
	sheets := emptySheets()
	sheets["TRASTORNOS 2025"] = [][]string{
		disorderHeaders,
		{
			"12345678", "CC", "Ana Ríos", "F",
			"", "", "", "", "", "",
			"", "AMBULATORIO", "", "", "F32", "Depresión", "", "", "",
			"Visita efectiva", "Llamada efectiva",
		},
	}
	env := newTestEnv()
	env.followups.failAll = true
	wb := newTestWorkbook(t, sheets)

	stats, err := env.imp.Run(context.Background(), wb, testOperator)
	require.NoError(t, err)

	// the row itself survives: patient and case are in, only the months failed
	assert.Equal(t, 1, stats.Imported)
	assert.Equal(t, 1, stats.CasesCreated)
	assert.Equal(t, 0, stats.Skipped)
	assert.Equal(t, 0, stats.FollowupsCreated)
	assert.Equal(t, 2, stats.TotalErrors)
}
