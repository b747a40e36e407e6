package importer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/saludmental/mindtrack/internal/domain/followup"
)

// Candidate header spellings per sheet, in priority order. These are data on
// purpose: every observed workbook variant gets a row here, not a code
// branch. Matching is accent-, case- and punctuation-insensitive (see
// normalizeHeader), so "N° DOCUMENTO" matches "n_documento".
var (
	disorderColumns = struct {
		document, documentType, fullName, gender, birthDate     []string
		phone, address, village, epsCode, epsName               []string
		admissionDate, admissionType, admissionVia, serviceArea []string
		diagnosisCode, diagnosis, diagnosisDate, diagnosisType  []string
		observation                                             []string
	}{
		document:      []string{"n_documento"},
		documentType:  []string{"tipo_de_documento"},
		fullName:      []string{"nombres_y_apellidos"},
		gender:        []string{"sex0", "sexo"},
		birthDate:     []string{"fecha_de_nacimiento"},
		phone:         []string{"telefono"},
		address:       []string{"direccion"},
		village:       []string{"vereda"},
		epsCode:       []string{"eps_codigo"},
		epsName:       []string{"eps_nombre"},
		admissionDate: []string{"fecha_de_ingreso"},
		admissionType: []string{"tipo_de_ingreso"},
		admissionVia:  []string{"ingreso_por"},
		serviceArea:   []string{"area_servicio_de_atencion"},
		diagnosisCode: []string{"diag_codigo"},
		diagnosis:     []string{"diagnostico"},
		diagnosisDate: []string{"fecha_diagnostico"},
		diagnosisType: []string{"tipo_diagnostico"},
		observation:   []string{"observacion_adicional"},
	}

	attemptColumns = struct {
		document, documentType, fullName, gender, birthDate []string
		phone, address, neighborhood, village               []string
		eventDate, week, admissionVia, attempts             []string
		benefitPlan, trigger, riskFactors, mechanism        []string
		observation                                         []string
	}{
		document:     []string{"n_documento"},
		documentType: []string{"tipo_doc"},
		fullName:     []string{"nombres_y_apellidos"},
		gender:       []string{"sexo"},
		birthDate:    []string{"fecha_de_nacimiento"},
		phone:        []string{"telefono"},
		address:      []string{"direccion"},
		neighborhood: []string{"barrio"},
		village:      []string{"vereda"},
		eventDate:    []string{"fecha_de_ingreso"},
		week:         []string{"semana"},
		admissionVia: []string{"ingreso_por"},
		attempts:     []string{"n_intentos"},
		benefitPlan:  []string{"plan_de_beneficios"},
		trigger:      []string{"desencadenante"},
		riskFactors:  []string{"factores_de_riesgo"},
		mechanism:    []string{"mecanismo"},
		observation:  []string{"observacion_adicional"},
	}

	// The SPA sheet arrives from the most sources and has the most header
	// drift, hence the longer candidate lists.
	consumptionColumns = struct {
		document, documentType, fullName, gender, birthDate []string
		phone, eps                                          []string
		admissionDate, admissionVia, diagnosis              []string
		substances, level, observation                      []string
	}{
		document:      []string{"n_documento", "numero_documento", "documento", "cedula", "identificacion"},
		documentType:  []string{"tipo_doc", "tipo_documento"},
		fullName:      []string{"nombre_completo", "nombres_y_apellidos", "nombres_apellidos", "nombre", "paciente", "full_name"},
		gender:        []string{"sexo", "genero"},
		birthDate:     []string{"fecha_de_nacimiento", "fecha_nacimiento"},
		phone:         []string{"telefono", "celular"},
		eps:           []string{"eps", "eps_nombre", "nombre_eps", "entidad", "aseguradora"},
		admissionDate: []string{"fecha_de_ingreso", "fecha_ingreso", "fecha_de_ingres", "fecha_registro", "fecha"},
		admissionVia:  []string{"ingreso_por", "via_ingreso"},
		diagnosis:     []string{"diagnostico", "dx"},
		substances:    []string{"sustancias", "sustancia", "drogas", "spa", "sustancias_usadas", "tipo_sustancia"},
		level:         []string{"nivel_consumo", "nivel", "grado_consumo"},
		observation:   []string{"observacion_adicional", "observaciones"},
	}
)

func parseDateCell(sheet *Sheet, row []string, candidates []string) *time.Time {
	if t, ok := ParseDate(sheet.Columns.Value(row, candidates)); ok {
		return &t
	}
	return nil
}

// processDisorders walks the TRASTORNOS sheet. Per row, in strict order:
// patient upsert, case upsert, follow-up generation. A failure in any step
// skips the rest of that row only.
func (imp *Importer) processDisorders(ctx context.Context, sheet *Sheet, operator uuid.UUID, stats *Stats) {
	imp.log.Info("processing sheet", zap.String("sheet", sheet.Name), zap.Int("rows", len(sheet.Rows)))

	for i, row := range sheet.Rows {
		rowNum := sheet.RowNumber(i)

		doc := sheet.Columns.Value(row, disorderColumns.document)
		if doc == "" || !IsValidDocument(doc) {
			stats.Skipped++
			continue
		}

		cols := sheet.Columns
		p, err := imp.upsertPatient(ctx, patientInput{
			documentNumber: doc,
			documentType:   MapDocumentType(cols.Value(row, disorderColumns.documentType)),
			fullName:       cols.Value(row, disorderColumns.fullName),
			gender:         MapGender(cols.Value(row, disorderColumns.gender)),
			birthDate:      parseDateCell(sheet, row, disorderColumns.birthDate),
			phone:          CleanPhone(cols.Value(row, disorderColumns.phone)),
			address:        cols.Value(row, disorderColumns.address),
			village:        cols.Value(row, disorderColumns.village),
			epsCode:        cols.Value(row, disorderColumns.epsCode),
			epsName:        cols.Value(row, disorderColumns.epsName),
		}, operator, stats)
		if err != nil {
			imp.failRow(sheet, rowNum, err, stats)
			continue
		}

		d, err := imp.upsertDisorderCase(ctx, p.ID, disorderInput{
			admissionDate:        parseDateCell(sheet, row, disorderColumns.admissionDate),
			admissionType:        MapAdmissionType(cols.Value(row, disorderColumns.admissionType)),
			admissionVia:         MapDisorderVia(cols.Value(row, disorderColumns.admissionVia)),
			serviceArea:          cols.Value(row, disorderColumns.serviceArea),
			diagnosisCode:        cols.Value(row, disorderColumns.diagnosisCode),
			diagnosisDate:        parseDateCell(sheet, row, disorderColumns.diagnosisDate),
			diagnosisDescription: cols.Value(row, disorderColumns.diagnosis),
			diagnosisType:        MapDiagnosisType(cols.Value(row, disorderColumns.diagnosisType)),
			observation:          cols.Value(row, disorderColumns.observation),
		}, operator, stats)
		if err != nil {
			imp.failRow(sheet, rowNum, err, stats)
			continue
		}

		var details []string
		if d.DiagnosisDescription != "" {
			details = append(details, "Dx: "+Truncate(d.DiagnosisDescription, 100))
		}
		if d.DiagnosisCode != "" {
			details = append(details, "CIE: "+d.DiagnosisCode)
		}

		imp.generateFollowups(ctx, sheet, row, rowNum, followupSpec{
			ref:       followup.CaseRef{Type: followup.CaseMentalDisorder, ID: d.ID},
			prefix:    "TRASTORNO MENTAL - ",
			details:   details,
			actionTag: "Seguimiento trastorno mental",
		}, operator, stats)
	}
}

// processAttempts walks the EVENTO 356 sheet.
func (imp *Importer) processAttempts(ctx context.Context, sheet *Sheet, operator uuid.UUID, stats *Stats) {
	imp.log.Info("processing sheet", zap.String("sheet", sheet.Name), zap.Int("rows", len(sheet.Rows)))

	for i, row := range sheet.Rows {
		rowNum := sheet.RowNumber(i)

		doc := sheet.Columns.Value(row, attemptColumns.document)
		if doc == "" || !IsValidDocument(doc) {
			stats.Skipped++
			continue
		}

		cols := sheet.Columns
		p, err := imp.upsertPatient(ctx, patientInput{
			documentNumber: doc,
			documentType:   MapDocumentType(cols.Value(row, attemptColumns.documentType)),
			fullName:       cols.Value(row, attemptColumns.fullName),
			gender:         MapGender(cols.Value(row, attemptColumns.gender)),
			birthDate:      parseDateCell(sheet, row, attemptColumns.birthDate),
			phone:          CleanPhone(cols.Value(row, attemptColumns.phone)),
			address:        cols.Value(row, attemptColumns.address),
			neighborhood:   cols.Value(row, attemptColumns.neighborhood),
			village:        cols.Value(row, attemptColumns.village),
		}, operator, stats)
		if err != nil {
			imp.failRow(sheet, rowNum, err, stats)
			continue
		}

		a, err := imp.upsertAttemptCase(ctx, p.ID, attemptInput{
			eventDate:     parseDateCell(sheet, row, attemptColumns.eventDate),
			weekNumber:    ParseWeekNumber(cols.Value(row, attemptColumns.week)),
			admissionVia:  MapAttemptVia(cols.Value(row, attemptColumns.admissionVia)),
			benefitPlan:   cols.Value(row, attemptColumns.benefitPlan),
			attemptNumber: ParseAttemptNumber(cols.Value(row, attemptColumns.attempts)),
			triggerFactor: cols.Value(row, attemptColumns.trigger),
			riskFactors:   SplitList(cols.Value(row, attemptColumns.riskFactors)),
			mechanism:     cols.Value(row, attemptColumns.mechanism),
			observation:   cols.Value(row, attemptColumns.observation),
		}, operator, stats)
		if err != nil {
			imp.failRow(sheet, rowNum, err, stats)
			continue
		}

		details := []string{fmt.Sprintf("Intento #%d", a.AttemptNumber)}
		if a.Mechanism != "" {
			details = append(details, "Mecanismo: "+Truncate(a.Mechanism, 50))
		}
		if a.TriggerFactor != "" {
			details = append(details, "Trigger: "+Truncate(a.TriggerFactor, 50))
		}

		imp.generateFollowups(ctx, sheet, row, rowNum, followupSpec{
			ref:       followup.CaseRef{Type: followup.CaseSuicideAttempt, ID: a.ID},
			prefix:    "INTENTO SUICIDIO - ",
			details:   details,
			actionTag: "Seguimiento intento suicidio",
		}, operator, stats)
	}
}

// processConsumptions walks the CONSUMO SPA sheet.
func (imp *Importer) processConsumptions(ctx context.Context, sheet *Sheet, operator uuid.UUID, stats *Stats) {
	imp.log.Info("processing sheet", zap.String("sheet", sheet.Name), zap.Int("rows", len(sheet.Rows)))

	for i, row := range sheet.Rows {
		rowNum := sheet.RowNumber(i)

		doc := sheet.Columns.Value(row, consumptionColumns.document)
		if doc == "" || !IsValidDocument(doc) {
			stats.Skipped++
			continue
		}

		cols := sheet.Columns
		p, err := imp.upsertPatient(ctx, patientInput{
			documentNumber: doc,
			documentType:   MapDocumentType(cols.Value(row, consumptionColumns.documentType)),
			fullName:       cols.Value(row, consumptionColumns.fullName),
			gender:         MapGender(cols.Value(row, consumptionColumns.gender)),
			birthDate:      parseDateCell(sheet, row, consumptionColumns.birthDate),
			phone:          CleanPhone(cols.Value(row, consumptionColumns.phone)),
			epsName:        cols.Value(row, consumptionColumns.eps),
		}, operator, stats)
		if err != nil {
			imp.failRow(sheet, rowNum, err, stats)
			continue
		}

		c, err := imp.upsertConsumptionCase(ctx, p.ID, consumptionInput{
			admissionDate: parseDateCell(sheet, row, consumptionColumns.admissionDate),
			admissionVia:  MapConsumptionVia(cols.Value(row, consumptionColumns.admissionVia)),
			diagnosis:     cols.Value(row, consumptionColumns.diagnosis),
			substances:    SplitList(cols.Value(row, consumptionColumns.substances)),
			level:         MapConsumptionLevel(cols.Value(row, consumptionColumns.level)),
			observation:   cols.Value(row, consumptionColumns.observation),
		}, operator, stats)
		if err != nil {
			imp.failRow(sheet, rowNum, err, stats)
			continue
		}

		var details []string
		if c.Diagnosis != "" {
			details = append(details, "Dx: "+Truncate(c.Diagnosis, 100))
		}
		if len(c.SubstancesUsed) > 0 {
			head := c.SubstancesUsed
			if len(head) > 3 {
				head = head[:3]
			}
			details = append(details, "Sustancias: "+strings.Join(head, ", "))
		}
		details = append(details, "Nivel: "+string(c.ConsumptionLevel))

		imp.generateFollowups(ctx, sheet, row, rowNum, followupSpec{
			ref:       followup.CaseRef{Type: followup.CaseSubstanceConsumption, ID: c.ID},
			prefix:    "CONSUMO SPA - ",
			details:   details,
			actionTag: "Seguimiento consumo SPA",
		}, operator, stats)
	}
}

// failRow records a row-level failure: counted as skipped, appended to the
// error list, logged. The sheet keeps going.
func (imp *Importer) failRow(sheet *Sheet, rowNum int, err error, stats *Stats) {
	stats.Skipped++
	stats.AddError(fmt.Sprintf("%s row %d: %v", sheet.Name, rowNum, err))
	imp.log.Error("row failed",
		zap.String("sheet", sheet.Name),
		zap.Int("row", rowNum),
		zap.Error(err))
}
