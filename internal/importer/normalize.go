package importer

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/saludmental/mindtrack/internal/domain/attempt"
	"github.com/saludmental/mindtrack/internal/domain/consumption"
	"github.com/saludmental/mindtrack/internal/domain/disorder"
	"github.com/saludmental/mindtrack/internal/domain/patient"
)

// Cell values come from spreadsheets filled in by hand: markup fragments,
// stray separators, serial dates and free-text enums are all expected input.
// Every function here is total; a malformed cell maps to a default or an
// absent value, never an error.

var (
	markupRe     = regexp.MustCompile(`<[^>]*>`)
	phoneSplitRe = regexp.MustCompile(`[-,\s/]`)
	nonDigitRe   = regexp.MustCompile(`\D`)
)

// CleanString trims the value and strips markup tags. Returns "" for
// empty or whitespace-only input.
func CleanString(value string) string {
	return strings.TrimSpace(markupRe.ReplaceAllString(strings.TrimSpace(value), ""))
}

// CleanPhone extracts the first phone number from a cell that may hold
// several separated by dashes, commas, spaces or slashes. Only digit strings
// of length 7 to 20 are accepted.
func CleanPhone(value string) string {
	if value == "" {
		return ""
	}
	first := phoneSplitRe.Split(value, 2)[0]
	cleaned := nonDigitRe.ReplaceAllString(strings.TrimSpace(first), "")
	if len(cleaned) >= 7 && len(cleaned) <= 20 {
		return cleaned
	}
	return ""
}

// Truncate returns at most max characters of s.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// IsValidDocument reports whether the digit-only subsequence of the value
// has between 6 and 15 digits.
func IsValidDocument(value string) bool {
	clean := nonDigitRe.ReplaceAllString(value, "")
	return len(clean) >= 6 && len(clean) <= 15
}

// serialEpoch is the spreadsheet serial-date epoch (day 1 = 1899-12-31,
// with the historical Lotus leap-year bug folded in).
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"02-01-2006",
	"2006/01/02",
	"02/01/06",
	"01/02/06",
	"02.01.2006",
	"2006-01-02 15:04:05",
}

// ParseDate parses a cell as either a spreadsheet serial number or one of
// the date formats seen in the source registries. The second return is false
// when the cell holds no parseable date.
func ParseDate(value string) (time.Time, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(v, 64); err == nil {
		if serial <= 0 || serial > 200000 {
			return time.Time{}, false
		}
		return serialEpoch.AddDate(0, 0, int(serial)), true
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SplitList splits a free-text cell on commas and semicolons into trimmed,
// non-empty tokens.
func SplitList(value string) []string {
	var out []string
	for _, tok := range strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ';'
	}) {
		if t := strings.TrimSpace(tok); t != "" {
			out = append(out, t)
		}
	}
	return out
}

var documentTypeSynonyms = map[string]patient.DocumentType{
	"CEDULA":               patient.DocumentCC,
	"CEDULA DE CIUDADANIA": patient.DocumentCC,
	"TARJETA DE IDENTIDAD": patient.DocumentTI,
	"CEDULA EXTRANJERIA":   patient.DocumentCE,
	"PASAPORTE":            patient.DocumentPA,
	"REGISTRO CIVIL":       patient.DocumentRC,
}

// MapDocumentType maps free-text document types, including the spelled-out
// synonyms, to the registry codes. Unrecognized input defaults to CC.
func MapDocumentType(value string) patient.DocumentType {
	v := strings.ToUpper(strings.TrimSpace(value))
	if v == "" {
		return patient.DocumentCC
	}
	if dt, ok := documentTypeSynonyms[v]; ok {
		return dt
	}
	if dt := patient.DocumentType(v); dt.IsValid() {
		return dt
	}
	return patient.DocumentCC
}

// MapGender maps free-text gender values. Unrecognized input defaults to Otro.
func MapGender(value string) patient.Gender {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "M", "MASCULINO", "HOMBRE", "MALE":
		return patient.GenderMasculino
	case "F", "FEMENINO", "MUJER", "FEMALE":
		return patient.GenderFemenino
	default:
		return patient.GenderOtro
	}
}

// MapAdmissionType classifies the admission type by substring so that
// variants like "HOSPITALIZADO" still land on the right value. Defaults to
// AMBULATORIO.
func MapAdmissionType(value string) disorder.AdmissionType {
	v := strings.ToUpper(strings.TrimSpace(value))
	switch {
	case strings.Contains(v, "HOSPITAL"):
		return disorder.AdmissionHospitalario
	case strings.Contains(v, "URGENCIA"):
		return disorder.AdmissionUrgencias
	default:
		return disorder.AdmissionAmbulatorio
	}
}

func normalizeVia(value string) string {
	v := strings.ToUpper(strings.TrimSpace(value))
	return strings.ReplaceAll(v, " ", "_")
}

// MapDisorderVia maps the admission channel for mental disorder cases.
// Defaults to CONSULTA_EXTERNA.
func MapDisorderVia(value string) disorder.AdmissionVia {
	if via := disorder.AdmissionVia(normalizeVia(value)); via.IsValid() {
		return via
	}
	return disorder.ViaConsultaExterna
}

// MapAttemptVia maps the admission channel for suicide attempt cases, which
// additionally allow COMUNIDAD. Defaults to CONSULTA_EXTERNA.
func MapAttemptVia(value string) attempt.AdmissionVia {
	if via := attempt.AdmissionVia(normalizeVia(value)); via.IsValid() {
		return via
	}
	return attempt.ViaConsultaExterna
}

// MapConsumptionVia maps the admission channel for substance consumption
// cases. Defaults to CONSULTA_EXTERNA.
func MapConsumptionVia(value string) consumption.AdmissionVia {
	if via := consumption.AdmissionVia(normalizeVia(value)); via.IsValid() {
		return via
	}
	return consumption.ViaConsultaExterna
}

// MapDiagnosisType accepts only the two canonical values; anything else is
// treated as the principal diagnosis.
func MapDiagnosisType(value string) disorder.DiagnosisType {
	if dt := disorder.DiagnosisType(strings.TrimSpace(value)); dt == disorder.DiagnosisPrincipal || dt == disorder.DiagnosisRelacionado {
		return dt
	}
	return disorder.DiagnosisPrincipal
}

// MapConsumptionLevel maps free-text risk levels, including the short forms
// "ALTO", "MODERADO" and "BAJO". Defaults to Bajo Riesgo.
func MapConsumptionLevel(value string) consumption.Level {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "ALTO RIESGO", "ALTO":
		return consumption.LevelAltoRiesgo
	case "RIESGO MODERADO", "MODERADO":
		return consumption.LevelRiesgoModerado
	case "BAJO RIESGO", "BAJO":
		return consumption.LevelBajoRiesgo
	case "PERJUDICIAL":
		return consumption.LevelPerjudicial
	default:
		return consumption.LevelBajoRiesgo
	}
}

// ParseAttemptNumber reads the attempt counter cell. Missing or unparseable
// cells count as the first attempt.
func ParseAttemptNumber(value string) int {
	if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && n > 0 {
		return n
	}
	return 1
}

// ParseWeekNumber reads the epidemiological week cell, nil when absent or
// out of range.
func ParseWeekNumber(value string) *int {
	if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && n >= 1 && n <= 53 {
		return &n
	}
	return nil
}
