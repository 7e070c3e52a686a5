package excel

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/phenrril/cotizador/internal/domain"
)

// ImportReport acumula qué se pudo leer del libro y qué se descartó. Un
// registro con errores se saltea sin abortar el resto de la importación.
type ImportReport struct {
	RawMaterials int
	Machines     int
	Assemblies   int
	Packagings   int
	Transports   int
	Errors       []string
	Timestamp    time.Time
}

func (r *ImportReport) errf(sheet, col, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.Errors = append(r.Errors, fmt.Sprintf("%s!%s: %s", sheet, col, msg))
}

// ParseQuote lee un libro con el layout de BuildTemplate y arma la cotización
// completa en memoria. No persiste nada; eso queda del lado del usecase.
func ParseQuote(data []byte) (*domain.Quote, *ImportReport, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("abrir libro: %w", err)
	}
	defer f.Close()

	rep := &ImportReport{Timestamp: time.Now()}

	q, err := parseDefinition(f, rep)
	if err != nil {
		return nil, rep, err
	}

	parseRawMaterials(f, q, rep)
	parseMachines(f, q, rep)
	parseAssemblies(f, q, rep)
	packByCol := parsePackagings(f, q, rep)
	parseTransports(f, q, rep, packByCol)

	log.Info().
		Int("materias_primas", rep.RawMaterials).
		Int("maquinas", rep.Machines).
		Int("armados", rep.Assemblies).
		Int("embalajes", rep.Packagings).
		Int("transportes", rep.Transports).
		Int("errores", len(rep.Errors)).
		Msg("import de cotización parseado")
	return q, rep, nil
}

func parseDefinition(f *excelize.File, rep *ImportReport) (*domain.Quote, error) {
	rows, err := f.GetRows(SheetDefinition)
	if err != nil || len(rows) == 0 {
		return nil, fmt.Errorf("falta la hoja %q", SheetDefinition)
	}
	name := cell(rows, 0, 1)
	if name == "" {
		return nil, fmt.Errorf("la hoja %q no tiene nombre de cotización", SheetDefinition)
	}
	q := &domain.Quote{
		ID:              uuid.New(),
		Name:            name,
		ClientName:      cell(rows, 1, 1),
		SAPNumber:       cell(rows, 2, 1),
		PartNumber:      cell(rows, 3, 1),
		PartName:        cell(rows, 4, 1),
		AmendmentNumber: cell(rows, 5, 1),
		Description:     cell(rows, 6, 1),
		Quantity:        parseInt(cell(rows, 7, 1), SheetDefinition, "B", rep),
		HandlingCharge:  parseDec(cell(rows, 8, 1), SheetDefinition, "B", rep),
		ProfitPct:       parseDec(cell(rows, 9, 1), SheetDefinition, "B", rep),
		Notes:           cell(rows, 10, 1),
		Status:          domain.QuoteStatusInProgress,
		MajorVersion:    1,
	}
	if q.Quantity <= 0 {
		q.Quantity = 1
	}
	return q, nil
}

func parseRawMaterials(f *excelize.File, q *domain.Quote, rep *ImportReport) {
	rows, err := f.GetRows(SheetRawMat)
	if err != nil {
		return
	}
	for j := 1; j <= lastCol(rows); j++ {
		col := colName(j)
		name := cell(rows, 0, j)
		if name == "" {
			if columnHasData(rows, j) {
				rep.errf(SheetRawMat, col, "registro sin nombre de material")
			}
			continue
		}
		rm := domain.RawMaterial{
			ID:              uuid.New(),
			QuoteID:         q.ID,
			MaterialName:    name,
			Grade:           cell(rows, 1, j),
			RMCode:          cell(rows, 2, j),
			Unit:            parseUnit(cell(rows, 3, j), SheetRawMat, col, rep),
			RMRate:          parseDec(cell(rows, 4, j), SheetRawMat, col, rep),
			PartWeight:      parseDec(cell(rows, 6, j), SheetRawMat, col, rep),
			RunnerWeight:    parseDec(cell(rows, 7, j), SheetRawMat, col, rep),
			ProcessLosses:   parseDec(cell(rows, 8, j), SheetRawMat, col, rep),
			PurgingLossCost: parseDec(cell(rows, 9, j), SheetRawMat, col, rep),
			ICCPct:          parseDec(cell(rows, 10, j), SheetRawMat, col, rep),
			RejectionPct:    parseDec(cell(rows, 11, j), SheetRawMat, col, rep),
			OverheadPct:     parseDec(cell(rows, 12, j), SheetRawMat, col, rep),
			MaintenancePct:  parseDec(cell(rows, 13, j), SheetRawMat, col, rep),
			ProfitPct:       parseDec(cell(rows, 14, j), SheetRawMat, col, rep),
		}
		if frozen := cell(rows, 5, j); frozen != "" {
			rm.FrozenRate = decimal.NewNullDecimal(parseDec(frozen, SheetRawMat, col, rep))
		}
		q.RawMaterials = append(q.RawMaterials, rm)
		rep.RawMaterials++
	}
}

func parseMachines(f *excelize.File, q *domain.Quote, rep *ImportReport) {
	rows, err := f.GetRows(SheetMoulding)
	if err != nil {
		return
	}
	for j := 1; j <= lastCol(rows); j++ {
		col := colName(j)
		if !columnHasData(rows, j) {
			continue
		}
		m := domain.MouldingMachineDetail{
			ID:              uuid.New(),
			QuoteID:         q.ID,
			Cavity:          parseInt(cell(rows, 0, j), SheetMoulding, col, rep),
			MachineTonnage:  parseDec(cell(rows, 1, j), SheetMoulding, col, rep),
			CycleTime:       parseDec(cell(rows, 2, j), SheetMoulding, col, rep),
			EfficiencyPct:   parseDec(cell(rows, 3, j), SheetMoulding, col, rep),
			ShiftRate:       parseDec(cell(rows, 4, j), SheetMoulding, col, rep),
			ShiftRateForMTC: parseDec(cell(rows, 5, j), SheetMoulding, col, rep),
			MTCCount:        parseInt(cell(rows, 6, j), SheetMoulding, col, rep),
			RejectionPct:    parseDec(cell(rows, 7, j), SheetMoulding, col, rep),
			OverheadPct:     parseDec(cell(rows, 8, j), SheetMoulding, col, rep),
			MaintenancePct:  parseDec(cell(rows, 9, j), SheetMoulding, col, rep),
			ProfitPct:       parseDec(cell(rows, 10, j), SheetMoulding, col, rep),
		}
		if m.Cavity <= 0 {
			m.Cavity = 1
		}
		q.Machines = append(q.Machines, m)
		rep.Machines++
	}
}

func parseAssemblies(f *excelize.File, q *domain.Quote, rep *ImportReport) {
	rows, err := f.GetRows(SheetAssembly)
	if err != nil {
		return
	}
	for j := 1; j <= lastCol(rows); j++ {
		col := colName(j)
		name := cell(rows, 0, j)
		if name == "" {
			if columnHasData(rows, j) {
				rep.errf(SheetAssembly, col, "registro sin nombre de armado")
			}
			continue
		}
		a := domain.Assembly{
			ID:                     uuid.New(),
			QuoteID:                q.ID,
			Name:                   name,
			Remarks:                cell(rows, 1, j),
			ManualCost:             parseDec(cell(rows, 2, j), SheetAssembly, col, rep),
			OtherCost:              parseDec(cell(rows, 3, j), SheetAssembly, col, rep),
			InspectionHandlingCost: parseDec(cell(rows, 4, j), SheetAssembly, col, rep),
			ProfitPct:              parseDec(cell(rows, 5, j), SheetAssembly, col, rep),
			RejectionPct:           parseDec(cell(rows, 6, j), SheetAssembly, col, rep),
		}
		q.Assemblies = append(q.Assemblies, a)
		rep.Assemblies++
	}
}

func parsePackagings(f *excelize.File, q *domain.Quote, rep *ImportReport) map[string]uuid.UUID {
	byCol := map[string]uuid.UUID{}
	rows, err := f.GetRows(SheetPackaging)
	if err != nil {
		return byCol
	}
	for j := 1; j <= lastCol(rows); j++ {
		col := colName(j)
		if !columnHasData(rows, j) {
			continue
		}
		p := domain.Packaging{
			ID:              uuid.New(),
			QuoteID:         q.ID,
			Category:        strings.ToLower(cell(rows, 0, j)),
			Length:          parseDec(cell(rows, 1, j), SheetPackaging, col, rep),
			Breadth:         parseDec(cell(rows, 2, j), SheetPackaging, col, rep),
			Height:          parseDec(cell(rows, 3, j), SheetPackaging, col, rep),
			PolybagLength:   parseDec(cell(rows, 4, j), SheetPackaging, col, rep),
			PolybagWidth:    parseDec(cell(rows, 5, j), SheetPackaging, col, rep),
			Lifecycle:       parseInt(cell(rows, 6, j), SheetPackaging, col, rep),
			Cost:            parseDec(cell(rows, 7, j), SheetPackaging, col, rep),
			MaintenancePct:  parseDec(cell(rows, 8, j), SheetPackaging, col, rep),
			PartsPerPolybag: parseInt(cell(rows, 9, j), SheetPackaging, col, rep),
		}
		if p.Category == "" {
			p.Category = "pp_box"
		}
		q.Packagings = append(q.Packagings, p)
		byCol[col] = p.ID
		rep.Packagings++
	}
	return byCol
}

func parseTransports(f *excelize.File, q *domain.Quote, rep *ImportReport, packByCol map[string]uuid.UUID) {
	rows, err := f.GetRows(SheetTransport)
	if err != nil {
		return
	}
	for j := 1; j <= lastCol(rows); j++ {
		col := colName(j)
		if !columnHasData(rows, j) {
			continue
		}
		ref := strings.ToUpper(cell(rows, 0, j))
		packID, ok := packByCol[ref]
		if !ok {
			rep.errf(SheetTransport, col, "referencia de packaging %q inexistente", ref)
			continue
		}
		t := domain.Transport{
			ID:          uuid.New(),
			QuoteID:     q.ID,
			PackagingID: packID,
			Length:      parseDec(cell(rows, 1, j), SheetTransport, col, rep),
			Breadth:     parseDec(cell(rows, 2, j), SheetTransport, col, rep),
			Height:      parseDec(cell(rows, 3, j), SheetTransport, col, rep),
			TripCost:    parseDec(cell(rows, 4, j), SheetTransport, col, rep),
			PartsPerBox: parseInt(cell(rows, 5, j), SheetTransport, col, rep),
		}
		q.Transports = append(q.Transports, t)
		rep.Transports++
	}
}

func cell(rows [][]string, i, j int) string {
	if i >= len(rows) || j >= len(rows[i]) {
		return ""
	}
	return strings.TrimSpace(rows[i][j])
}

func lastCol(rows [][]string) int {
	max := 0
	for _, row := range rows {
		if len(row)-1 > max {
			max = len(row) - 1
		}
	}
	return max
}

func columnHasData(rows [][]string, j int) bool {
	for i := range rows {
		if cell(rows, i, j) != "" {
			return true
		}
	}
	return false
}

func colName(j int) string {
	name, _ := excelize.ColumnNumberToName(j + 1)
	return name
}

// parseDec tolera celdas vacías o ilegibles: devuelve cero y deja constancia
// en el reporte en vez de abortar el import.
func parseDec(s, sheet, col string, rep *ImportReport) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		rep.errf(sheet, col, "valor numérico ilegible %q", s)
		return decimal.Zero
	}
	return d
}

func parseInt(s, sheet, col string, rep *ImportReport) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSuffix(s, ".0"))
	if err != nil {
		rep.errf(sheet, col, "valor entero ilegible %q", s)
		return 0
	}
	return n
}

func parseUnit(s, sheet, col string, rep *ImportReport) domain.MassUnit {
	switch strings.ToLower(s) {
	case "", "kg":
		return domain.UnitKilogram
	case "gm", "g":
		return domain.UnitGram
	case "ton":
		return domain.UnitTon
	default:
		rep.errf(sheet, col, "unidad desconocida %q, se asume kg", s)
		return domain.UnitKilogram
	}
}
