package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Las planillas usan layout vertical: los encabezados bajan por la columna A
// y cada registro ocupa una columna a partir de la B.
const (
	SheetDefinition = "Quote Definition"
	SheetRawMat     = "Raw Materials"
	SheetMoulding   = "Moulding Machines"
	SheetAssembly   = "Assemblies"
	SheetPackaging  = "Packaging"
	SheetTransport  = "Transport"
	SheetSummary    = "Cost Summary"
)

var definitionHeaders = []string{
	"Quote Name*",
	"Client Name*",
	"SAP Number",
	"Part Number*",
	"Part Name*",
	"Amendment Number",
	"Description",
	"Quantity*",
	"Handling Charge",
	"Profit %",
	"Notes",
}

var rawMaterialHeaders = []string{
	"Material Name*",
	"Grade",
	"RM Code*",
	"Unit (kg/gm/ton)*",
	"RM Rate (per kg)*",
	"Frozen Rate (per kg)",
	"Part Weight*",
	"Runner Weight*",
	"Process Losses",
	"Purging Loss Cost",
	"ICC %",
	"Rejection %",
	"Overhead %",
	"Maintenance %",
	"Profit %",
}

var mouldingHeaders = []string{
	"Cavity*",
	"Machine Tonnage*",
	"Cycle Time (s)*",
	"Efficiency %*",
	"Shift Rate*",
	"Shift Rate for MTC*",
	"MTC Count*",
	"Rejection %",
	"Overhead %",
	"Maintenance %",
	"Profit %",
}

var assemblyHeaders = []string{
	"Assembly Name*",
	"Remarks",
	"Manual Cost",
	"Other Cost",
	"Inspection & Handling Cost",
	"Profit %",
	"Rejection %",
}

var packagingHeaders = []string{
	"Packaging Category*",
	"Length (mm)",
	"Breadth (mm)",
	"Height (mm)",
	"Polybag Length (mm)",
	"Polybag Width (mm)",
	"Lifecycle*",
	"Cost*",
	"Maintenance %",
	"Parts per Polybag*",
}

var transportHeaders = []string{
	"Packaging Column (B, C, ...)*",
	"Transport Length (ft)*",
	"Transport Breadth (ft)*",
	"Transport Height (ft)*",
	"Trip Cost*",
	"Parts per Box*",
}

var templateSheets = []struct {
	name    string
	headers []string
}{
	{SheetDefinition, definitionHeaders},
	{SheetRawMat, rawMaterialHeaders},
	{SheetMoulding, mouldingHeaders},
	{SheetAssembly, assemblyHeaders},
	{SheetPackaging, packagingHeaders},
	{SheetTransport, transportHeaders},
}

// BuildTemplate genera el libro vacío para carga masiva de una cotización.
func BuildTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1F4E78"}, Pattern: 1},
		Alignment: &excelize.Alignment{Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("estilo de encabezado: %w", err)
	}

	for i, sh := range templateSheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sh.name); err != nil {
				return nil, err
			}
		} else {
			if _, err := f.NewSheet(sh.name); err != nil {
				return nil, err
			}
		}
		if err := writeHeaderColumn(f, sh.name, sh.headers, headerStyle); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("escribir plantilla: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeaderColumn(f *excelize.File, sheet string, headers []string, style int) error {
	width := 12.0
	for i, h := range headers {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
		if w := float64(len(h)) * 1.2; w > width {
			width = w
		}
	}
	if err := f.SetColWidth(sheet, "A", "A", width); err != nil {
		return err
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		TopLeftCell: "B1",
		ActivePane:  "topRight",
	})
}
