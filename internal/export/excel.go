package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet names
const (
	SheetSummary     = "Summary"
	SheetRanked      = "Ranked Candidates"
	SheetInsights    = "Insights"
	SheetProgression = "Progression"
	SheetStages      = "Stages"
)

const timestampLayout = "2006-01-02 15:04:05"

// EnsureXLSX appends the .xlsx extension when missing and cleans the path.
func EnsureXLSX(path string) string {
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		path += ".xlsx"
	}
	return filepath.Clean(path)
}

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

// styles holds the style ids shared by every sheet of a workbook
type styles struct {
	title  int
	header int
	label  int
	wrap   int
	bands  map[band]int
}

type band int

const (
	bandStrong band = iota
	bandGood
	bandFair
	bandPoor
)

var bandColors = map[band]string{
	bandStrong: "C6EFCE",
	bandGood:   "FFEB9C",
	bandFair:   "FFC7CE",
	bandPoor:   "FF9999",
}

func newStyles(f *excelize.File) (*styles, error) {
	s := &styles{bands: make(map[band]int, len(bandColors))}
	var err error

	s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	})
	if err != nil {
		return nil, err
	}

	s.label, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	s.wrap, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
		Border:    thinBorder,
	})
	if err != nil {
		return nil, err
	}

	for b, color := range bandColors {
		id, err := f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
			Border:    thinBorder,
		})
		if err != nil {
			return nil, err
		}
		s.bands[b] = id
	}
	return s, nil
}

// sheet writes rows top to bottom on one worksheet
type sheet struct {
	f     *excelize.File
	name  string
	style *styles
	row   int
	err   error
}

func newSheet(f *excelize.File, name string, st *styles, widths ...float64) *sheet {
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(name, col, col, w)
	}
	return &sheet{f: f, name: name, style: st, row: 1}
}

func (s *sheet) cell(col int) string {
	name, _ := excelize.CoordinatesToCellName(col, s.row)
	return name
}

func (s *sheet) set(col int, value any) {
	if s.err != nil {
		return
	}
	s.err = s.f.SetCellValue(s.name, s.cell(col), value)
}

func (s *sheet) styleRange(from, to, style int) {
	if s.err != nil {
		return
	}
	s.err = s.f.SetCellStyle(s.name, s.cell(from), s.cell(to), style)
}

// title writes a merged banner across two columns
func (s *sheet) title(text string) {
	s.set(1, text)
	s.styleRange(1, 2, s.style.title)
	if s.err == nil {
		s.err = s.f.MergeCell(s.name, s.cell(1), s.cell(2))
	}
	s.row++
}

// field writes a bold label and its value
func (s *sheet) field(label string, value any) {
	s.set(1, label)
	s.styleRange(1, 1, s.style.label)
	s.set(2, value)
	s.row++
}

// list writes a label followed by one item per row
func (s *sheet) list(label string, items []string) {
	s.set(1, label)
	s.styleRange(1, 1, s.style.label)
	if len(items) == 0 {
		s.set(2, "None")
		s.row++
		return
	}
	for _, item := range items {
		s.set(2, item)
		s.row++
	}
}

func (s *sheet) headers(names ...string) {
	for i, h := range names {
		s.set(i+1, h)
	}
	s.styleRange(1, len(names), s.style.header)
	s.row++
}

// values writes one data row and paints it with style
func (s *sheet) values(style int, vals ...any) {
	for i, v := range vals {
		s.set(i+1, v)
	}
	s.styleRange(1, len(vals), style)
	s.row++
}

func (s *sheet) skip() {
	s.row++
}

// freezeHeader keeps the first row visible
func (s *sheet) freezeHeader() {
	if s.err != nil {
		return
	}
	s.err = s.f.SetPanes(s.name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func (s *sheet) autoFilter(cols int) {
	if s.err != nil || s.row <= 2 {
		return
	}
	last, _ := excelize.CoordinatesToCellName(cols, s.row-1)
	s.err = s.f.AutoFilter(s.name, "A1:"+last, []excelize.AutoFilterOptions{})
}

// newWorkbook creates a file whose first sheet is named first and adds the rest
func newWorkbook(first string, rest ...string) (*excelize.File, *styles, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", first); err != nil {
		f.Close()
		return nil, nil, err
	}
	for _, name := range rest {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, nil, err
		}
	}
	st, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return f, st, nil
}

func save(f *excelize.File, path string) (string, error) {
	path = EnsureXLSX(path)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save Excel file: %w", err)
	}
	return path, nil
}

func write(f *excelize.File, w io.Writer) error {
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}
