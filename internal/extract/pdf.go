package extract

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// columnGap is the horizontal distance (in PDF points) between two text
// fragments that marks a cell boundary rather than a word break.
const columnGap = 15.0

// PDFExtractor reconstructs tabular data from the text layer of a PDF using
// ledongthuc/pdf. Each page yields one RawTable: text fragments are grouped
// into rows by Y coordinate, then split into cells on large X gaps.
type PDFExtractor struct{}

// NewPDFExtractor creates the default PDF-backed table extractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// ExtractTables reads every page of the PDF at path and returns one RawTable
// per page that carries any text. The library panics on some malformed
// inputs, so the call is fenced with a recover.
func (e *PDFExtractor) ExtractTables(ctx context.Context, path string) (tables []RawTable, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf extraction panicked: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("pdf %s has no pages", path)
	}

	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows := pageRows(page)
		if len(rows) == 0 {
			continue
		}
		t := RawTable{Header: rows[0]}
		if len(rows) > 1 {
			t.Rows = rows[1:]
		}
		tables = append(tables, t)
	}

	if len(tables) == 0 {
		return nil, fmt.Errorf("no tabular text found in %s", path)
	}
	return tables, nil
}

func pageRows(page pdf.Page) [][]string {
	return clusterRows(page.Content().Text)
}

// clusterRows groups text fragments into rows by Y coordinate (rounded to the
// nearest point) and splits each row into cells wherever the horizontal gap
// exceeds columnGap.
func clusterRows(text []pdf.Text) [][]string {
	if len(text) == 0 {
		return nil
	}

	type fragment struct {
		x float64
		s string
	}
	byY := make(map[int][]fragment)
	for _, t := range text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		yKey := int(math.Round(t.Y))
		byY[yKey] = append(byY[yKey], fragment{x: t.X, s: t.S})
	}

	// PDF Y grows bottom-to-top, so rows are emitted top-down.
	yKeys := make([]int, 0, len(byY))
	for y := range byY {
		yKeys = append(yKeys, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(yKeys)))

	var rows [][]string
	for _, y := range yKeys {
		frags := byY[y]
		sort.Slice(frags, func(a, b int) bool { return frags[a].x < frags[b].x })

		var cells []string
		var cell strings.Builder
		var prevEnd float64
		for j, fr := range frags {
			if j > 0 && fr.x-prevEnd > columnGap {
				cells = append(cells, strings.TrimSpace(cell.String()))
				cell.Reset()
			}
			cell.WriteString(fr.s)
			prevEnd = fr.x + textWidth(fr.s)
		}
		if cell.Len() > 0 {
			cells = append(cells, strings.TrimSpace(cell.String()))
		}
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	}
	return rows
}

// textWidth approximates the rendered width of a fragment. The library does
// not expose glyph metrics here, so a fixed average advance is close enough
// to tell word breaks from column gaps.
func textWidth(s string) float64 {
	return float64(len(s)) * 5.0
}
