package sheets

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"
)

// Memory is an in-memory Store. It backs the adapter tests, which exercise
// the same header/range conventions as the real spreadsheet: row 1 holds
// headers, rows may be ragged, deletions shift later rows up.
type Memory struct {
	mu   sync.Mutex
	tabs []*memSheet
}

type memSheet struct {
	title string
	id    int64
	rows  [][]string
}

func NewMemory() *Memory {
	return &Memory{}
}

// AddSheet registers a tab with its initial cell matrix and returns the tab's
// internal id.
func (m *Memory) AddSheet(title string, rows [][]string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := int64(len(m.tabs))
	copied := make([][]string, len(rows))
	for i, row := range rows {
		copied[i] = append([]string(nil), row...)
	}
	m.tabs = append(m.tabs, &memSheet{title: title, id: id, rows: copied})
	return id
}

// Rows exposes a tab's current contents for test assertions.
func (m *Memory) Rows(title string) [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	tab := m.find(title)
	if tab == nil {
		return nil
	}
	out := make([][]string, len(tab.rows))
	for i, row := range tab.rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}

func (m *Memory) GetRange(sheetName, a1Range string) ([][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tab := m.find(sheetName)
	if tab == nil {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheetName)
	}
	startCol, startRow, endCol, endRow, err := parseRange(a1Range)
	if err != nil {
		return nil, err
	}
	if startRow == 0 {
		startRow = 1
	}
	if endRow == 0 || endRow > len(tab.rows) {
		endRow = len(tab.rows)
	}
	var out [][]string
	for r := startRow; r <= endRow; r++ {
		row := tab.rows[r-1]
		from := startCol - 1
		to := endCol
		if from > len(row) {
			from = len(row)
		}
		if to > len(row) {
			to = len(row)
		}
		out = append(out, append([]string(nil), row[from:to]...))
	}
	return out, nil
}

func (m *Memory) AppendRow(sheetName, a1Range string, row []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tab := m.find(sheetName)
	if tab == nil {
		return fmt.Errorf("%w: %q", ErrSheetNotFound, sheetName)
	}
	tab.rows = append(tab.rows, append([]string(nil), row...))
	return nil
}

func (m *Memory) UpdateRange(sheetName, a1Range string, values [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tab := m.find(sheetName)
	if tab == nil {
		return fmt.Errorf("%w: %q", ErrSheetNotFound, sheetName)
	}
	startCol, startRow, _, _, err := parseRange(a1Range)
	if err != nil {
		return err
	}
	if startRow == 0 {
		startRow = 1
	}
	for i, cells := range values {
		r := startRow + i - 1
		for len(tab.rows) <= r {
			tab.rows = append(tab.rows, nil)
		}
		row := tab.rows[r]
		for j, v := range cells {
			c := startCol + j - 1
			for len(row) <= c {
				row = append(row, "")
			}
			row[c] = v
		}
		tab.rows[r] = row
	}
	return nil
}

func (m *Memory) DeleteRows(sheetID int64, startIndex, endIndex int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, tab := range m.tabs {
		if tab.id != sheetID {
			continue
		}
		if startIndex < 0 || endIndex > int64(len(tab.rows)) || startIndex >= endIndex {
			return fmt.Errorf("row range [%d, %d) out of bounds", startIndex, endIndex)
		}
		tab.rows = append(tab.rows[:startIndex], tab.rows[endIndex:]...)
		return nil
	}
	return fmt.Errorf("%w: id %d", ErrSheetNotFound, sheetID)
}

func (m *Memory) SheetMetadata() ([]SheetInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tabs := make([]SheetInfo, 0, len(m.tabs))
	for _, tab := range m.tabs {
		tabs = append(tabs, SheetInfo{Title: tab.title, SheetID: tab.id})
	}
	return tabs, nil
}

func (m *Memory) find(title string) *memSheet {
	for _, tab := range m.tabs {
		if tab.title == title {
			return tab
		}
	}
	return nil
}

// parseRange decodes "A:Z", "A1:Z1", "C5" or "A5:Z5" into 1-based column and
// row bounds. A zero row bound means the range is unbounded on that side.
func parseRange(a1 string) (startCol, startRow, endCol, endRow int, err error) {
	parts := strings.SplitN(a1, ":", 2)
	startCol, startRow, err = parseCellRef(parts[0])
	if err != nil {
		return 0, 0, 0, 0, err
	}
	if len(parts) == 1 {
		return startCol, startRow, startCol, startRow, nil
	}
	endCol, endRow, err = parseCellRef(parts[1])
	if err != nil {
		return 0, 0, 0, 0, err
	}
	return startCol, startRow, endCol, endRow, nil
}

func parseCellRef(ref string) (col, row int, err error) {
	if strings.IndexFunc(ref, func(r rune) bool { return r >= '0' && r <= '9' }) == -1 {
		col, err = excelize.ColumnNameToNumber(ref)
		return col, 0, err
	}
	return excelize.CellNameToCoordinates(ref)
}
