package sheets

// Store is the backing-store capability the record adapters are written
// against. Implementations address cells by sheet-tab name plus an A1-style
// range; row numbers are 1-based and row 1 is always the header row.
type Store interface {
	// GetRange returns the used values inside a1Range as a row-major matrix.
	// Trailing empty cells may be omitted from each row.
	GetRange(sheetName, a1Range string) ([][]string, error)

	// AppendRow appends row after the last used row of the range's table.
	AppendRow(sheetName, a1Range string, row []string) error

	// UpdateRange overwrites the cells of a1Range with values.
	UpdateRange(sheetName, a1Range string, values [][]string) error

	// DeleteRows structurally removes the 0-based row range
	// [startIndex, endIndex) from the tab identified by sheetID.
	// Rows below the range shift up.
	DeleteRows(sheetID int64, startIndex, endIndex int64) error

	// SheetMetadata lists the spreadsheet's tabs with their internal ids.
	SheetMetadata() ([]SheetInfo, error)
}

// SheetInfo identifies one tab of the spreadsheet.
type SheetInfo struct {
	Title   string
	SheetID int64
}
