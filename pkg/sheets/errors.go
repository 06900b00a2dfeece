package sheets

import "errors"

// ErrNoHeaders means row 1 of the sheet is empty. Appending would require
// inventing a schema, so the operation is refused instead.
var ErrNoHeaders = errors.New("sheet has no header row")

// ErrColumnNotFound means no normalized header matched the requested key.
var ErrColumnNotFound = errors.New("column not found")

// ErrSheetNotFound means the named tab does not exist in the spreadsheet.
var ErrSheetNotFound = errors.New("sheet not found")
