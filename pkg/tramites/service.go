package tramites

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/ElberJesus09/rectorado/pkg/session"
	"github.com/ElberJesus09/rectorado/pkg/sheets"
)

const (
	listRange   = "A:Z"
	headerRange = "A1:Z1"
)

var suffixRE = regexp.MustCompile(`_[0-9]+$`)

// Service reads and writes document records on one tab of the spreadsheet.
//
// The sheet is mutable by other agents, so every mutating operation
// re-fetches the header row right before computing a column position instead
// of trusting a cached layout, and re-lists on success so the snapshot stays
// consistent with the store. Multi-cell edits are separate writes with no
// rollback; a failure midway leaves the earlier writes committed.
type Service struct {
	store     sheets.Store
	session   *session.Session
	sheetName string

	mu   sync.Mutex
	data []Record
}

func NewService(store sheets.Store, sess *session.Session, sheetName string) *Service {
	return &Service{store: store, session: sess, sheetName: sheetName}
}

// List fetches the full used range and zips each data row against the
// normalized headers. Missing trailing cells read as empty strings.
func (s *Service) List() ([]Record, error) {
	if err := s.session.Check(); err != nil {
		return nil, err
	}
	values, err := s.store.GetRange(s.sheetName, listRange)
	if err != nil {
		return nil, err
	}

	var records []Record
	if len(values) > 1 {
		headers := sheets.NormalizeHeaders(values[0])
		records = make([]Record, 0, len(values)-1)
		for _, row := range values[1:] {
			rec := make(Record, len(headers))
			for i, h := range headers {
				if i < len(row) {
					rec[h] = strings.TrimSpace(row[i])
				} else {
					rec[h] = ""
				}
			}
			records = append(records, rec)
		}
	}

	s.mu.Lock()
	s.data = records
	s.mu.Unlock()
	return records, nil
}

// Data returns the snapshot taken by the last List.
func (s *Service) Data() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

// Append writes rec as the sheet's new last row, laying values out in the
// live header order: each header takes the record's value under the
// normalized key, falling back to the un-suffixed base key, then to "".
// It returns the new record's 0-based index.
func (s *Service) Append(rec Record) (int, error) {
	if err := s.session.Check(); err != nil {
		return 0, err
	}

	current, err := s.store.GetRange(s.sheetName, listRange)
	if err != nil {
		return 0, err
	}
	index := 0
	if len(current) > 0 {
		index = len(current) - 1
	}

	rawHeaders, err := s.headerRow()
	if err != nil {
		return 0, err
	}
	if len(rawHeaders) == 0 {
		// Never invent a schema: the operator has to provision headers.
		return 0, sheets.ErrNoHeaders
	}

	headers := sheets.NormalizeHeaders(rawHeaders)
	row := make([]string, len(headers))
	for i, h := range headers {
		val, ok := rec[h]
		if !ok {
			val = rec[baseKey(h)]
		}
		row[i] = strings.TrimSpace(val)
	}

	if err := s.store.AppendRow(s.sheetName, listRange, row); err != nil {
		return 0, err
	}
	if _, err := s.List(); err != nil {
		return 0, err
	}
	return index, nil
}

// EditCell writes one cell of the record at index, locating the column by
// normalized key against the live header row.
func (s *Service) EditCell(index int, key, value string) error {
	if err := s.session.Check(); err != nil {
		return err
	}
	if err := s.writeCell(index+2, key, value); err != nil {
		return err
	}
	_, err := s.List()
	return err
}

// AddDerivation records a forwarding action in the record's first empty
// derivation slot. When every slot is full the last one is overwritten: the
// original system chose availability over strictness here, so losing the
// oldest overflow entry is a warning, not an error.
func (s *Service) AddDerivation(index int, value string) error {
	if err := s.session.Check(); err != nil {
		return err
	}
	sheetRowNumber := index + 2

	rawHeaders, err := s.headerRow()
	if err != nil {
		return err
	}
	rowValues, err := s.store.GetRange(s.sheetName,
		fmt.Sprintf("A%d:Z%d", sheetRowNumber, sheetRowNumber))
	if err != nil {
		return err
	}
	var row []string
	if len(rowValues) > 0 {
		row = rowValues[0]
	}

	target := -1
	for i, h := range rawHeaders {
		if !isDerivado(h) {
			continue
		}
		cell := ""
		if i < len(row) {
			cell = strings.TrimSpace(row[i])
		}
		if cell == "" {
			target = i
			break
		}
	}
	if target == -1 {
		for i := len(rawHeaders) - 1; i >= 0; i-- {
			if isDerivado(rawHeaders[i]) {
				target = i
				break
			}
		}
		if target == -1 {
			return ErrNoDerivationColumn
		}
		log.Warnf("all derivation slots of row %d are full, overwriting the last one", sheetRowNumber)
	}

	a1 := fmt.Sprintf("%s%d", sheets.ColIndexToLetter(target), sheetRowNumber)
	if err := s.store.UpdateRange(s.sheetName, a1, [][]string{{value}}); err != nil {
		return err
	}
	_, err = s.List()
	return err
}

// EditDerivation rewrites the derivation slot named by key (exact normalized
// match, unlike the substring scan of AddDerivation).
func (s *Service) EditDerivation(index int, key, value string) error {
	if err := s.session.Check(); err != nil {
		return err
	}
	if err := s.writeCell(index+2, key, value); err != nil {
		return err
	}
	_, err := s.List()
	return err
}

// DeleteDerivation clears the derivation slot named by key. The column stays
// provisioned; an empty slot is simply inactive.
func (s *Service) DeleteDerivation(index int, key string) error {
	return s.EditDerivation(index, key, "")
}

func (s *Service) writeCell(sheetRowNumber int, key, value string) error {
	rawHeaders, err := s.headerRow()
	if err != nil {
		return err
	}
	col, err := sheets.LocateColumn(sheets.NormalizeHeaders(rawHeaders), key)
	if err != nil {
		return err
	}
	a1 := fmt.Sprintf("%s%d", sheets.ColIndexToLetter(col), sheetRowNumber)
	return s.store.UpdateRange(s.sheetName, a1, [][]string{{value}})
}

func (s *Service) headerRow() ([]string, error) {
	values, err := s.store.GetRange(s.sheetName, headerRange)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values[0], nil
}

// baseKey strips the collision suffix a duplicate header was given, so a
// record keyed "derivado a / fecha" can still fill "derivado a / fecha_2".
func baseKey(h string) string {
	return suffixRE.ReplaceAllString(h, "")
}
