package calendario

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ElberJesus09/rectorado/pkg/session"
	"github.com/ElberJesus09/rectorado/pkg/sheets"
)

// listRange covers the nine fixed columns of the calendar tab.
const listRange = "A:I"

// Service reads and writes calendar events on one tab of the spreadsheet.
// Every mutation re-lists on success so the cached snapshot and the expanded
// view stay consistent with the store.
type Service struct {
	store     sheets.Store
	session   *session.Session
	sheetName string

	mu       sync.Mutex
	events   []Event
	expanded []Event
}

func NewService(store sheets.Store, sess *session.Session, sheetName string) *Service {
	return &Service{store: store, session: sess, sheetName: sheetName}
}

// List fetches every event row, keyed by normalized header and tagged with
// its sheet row number, and recomputes the expanded single-date view.
func (s *Service) List() ([]Event, error) {
	if err := s.session.Check(); err != nil {
		return nil, err
	}
	values, err := s.store.GetRange(s.sheetName, listRange)
	if err != nil {
		return nil, err
	}

	var events []Event
	if len(values) > 1 {
		headers := sheets.NormalizeHeaders(values[0])
		events = make([]Event, 0, len(values)-1)
		for i, row := range values[1:] {
			fields := make(map[string]string, len(headers))
			for j, h := range headers {
				if j < len(row) {
					fields[h] = strings.TrimSpace(row[j])
				} else {
					fields[h] = ""
				}
			}
			events = append(events, Event{Fields: fields, SheetRowNumber: i + 2})
		}
	}

	expanded := make([]Event, 0, len(events))
	for _, ev := range events {
		expanded = append(expanded, Expand(ev)...)
	}

	s.mu.Lock()
	s.events, s.expanded = events, expanded
	s.mu.Unlock()
	return events, nil
}

// Events returns the snapshot taken by the last List.
func (s *Service) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events
}

// Expanded returns the single-date view computed by the last List.
func (s *Service) Expanded() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expanded
}

// Append adds ev as a new last row, laying its fields out in the fixed
// nine-column order. The schema is fixed, so no header re-fetch is needed.
func (s *Service) Append(ev Event) error {
	if err := s.session.Check(); err != nil {
		return err
	}
	keys := sheets.NormalizeHeaders(Headers)
	row := make([]string, len(keys))
	for i, key := range keys {
		row[i] = strings.TrimSpace(ev.Fields[key])
	}
	if err := s.store.AppendRow(s.sheetName, listRange, row); err != nil {
		return err
	}
	_, err := s.List()
	return err
}

// EditCell writes one cell of the event at the given absolute sheet row.
func (s *Service) EditCell(sheetRowNumber int, key, value string) error {
	if err := s.session.Check(); err != nil {
		return err
	}
	col, err := sheets.LocateColumn(sheets.NormalizeHeaders(Headers), key)
	if err != nil {
		return err
	}
	a1 := fmt.Sprintf("%s%d", sheets.ColIndexToLetter(col), sheetRowNumber)
	if err := s.store.UpdateRange(s.sheetName, a1, [][]string{{value}}); err != nil {
		return err
	}
	_, err = s.List()
	return err
}

// Delete structurally removes the event's row. Rows below it shift up by
// one, which is why callers get a fresh listing instead of reusing old sheet
// row numbers.
func (s *Service) Delete(sheetRowNumber int) error {
	if err := s.session.Check(); err != nil {
		return err
	}
	tabs, err := s.store.SheetMetadata()
	if err != nil {
		return err
	}
	var sheetID int64
	found := false
	for _, tab := range tabs {
		if tab.Title == s.sheetName {
			sheetID = tab.SheetID
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %q", sheets.ErrSheetNotFound, s.sheetName)
	}
	if err := s.store.DeleteRows(sheetID, int64(sheetRowNumber-1), int64(sheetRowNumber)); err != nil {
		return err
	}
	_, err = s.List()
	return err
}
