package api

import (
	"io"

	"github.com/ElberJesus09/rectorado/pkg/adjuntos"
	"github.com/ElberJesus09/rectorado/pkg/calendario"
	"github.com/ElberJesus09/rectorado/pkg/tramites"
)

type mockDocuments struct {
	ListFunc             func() ([]tramites.Record, error)
	AppendFunc           func(rec tramites.Record) (int, error)
	EditCellFunc         func(index int, key, value string) error
	AddDerivationFunc    func(index int, value string) error
	EditDerivationFunc   func(index int, key, value string) error
	DeleteDerivationFunc func(index int, key string) error
}

func (m *mockDocuments) List() ([]tramites.Record, error) {
	return m.ListFunc()
}
func (m *mockDocuments) Append(rec tramites.Record) (int, error) {
	return m.AppendFunc(rec)
}
func (m *mockDocuments) EditCell(index int, key, value string) error {
	return m.EditCellFunc(index, key, value)
}
func (m *mockDocuments) AddDerivation(index int, value string) error {
	return m.AddDerivationFunc(index, value)
}
func (m *mockDocuments) EditDerivation(index int, key, value string) error {
	return m.EditDerivationFunc(index, key, value)
}
func (m *mockDocuments) DeleteDerivation(index int, key string) error {
	return m.DeleteDerivationFunc(index, key)
}

type mockCalendar struct {
	ListFunc     func() ([]calendario.Event, error)
	ExpandedFunc func() []calendario.Event
	AppendFunc   func(ev calendario.Event) error
	EditCellFunc func(sheetRowNumber int, key, value string) error
	DeleteFunc   func(sheetRowNumber int) error
}

func (m *mockCalendar) List() ([]calendario.Event, error) {
	return m.ListFunc()
}
func (m *mockCalendar) Expanded() []calendario.Event {
	return m.ExpandedFunc()
}
func (m *mockCalendar) Append(ev calendario.Event) error {
	return m.AppendFunc(ev)
}
func (m *mockCalendar) EditCell(sheetRowNumber int, key, value string) error {
	return m.EditCellFunc(sheetRowNumber, key, value)
}
func (m *mockCalendar) Delete(sheetRowNumber int) error {
	return m.DeleteFunc(sheetRowNumber)
}

type mockUploader struct {
	AttachFunc func(docs adjuntos.CellWriter, index int, name, mimeType string, content io.Reader) (adjuntos.Result, error)
}

func (m *mockUploader) Attach(docs adjuntos.CellWriter, index int, name, mimeType string, content io.Reader) (adjuntos.Result, error) {
	return m.AttachFunc(docs, index, name, mimeType, content)
}
