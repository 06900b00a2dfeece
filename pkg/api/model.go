package api

import (
	"io"

	"github.com/ElberJesus09/rectorado/pkg/adjuntos"
	"github.com/ElberJesus09/rectorado/pkg/calendario"
	"github.com/ElberJesus09/rectorado/pkg/tramites"
)

type DocumentService interface {
	List() ([]tramites.Record, error)
	Append(rec tramites.Record) (int, error)
	EditCell(index int, key, value string) error
	AddDerivation(index int, value string) error
	EditDerivation(index int, key, value string) error
	DeleteDerivation(index int, key string) error
}

type CalendarService interface {
	List() ([]calendario.Event, error)
	Expanded() []calendario.Event
	Append(ev calendario.Event) error
	EditCell(sheetRowNumber int, key, value string) error
	Delete(sheetRowNumber int) error
}

type FileUploader interface {
	Attach(docs adjuntos.CellWriter, index int, name, mimeType string, content io.Reader) (adjuntos.Result, error)
}

type cellRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type derivationRequest struct {
	Value string `json:"value"`
}

type appendResponse struct {
	Index int `json:"index"`
}

type errorResponse struct {
	Error string `json:"error"`
}
