package calendario

// Column keys of the calendar tab in their normalized (trimmed, lower-cased)
// form. Field lookups always use these; the raw spellings in Headers are only
// written to the sheet.
const (
	KeyFechaInicio   = "fecha inicio"
	KeyFechaFin      = "fecha fin"
	KeyHoraInicio    = "hora inicio"
	KeyHoraFin       = "hora fin"
	KeyNombre        = "nombre"
	KeyDescripcion   = "descripcion"
	KeyLugar         = "lugar"
	KeyEstado        = "estado"
	KeyDiasRepetidos = "dias repetidos"
)

// Headers is the fixed nine-column layout of the calendar tab, in sheet
// order. Appends always write this exact order.
var Headers = []string{
	"Fecha Inicio", "Fecha Fin", "Hora inicio", "Hora fin",
	"Nombre", "Descripcion", "Lugar", "Estado", "Dias repetidos",
}

// Event is one calendar row. SheetRowNumber is the 1-based sheet row the
// event was read from; a Delete shifts the rows below it, so row numbers must
// not be cached across one.
type Event struct {
	Fields         map[string]string `json:"fields"`
	SheetRowNumber int               `json:"sheetRowNumber"`
}

// Get returns a field by its normalized key.
func (e Event) Get(key string) string {
	return e.Fields[key]
}

// onDate copies the event pinned to a single concrete date.
func (e Event) onDate(date string) Event {
	fields := make(map[string]string, len(e.Fields))
	for k, v := range e.Fields {
		fields[k] = v
	}
	fields[KeyFechaInicio] = date
	fields[KeyFechaFin] = date
	return Event{Fields: fields, SheetRowNumber: e.SheetRowNumber}
}
