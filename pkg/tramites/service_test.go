package tramites

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/oauth2"

	"github.com/ElberJesus09/rectorado/pkg/session"
	"github.com/ElberJesus09/rectorado/pkg/sheets"
)

const testSheet = "Hoja1"

var testHeaders = []string{
	"Fecha", "Exp. Mesa de Partes / Sec. Gen.", "Dependencia / Usuario", "Asunto",
	"Derivado a / Fecha", "Derivado a / Fecha", "Enlace Documento",
}

func testSession() *session.Session {
	return session.Acquire(nil, &oauth2.Token{AccessToken: "tok"})
}

func newStore(t *testing.T, dataRows ...[]string) *sheets.Memory {
	t.Helper()
	rows := [][]string{append([]string(nil), testHeaders...)}
	rows = append(rows, dataRows...)
	store := sheets.NewMemory()
	store.AddSheet(testSheet, rows)
	return store
}

func TestListZipsRowsAgainstHeaders(t *testing.T) {
	store := newStore(t,
		[]string{"2024-01-05", "EXP-001", "Decanato", "Solicitud de aula", "Secretaría 05-01", "", "http://x"},
		[]string{"2024-01-06", "EXP-002", "Alumno", "Constancia"}, // ragged row
	)
	svc := NewService(store, testSession(), testSheet)

	records, err := svc.List()
	assert.NoError(t, err)
	assert.Len(t, records, 2)

	assert.Equal(t, "EXP-001", records[0][KeyExpediente])
	assert.Equal(t, "Secretaría 05-01", records[0]["derivado a / fecha"])
	assert.Equal(t, "", records[0]["derivado a / fecha_2"])
	assert.Equal(t, "http://x", records[0][KeyEnlace])

	// Missing trailing cells read as empty strings.
	assert.Equal(t, "", records[1]["derivado a / fecha"])
	assert.Equal(t, "", records[1][KeyEnlace])
	assert.Equal(t, records, svc.Data())
}

func TestListHeaderOnlySheet(t *testing.T) {
	store := newStore(t)
	svc := NewService(store, testSession(), testSheet)

	records, err := svc.List()
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestAppendFollowsLiveHeaderOrder(t *testing.T) {
	store := newStore(t,
		[]string{"2024-01-05", "EXP-001", "Decanato", "Solicitud", "", "", ""},
	)
	svc := NewService(store, testSession(), testSheet)

	index, err := svc.Append(Record{
		KeyFecha:       "2024-01-07",
		KeyExpediente:  "EXP-002",
		KeyDependencia: "Alumno",
		KeyAsunto:      " Constancia de estudios ",
		// Base key fills the first empty suffixed slot too.
		"derivado a / fecha": "Mesa de Partes 07-01",
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, index)

	rows := store.Rows(testSheet)
	assert.Len(t, rows, 3)
	assert.Equal(t,
		[]string{"2024-01-07", "EXP-002", "Alumno", "Constancia de estudios",
			"Mesa de Partes 07-01", "Mesa de Partes 07-01", ""},
		rows[2])
}

func TestAppendNoHeaders(t *testing.T) {
	store := sheets.NewMemory()
	store.AddSheet(testSheet, nil)
	svc := NewService(store, testSession(), testSheet)

	_, err := svc.Append(Record{KeyFecha: "2024-01-07"})
	assert.True(t, errors.Is(err, sheets.ErrNoHeaders))
	// No append was issued.
	assert.Empty(t, store.Rows(testSheet))
}

func TestEditCell(t *testing.T) {
	store := newStore(t,
		[]string{"2024-01-05", "EXP-001", "Decanato", "Solicitud", "", "", ""},
	)
	svc := NewService(store, testSession(), testSheet)

	assert.NoError(t, svc.EditCell(0, KeyAsunto, "Solicitud ampliada"))
	assert.Equal(t, "Solicitud ampliada", store.Rows(testSheet)[1][3])
}

func TestEditCellUnknownColumn(t *testing.T) {
	before := []string{"2024-01-05", "EXP-001", "Decanato", "Solicitud", "", "", ""}
	store := newStore(t, append([]string(nil), before...))
	svc := NewService(store, testSession(), testSheet)

	err := svc.EditCell(0, "no existe", "x")
	assert.True(t, errors.Is(err, sheets.ErrColumnNotFound))
	assert.Equal(t, before, store.Rows(testSheet)[1])
}

func TestAddDerivationFillsFirstEmptySlot(t *testing.T) {
	store := newStore(t,
		[]string{"2024-01-05", "EXP-001", "Decanato", "Solicitud", "Secretaría 05-01", "", ""},
	)
	svc := NewService(store, testSession(), testSheet)

	assert.NoError(t, svc.AddDerivation(0, "Asesoría 06-01"))

	row := store.Rows(testSheet)[1]
	assert.Equal(t, "Secretaría 05-01", row[4])
	assert.Equal(t, "Asesoría 06-01", row[5])
}

func TestAddDerivationOverwritesLastWhenFull(t *testing.T) {
	store := newStore(t,
		[]string{"2024-01-05", "EXP-001", "Decanato", "Solicitud", "Secretaría 05-01", "Asesoría 06-01", ""},
	)
	svc := NewService(store, testSession(), testSheet)

	assert.NoError(t, svc.AddDerivation(0, "Rectorado 08-01"))

	row := store.Rows(testSheet)[1]
	assert.Equal(t, "Secretaría 05-01", row[4])
	assert.Equal(t, "Rectorado 08-01", row[5])
}

func TestAddDerivationNoMatchingColumn(t *testing.T) {
	store := sheets.NewMemory()
	store.AddSheet(testSheet, [][]string{
		{"Fecha", "Asunto"},
		{"2024-01-05", "Solicitud"},
	})
	svc := NewService(store, testSession(), testSheet)

	err := svc.AddDerivation(0, "Rectorado 08-01")
	assert.True(t, errors.Is(err, ErrNoDerivationColumn))
	assert.Equal(t, []string{"2024-01-05", "Solicitud"}, store.Rows(testSheet)[1])
}

func TestEditAndDeleteDerivation(t *testing.T) {
	store := newStore(t,
		[]string{"2024-01-05", "EXP-001", "Decanato", "Solicitud", "Secretaría 05-01", "Asesoría 06-01", ""},
	)
	svc := NewService(store, testSession(), testSheet)

	assert.NoError(t, svc.EditDerivation(0, "derivado a / fecha_2", "Asesoría 07-01"))
	assert.Equal(t, "Asesoría 07-01", store.Rows(testSheet)[1][5])

	assert.NoError(t, svc.DeleteDerivation(0, "derivado a / fecha_2"))
	assert.Equal(t, "", store.Rows(testSheet)[1][5])

	err := svc.EditDerivation(0, "derivado inexistente", "x")
	assert.True(t, errors.Is(err, sheets.ErrColumnNotFound))
}

func TestOperationsRequireSession(t *testing.T) {
	store := newStore(t,
		[]string{"2024-01-05", "EXP-001", "Decanato", "Solicitud", "", "", ""},
	)
	sess := testSession()
	sess.Revoke()
	svc := NewService(store, sess, testSheet)

	_, err := svc.List()
	assert.True(t, errors.Is(err, session.ErrNotAuthenticated))
	_, err = svc.Append(Record{})
	assert.True(t, errors.Is(err, session.ErrNotAuthenticated))
	assert.True(t, errors.Is(svc.EditCell(0, KeyAsunto, "x"), session.ErrNotAuthenticated))
	assert.True(t, errors.Is(svc.AddDerivation(0, "x"), session.ErrNotAuthenticated))
	assert.True(t, errors.Is(svc.EditDerivation(0, "derivado a / fecha", "x"), session.ErrNotAuthenticated))
	assert.Len(t, store.Rows(testSheet), 2)
}

func TestRecordHasRequired(t *testing.T) {
	rec := Record{
		KeyFecha:       "2024-01-05",
		KeyExpediente:  "EXP-001",
		KeyDependencia: "Decanato",
		KeyAsunto:      "Solicitud",
	}
	assert.True(t, rec.HasRequired())

	rec[KeyAsunto] = "  "
	assert.False(t, rec.HasRequired())
}

func TestRecordDerivations(t *testing.T) {
	rec := Record{
		KeyFecha:               "2024-01-05",
		"derivado a / fecha":   "Secretaría 05-01",
		"derivado a / fecha_2": "",
	}
	assert.Equal(t, map[string]string{"derivado a / fecha": "Secretaría 05-01"}, rec.Derivations())
}
