package tramites

import "strings"

// Required semantic columns of the document sheet, in normalized form. Every
// other column present in the sheet rides along as an opaque key/value pair.
const (
	KeyFecha       = "fecha"
	KeyExpediente  = "exp. mesa de partes / sec. gen."
	KeyDependencia = "dependencia / usuario"
	KeyAsunto      = "asunto"
	KeyEnlace      = "enlace documento"
)

// derivadoMark tags the pre-provisioned forwarding columns. Any header
// containing it (case-insensitive) is a derivation slot.
const derivadoMark = "derivado"

// Record is one document row keyed by normalized column name. A record's
// position in the listed sequence maps to its sheet row as index+2 (row 1 is
// the header); sheet order itself lives in the header row, which every write
// re-reads, so the map needs no ordering of its own.
type Record map[string]string

// HasRequired reports whether the four mandatory fields are present and
// non-empty. Required fields are validated by presence, not by schema.
func (r Record) HasRequired() bool {
	for _, key := range []string{KeyFecha, KeyExpediente, KeyDependencia, KeyAsunto} {
		if strings.TrimSpace(r[key]) == "" {
			return false
		}
	}
	return true
}

// Derivations returns the record's derivation slots that currently hold a
// value. A slot with an empty value is allocated but inactive.
func (r Record) Derivations() map[string]string {
	out := make(map[string]string)
	for k, v := range r {
		if isDerivado(k) && strings.TrimSpace(v) != "" {
			out[k] = v
		}
	}
	return out
}

func isDerivado(header string) bool {
	return strings.Contains(strings.ToLower(strings.TrimSpace(header)), derivadoMark)
}
