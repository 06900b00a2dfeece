package tramites

import "errors"

// ErrNoDerivationColumn means the sheet has no column matching "derivado" at
// all, so there is nowhere to record a forwarding action.
var ErrNoDerivationColumn = errors.New("no derivation column in sheet")
