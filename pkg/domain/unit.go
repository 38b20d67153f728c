package domain

// UnitKind classifies a top-level construct of a parsed file.
type UnitKind int

const (
	// UnitOther is any top-level statement or declaration that is not module linkage.
	UnitOther UnitKind = iota
	// UnitImport is a module-linkage declaration (import statement).
	UnitImport
)

// String implements fmt.Stringer.
func (k UnitKind) String() string {
	switch k {
	case UnitImport:
		return "import"
	default:
		return "other"
	}
}

// SyntaxUnit is one top-level construct with its byte span in the original source.
type SyntaxUnit struct {
	Kind  UnitKind
	Start uint32
	End   uint32
}

// Text returns the original source bytes covered by the unit.
// Returns empty string if the span exceeds the source.
func (u SyntaxUnit) Text(source []byte) string {
	if u.Start > u.End || int(u.End) > len(source) {
		return ""
	}
	return string(source[u.Start:u.End])
}
