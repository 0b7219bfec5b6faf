package entity

import "strings"

// Unit unidad de medida de inventario.
type Unit string

// Unidades soportadas, agrupadas por familia (masa, volumen, conteo).
const (
	UnitKilogram   Unit = "KG"
	UnitGram       Unit = "G"
	UnitLiter      Unit = "L"
	UnitMilliliter Unit = "ML"
	UnitPiece      Unit = "UNIT"
)

// UnitFamily familia dimensional de una unidad.
type UnitFamily string

const (
	FamilyMass   UnitFamily = "mass"
	FamilyVolume UnitFamily = "volume"
	FamilyCount  UnitFamily = "count"
)

// Family devuelve la familia de la unidad; false si la unidad no es conocida.
func (u Unit) Family() (UnitFamily, bool) {
	switch u {
	case UnitKilogram, UnitGram:
		return FamilyMass, true
	case UnitLiter, UnitMilliliter:
		return FamilyVolume, true
	case UnitPiece:
		return FamilyCount, true
	}
	return "", false
}

// ParseUnit normaliza códigos como "kg", "Kg", "ml", "unidad".
func ParseUnit(s string) (Unit, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "KG", "KILO", "KILOGRAMO":
		return UnitKilogram, true
	case "G", "GR", "GRAMO":
		return UnitGram, true
	case "L", "LT", "LITRO":
		return UnitLiter, true
	case "ML", "MILILITRO":
		return UnitMilliliter, true
	case "UNIT", "UND", "UNIDAD":
		return UnitPiece, true
	}
	return "", false
}
