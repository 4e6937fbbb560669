package inventory

// Unit represents a unit of measure for an inventory item
type Unit string

const (
	UnitPiece      Unit = "Piece"
	UnitKilogram   Unit = "Kilogram"
	UnitGram       Unit = "Gram"
	UnitLitre      Unit = "Litre"
	UnitMillilitre Unit = "Millilitre"
	UnitMetre      Unit = "Metre"
	UnitBox        Unit = "Box"
	UnitDozen      Unit = "Dozen"
	UnitBag        Unit = "Bag"
	UnitPacket     Unit = "Packet"
)

// IsValid checks if the unit is one of the supported units of measure
func (u Unit) IsValid() bool {
	switch u {
	case UnitPiece, UnitKilogram, UnitGram, UnitLitre, UnitMillilitre,
		UnitMetre, UnitBox, UnitDozen, UnitBag, UnitPacket:
		return true
	}
	return false
}

// String returns the string representation of Unit
func (u Unit) String() string {
	return string(u)
}
