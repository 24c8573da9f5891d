package cantypes

// CAN2AID is plain 11bit CAN 2.0 A identifier without J1939 meaning.
type CAN2AID uint16

// CAN2BID is plain 29bit CAN 2.0 B identifier without J1939 meaning.
type CAN2BID uint32

var (
	// CAN2A is codec for CAN 2.0 A identifiers.
	CAN2A = Codec[CAN2AID, uint16]{name: "CAN2.0A identifier", max: StandardIDMax, digits: 3, bits: 16}
	// CAN2B is codec for CAN 2.0 B identifiers.
	CAN2B = Codec[CAN2BID, uint32]{name: "CAN2.0B identifier", max: ExtendedIDMax, digits: 8, bits: 32}
)

// ID returns identifier bits 0-10. Padding bits are dropped.
func (id CAN2AID) ID() uint16 {
	return uint16(id) & StandardIDMax
}

// Extend widens identifier into 29bit identifier by zero extension.
func (id CAN2AID) Extend() CAN2BID {
	return CAN2BID(uint32(id))
}

// Standard reinterprets identifier with 11bit J1939 style fields.
func (id CAN2AID) Standard() StandardID {
	return StandardID(id)
}

func (id CAN2AID) IntoBits() uint16 {
	return uint16(id)
}

func (id CAN2AID) IntoHex() string {
	return formatHex(uint64(id), CAN2A.digits)
}

func (id CAN2AID) String() string {
	return id.IntoHex()
}

// ID returns identifier bits 0-28. Padding bits are dropped.
func (id CAN2BID) ID() uint32 {
	return uint32(id) & ExtendedIDMax
}

// J1939 reinterprets identifier with J1939 fields.
func (id CAN2BID) J1939() ExtendedID {
	return ExtendedID(id)
}

func (id CAN2BID) IntoBits() uint32 {
	return uint32(id)
}

func (id CAN2BID) IntoHex() string {
	return formatHex(uint64(id), CAN2B.digits)
}

func (id CAN2BID) String() string {
	return id.IntoHex()
}
