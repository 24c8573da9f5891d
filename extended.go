package cantypes

import "fmt"

// ExtendedID is 29bit J1939 identifier.
//
// Layout, most significant bit first, in 32 bit storage:
//
//	| padding (3) | priority (3) | reserved (1) | data page (1) | pdu format (8) | pdu specific (8) | source address (8) |
type ExtendedID uint32

const (
	extendedPriorityShift    = 26
	extendedReservedShift    = 25
	extendedDataPageShift    = 24
	extendedPDUFormatShift   = 16
	extendedPDUSpecificShift = 8

	// ExtendedIDMax is the largest valid 29bit identifier
	ExtendedIDMax = 0x1FFF_FFFF
)

var (
	// Extended is codec for 29bit identifiers.
	Extended = Codec[ExtendedID, uint32]{name: "extended identifier", max: ExtendedIDMax, digits: 8, bits: 32}
	// J1939 is codec for J1939 identifiers. J1939 uses extended identifier layout so this is the same as Extended.
	J1939 = Extended
)

// ExtendedParts holds named fields of ExtendedID.
type ExtendedParts struct {
	Priority      uint8 `json:"priority" yaml:"priority"`
	Reserved      bool  `json:"reserved" yaml:"reserved"`
	DataPage      bool  `json:"data_page" yaml:"data_page"`
	PDUFormat     uint8 `json:"pdu_format" yaml:"pdu_format"`
	PDUSpecific   uint8 `json:"pdu_specific" yaml:"pdu_specific"`
	SourceAddress uint8 `json:"source_address" yaml:"source_address"`
}

// NewExtendedID assembles 29bit identifier from its fields. Padding bits are always zero.
func NewExtendedID(priority uint8, reserved bool, dataPage bool, pduFormat uint8, pduSpecific uint8, sourceAddress uint8) (ExtendedID, error) {
	if priority > 7 {
		return 0, fmt.Errorf("priority must be between 0 and 7, got %v: %w", priority, ErrInvalidPriority)
	}
	id := uint32(priority)<<extendedPriorityShift |
		uint32(pduFormat)<<extendedPDUFormatShift |
		uint32(pduSpecific)<<extendedPDUSpecificShift |
		uint32(sourceAddress)
	if reserved {
		id |= 1 << extendedReservedShift
	}
	if dataPage {
		id |= 1 << extendedDataPageShift
	}
	return ExtendedID(id), nil
}

// NewExtendedIDFromParts is NewExtendedID that takes fields as struct.
func NewExtendedIDFromParts(p ExtendedParts) (ExtendedID, error) {
	return NewExtendedID(p.Priority, p.Reserved, p.DataPage, p.PDUFormat, p.PDUSpecific, p.SourceAddress)
}

func (id ExtendedID) Priority() uint8 {
	return uint8(id>>extendedPriorityShift) & 0b111
}

func (id ExtendedID) Reserved() bool {
	return id&(1<<extendedReservedShift) != 0
}

func (id ExtendedID) DataPage() bool {
	return id&(1<<extendedDataPageShift) != 0
}

func (id ExtendedID) PDUFormat() uint8 {
	return uint8(id >> extendedPDUFormatShift)
}

func (id ExtendedID) PDUSpecific() uint8 {
	return uint8(id >> extendedPDUSpecificShift)
}

func (id ExtendedID) SourceAddress() uint8 {
	return uint8(id)
}

// SourceAddr resolves source address to known ECU. Use Addr.Known to check if address is in the table.
func (id ExtendedID) SourceAddr() Addr {
	return Addr(id.SourceAddress())
}

// RawParts returns all named fields. It is exact inverse of NewExtendedIDFromParts.
func (id ExtendedID) RawParts() ExtendedParts {
	return ExtendedParts{
		Priority:      id.Priority(),
		Reserved:      id.Reserved(),
		DataPage:      id.DataPage(),
		PDUFormat:     id.PDUFormat(),
		PDUSpecific:   id.PDUSpecific(),
		SourceAddress: id.SourceAddress(),
	}
}

// PGN derives parameter group number from identifier. Priority and source address are not part of PGN.
func (id ExtendedID) PGN() PGN {
	return NewPGN(id.Reserved(), id.DataPage(), id.PDUFormat(), id.PDUSpecific())
}

// CAN2B reinterprets identifier as plain CAN 2.0 B identifier.
func (id ExtendedID) CAN2B() CAN2BID {
	return CAN2BID(id)
}

func (id ExtendedID) IntoBits() uint32 {
	return uint32(id)
}

func (id ExtendedID) IntoHex() string {
	return formatHex(uint64(id), Extended.digits)
}

func (id ExtendedID) String() string {
	return id.IntoHex()
}
