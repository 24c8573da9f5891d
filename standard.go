package cantypes

import "fmt"

// StandardID is 11bit identifier with J1939 style fields.
//
// Layout, most significant bit first, in 16 bit storage:
//
//	| padding (5) | priority (3) | reserved (1) | data page (1) | pdu format (6) |
type StandardID uint16

const (
	standardPriorityShift = 8
	standardReservedShift = 7
	standardDataPageShift = 6
	standardPDUFormatMask = 0x3F

	// StandardIDMax is the largest valid 11bit identifier
	StandardIDMax = 0x7FF
)

// Standard is codec for 11bit identifiers.
var Standard = Codec[StandardID, uint16]{name: "standard identifier", max: StandardIDMax, digits: 3, bits: 16}

// StandardParts holds named fields of StandardID.
type StandardParts struct {
	Priority  uint8 `json:"priority" yaml:"priority"`
	Reserved  bool  `json:"reserved" yaml:"reserved"`
	DataPage  bool  `json:"data_page" yaml:"data_page"`
	PDUFormat uint8 `json:"pdu_format" yaml:"pdu_format"`
}

// NewStandardID assembles 11bit identifier from its fields. Padding bits are always zero.
func NewStandardID(priority uint8, reserved bool, dataPage bool, pduFormat uint8) (StandardID, error) {
	if priority > 7 {
		return 0, fmt.Errorf("priority must be between 0 and 7, got %v: %w", priority, ErrInvalidPriority)
	}
	if pduFormat > standardPDUFormatMask {
		return 0, fmt.Errorf("pdu format must be between 0 and 63, got %v: %w", pduFormat, ErrInvalidPDUFormat)
	}
	id := uint16(priority)<<standardPriorityShift | uint16(pduFormat)
	if reserved {
		id |= 1 << standardReservedShift
	}
	if dataPage {
		id |= 1 << standardDataPageShift
	}
	return StandardID(id), nil
}

// NewStandardIDFromParts is NewStandardID that takes fields as struct.
func NewStandardIDFromParts(p StandardParts) (StandardID, error) {
	return NewStandardID(p.Priority, p.Reserved, p.DataPage, p.PDUFormat)
}

func (id StandardID) Priority() uint8 {
	return uint8(id>>standardPriorityShift) & 0b111
}

func (id StandardID) Reserved() bool {
	return id&(1<<standardReservedShift) != 0
}

func (id StandardID) DataPage() bool {
	return id&(1<<standardDataPageShift) != 0
}

func (id StandardID) PDUFormat() uint8 {
	return uint8(id) & standardPDUFormatMask
}

// RawParts returns all named fields. It is exact inverse of NewStandardIDFromParts.
func (id StandardID) RawParts() StandardParts {
	return StandardParts{
		Priority:  id.Priority(),
		Reserved:  id.Reserved(),
		DataPage:  id.DataPage(),
		PDUFormat: id.PDUFormat(),
	}
}

// Extend widens identifier into 29bit identifier. Bits are copied as is to the low end of extended identifier, fields
// are not mapped: priority of 11bit identifier does not end up in priority of result.
func (id StandardID) Extend() ExtendedID {
	return ExtendedID(uint32(id))
}

// CAN2A reinterprets identifier as plain CAN 2.0 A identifier.
func (id StandardID) CAN2A() CAN2AID {
	return CAN2AID(id)
}

func (id StandardID) IntoBits() uint16 {
	return uint16(id)
}

func (id StandardID) IntoHex() string {
	return formatHex(uint64(id), Standard.digits)
}

func (id StandardID) String() string {
	return id.IntoHex()
}
