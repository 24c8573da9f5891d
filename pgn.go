package cantypes

import "fmt"

// PGN is J1939 Parameter Group Number. PGN is 18 bits of 29bit identifier.
//
// Layout, most significant bit first, in 32 bit storage:
//
//	| padding (14) | reserved (1) | data page (1) | pdu format (8) | pdu specific (8) |
//
// Related info https://embeddedflakes.com/j1939-parameter-group-number/
type PGN uint32

const (
	pgnReservedShift  = 17
	pgnDataPageShift  = 16
	pgnPDUFormatShift = 8

	// PGNMax is the largest valid 18bit PGN
	PGNMax = 0x3FFFF

	// pdu2Threshold is the first PDU format value that belongs to PDU2 (broadcast) format
	pdu2Threshold = 240
)

// ParameterGroup is codec for PGNs.
var ParameterGroup = Codec[PGN, uint32]{name: "pgn", max: PGNMax, digits: 8, bits: 32}

// PDUFormat is format family of PGN.
type PDUFormat uint8

const (
	// PDU1 PGNs (pdu format 0-239) are sent to specific destination address
	PDU1 PDUFormat = 1
	// PDU2 PGNs (pdu format 240-255) are broadcast and pdu specific field is group extension
	PDU2 PDUFormat = 2
)

func (f PDUFormat) String() string {
	switch f {
	case PDU1:
		return "PDU1"
	case PDU2:
		return "PDU2"
	}
	return fmt.Sprintf("PDUFormat(%d)", uint8(f))
}

// CommunicationMode tells if PGN is sent to single node or to everyone.
type CommunicationMode uint8

const (
	PointToPoint CommunicationMode = 1
	Broadcast    CommunicationMode = 2
)

func (m CommunicationMode) String() string {
	switch m {
	case PointToPoint:
		return "P2P"
	case Broadcast:
		return "Broadcast"
	}
	return fmt.Sprintf("CommunicationMode(%d)", uint8(m))
}

// Assignment tells who has defined PGN.
type Assignment uint8

const (
	// AssignmentUnknown is for values in gaps between SAE and manufacturer ranges
	AssignmentUnknown Assignment = 0
	// AssignmentSAE is for PGNs defined by SAE
	AssignmentSAE Assignment = 1
	// AssignmentManufacturer is for proprietary PGNs
	AssignmentManufacturer Assignment = 2
)

func (a Assignment) String() string {
	switch a {
	case AssignmentSAE:
		return "SAE"
	case AssignmentManufacturer:
		return "Manufacturer"
	}
	return "Unknown"
}

// NewPGN assembles PGN from its fields.
func NewPGN(reserved bool, dataPage bool, pduFormat uint8, pduSpecific uint8) PGN {
	p := uint32(pduFormat)<<pgnPDUFormatShift | uint32(pduSpecific)
	if reserved {
		p |= 1 << pgnReservedShift
	}
	if dataPage {
		p |= 1 << pgnDataPageShift
	}
	return PGN(p)
}

func (p PGN) Reserved() bool {
	return p&(1<<pgnReservedShift) != 0
}

func (p PGN) DataPage() bool {
	return p&(1<<pgnDataPageShift) != 0
}

// PDUFormatValue returns raw pdu format field (PF).
func (p PGN) PDUFormatValue() uint8 {
	return uint8(p >> pgnPDUFormatShift)
}

// PDUSpecific returns raw pdu specific field (PS). For PDU1 it is destination address, for PDU2 group extension.
func (p PGN) PDUSpecific() uint8 {
	return uint8(p)
}

// Format classifies PGN as PDU1 (pdu format < 240) or PDU2.
func (p PGN) Format() PDUFormat {
	if p.PDUFormatValue() < pdu2Threshold {
		return PDU1
	}
	return PDU2
}

// CommunicationMode is derived only from format: PDU1 is point-to-point, PDU2 is broadcast.
func (p PGN) CommunicationMode() CommunicationMode {
	if p.Format() == PDU1 {
		return PointToPoint
	}
	return Broadcast
}

func (p PGN) IsP2P() bool {
	return p.CommunicationMode() == PointToPoint
}

func (p PGN) IsBroadcast() bool {
	return p.CommunicationMode() == Broadcast
}

// DestinationAddress returns destination address for PDU1 PGNs. For PDU2 PGNs pdu specific byte is group extension
// and `false` is returned.
func (p PGN) DestinationAddress() (uint8, bool) {
	if p.Format() != PDU1 {
		return 0, false
	}
	return p.PDUSpecific(), true
}

// DestinationAddr is DestinationAddress resolved with address table. Resolved address can still be unknown to the
// table, check it with Addr.Known.
func (p PGN) DestinationAddr() (Addr, bool) {
	da, ok := p.DestinationAddress()
	return Addr(da), ok
}

// GroupExtension returns group extension for PDU2 PGNs.
func (p PGN) GroupExtension() (uint8, bool) {
	if p.Format() != PDU2 {
		return 0, false
	}
	return p.PDUSpecific(), true
}

// Assignment classifies PGN by who has assigned it. Values that fall between known ranges are AssignmentUnknown.
func (p PGN) Assignment() Assignment {
	switch v := uint32(p); {
	case v <= 0xEE00,
		v >= 0xF000 && v <= 0xFEFF,
		v >= 0x10000 && v <= 0x1EE00,
		v >= 0x1F000 && v <= 0x1FEFF:
		return AssignmentSAE
	case v == 0xEF00,
		v >= 0xFF00 && v <= 0xFFFF,
		v == 0x1EF00,
		v >= 0x1FF00 && v <= 0x1FFFF:
		return AssignmentManufacturer
	}
	return AssignmentUnknown
}

// TryAssignment is Assignment that treats PGNs outside of SAE and manufacturer ranges as error (ErrUnassignedPGN).
func (p PGN) TryAssignment() (Assignment, error) {
	a := p.Assignment()
	if a == AssignmentUnknown {
		return a, fmt.Errorf("pgn %v (0x%05X): %w", uint32(p), uint32(p), ErrUnassignedPGN)
	}
	return a, nil
}

func (p PGN) IntoBits() uint32 {
	return uint32(p)
}

func (p PGN) IntoHex() string {
	return formatHex(uint64(p), ParameterGroup.digits)
}

func (p PGN) String() string {
	return fmt.Sprintf("%d", uint32(p))
}
