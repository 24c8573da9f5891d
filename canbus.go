package cantypes

import "fmt"

// Header is flattened view of J1939 identifier as it is usually logged/printed: PGN, priority and addresses.
type Header struct {
	PGN         uint32 `json:"pgn" yaml:"pgn"`
	Priority    uint8  `json:"priority" yaml:"priority"`
	Source      uint8  `json:"source" yaml:"source"`
	Destination uint8  `json:"destination" yaml:"destination"`
}

// Header returns header fields of identifier. For broadcast (PDU2) identifiers destination is AddressGlobal. Unlike
// ExtendedID.PGN, Header.PGN of point-to-point (PDU1) identifier does not include destination address in its low byte.
func (id ExtendedID) Header() Header {
	pgn := id.PGN()
	result := Header{
		PGN:         pgn.IntoBits(),
		Priority:    id.Priority(),
		Source:      id.SourceAddress(),
		Destination: AddressGlobal, // 0xff is broadcast to all
	}
	if da, ok := pgn.DestinationAddress(); ok {
		result.Destination = da
		result.PGN &^= 0xFF // for PDU1 low byte of PGN is destination and not part of group number
	}
	return result
}

// ID assembles J1939 identifier from header fields.
func (h Header) ID() (ExtendedID, error) {
	if h.Priority > 7 {
		return 0, fmt.Errorf("priority must be between 0 and 7, got %v: %w", h.Priority, ErrInvalidPriority)
	}
	if h.PGN > PGNMax {
		return 0, fmt.Errorf("header pgn 0x%X does not fit into 18 bits: %w", h.PGN, ErrOutOfRange)
	}
	canID := uint32(h.Source) // bit 0-7

	pf := uint8(h.PGN >> 8)
	if pf < pdu2Threshold {
		canID |= uint32(h.Destination) << 8 // bits 8-15
		canID |= h.PGN &^ 0xFF << 8         // bits 16-25
	} else {
		canID |= h.PGN << 8 // bits 8-25
	}
	canID |= uint32(h.Priority&0x7) << 26 // bit 26,27,28
	return ExtendedID(canID), nil
}
