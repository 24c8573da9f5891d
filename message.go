package cantypes

import "fmt"

// Payload is constraint for 8 byte payload interpretations that Message can carry.
type Payload interface {
	Data | Name
}

// Message is J1939 identifier paired with its 8 byte payload. Message is value type and is not changed after creation.
type Message[P Payload] struct {
	id  ExtendedID
	pdu P
}

// NewMessage creates message from already validated parts.
func NewMessage[P Payload](id ExtendedID, pdu P) Message[P] {
	return Message[P]{id: id, pdu: pdu}
}

// MessageFromBits creates message from raw integers without validation.
func MessageFromBits[P Payload](id uint32, pdu uint64) Message[P] {
	return Message[P]{id: Extended.FromBits(id), pdu: P(pdu)}
}

// MessageFromHex creates message from hex text without validation. Unparseable parts are zero.
func MessageFromHex[P Payload](idHex string, pduHex string) Message[P] {
	return Message[P]{id: Extended.FromHex(idHex), pdu: P(DataPayload.FromHex(pduHex))}
}

// TryMessageFromBits creates message from raw integers and validates identifier range.
func TryMessageFromBits[P Payload](id uint32, pdu uint64) (Message[P], error) {
	eid, err := Extended.TryFromBits(id)
	if err != nil {
		return Message[P]{}, fmt.Errorf("invalid message identifier: %w", err)
	}
	return Message[P]{id: eid, pdu: P(pdu)}, nil
}

// TryMessageFromHex creates message from hex text and validates both parts.
func TryMessageFromHex[P Payload](idHex string, pduHex string) (Message[P], error) {
	eid, err := Extended.TryFromHex(idHex)
	if err != nil {
		return Message[P]{}, fmt.Errorf("invalid message identifier: %w", err)
	}
	pdu, err := DataPayload.TryFromHex(pduHex)
	if err != nil {
		return Message[P]{}, fmt.Errorf("invalid message payload: %w", err)
	}
	return Message[P]{id: eid, pdu: P(pdu)}, nil
}

func (m Message[P]) ID() ExtendedID {
	return m.id
}

func (m Message[P]) PDU() P {
	return m.pdu
}

// Parts returns identifier and payload of message.
func (m Message[P]) Parts() (ExtendedID, P) {
	return m.id, m.pdu
}

// AsName reinterprets message payload as NAME.
func AsName(m Message[Data]) Message[Name] {
	return Message[Name]{id: m.id, pdu: m.pdu.Name()}
}

// AsData reinterprets NAME message payload as generic data.
func AsData(m Message[Name]) Message[Data] {
	return Message[Data]{id: m.id, pdu: m.pdu.Data()}
}
