package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-can-types/cantypes"
)

const (
	protocolCAN2A = "CAN2.0A"
	protocolJ1939 = "J1939"
)

// record is decoded identifier or frame as it is printed out.
type record struct {
	Time      *time.Time              `json:"time,omitempty" yaml:"time,omitempty"`
	Interface string                  `json:"interface,omitempty" yaml:"interface,omitempty"`
	ID        string                  `json:"id" yaml:"id"`
	Protocol  string                  `json:"protocol" yaml:"protocol"`
	Standard  *cantypes.StandardParts `json:"standard,omitempty" yaml:"standard,omitempty"`
	Extended  *cantypes.ExtendedParts `json:"extended,omitempty" yaml:"extended,omitempty"`
	Header    *cantypes.Header        `json:"header,omitempty" yaml:"header,omitempty"`
	PGN       *pgnRecord              `json:"pgn,omitempty" yaml:"pgn,omitempty"`
	Source    string                  `json:"source,omitempty" yaml:"source,omitempty"`
	Length    *uint8                  `json:"length,omitempty" yaml:"length,omitempty"` // nil for identifiers without frame
	Data      string                  `json:"data,omitempty" yaml:"data,omitempty"`
	Name      *nameRecord             `json:"name,omitempty" yaml:"name,omitempty"`

	payload []byte
}

type pgnRecord struct {
	Value              uint32 `json:"value" yaml:"value"`
	Hex                string `json:"hex" yaml:"hex"`
	Format             string `json:"format" yaml:"format"`
	Mode               string `json:"mode" yaml:"mode"`
	Assignment         string `json:"assignment" yaml:"assignment"`
	DestinationAddress *uint8 `json:"destination_address,omitempty" yaml:"destination_address,omitempty"`
	Destination        string `json:"destination,omitempty" yaml:"destination,omitempty"`
	GroupExtension     *uint8 `json:"group_extension,omitempty" yaml:"group_extension,omitempty"`
}

type nameRecord struct {
	Hex                 string `json:"hex" yaml:"hex"`
	cantypes.NameFields `yaml:",inline"`
}

func decodeStandard(id cantypes.CAN2AID) record {
	parts := id.Standard().RawParts()
	return record{
		ID:       id.IntoHex(),
		Protocol: protocolCAN2A,
		Standard: &parts,
	}
}

func decodeExtended(id cantypes.ExtendedID) record {
	parts := id.RawParts()
	header := id.Header()
	pgn := id.PGN()

	pr := &pgnRecord{
		Value:      pgn.IntoBits(),
		Hex:        pgn.IntoHex(),
		Format:     pgn.Format().String(),
		Mode:       pgn.CommunicationMode().String(),
		Assignment: pgn.Assignment().String(),
	}
	if da, ok := pgn.DestinationAddr(); ok {
		v := uint8(da)
		pr.DestinationAddress = &v
		pr.Destination = da.String()
	}
	if ge, ok := pgn.GroupExtension(); ok {
		pr.GroupExtension = &ge
	}

	return record{
		ID:       id.IntoHex(),
		Protocol: protocolJ1939,
		Extended: &parts,
		Header:   &header,
		PGN:      pr,
		Source:   id.SourceAddr().String(),
	}
}

func decodeFrame(f frame) (record, error) {
	var rec record
	if f.extended {
		id, err := cantypes.CAN2B.TryFromBits(f.id)
		if err != nil {
			return record{}, err
		}
		rec = decodeExtended(id.J1939())
	} else {
		if f.id > uint32(cantypes.CAN2A.Max()) {
			return record{}, fmt.Errorf("standard frame id 0x%X does not fit into 11 bits: %w", f.id, cantypes.ErrOutOfRange)
		}
		rec = decodeStandard(cantypes.CAN2A.FromBits(uint16(f.id)))
	}
	rec.Time = f.time
	rec.Interface = f.iface

	length := f.length
	rec.Length = &length
	b := f.data.Bytes()
	rec.payload = b[:f.length]
	rec.Data = fmt.Sprintf("%X", rec.payload)

	if rec.Header != nil && rec.Header.PGN == cantypes.PGNISOAddressClaim.IntoBits() && f.length == 8 {
		if name, err := cantypes.NameFromAddressClaim(rec.payload); err == nil {
			rec.Name = &nameRecord{Hex: name.IntoHex(), NameFields: name.Fields()}
		}
	}
	return rec, nil
}

// hex returns record in `cansend` format (ID#DATA) or only identifier when record is not a frame.
func (r record) hex() string {
	if r.Length == nil {
		return r.ID
	}
	return r.ID + "#" + r.Data
}

func (r record) text() string {
	sb := strings.Builder{}
	if r.Time != nil {
		sb.WriteString(fmt.Sprintf("(%d.%06d) ", r.Time.Unix(), r.Time.Nanosecond()/1000))
	}
	if r.Interface != "" {
		sb.WriteString(r.Interface)
		sb.WriteString(" ")
	}
	sb.WriteString(yellow("%s", r.ID))
	sb.WriteString(" ")
	sb.WriteString(r.Protocol)

	switch {
	case r.Standard != nil:
		s := r.Standard
		sb.WriteString(fmt.Sprintf(" prio=%d reserved=%t dp=%t pf=%d", s.Priority, s.Reserved, s.DataPage, s.PDUFormat))
	case r.Extended != nil:
		sb.WriteString(fmt.Sprintf(" prio=%d ", r.Extended.Priority))
		sb.WriteString(green("pgn=%d", r.PGN.Value))
		sb.WriteString(fmt.Sprintf(" %s/%s/%s", r.PGN.Format, r.PGN.Mode, r.PGN.Assignment))
		if r.PGN.DestinationAddress != nil {
			sb.WriteString(fmt.Sprintf(" dst=%d %q", *r.PGN.DestinationAddress, r.PGN.Destination))
		}
		if r.PGN.GroupExtension != nil {
			sb.WriteString(fmt.Sprintf(" ge=%d", *r.PGN.GroupExtension))
		}
		sb.WriteString(fmt.Sprintf(" src=%d %q", r.Extended.SourceAddress, r.Source))
	}

	if r.Length != nil {
		sb.WriteString(fmt.Sprintf(" [%d]", *r.Length))
		if len(r.payload) > 0 {
			sb.WriteString(fmt.Sprintf(" % X", r.payload))
		}
	}
	if r.Name != nil {
		sb.WriteString(" name=")
		sb.WriteString(r.Name.Hex)
	}
	return sb.String()
}
