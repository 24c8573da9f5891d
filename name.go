package cantypes

import (
	"encoding/binary"
	"fmt"
)

// Name is J1939 NAME. NAME identifies node in the network independently of its (claimed) address and is sent as
// payload of ISO Address Claim (PGN 60928).
//
// Layout, most significant bit first:
//
//	| arbitrary address capable (1) | industry group (3) | vehicle system instance (4) | vehicle system (7) |
//	| reserved (1) | function (8) | function instance (5) | ECU instance (3) | manufacturer code (11) |
//	| identity number (21) |
//
// Related info about SAE1939 Addresses https://embeddedflakes.com/network-management-in-sae-j1939/
type Name uint64

// NamePayload is codec for NAME payloads. Every 64bit value is valid NAME.
var NamePayload = Codec[Name, uint64]{name: "name", max: ^uint64(0), digits: 16, bits: 64}

// PGNISOAddressClaim is PGN of message that carries NAME of its sender.
const PGNISOAddressClaim PGN = 60928

type nameField struct {
	shift uint
	width uint
}

var (
	nameArbitraryAddress      = nameField{shift: 63, width: 1}
	nameIndustryGroup         = nameField{shift: 60, width: 3}
	nameVehicleSystemInstance = nameField{shift: 56, width: 4}
	nameVehicleSystem         = nameField{shift: 49, width: 7}
	nameReserved              = nameField{shift: 48, width: 1}
	nameFunction              = nameField{shift: 40, width: 8}
	nameFunctionInstance      = nameField{shift: 35, width: 5}
	nameECUInstance           = nameField{shift: 32, width: 3}
	nameManufacturerCode      = nameField{shift: 21, width: 11}
	nameIdentityNumber        = nameField{shift: 0, width: 21}
)

func (f nameField) mask() uint64 {
	return 1<<f.width - 1
}

func (f nameField) get(n Name) uint64 {
	return uint64(n) >> f.shift & f.mask()
}

func (f nameField) set(n Name, value uint64) Name {
	cleared := uint64(n) &^ (f.mask() << f.shift)
	return Name(cleared | (value&f.mask())<<f.shift)
}

// NameFields holds named fields of NAME.
type NameFields struct {
	// Quote from https://embeddedflakes.com/network-management-in-sae-j1939/:
	// "This 1 bit field indicate whether the CA is arbitrary field capable or not. It is used to resolve address claim
	//  conflict. If this bit is set to 1, this CA will resolve the address conflict with the one whose NAME have higher
	//  priority (lower numeric value) by selecting address from range 128 to 247."
	ArbitraryAddress      bool   `json:"arbitrary_address" yaml:"arbitrary_address"`
	IndustryGroup         uint8  `json:"industry_group" yaml:"industry_group"`                   // 3 bits
	VehicleSystemInstance uint8  `json:"vehicle_system_instance" yaml:"vehicle_system_instance"` // 4 bits
	VehicleSystem         uint8  `json:"vehicle_system" yaml:"vehicle_system"`                   // 7 bits
	Reserved              bool   `json:"reserved" yaml:"reserved"`
	Function              uint8  `json:"function" yaml:"function"`                   // 8 bits
	FunctionInstance      uint8  `json:"function_instance" yaml:"function_instance"` // 5 bits
	ECUInstance           uint8  `json:"ecu_instance" yaml:"ecu_instance"`           // 3 bits
	ManufacturerCode      uint16 `json:"manufacturer_code" yaml:"manufacturer_code"` // 11 bits
	IdentityNumber        uint32 `json:"identity_number" yaml:"identity_number"`     // 21 bits
}

// Name assembles NAME from fields. Returns ErrOutOfRange when field value does not fit into its bit width.
func (f NameFields) Name() (Name, error) {
	values := []struct {
		name  string
		field nameField
		value uint64
	}{
		{name: "industry group", field: nameIndustryGroup, value: uint64(f.IndustryGroup)},
		{name: "vehicle system instance", field: nameVehicleSystemInstance, value: uint64(f.VehicleSystemInstance)},
		{name: "vehicle system", field: nameVehicleSystem, value: uint64(f.VehicleSystem)},
		{name: "function", field: nameFunction, value: uint64(f.Function)},
		{name: "function instance", field: nameFunctionInstance, value: uint64(f.FunctionInstance)},
		{name: "ECU instance", field: nameECUInstance, value: uint64(f.ECUInstance)},
		{name: "manufacturer code", field: nameManufacturerCode, value: uint64(f.ManufacturerCode)},
		{name: "identity number", field: nameIdentityNumber, value: uint64(f.IdentityNumber)},
	}
	n := Name(0)
	for _, v := range values {
		if v.value > v.field.mask() {
			return 0, fmt.Errorf("name %v can be up to %v, got %v: %w", v.name, v.field.mask(), v.value, ErrOutOfRange)
		}
		n = v.field.set(n, v.value)
	}
	n = nameArbitraryAddress.set(n, boolToUint64(f.ArbitraryAddress))
	n = nameReserved.set(n, boolToUint64(f.Reserved))
	return n, nil
}

// NameFromAddressClaim decodes NAME from ISO Address Claim (PGN 60928) payload. NAME is sent least significant byte
// first.
func NameFromAddressClaim(b []byte) (Name, error) {
	if len(b) != 8 {
		return 0, fmt.Errorf("address claim payload must be 8 bytes, got %v: %w", len(b), ErrOutOfRange)
	}
	return Name(binary.LittleEndian.Uint64(b)), nil
}

// AddressClaimBytes encodes NAME as ISO Address Claim (PGN 60928) payload.
func (n Name) AddressClaimBytes() [8]byte {
	b := [8]byte{}
	binary.LittleEndian.PutUint64(b[:], uint64(n))
	return b
}

// Fields returns all named fields of NAME.
func (n Name) Fields() NameFields {
	return NameFields{
		ArbitraryAddress:      n.ArbitraryAddress(),
		IndustryGroup:         n.IndustryGroup(),
		VehicleSystemInstance: n.VehicleSystemInstance(),
		VehicleSystem:         n.VehicleSystem(),
		Reserved:              n.Reserved(),
		Function:              n.Function(),
		FunctionInstance:      n.FunctionInstance(),
		ECUInstance:           n.ECUInstance(),
		ManufacturerCode:      n.ManufacturerCode(),
		IdentityNumber:        n.IdentityNumber(),
	}
}

// ArbitraryAddress tells if node can negotiate its address.
func (n Name) ArbitraryAddress() bool {
	return nameArbitraryAddress.get(n) == 1
}

// IndustryGroup is industry the node belongs to (on-highway, agricultural, marine etc).
func (n Name) IndustryGroup() uint8 {
	return uint8(nameIndustryGroup.get(n))
}

func (n Name) VehicleSystemInstance() uint8 {
	return uint8(nameVehicleSystemInstance.get(n))
}

func (n Name) VehicleSystem() uint8 {
	return uint8(nameVehicleSystem.get(n))
}

// Reserved is always zero for well-behaved nodes.
func (n Name) Reserved() bool {
	return nameReserved.get(n) == 1
}

func (n Name) Function() uint8 {
	return uint8(nameFunction.get(n))
}

func (n Name) FunctionInstance() uint8 {
	return uint8(nameFunctionInstance.get(n))
}

func (n Name) ECUInstance() uint8 {
	return uint8(nameECUInstance.get(n))
}

func (n Name) ManufacturerCode() uint16 {
	return uint16(nameManufacturerCode.get(n))
}

func (n Name) IdentityNumber() uint32 {
	return uint32(nameIdentityNumber.get(n))
}

// Data reinterprets NAME as generic payload. Bits are not changed.
func (n Name) Data() Data {
	return Data(n)
}

func (n Name) IntoBits() uint64 {
	return uint64(n)
}

func (n Name) IntoHex() string {
	return formatHex(uint64(n), NamePayload.digits)
}

func (n Name) String() string {
	return n.IntoHex()
}

func boolToUint64(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
