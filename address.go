package cantypes

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// AddressNull is used as source address by nodes that have not claimed address yet
	AddressNull = 254
	// AddressGlobal is destination address for messages sent to all nodes
	AddressGlobal = 255
)

// Addr is J1939 source or destination address. Known addresses are preferred addresses of common heavy vehicle ECUs
// (SAE J1939 appendix B). All 256 values are valid addresses, Known tells if address has label in table.
type Addr uint8

const (
	AddrPrimaryEngineController        Addr = 0
	AddrSecondaryEngineController      Addr = 1
	AddrPrimaryTransmissionController  Addr = 3
	AddrTransmissionShiftSelector      Addr = 5
	AddrBrakes                         Addr = 11
	AddrRetarder                       Addr = 15
	AddrCruiseControl                  Addr = 17
	AddrFuelSystem                     Addr = 18
	AddrSteeringController             Addr = 19
	AddrInstrumentCluster              Addr = 23
	AddrClimateControl1                Addr = 25
	AddrCompass                        Addr = 28
	AddrBodyController                 Addr = 33
	AddrOffVehicleGateway              Addr = 37
	AddrDidVid                         Addr = 40
	AddrRetarderExhaustEngine1         Addr = 41
	AddrHeadwayController              Addr = 42
	AddrSuspension                     Addr = 47
	AddrCabController                  Addr = 49
	AddrTirePressureController         Addr = 51
	AddrLightingControlModule          Addr = 55
	AddrClimateControl2                Addr = 58
	AddrExhaustEmissionController      Addr = 61
	AddrAuxiliaryHeater                Addr = 69
	AddrChassisController              Addr = 71
	AddrCommunicationsUnit             Addr = 74
	AddrRadio                          Addr = 76
	AddrSafetyRestraintSystem          Addr = 83
	AddrAftertreatmentControlModule    Addr = 85
	AddrMultiPurposeCamera             Addr = 127
	AddrSwitchExpansionModule          Addr = 128
	AddrAuxiliaryGaugeSwitchPack       Addr = 132
	AddrIteris                         Addr = 139
	AddrQualcommPeopleNetTranslatorBox Addr = 142
	AddrStandAloneRealTimeClock        Addr = 150
	AddrCenterPanel1                   Addr = 151
	AddrCenterPanel2                   Addr = 152
	AddrCenterPanel3                   Addr = 153
	AddrCenterPanel4                   Addr = 154
	AddrCenterPanel5                   Addr = 155
	AddrWabcoOnGuardRadar              Addr = 160
	AddrSecondaryInstrumentCluster     Addr = 167
	AddrOffboardDiagnostics            Addr = 172
	AddrTrailer3Bridge                 Addr = 184
	AddrTrailer2Bridge                 Addr = 192
	AddrTrailer1Bridge                 Addr = 200
	AddrSafetyDirectProcessor          Addr = 209
	AddrForwardRoadImageProcessor      Addr = 232
	AddrLeftRearDoorPod                Addr = 233
	AddrRightRearDoorPod               Addr = 234
	AddrDoorController1                Addr = 236
	AddrDoorController2                Addr = 237
	AddrTachograph                     Addr = 238
	AddrHybridSystem                   Addr = 239
	AddrAuxiliaryPowerUnit             Addr = 247
	AddrServiceTool                    Addr = 249
	AddrSourceAddressRequest0          Addr = 254
	AddrSourceAddressRequest1          Addr = 255
)

var addrLabels = map[Addr]string{
	AddrPrimaryEngineController:        "Primary Engine Controller | (CPC, ECM)",
	AddrSecondaryEngineController:      "Secondary Engine Controller | (MCM, ECM #2)",
	AddrPrimaryTransmissionController:  "Primary Transmission Controller | (TCM)",
	AddrTransmissionShiftSelector:      "Transmission Shift Selector | (TSS)",
	AddrBrakes:                         "Brakes | System Controller (ABS)",
	AddrRetarder:                       "Retarder",
	AddrCruiseControl:                  "Cruise Control | (IPM, PCC)",
	AddrFuelSystem:                     "Fuel System | Controller (CNG)",
	AddrSteeringController:             "Steering Controller | (SAS)",
	AddrInstrumentCluster:              "Instrument Gauge Cluster (EGC) | (ICU, RX)",
	AddrClimateControl1:                "Climate Control #1 | (FCU)",
	AddrCompass:                        "Compass",
	AddrBodyController:                 "Body Controller | (SSAM, SAM-CAB, BHM)",
	AddrOffVehicleGateway:              "Off-Vehicle Gateway | (CGW)",
	AddrDidVid:                         "Vehicle Information Display | Driver Information Display",
	AddrRetarderExhaustEngine1:         "Retarder, Exhaust, Engine #1",
	AddrHeadwayController:              "Headway Controller | (RDF) | (OnGuard)",
	AddrSuspension:                     "Suspension | System Controller (ECAS)",
	AddrCabController:                  "Cab Controller | Primary (MSF, SHM, ECC)",
	AddrTirePressureController:         "Tire Pressure Controller | (TPMS)",
	AddrLightingControlModule:          "Lighting Control Module | (LCM)",
	AddrClimateControl2:                "Climate Control #2 | Rear HVAC | (ParkSmart)",
	AddrExhaustEmissionController:      "Exhaust Emission Controller | (ACM) | (DCU)",
	AddrAuxiliaryHeater:                "Auxiliary Heater | (ACU)",
	AddrChassisController:              "Chassis Controller | (CHM, SAM-Chassis)",
	AddrCommunicationsUnit:             "Communications Unit | Cellular (CTP, VT)",
	AddrRadio:                          "Radio",
	AddrSafetyRestraintSystem:          "Safety Restraint System | Air Bag | (SRS)",
	AddrAftertreatmentControlModule:    "Aftertreatment Control Module | (ACM)",
	AddrMultiPurposeCamera:             "Multi-Purpose Camera | (MPC)",
	AddrSwitchExpansionModule:          "Switch Expansion Module | (SEM #1)",
	AddrAuxiliaryGaugeSwitchPack:       "Auxiliary Gauge Switch Pack | (AGSP3)",
	AddrIteris:                         "Iteris",
	AddrQualcommPeopleNetTranslatorBox: "Qualcomm - PeopleNet Translator Box",
	AddrStandAloneRealTimeClock:        "Stand-Alone Real Time Clock | (SART)",
	AddrCenterPanel1:                   "Center Panel MUX Switch Pack #1",
	AddrCenterPanel2:                   "Center Panel MUX Switch Pack #2",
	AddrCenterPanel3:                   "Center Panel MUX Switch Pack #3",
	AddrCenterPanel4:                   "Center Panel MUX Switch Pack #4",
	AddrCenterPanel5:                   "Center Panel MUX Switch Pack #5",
	AddrWabcoOnGuardRadar:              "Wabco OnGuard Radar | OnGuard Display | Collision Mitigation System",
	AddrSecondaryInstrumentCluster:     "Secondary Instrument Cluster | (SIC)",
	AddrOffboardDiagnostics:            "Offboard Diagnostics",
	AddrTrailer3Bridge:                 "Trailer #3 Bridge",
	AddrTrailer2Bridge:                 "Trailer #2 Bridge",
	AddrTrailer1Bridge:                 "Trailer #1 Bridge",
	AddrSafetyDirectProcessor:          "Bendix Camera | Safety Direct Processor (SDP) Module",
	AddrForwardRoadImageProcessor:      "Forward Road Image Processor | PAM Module | Lane Departure Warning (LDW) Module | (VRDU)",
	AddrLeftRearDoorPod:                "Left Rear Door Pod",
	AddrRightRearDoorPod:               "Right Rear Door Pod",
	AddrDoorController1:                "Door Controller #1",
	AddrDoorController2:                "Door Controller #2",
	AddrTachograph:                     "Tachograph | (TCO)",
	AddrHybridSystem:                   "Hybrid System",
	AddrAuxiliaryPowerUnit:             "Auxiliary Power Unit | (APU)",
	AddrServiceTool:                    "Service Tool",
	AddrSourceAddressRequest0:          "Source Address Request 0",
	AddrSourceAddressRequest1:          "Source Address Request 1",
}

// LookupAddr resolves raw address to Addr. Returned bool is false when address has no known label.
func LookupAddr(address uint8) (Addr, bool) {
	a := Addr(address)
	return a, a.Known()
}

// ParseAddr is reverse of Addr.String. Label is compared case-insensitively.
func ParseAddr(label string) (Addr, bool) {
	for a, l := range addrLabels {
		if strings.EqualFold(l, label) {
			return a, true
		}
	}
	digits, ok := strings.CutPrefix(label, "Unknown(")
	if !ok {
		return 0, false
	}
	if digits, ok = strings.CutSuffix(digits, ")"); !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(digits, 10, 8)
	if err != nil {
		return 0, false
	}
	return Addr(n), true
}

// Known reports if address has label in table.
func (a Addr) Known() bool {
	_, ok := addrLabels[a]
	return ok
}

// Label returns label for address or empty string when address is not known.
func (a Addr) Label() string {
	return addrLabels[a]
}

func (a Addr) String() string {
	if l, ok := addrLabels[a]; ok {
		return l
	}
	return fmt.Sprintf("Unknown(%d)", uint8(a))
}
