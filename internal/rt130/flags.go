package rt130

import "fmt"

// FlagKeys names the packet flag bits, most significant bit first.
var FlagKeys = [8]string{
	"first_packet",
	"last_packet",
	"second_EH_ET",
	"unused",
	"ST_command_trigger_event",
	"stacked_data_in_packet",
	"overscaled_data_detected_during_packet",
	"calibration_signal_enabled_during_packet",
}

// PacketFlags is the unpacked flag byte of a data packet. Field order follows
// FlagKeys so JSON output keeps bit order.
type PacketFlags struct {
	FirstPacket        bool `json:"first_packet"`
	LastPacket         bool `json:"last_packet"`
	SecondEHET         bool `json:"second_EH_ET"`
	Unused             bool `json:"unused"`
	TriggerEvent       bool `json:"ST_command_trigger_event"`
	StackedData        bool `json:"stacked_data_in_packet"`
	Overscaled         bool `json:"overscaled_data_detected_during_packet"`
	CalibrationEnabled bool `json:"calibration_signal_enabled_during_packet"`
}

// DecodeFlags unpacks a one-byte flag field.
func DecodeFlags(raw []byte) (PacketFlags, error) {
	if len(raw) != 1 {
		return PacketFlags{}, fmt.Errorf("%w: flag field is %d bytes, want 1", ErrMalformedLength, len(raw))
	}
	return DecodeFlagByte(raw[0]), nil
}

// DecodeFlagByte unpacks b most significant bit first.
func DecodeFlagByte(b byte) PacketFlags {
	var bits [8]bool
	for i, mask := 0, byte(0x80); i < 8; i, mask = i+1, mask>>1 {
		bits[i] = b&mask != 0
	}
	return PacketFlags{
		FirstPacket:        bits[0],
		LastPacket:         bits[1],
		SecondEHET:         bits[2],
		Unused:             bits[3],
		TriggerEvent:       bits[4],
		StackedData:        bits[5],
		Overscaled:         bits[6],
		CalibrationEnabled: bits[7],
	}
}

// Bits returns the flags in FlagKeys order.
func (f PacketFlags) Bits() [8]bool {
	return [8]bool{
		f.FirstPacket,
		f.LastPacket,
		f.SecondEHET,
		f.Unused,
		f.TriggerEvent,
		f.StackedData,
		f.Overscaled,
		f.CalibrationEnabled,
	}
}

// Map returns the flags keyed by FlagKeys.
func (f PacketFlags) Map() map[string]bool {
	bits := f.Bits()
	out := make(map[string]bool, len(FlagKeys))
	for i, key := range FlagKeys {
		out[key] = bits[i]
	}
	return out
}
