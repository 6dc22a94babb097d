package musdb

// Op is a synthesizer action that a MUS controller or system event maps to.
type Op int

const (
	// OpNone means that the event is accepted, but it has no effect.
	OpNone Op = iota

	// Encoding: controller 0
	// Arg: preset (program) number
	OpChangeInstrument

	// Encoding: controller 1
	// Arg: bank number
	OpBankSelect

	// Encoding: controllers 3, 4, 5
	// Arg: MIDI controller value
	OpControlChange

	// Encoding: system event 10
	OpAllSoundsOff

	// Encoding: system event 11
	OpAllNotesOff

	// Encoding: system event 14
	// Arg: always 0, the MIDI controller is MIDIResetAllControllers
	OpResetAllControllers
)

// MIDI controller numbers used by the MUS mapping.
const (
	MIDIBankSelect          = 0
	MIDIVolume              = 7
	MIDIPan                 = 10
	MIDIExpression          = 11
	MIDIResetAllControllers = 121
)

// PercussionChannel is a MUS channel that always plays percussion.
const PercussionChannel = 15

// MUS controller numbers (the first argument of a controller event).
const (
	ControllerChangeInstrument = 0
	ControllerBankSelect       = 1
	ControllerModulation       = 2
	ControllerVolume           = 3
	ControllerPan              = 4
	ControllerExpression       = 5
	ControllerReverbDepth      = 6
	ControllerChorusDepth      = 7
	ControllerSustainPedal     = 8
	ControllerSoftPedal        = 9
)

// MUS system event numbers.
const (
	SystemAllSoundsOff        = 10
	SystemAllNotesOff         = 11
	SystemMono                = 12
	SystemPoly                = 13
	SystemResetAllControllers = 14
)

type Action struct {
	Op Op

	// Controller is a MIDI controller number for OpControlChange
	// and OpResetAllControllers.
	Controller uint8
}

// ConvertController maps a MUS controller number to the synthesizer action.
//
// Modulation, reverb, chorus, sustain and soft pedal are ignored:
// the synthesizer has no support for them.
func ConvertController(num uint8) Action {
	switch num {
	case ControllerChangeInstrument:
		return Action{Op: OpChangeInstrument}
	case ControllerBankSelect:
		return Action{Op: OpBankSelect, Controller: MIDIBankSelect}
	case ControllerVolume:
		return Action{Op: OpControlChange, Controller: MIDIVolume}
	case ControllerPan:
		return Action{Op: OpControlChange, Controller: MIDIPan}
	case ControllerExpression:
		return Action{Op: OpControlChange, Controller: MIDIExpression}
	}
	return Action{}
}

// ConvertSystemEvent maps a MUS system event number to the synthesizer action.
// Mono and poly mode switches are not implemented.
func ConvertSystemEvent(num uint8) Action {
	switch num {
	case SystemAllSoundsOff:
		return Action{Op: OpAllSoundsOff}
	case SystemAllNotesOff:
		return Action{Op: OpAllNotesOff}
	case SystemResetAllControllers:
		return Action{Op: OpResetAllControllers, Controller: MIDIResetAllControllers}
	}
	return Action{}
}
