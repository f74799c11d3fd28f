package config

import "github.com/hajimehoshi/ebiten/v2"

// ActionID represents a logical jukebox action
type ActionID int

const (
	ActionNone ActionID = iota
	ActionState1
	ActionState2
	ActionState3
	ActionState4
	ActionState5
	ActionState6
	ActionIntensityUp
	ActionIntensityDown
	ActionPause
	ActionPlay
	ActionStop
	ActionSkip
	ActionVolumeUp
	ActionVolumeDown
	ActionMute
	ActionCount // Must be last - used for array sizing
)

// InputBinding represents a single key or button binding for an action
type InputBinding struct {
	Keys                   []ebiten.Key
	StandardGamepadButtons []ebiten.StandardGamepadButton
}

// InputConfig holds all input mappings
type InputConfig struct {
	Bindings map[ActionID]InputBinding
	// Deadzone for analog stick input (0.0 to 1.0)
	AnalogDeadzone float64
}

// Input is the global input configuration
var Input InputConfig

func init() {
	Input = InputConfig{
		AnalogDeadzone: 0.25,
		Bindings: map[ActionID]InputBinding{
			ActionState1: {Keys: []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyNumpad1}},
			ActionState2: {Keys: []ebiten.Key{ebiten.KeyDigit2, ebiten.KeyNumpad2}},
			ActionState3: {
				Keys: []ebiten.Key{ebiten.KeyDigit3, ebiten.KeyNumpad3},
				// Y / Triangle button
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonRightTop,
				},
			},
			ActionState4: {Keys: []ebiten.Key{ebiten.KeyDigit4, ebiten.KeyNumpad4}},
			ActionState5: {Keys: []ebiten.Key{ebiten.KeyDigit5, ebiten.KeyNumpad5}},
			ActionState6: {Keys: []ebiten.Key{ebiten.KeyDigit6, ebiten.KeyNumpad6}},
			ActionIntensityUp: {
				Keys: []ebiten.Key{ebiten.KeyBracketRight, ebiten.KeyUp},
				// D-pad Up (analog stick handled separately)
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonLeftTop,
				},
			},
			ActionIntensityDown: {
				Keys: []ebiten.Key{ebiten.KeyBracketLeft, ebiten.KeyDown},
				// D-pad Down (analog stick handled separately)
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonLeftBottom,
				},
			},
			ActionPause: {
				Keys: []ebiten.Key{ebiten.KeyP},
				// Start / Options button
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonCenterRight,
				},
			},
			ActionPlay: {
				Keys: []ebiten.Key{ebiten.KeySpace},
				// A / Cross button
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonRightBottom,
				},
			},
			ActionStop: {
				Keys: []ebiten.Key{ebiten.KeyS},
				// B / Circle button
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonRightRight,
				},
			},
			ActionSkip: {
				Keys: []ebiten.Key{ebiten.KeyK},
				// X / Square button
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonRightLeft,
				},
			},
			ActionVolumeUp: {
				Keys: []ebiten.Key{ebiten.KeyEqual, ebiten.KeyNumpadAdd},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonFrontTopRight,
				},
			},
			ActionVolumeDown: {
				Keys: []ebiten.Key{ebiten.KeyMinus, ebiten.KeyNumpadSubtract},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonFrontTopLeft,
				},
			},
			ActionMute: {
				Keys: []ebiten.Key{ebiten.KeyM},
				// Back / Share button
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonCenterLeft,
				},
			},
		},
	}
}

// StateAction returns the action that sends the i-th configured jukebox state.
func StateAction(i int) (ActionID, bool) {
	id := ActionState1 + ActionID(i)
	if i < 0 || id > ActionState6 {
		return ActionNone, false
	}
	return id, true
}
