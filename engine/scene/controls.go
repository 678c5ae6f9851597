package scene

import "github.com/Carmen-Shannon/oxy-sphere/common"

// HandleKey applies the viewer key bindings to a scene:
//   - plus, equals or keypad plus rebuilds one order finer
//   - minus or keypad minus rebuilds one order coarser
//   - a digit rebuilds at that order
//   - Space pauses or resumes the rotation
//   - R resets the rotation and zoom
//
// Parameters:
//   - s: the scene to act on
//   - keyCode: the GLFW key code
//
// Returns:
//   - bool: true if the key is bound
//   - error: the rebuild error, usually sphere.ErrOrderOutOfRange
func HandleKey(s Scene, keyCode uint32) (bool, error) {
	if d, ok := common.DigitValue(keyCode); ok {
		return true, s.SetOrder(d)
	}
	switch keyCode {
	case common.KeyEqual, common.KeyKPAdd:
		return true, s.StepOrder(1)
	case common.KeyMinus, common.KeyKPSubtract:
		return true, s.StepOrder(-1)
	case common.KeySpace:
		s.TogglePause()
		return true, nil
	case common.KeyR:
		s.ResetView()
		return true, nil
	}
	return false, nil
}
