package input

import "github.com/hajimehoshi/ebiten/v2"

const stickDeadzone = 0.2

var keyBindings = map[Key][]ebiten.Key{
	KeyLeft:   {ebiten.KeyArrowLeft, ebiten.KeyA},
	KeyRight:  {ebiten.KeyArrowRight, ebiten.KeyD},
	KeyUp:     {ebiten.KeyArrowUp, ebiten.KeyW},
	KeySpace:  {ebiten.KeySpace},
	KeyEnter:  {ebiten.KeyEnter, ebiten.KeyNumpadEnter},
	KeyEscape: {ebiten.KeyEscape},
	KeyM:      {ebiten.KeyM},
}

var padBindings = map[Key][]ebiten.StandardGamepadButton{
	KeyLeft:   {ebiten.StandardGamepadButtonLeftLeft},
	KeyRight:  {ebiten.StandardGamepadButtonLeftRight},
	KeyUp:     {ebiten.StandardGamepadButtonLeftTop, ebiten.StandardGamepadButtonRightBottom},
	KeySpace:  {ebiten.StandardGamepadButtonRightLeft},
	KeyEnter:  {ebiten.StandardGamepadButtonCenterRight},
	KeyEscape: {ebiten.StandardGamepadButtonCenterLeft},
}

// EbitenSource reads keyboard, mouse and the first standard gamepad.
type EbitenSource struct {
	keys []ebiten.Key
}

func NewEbitenSource() *EbitenSource {
	return &EbitenSource{}
}

func (s *EbitenSource) gamepad() (ebiten.GamepadID, bool) {
	ids := ebiten.AppendGamepadIDs(nil)
	if len(ids) == 0 || !ebiten.IsStandardGamepadLayoutAvailable(ids[0]) {
		return 0, false
	}
	return ids[0], true
}

func (s *EbitenSource) KeyDown(k Key) bool {
	for _, ek := range keyBindings[k] {
		if ebiten.IsKeyPressed(ek) {
			return true
		}
	}
	id, ok := s.gamepad()
	if !ok {
		return false
	}
	for _, b := range padBindings[k] {
		if ebiten.IsStandardGamepadButtonPressed(id, b) {
			return true
		}
	}
	axis := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
	switch k {
	case KeyLeft:
		return axis < -stickDeadzone
	case KeyRight:
		return axis > stickDeadzone
	}
	return false
}

func (s *EbitenSource) AnyKeyDown() bool {
	s.keys = ebiten.AppendPressedKeys(s.keys[:0])
	if len(s.keys) > 0 {
		return true
	}
	id, ok := s.gamepad()
	if !ok {
		return false
	}
	for b := ebiten.StandardGamepadButton(0); b <= ebiten.StandardGamepadButtonMax; b++ {
		if ebiten.IsStandardGamepadButtonPressed(id, b) {
			return true
		}
	}
	return false
}

func (s *EbitenSource) Pointer() (float64, float64) {
	x, y := ebiten.CursorPosition()
	if touches := ebiten.AppendTouchIDs(nil); len(touches) > 0 {
		x, y = ebiten.TouchPosition(touches[0])
	}
	return float64(x), float64(y)
}

func (s *EbitenSource) PointerDown() bool {
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		return true
	}
	if len(ebiten.AppendTouchIDs(nil)) > 0 {
		return true
	}
	id, ok := s.gamepad()
	if !ok {
		return false
	}
	return ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
}
