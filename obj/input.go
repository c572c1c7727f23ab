package obj

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input is one tick's input snapshot. Held keys are level-triggered;
// ToggleMenu and Start fire only on the tick their key goes down.
type Input struct {
	Up, Down, Left, Right bool

	Attack     bool
	Magic      bool
	NextWeapon bool
	NextSpell  bool
	// Confirm upgrades the selected stat while the menu is open.
	Confirm bool

	ToggleMenu bool
	Start      bool
	Quit       bool
}

const stickDeadzone = 0.3

// PollInput reads the keyboard and the first gamepad.
func PollInput() Input {
	in := Input{
		Up:         ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:       ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Left:       ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:      ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Attack:     ebiten.IsKeyPressed(ebiten.KeySpace),
		Magic:      ebiten.IsKeyPressed(ebiten.KeyControlLeft),
		NextWeapon: ebiten.IsKeyPressed(ebiten.KeyQ),
		NextSpell:  ebiten.IsKeyPressed(ebiten.KeyP),
		Confirm:    ebiten.IsKeyPressed(ebiten.KeySpace),
		ToggleMenu: inpututil.IsKeyJustPressed(ebiten.KeyU),
		Start:      inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		Quit:       inpututil.IsKeyJustPressed(ebiten.KeyF12),
	}

	ids := ebiten.GamepadIDs()
	if len(ids) == 0 {
		return in
	}
	gid := ids[0]

	x := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
	y := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
	in.Left = in.Left || x < -stickDeadzone || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftLeft)
	in.Right = in.Right || x > stickDeadzone || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftRight)
	in.Up = in.Up || y < -stickDeadzone || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftTop)
	in.Down = in.Down || y > stickDeadzone || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftBottom)

	attack := ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightBottom)
	in.Attack = in.Attack || attack
	in.Confirm = in.Confirm || attack
	in.Magic = in.Magic || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightRight)
	in.NextWeapon = in.NextWeapon || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonFrontTopLeft)
	in.NextSpell = in.NextSpell || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonFrontTopRight)
	in.ToggleMenu = in.ToggleMenu || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterRight)
	in.Start = in.Start || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterRight)
	return in
}
