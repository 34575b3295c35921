package viewer

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/presenter/internal/actions"
)

var digitKeys = [...]ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// Bind maps a just-pressed key to its command.
func Bind(k ebiten.Key, shift bool) (actions.Command, bool) {
	for i, d := range digitKeys {
		if k == d {
			return actions.Command{Kind: actions.ApplyTemplate, Index: i + 1}, true
		}
	}

	var kind actions.Kind
	switch k {
	case ebiten.KeyR:
		kind = actions.Randomize
	case ebiten.KeyM:
		kind = actions.ToggleMode
	case ebiten.KeyArrowUp:
		kind = actions.PaddingUp
	case ebiten.KeyArrowDown:
		kind = actions.PaddingDown
	case ebiten.KeyBracketRight:
		kind = actions.RadiusUp
	case ebiten.KeyBracketLeft:
		kind = actions.RadiusDown
	case ebiten.KeyB:
		kind = pick(shift, actions.BorderDown, actions.BorderUp)
	case ebiten.KeyO:
		kind = pick(shift, actions.OpacityDown, actions.OpacityUp)
	case ebiten.KeyP:
		kind = actions.ExportPNG
	case ebiten.KeyJ:
		kind = actions.ExportJPEG
	case ebiten.KeyS:
		kind = actions.SaveTemplate
	case ebiten.KeyDelete:
		kind = actions.DeleteTemplate
	case ebiten.KeyC:
		kind = pick(shift, actions.CycleEndColor, actions.CycleStartColor)
	case ebiten.KeyG:
		// Without a Name the viewer opens hex entry for the endpoint.
		kind = pick(shift, actions.SetEndColor, actions.SetStartColor)
	default:
		return actions.Command{}, false
	}
	return actions.Command{Kind: kind}, true
}

func pick(shift bool, withShift, without actions.Kind) actions.Kind {
	if shift {
		return withShift
	}
	return without
}
