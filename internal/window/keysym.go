package window

// X11 keysym values from X11/keysymdef.h.
const (
	xkSpace     = 0x0020
	xk0         = 0x0030
	xk9         = 0x0039
	xkUpperA    = 0x0041
	xkUpperZ    = 0x005a
	xkLowerA    = 0x0061
	xkLowerZ    = 0x007a
	xkBackSpace = 0xff08
	xkTab       = 0xff09
	xkReturn    = 0xff0d
	xkEscape    = 0xff1b
	xkLeft      = 0xff51
	xkUp        = 0xff52
	xkRight     = 0xff53
	xkDown      = 0xff54
	xkShiftL    = 0xffe1
	xkShiftR    = 0xffe2
	xkControlL  = 0xffe3
	xkControlR  = 0xffe4
)

var keysyms = map[uint64]Key{
	xkSpace:     KeySpace,
	xkBackSpace: KeyBackspace,
	xkTab:       KeyTab,
	xkReturn:    KeyEnter,
	xkEscape:    KeyEscape,
	xkLeft:      KeyLeft,
	xkUp:        KeyUp,
	xkRight:     KeyRight,
	xkDown:      KeyDown,
	xkShiftL:    KeyLeftShift,
	xkShiftR:    KeyRightShift,
	xkControlL:  KeyLeftControl,
	xkControlR:  KeyRightControl,
}

// keyFromSym maps an unshifted X11 keysym to a Key.
func keyFromSym(sym uint64) Key {
	switch {
	case sym >= xkLowerA && sym <= xkLowerZ:
		return KeyA + Key(sym-xkLowerA)
	case sym >= xkUpperA && sym <= xkUpperZ:
		return KeyA + Key(sym-xkUpperA)
	case sym >= xk0 && sym <= xk9:
		return Key0 + Key(sym-xk0)
	}
	if k, ok := keysyms[sym]; ok {
		return k
	}
	return KeyUnknown
}
