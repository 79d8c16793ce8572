package window

import "testing"

func TestKeyFromSym(t *testing.T) {
	tests := []struct {
		sym  uint64
		want Key
	}{
		{'a', KeyA},
		{'q', KeyQ},
		{'z', KeyZ},
		{'A', KeyA},
		{'Q', KeyQ},
		{'0', Key0},
		{'9', Key9},
		{0xff1b, KeyEscape},
		{' ', KeySpace},
		{0xff51, KeyLeft},
		{0xffe1, KeyLeftShift},
		{0xffe4, KeyRightControl},
		{0xffbe, KeyUnknown}, // F1
		{0, KeyUnknown},
	}
	for _, tt := range tests {
		if got := keyFromSym(tt.sym); got != tt.want {
			t.Errorf("keyFromSym(%#x) = %v, want %v", tt.sym, got, tt.want)
		}
	}
}

func TestKeyString(t *testing.T) {
	tests := map[Key]string{
		KeyA:       "A",
		KeyW:       "W",
		Key5:       "5",
		KeyEscape:  "Escape",
		KeyUnknown: "Unknown",
		Key(9999):  "Key(9999)",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("Key(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}
