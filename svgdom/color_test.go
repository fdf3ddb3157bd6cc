package svgdom

import "testing"

func TestParseSVGColor(t *testing.T) {
	for _, tc := range []struct {
		in      string
		want    PlainColor
		none    bool
		invalid bool
	}{
		{in: "#ff0000", want: NewPlainColor(0xff, 0, 0, 0xff)},
		{in: "#0f0", want: NewPlainColor(0, 0xff, 0, 0xff)},
		{in: "#11223344", want: NewPlainColor(0x11, 0x22, 0x33, 0x44)},
		{in: "rgb(1, 2, 3)", want: NewPlainColor(1, 2, 3, 0xff)},
		{in: "rgb(100%, 0%, 0%)", want: NewPlainColor(0xff, 0, 0, 0xff)},
		{in: "rgba(10, 20, 30, 0.5)", want: NewPlainColor(10, 20, 30, 127)},
		{in: "RED", want: NewPlainColor(0xff, 0, 0, 0xff)},
		{in: " navy ", want: NewPlainColor(0, 0, 0x80, 0xff)},
		{in: "none", none: true},
		{in: "transparent", none: true},
		{in: "#12345", invalid: true},
		{in: "blurple", invalid: true},
	} {
		got, err := parseSVGColor(tc.in)
		if tc.invalid {
			if err == nil {
				t.Errorf("%q: expected an error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: %v", tc.in, err)
			continue
		}
		if tc.none {
			if got.asPattern() != nil {
				t.Errorf("%q: expected no pattern", tc.in)
			}
			continue
		}
		if got.color != tc.want {
			t.Errorf("%q: got %+v, want %+v", tc.in, got.color, tc.want)
		}
	}
}
