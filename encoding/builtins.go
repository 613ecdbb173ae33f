package encoding

import (
	"unicode/utf16"

	"github.com/pkg/errors"
	xunicode "golang.org/x/text/encoding/unicode"
)

// Latin1 returns the built-in Latin-1 encoding: primary range [0x00,
// 0xFF], no named classes (every code point a Latin-1 lexer can see is
// already addressed directly by the primary range).
func Latin1() *Encoding {
	return New("latin1", 0x00, 0xFF)
}

// UTF16 returns the built-in UTF-16 encoding: primary range covers every
// UTF-16 code unit [0x0000, 0xFFFF], surrogates included, plus a
// catch-all class for supplementary-plane code points that only appear
// as surrogate pairs.
func UTF16() *Encoding {
	e := New("utf16", 0x0000, 0xFFFF)
	e.AddClass("supplementary_plane", []RuneRange{{Lo: 0x10000, Hi: 0x10FFFF}})
	e.SetCatchAll("supplementary_plane")
	return e
}

// UTF8 returns the built-in UTF-8 encoding: primary range over the ASCII
// byte values [0x00, 0x7F], with a catch-all class covering every
// multi-byte sequence lead byte and continuation byte.
func UTF8() *Encoding {
	e := New("utf8", 0x00, 0x7F)
	e.AddClass("non_ascii", []RuneRange{{Lo: 0x80, Hi: 0x10FFFF}})
	e.SetCatchAll("non_ascii")
	return e
}

// ErrInvalidUTF16 is returned by ValidateUTF16 when a code unit sequence
// is not well-formed UTF-16 (an unpaired surrogate).
var ErrInvalidUTF16 = errors.New("encoding: invalid utf-16 sequence")

// ValidateUTF16 decodes units as UTF-16 code units and reports an error
// if it contains an unpaired surrogate. No other function in this
// module calls it.
func ValidateUTF16(units []uint16) error {
	decoder := xunicode.UTF16(xunicode.LittleEndian, xunicode.IgnoreBOM).NewDecoder()
	raw := make([]byte, len(units)*2)
	for i, u := range units {
		raw[2*i] = byte(u)
		raw[2*i+1] = byte(u >> 8)
	}
	if _, err := decoder.Bytes(raw); err != nil {
		return errors.Wrap(ErrInvalidUTF16, err.Error())
	}
	for i := 0; i < len(units); i++ {
		r := rune(units[i])
		if utf16.IsSurrogate(r) {
			if i+1 >= len(units) {
				return errors.Wrap(ErrInvalidUTF16, "trailing unpaired surrogate")
			}
			decoded := utf16.DecodeRune(r, rune(units[i+1]))
			if decoded == 0xFFFD {
				return errors.Wrap(ErrInvalidUTF16, "unpaired surrogate")
			}
			i++
		}
	}
	return nil
}
