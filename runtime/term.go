package runtime

import "fmt"

// RtTermColorI32 implements rt_term_color_i32(fg, bg): fg/bg in [0,15] (or
// -1 = unchanged). Codes 8-15 emit bright ANSI variants (90-97 foreground,
// 100-107 background); the basic palette never uses a 256-color escape.
func RtTermColorI32(fg, bg int32) string {
	var b []byte
	if fg != -1 {
		b = append(b, []byte(ansiCode(fg, true))...)
	}
	if bg != -1 {
		b = append(b, []byte(ansiCode(bg, false))...)
	}
	return string(b)
}

func ansiCode(color int32, foreground bool) string {
	base := 30
	bright := 90
	if !foreground {
		base = 40
		bright = 100
	}
	if color < 8 {
		return fmt.Sprintf("\x1b[%dm", base+int(color))
	}
	return fmt.Sprintf("\x1b[%dm", bright+int(color-8))
}
