package runtime

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/splanck/viper-sub036/il"
)

// fileChannel is one open BASIC file handle. mode mirrors the BASIC OPEN
// statement's text/binary/random distinction; this core only needs to
// track it well enough to report it back, since actual I/O is byte-
// oriented regardless of mode.
type fileChannel struct {
	f    *os.File
	mode string
}

// RtPrintStr implements rt_print_str.
func RtPrintStr(w io.Writer, s *RtString) { fmt.Fprint(w, string(s.data)) }

// RtPrintI64 implements rt_print_i64.
func RtPrintI64(w io.Writer, v int64) { fmt.Fprint(w, strconv.FormatInt(v, 10)) }

// RtInputLine implements rt_input_line: reads one line, stripping a
// trailing "\r\n", "\n", or (if present without a preceding \n) nothing
// extra — handles files with or without a terminating newline.
func RtInputLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", trap(il.TrapOutOfMemory, "out of memory")
	}
	if err == io.EOF && line == "" {
		return "", io.EOF
	}
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
		if n := len(line); n > 0 && line[n-1] == '\r' {
			line = line[:n-1]
		}
	}
	return line, nil
}

// RtOpenErrVstr implements rt_open_err_vstr for a path and a mode: it
// opens the file and returns a newly assigned channel number; the caller
// does not choose the channel. A missing file yields Err_FileNotFound
// rather than a trap.
func (r *Runtime) RtOpenErrVstr(path, mode string) (int, RtError) {
	flag := os.O_RDONLY
	switch mode {
	case "output":
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case "append":
		flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	case "random", "binary":
		flag = os.O_RDWR | os.O_CREATE
	}
	f, err := os.OpenFile(path, flag, 0644)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, RtError{Kind: ErrFileNotFound}
		}
		return 0, RtError{Kind: ErrRuntimeError}
	}
	fd := r.nextFD
	r.nextFD++
	r.files[fd] = &fileChannel{f: f, mode: mode}
	return fd, NoError
}

// RtCloseErr implements rt_close_err(channel): closing an unopened channel
// yields Err_InvalidOperation.
func (r *Runtime) RtCloseErr(channel int) RtError {
	ch, ok := r.files[channel]
	if !ok {
		return RtError{Kind: ErrInvalidOperation}
	}
	delete(r.files, channel)
	if err := ch.f.Close(); err != nil {
		return RtError{Kind: ErrRuntimeError}
	}
	return NoError
}

// Channel returns the open file for channel, or nil if unopened.
func (r *Runtime) Channel(channel int) *os.File {
	if ch, ok := r.files[channel]; ok {
		return ch.f
	}
	return nil
}
