package runtime

import "github.com/splanck/viper-sub036/il"

// RtArgsPush implements rt_args_push: retains a copy of s.
func (r *Runtime) RtArgsPush(s string) {
	r.args = append(r.args, s)
}

// RtArgsCount implements rt_args_count.
func (r *Runtime) RtArgsCount() int64 { return int64(len(r.args)) }

// RtArgsGet implements rt_args_get(i): traps on out-of-range i.
func (r *Runtime) RtArgsGet(i int64) (string, error) {
	if i < 0 || i >= int64(len(r.args)) {
		return "", trap(il.TrapBounds, "rt_args_get: index out of range")
	}
	return r.args[i], nil
}

// RtArgsClear implements rt_args_clear.
func (r *Runtime) RtArgsClear() { r.args = nil }

// RtCmdline implements rt_cmdline: args joined with a single space, the
// conventional shell-visible form.
func (r *Runtime) RtCmdline() string {
	s := ""
	for i, a := range r.args {
		if i > 0 {
			s += " "
		}
		s += a
	}
	return s
}
