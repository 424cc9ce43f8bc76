// Copyright 2024 The Viper Authors
// This file is part of Viper.

// Package debug is the VM's observer layer: breakpoints, instruction/source
// tracing, watches, scripted stepping, and the final run summary. It
// implements vm.Hooks rather than the VM importing it, so a VM can run with
// no debug layer attached at all (vm.noopHooks) and the vm package never
// depends on this one.
package debug

import (
	"strconv"
	"strings"
)

// BreakKind distinguishes a block-label breakpoint from a source/IL line
// breakpoint given as "path:line".
type BreakKind int

const (
	BreakLabel BreakKind = iota
	BreakSrc
)

// Breakpoint is one parsed --break/--break-src argument.
type Breakpoint struct {
	Kind  BreakKind
	Label string
	Path  string
	Line  int
}

// ParseBreakSpec classifies spec as a block-label or a source/IL line
// breakpoint, grounded on tools/ilc/break_spec.hpp's isSrcBreakSpec
// heuristic: a source spec has at least one path separator or a dot on the
// left of the last colon and a run of decimal digits on the right;
// whitespace around the colon and the digits is tolerated.
func ParseBreakSpec(spec string) Breakpoint {
	if path, line, ok := parseSrcSpec(spec); ok {
		return Breakpoint{Kind: BreakSrc, Path: NormalizePath(path), Line: line}
	}
	return Breakpoint{Kind: BreakLabel, Label: strings.TrimSpace(spec)}
}

func parseSrcSpec(spec string) (path string, line int, ok bool) {
	idx := strings.LastIndex(spec, ":")
	if idx < 0 {
		return "", 0, false
	}
	left := strings.TrimSpace(spec[:idx])
	right := strings.TrimSpace(spec[idx+1:])
	if left == "" || right == "" {
		return "", 0, false
	}
	if !strings.ContainsAny(left, "/\\.") {
		return "", 0, false
	}
	for _, r := range right {
		if r < '0' || r > '9' {
			return "", 0, false
		}
	}
	n, err := strconv.Atoi(right)
	if err != nil {
		return "", 0, false
	}
	return left, n, true
}
