package testkit

import (
	"fmt"
	"strings"
)

// CheckAsm checks the shape of emitted assembly text:
// 1) it starts with the prelude, which ends in halt before the first label
// 2) every label is defined once and every call target is defined
// 3) every non-label line is indented
func CheckAsm(text string) error {
	defined := make(map[string]int)
	var calls []string
	seenLabel, seenHalt := false, false
	for i, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		trimmed := strings.TrimSpace(line)
		if name, ok := strings.CutSuffix(trimmed, ":"); ok {
			if line != trimmed {
				return fmt.Errorf("line %d: label %q is indented", i+1, name)
			}
			if !seenHalt {
				return fmt.Errorf("line %d: label %q precedes the prelude halt", i+1, name)
			}
			defined[name]++
			seenLabel = true
			continue
		}
		if line == trimmed {
			return fmt.Errorf("line %d: instruction %q is not indented", i+1, trimmed)
		}
		if trimmed == "halt" && !seenLabel {
			seenHalt = true
		}
		if target, ok := strings.CutPrefix(trimmed, "call "); ok {
			calls = append(calls, target)
		}
	}
	for name, n := range defined {
		if n != 1 {
			return fmt.Errorf("label %q defined %d times", name, n)
		}
	}
	for _, c := range calls {
		if defined[c] == 0 {
			return fmt.Errorf("call target %q is not defined", c)
		}
	}
	return nil
}
