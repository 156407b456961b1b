package testkit

import (
	"fmt"
	"strings"
	"unsafe"

	"fortio.org/safecast"

	"cdoc/internal/cdoc"
)

// CheckEventInvariants runs the structural invariants of one parse pass over src:
// 1) event spans are in bounds, ordered and do not overlap
// 2) the first event (if any) is the description, starting at offset 0
// 3) every text field is a view into src located inside its event span
// 4) the tail is a suffix of src that starts at or after the last span
func CheckEventInvariants(src string, events []cdoc.Event, tail string) error {
	lenSrc, err := safecast.Conv[uint32](len(src))
	if err != nil {
		return fmt.Errorf("len src overflow: %w", err)
	}

	var prevEnd uint32
	for i, ev := range events {
		if ev.Start > ev.End || ev.End > lenSrc {
			return fmt.Errorf("event %d: span %d-%d out of bounds (len %d)", i, ev.Start, ev.End, lenSrc)
		}
		if ev.Start < prevEnd {
			return fmt.Errorf("event %d: span %d-%d overlaps previous end %d", i, ev.Start, ev.End, prevEnd)
		}
		prevEnd = ev.End

		switch {
		case i == 0 && ev.Kind != cdoc.EventDescription:
			return fmt.Errorf("event 0 is %s, want description", ev.Kind)
		case i == 0 && ev.Start != 0:
			return fmt.Errorf("description starts at %d, want 0", ev.Start)
		case i > 0 && ev.Kind != cdoc.EventAttr:
			return fmt.Errorf("event %d is %s, want attr", i, ev.Kind)
		}

		if ev.Kind == cdoc.EventDescription {
			if err := checkView(src, ev.Text, ev.Start, ev.End); err != nil {
				return fmt.Errorf("event %d text: %w", i, err)
			}
			continue
		}
		if err := checkView(src, ev.Attr.Name, ev.Start, ev.End); err != nil {
			return fmt.Errorf("event %d name: %w", i, err)
		}
		if ev.Attr.HasDesc {
			if ev.Attr.Desc == "" {
				return fmt.Errorf("event %d: present description is empty", i)
			}
			if err := checkView(src, ev.Attr.Desc, ev.Start, ev.End); err != nil {
				return fmt.Errorf("event %d desc: %w", i, err)
			}
		}
	}

	if !strings.HasSuffix(src, tail) {
		return fmt.Errorf("tail %q is not a suffix of the input", tail)
	}
	if tail != "" && uint32(len(src)-len(tail)) < prevEnd { //nolint:gosec // fits, checked above
		return fmt.Errorf("tail overlaps the last event")
	}
	return nil
}

// checkView reports an error unless s shares memory with src[start:end].
// Empty strings have no backing memory and always pass.
func checkView(src, s string, start, end uint32) error {
	if s == "" {
		return nil
	}
	base := uintptr(unsafe.Pointer(unsafe.StringData(src)))
	ptr := uintptr(unsafe.Pointer(unsafe.StringData(s)))
	if ptr < base || ptr+uintptr(len(s)) > base+uintptr(len(src)) {
		return fmt.Errorf("%q is a copy, not a view into the input", s)
	}
	off := ptr - base
	if off < uintptr(start) || off+uintptr(len(s)) > uintptr(end) {
		return fmt.Errorf("%q at %d lies outside span %d-%d", s, off, start, end)
	}
	return nil
}
