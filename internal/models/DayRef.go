package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DayRef is the parsed form of a Location's day field, e.g. "D4" or "D5-D7".
// It keeps the day numbers as tokens and everything between them as literal
// text, so rewriting the numbers and printing it back preserves the original
// layout.
type DayRef struct {
	parts []refPart
	null  bool // decoded from JSON null and not rewritten since
}

type refPart struct {
	day  int
	text string
	lit  bool
}

// DayID formats a day number as an id, e.g. 3 -> "D3".
func DayID(n int) string {
	return "D" + strconv.Itoa(n)
}

// ParseDayRef tokenizes s. Any "D" directly followed by digits is a day token.
func ParseDayRef(s string) DayRef {
	var ref DayRef
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			ref.parts = append(ref.parts, refPart{text: lit.String(), lit: true})
			lit.Reset()
		}
	}

	for i := 0; i < len(s); {
		if s[i] == 'D' {
			j := i + 1
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			if j > i+1 {
				n, err := strconv.Atoi(s[i+1 : j])
				if err == nil {
					flush()
					ref.parts = append(ref.parts, refPart{day: n})
					i = j
					continue
				}
			}
		}
		lit.WriteByte(s[i])
		i++
	}
	flush()
	return ref
}

func (r DayRef) String() string {
	var b strings.Builder
	for _, p := range r.parts {
		if p.lit {
			b.WriteString(p.text)
		} else {
			b.WriteString(DayID(p.day))
		}
	}
	return b.String()
}

// IsZero reports whether the reference is empty.
func (r DayRef) IsZero() bool {
	return len(r.parts) == 0
}

// Days returns the day numbers in textual order.
func (r DayRef) Days() []int {
	var out []int
	for _, p := range r.parts {
		if !p.lit {
			out = append(out, p.day)
		}
	}
	return out
}

// Single reports the day number when r is exactly one token with no other text.
func (r DayRef) Single() (int, bool) {
	if len(r.parts) == 1 && !r.parts[0].lit {
		return r.parts[0].day, true
	}
	return 0, false
}

// Contains reports whether day n appears as a whole token.
func (r DayRef) Contains(n int) bool {
	for _, p := range r.parts {
		if !p.lit && p.day == n {
			return true
		}
	}
	return false
}

// Map returns a copy with every day token replaced by fn(day). fn always sees
// the value from r, never an already rewritten one.
func (r DayRef) Map(fn func(int) int) DayRef {
	out := DayRef{parts: make([]refPart, len(r.parts))}
	for i, p := range r.parts {
		if !p.lit {
			p.day = fn(p.day)
		}
		out.parts[i] = p
	}
	return out
}

// Without drops every token equal to n and joins the remaining tokens with "-".
func (r DayRef) Without(n int) DayRef {
	var out DayRef
	for _, d := range r.Days() {
		if d == n {
			continue
		}
		if !out.IsZero() {
			out.parts = append(out.parts, refPart{text: "-", lit: true})
		}
		out.parts = append(out.parts, refPart{day: d})
	}
	return out
}

func (r DayRef) clone() DayRef {
	if r.parts == nil {
		return DayRef{null: r.null}
	}
	return DayRef{parts: append(make([]refPart, 0, len(r.parts)), r.parts...)}
}

func (r DayRef) MarshalJSON() ([]byte, error) {
	if r.null && r.IsZero() {
		return []byte("null"), nil
	}
	return marshalRaw(r.String())
}

func (r *DayRef) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = DayRef{null: true}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("day reference must be a string: %w", err)
	}
	*r = ParseDayRef(s)
	return nil
}
