/*
Copyright (C) 2024-2026  Carl-Philip Hänsch

    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package runtime

import (
	"fmt"
	"io"
	"math/rand"
	"regexp"
	"strings"

	"github.com/launix-de/awkjit/value"
)

// LiveHost is the production Host: real record I/O through a
// RecordReader, real arrays, real stdout, a real PRNG.
type LiveHost struct {
	Reader RecordReader
	Out    io.Writer
	Arrays *ArrayTable
	Fatal  func(ErrorCode, string) // invoked by PrintError; nil means panic with the diagnostic

	seed    float64
	rng     *rand.Rand
	regexes map[string]*regexp.Regexp
}

func NewLiveHost(reader RecordReader, out io.Writer) *LiveHost {
	return &LiveHost{
		Reader:  reader,
		Out:     out,
		Arrays:  NewArrayTable(),
		rng:     rand.New(rand.NewSource(1)),
		regexes: make(map[string]*regexp.Regexp),
	}
}

func (h *LiveHost) NextLine() float64 {
	if h.Reader.NextLine() {
		return 1.0
	}
	return 0.0
}

func (h *LiveHost) Column(tag value.Tag, f float64, ptr *value.Str) *value.Str {
	var n int
	if tag == value.StringTag {
		n = int(value.ParseLeadingNumber(ptr.Data))
		freeString(ptr)
	} else {
		n = int(f)
	}
	return newOwnedString(h.Reader.Field(n))
}

func (h *LiveHost) FreeString(p *value.Str)        { freeString(p) }
func (h *LiveHost) CopyString(p *value.Str) *value.Str { return copyString(p) }
func (h *LiveHost) EmptyString() *value.Str        { return newOwnedString("") }

func (h *LiveHost) StringToNumber(p *value.Str) float64 { return value.ParseLeadingNumber(p.Data) }
func (h *LiveHost) NumberToString(f float64) *value.Str { return newOwnedString(value.FormatNumber(f)) }

func (h *LiveHost) PrintString(p *value.Str) {
	io.WriteString(h.Out, p.Data)
	io.WriteString(h.Out, "\n")
	freeString(p)
}
func (h *LiveHost) PrintFloat(f float64) {
	fmt.Fprintf(h.Out, "%s\n", value.FormatNumber(f))
}

func (h *LiveHost) Concat(a, b *value.Str) *value.Str { return concatStrings(a, b, 0) }
func (h *LiveHost) ConcatArrayIndices(a, b *value.Str) *value.Str {
	return concatStrings(a, b, subsep)
}

func (h *LiveHost) Binop(l, r *value.Str, op value.CompareOp) float64 {
	defer freeString(l)
	defer freeString(r)
	switch op {
	case value.OpLt:
		return boolToFloat(l.Data < r.Data)
	case value.OpLe:
		return boolToFloat(l.Data <= r.Data)
	case value.OpGt:
		return boolToFloat(l.Data > r.Data)
	case value.OpGe:
		return boolToFloat(l.Data >= r.Data)
	case value.OpEq:
		return boolToFloat(l.Data == r.Data)
	case value.OpNe:
		return boolToFloat(l.Data != r.Data)
	case value.OpMatch, value.OpNotMatch:
		re, err := h.compileRegex(r.Data)
		if err != nil {
			h.fatal(ErrRegex, err.Error())
			return 0.0
		}
		matched := re.MatchString(l.Data)
		if op == value.OpNotMatch {
			matched = !matched
		}
		return boolToFloat(matched)
	default:
		panic("runtime: unknown compare op — codegen/typing bug")
	}
}

func (h *LiveHost) compileRegex(pattern string) (*regexp.Regexp, error) {
	if re, ok := h.regexes[pattern]; ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	h.regexes[pattern] = re
	return re, nil
}

func (h *LiveHost) ArrayAccess(id int, keyTag value.Tag, keyF float64, keyPtr *value.Str) value.Value {
	return h.Arrays.Access(id, h.keyString(keyTag, keyF, keyPtr))
}
func (h *LiveHost) ArrayAssign(id int, keyTag value.Tag, keyF float64, keyPtr *value.Str, val value.Value) {
	h.Arrays.Assign(id, h.keyString(keyTag, keyF, keyPtr), val)
}
func (h *LiveHost) InArray(id int, keyTag value.Tag, keyF float64, keyPtr *value.Str) float64 {
	return h.Arrays.In(id, h.keyString(keyTag, keyF, keyPtr))
}

// keyString materializes an owned string key from a tag/float/ptr triple,
// the same conversion compileArrayKey applies to multi-index keys before
// calling through.
func (h *LiveHost) keyString(tag value.Tag, f float64, ptr *value.Str) *value.Str {
	if tag == value.StringTag {
		return ptr
	}
	return newOwnedString(value.FormatNumber(f))
}

func (h *LiveHost) Rand() float64 { return h.rng.Float64() }
func (h *LiveHost) Srand(seed float64) float64 {
	prior := h.seed
	h.seed = seed
	h.rng = rand.New(rand.NewSource(int64(seed)))
	return prior
}
func (h *LiveHost) Length(p *value.Str) float64 {
	n := len(p.Data)
	freeString(p)
	return float64(n)
}
func (h *LiveHost) ToLower(p *value.Str) *value.Str {
	s := strings.ToLower(p.Data)
	freeString(p)
	return newOwnedString(s)
}
func (h *LiveHost) ToUpper(p *value.Str) *value.Str {
	s := strings.ToUpper(p.Data)
	freeString(p)
	return newOwnedString(s)
}

func (h *LiveHost) PrintError(code ErrorCode, detail string) {
	h.fatal(code, detail)
}

func (h *LiveHost) fatal(code ErrorCode, detail string) {
	if h.Fatal != nil {
		h.Fatal(code, detail)
		return
	}
	panic(fmt.Sprintf("awk: %s: %s", code, detail))
}

func boolToFloat(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}
