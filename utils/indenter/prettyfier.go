package indenter

import (
	"fmt"
	"strings"
)

// Composable pretty-printer for block-structured values. Every chain
// owns its buffer, so a String method may nest other String methods
// without clobbering an enclosing chain.
type indenter struct {
	buf   strings.Builder
	level int
}

func Indenter() *indenter {
	return &indenter{}
}

func (i *indenter) indent() string {
	return strings.Repeat("  ", i.level)
}

// reindent aligns continuation lines of a nested multi-line value with
// the current nesting level.
func (i *indenter) reindent(str string) string {
	if !strings.Contains(str, "\n") {
		return str
	}
	return strings.ReplaceAll(str, "\n", "\n"+i.indent())
}

func (i *indenter) Start(str string) *indenter {
	i.buf.WriteString(str)
	return i
}

type stringableString string

func (s stringableString) String() string {
	return string(s)
}

func (i *indenter) NestStrings(strs ...string) *indenter {
	return i.NestStringsSep("", strs...)
}

func (i *indenter) NestStringsSep(sep string, strs ...string) *indenter {
	stringers := make([]fmt.Stringer, len(strs))
	for j, v := range strs {
		stringers[j] = stringableString(v)
	}
	return i.NestSep(sep, stringers...)
}

func (i *indenter) Nest(strs ...fmt.Stringer) *indenter {
	return i.NestSep("", strs...)
}

func (i *indenter) NestSep(sep string, strs ...fmt.Stringer) *indenter {
	thunks := make([]func() string, len(strs))
	for j, v := range strs {
		thunks[j] = v.String
	}
	return i.NestThunkedSep(sep, thunks...)
}

func (i *indenter) NestThunked(strs ...func() string) *indenter {
	return i.NestThunkedSep("", strs...)
}

func (i *indenter) NestThunkedSep(sep string, strs ...func() string) *indenter {
	if len(strs) == 1 {
		i.buf.WriteString(i.reindent(strs[0]()))
		return i
	}

	i.level++
	for j, str := range strs {
		i.buf.WriteString("\n" + i.indent() + i.reindent(str()))
		if j < len(strs)-1 {
			i.buf.WriteString(sep)
		}
	}
	i.level--
	i.buf.WriteString("\n")
	return i
}

func (i *indenter) End(str string) string {
	res := i.buf.String()
	if len(res) > 0 && res[len(res)-1] == '\n' {
		return res + i.indent() + str
	}
	return res + str
}
