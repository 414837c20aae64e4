package codegen

import (
	"fmt"
	"strconv"
	"strings"
)

// generator accumulates lines and joins them once at the end, so structural
// rules stay testable without string-diffing whole programs.
type generator struct {
	sb     strings.Builder
	indent int
	unit   string
}

func newGenerator(unit string) *generator {
	return &generator{
		unit: unit,
	}
}

func (g *generator) emitLine(s string) {
	if s == "" {
		g.sb.WriteString("\n")
		return
	}
	for i := 0; i < g.indent; i++ {
		g.sb.WriteString(g.unit)
	}
	g.sb.WriteString(s)
	g.sb.WriteString("\n")
}

func (g *generator) emitLinef(format string, args ...interface{}) {
	g.emitLine(fmt.Sprintf(format, args...))
}

func (g *generator) emitRaw(s string) {
	g.sb.WriteString(s)
}

func (g *generator) String() string {
	return g.sb.String()
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
