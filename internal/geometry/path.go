package geometry

import (
	"strconv"
	"strings"
)

// DefaultPrecision is the number of decimals written for path coordinates.
const DefaultPrecision = 2

// D returns the SVG path data for the slice at DefaultPrecision.
func (a ArcPath) D() string {
	return a.DWithPrecision(DefaultPrecision)
}

// DWithPrecision returns the SVG path data with prec decimals per
// coordinate (trailing zeros trimmed). A negative prec writes the shortest
// exact representation.
//
// A zero-span slice has nothing to fill and yields "". A full-circle slice
// is written as two half arcs, because an SVG arc whose endpoints coincide
// draws nothing; for a donut the hole is a second sub-path wound the other
// way. A slice just short of a full turn whose arc endpoints meet at prec
// is split the same way through its middle angle.
func (a ArcPath) DWithPrecision(prec int) string {
	if a.Span <= 0 {
		return ""
	}

	p := pathWriter{prec: prec}
	if a.IsFullCircle() {
		a.writeFullCircle(&p)
		return p.String()
	}

	mid := a.StartAngle + a.Span/2
	p.move(a.OuterStart)
	p.arcTo(a.Center, a.OuterRadius, a.LargeArc, a.OuterSweep, a.OuterStart, a.OuterEnd, mid)
	if a.IsPie() {
		p.line(a.Center)
	} else {
		p.line(a.InnerEnd)
		p.arcTo(a.Center, a.InnerRadius, a.LargeArc, a.InnerSweep, a.InnerEnd, a.InnerStart, mid)
	}
	p.close()
	return p.String()
}

func (a ArcPath) writeFullCircle(p *pathWriter) {
	opposite := a.StartAngle + fullCircle/2

	p.move(a.OuterStart)
	p.arc(a.OuterRadius, 0, a.OuterSweep, PointAt(a.Center, a.OuterRadius, opposite))
	p.arc(a.OuterRadius, 0, a.OuterSweep, a.OuterStart)
	p.close()

	if a.IsPie() {
		return
	}
	p.move(a.InnerStart)
	p.arc(a.InnerRadius, 0, a.InnerSweep, PointAt(a.Center, a.InnerRadius, opposite))
	p.arc(a.InnerRadius, 0, a.InnerSweep, a.InnerStart)
	p.close()
}

// pathWriter accumulates path commands separated by single spaces.
type pathWriter struct {
	sb   strings.Builder
	prec int
}

func (p *pathWriter) cmd(s string) {
	if p.sb.Len() > 0 {
		p.sb.WriteByte(' ')
	}
	p.sb.WriteString(s)
}

func (p *pathWriter) pt(pt Point) string {
	return formatCoord(pt.X, p.prec) + "," + formatCoord(pt.Y, p.prec)
}

func (p *pathWriter) move(to Point) {
	p.cmd("M" + p.pt(to))
}

func (p *pathWriter) line(to Point) {
	p.cmd("L" + p.pt(to))
}

func (p *pathWriter) arc(r float64, large, sweep int, to Point) {
	rs := formatCoord(r, p.prec)
	p.cmd("A" + rs + "," + rs + " 0 " + strconv.Itoa(large) + "," + strconv.Itoa(sweep) + " " + p.pt(to))
}

// arcTo writes an arc from the current point from to to. A large arc whose
// endpoints round to the same coordinates is split at midAngle into two
// small arcs, since SVG drops an arc that starts where it ends.
func (p *pathWriter) arcTo(center Point, r float64, large, sweep int, from, to Point, midAngle float64) {
	if large == 1 && p.pt(from) == p.pt(to) {
		p.arc(r, 0, sweep, PointAt(center, r, midAngle))
		p.arc(r, 0, sweep, to)
		return
	}
	p.arc(r, large, sweep, to)
}

func (p *pathWriter) close() {
	p.cmd("Z")
}

func (p *pathWriter) String() string {
	return p.sb.String()
}

// formatCoord writes v with at most prec decimals and no trailing zeros.
func formatCoord(v float64, prec int) string {
	if prec < 0 {
		prec = -1
	}
	s := strconv.FormatFloat(v, 'f', prec, 64)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		return "0"
	}
	return s
}
