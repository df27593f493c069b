package vellum

import (
	"image/color"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/image/colornames"
)

// Built-in style states.
const (
	StateDefault = "default"
	StateHover   = "hover"
	StateActive  = "active"

	stateTransition = "transition"
)

// StyleDefinition mutates a canvas to paint the current path.
type StyleDefinition interface {
	Apply(c Canvas)
}

// Props is the declarative style definition. Stroke and Fill select which
// paint operations run; nil colors fall back to black.
type Props struct {
	StrokeColor color.Color
	FillColor   color.Color
	LineWidth   float64
	Stroke      bool
	Fill        bool
}

// Apply sets the canvas state and paints the current path.
func (p Props) Apply(c Canvas) {
	w := p.LineWidth
	if w <= 0 {
		w = 1
	}
	c.SetLineWidth(w)
	if p.Fill {
		c.SetFillColor(orBlack(p.FillColor))
		c.Fill()
	}
	if p.Stroke {
		c.SetStrokeColor(orBlack(p.StrokeColor))
		c.Stroke()
	}
}

// StyleFunc is an opaque definition with direct access to the canvas. It is
// responsible for painting the path itself.
type StyleFunc func(c Canvas)

// Apply calls f.
func (f StyleFunc) Apply(c Canvas) { f(c) }

// DefaultProps strokes with a one pixel black line.
var DefaultProps = Props{StrokeColor: color.Black, LineWidth: 1, Stroke: true}

// Style is a named set of definitions, one per state. A Style may be shared
// by several shapes; it always holds a default definition.
type Style struct {
	id   uuid.UUID
	defs map[string]StyleDefinition
}

// NewStyle returns a style from defs. A missing or nil default is replaced
// by DefaultProps.
func NewStyle(defs map[string]StyleDefinition) *Style {
	s := &Style{id: uuid.New(), defs: make(map[string]StyleDefinition, len(defs)+1)}
	for k, d := range defs {
		if d != nil {
			s.defs[k] = d
		}
	}
	if _, ok := s.defs[StateDefault]; !ok {
		s.defs[StateDefault] = DefaultProps
	}
	return s
}

// PropsStyle is shorthand for a style with only a default definition.
func PropsStyle(p Props) *Style {
	return NewStyle(map[string]StyleDefinition{StateDefault: p})
}

// ID returns the style's id, used to share it through a Registry.
func (s *Style) ID() uuid.UUID { return s.id }

// Define sets the definition for state. Removing the default is not
// possible: a nil default resets it to DefaultProps.
func (s *Style) Define(state string, d StyleDefinition) {
	if d == nil {
		if state == StateDefault {
			s.defs[StateDefault] = DefaultProps
			return
		}
		delete(s.defs, state)
		return
	}
	s.defs[state] = d
}

// Definition returns the definition for state.
func (s *Style) Definition(state string) (StyleDefinition, bool) {
	d, ok := s.defs[state]
	return d, ok
}

// Has reports whether state is defined.
func (s *Style) Has(state string) bool {
	_, ok := s.defs[state]
	return ok
}

// Set paints the current path of l's canvas with the definition for state,
// falling back to the default.
func (s *Style) Set(l *Layer, state string) {
	d, ok := s.defs[state]
	if !ok {
		d = s.defs[StateDefault]
	}
	d.Apply(l.canvas)
}

// Transition interpolates colors and line width from one Props state to
// another on shape over d. The intermediate values belong to the shape, so
// a style shared by several shapes can transition on each of them
// independently. The shape renders as from until the first step and ends
// in state to.
func (s *Style) Transition(shape Shape, from, to string, d time.Duration, done func()) (*AnimationFrame, error) {
	const op = "Style.Transition"
	a, ok := s.defs[from].(Props)
	if !ok {
		return nil, argumentError(op, "state %q is not a property definition", from)
	}
	b, ok := s.defs[to].(Props)
	if !ok {
		return nil, argumentError(op, "state %q is not a property definition", to)
	}
	sb := shape.base()
	prevState, prevDef := sb.state, sb.transitional
	sb.transitional = a
	shape.SetState(stateTransition)
	af, err := shape.Animate(d, func(ratio float64) {
		if ratio >= 1 {
			sb.transitional = nil
			shape.SetState(to)
			return
		}
		sb.transitional = lerpProps(a, b, ratio)
	}, done)
	if err != nil {
		sb.state, sb.transitional = prevState, prevDef
		return nil, err
	}
	return af, nil
}

func lerpProps(a, b Props, t float64) Props {
	return Props{
		StrokeColor: lerpColor(orBlack(a.StrokeColor), orBlack(b.StrokeColor), t),
		FillColor:   lerpColor(orBlack(a.FillColor), orBlack(b.FillColor), t),
		LineWidth:   a.LineWidth + (b.LineWidth-a.LineWidth)*t,
		Stroke:      a.Stroke || b.Stroke,
		Fill:        a.Fill || b.Fill,
	}
}

func lerpColor(a, b color.Color, t float64) color.Color {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	mix := func(x, y uint32) uint16 {
		return uint16(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGBA64{R: mix(ar, br), G: mix(ag, bg), B: mix(ab, bb), A: mix(aa, ba)}
}

func orBlack(c color.Color) color.Color {
	if c == nil {
		return color.Black
	}
	return c
}

// ParseColor resolves a CSS-style color: a name from the SVG 1.1 palette
// ("red", "cornflowerblue") or a hex form #rgb, #rrggbb or #rrggbbaa.
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return nil, validationError("ParseColor", "unknown color %q", s)
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return nil, validationError("ParseColor", "malformed hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, validationError("ParseColor", "malformed hex color %q", s)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// MustParseColor is like ParseColor but panics on error.
func MustParseColor(s string) color.Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
