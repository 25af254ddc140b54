package viewer

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"yashubustudio/ppinet/ppinet"
)

// NodeMark is a labelled node placed in the unit square, y growing downwards.
type NodeMark struct {
	Name string
	X    float64
	Y    float64
}

// EdgeMark is a line between two nodes annotated with its weight.
type EdgeMark struct {
	A      string
	B      string
	X1, Y1 float64
	X2, Y2 float64
	Weight float64
	Label  string
}

// MidX returns the x coordinate of the label anchor.
func (e EdgeMark) MidX() float64 { return (e.X1 + e.X2) / 2 }

// MidY returns the y coordinate of the label anchor.
func (e EdgeMark) MidY() float64 { return (e.Y1 + e.Y2) / 2 }

// Scene is everything the window draws, independent of the toolkit.
type Scene struct {
	Title string
	Nodes []NodeMark
	Edges []EdgeMark
}

// BuildScene converts a graph and its layout into drawable marks. Nodes are listed
// alphabetically, edges in graph order; self loops are not drawn.
func BuildScene(g *ppinet.InteractionGraph, pos ppinet.Layout, title string) Scene {
	scene := Scene{Title: title}
	for _, name := range g.Nodes() {
		x, y := toUnit(pos[name])
		scene.Nodes = append(scene.Nodes, NodeMark{Name: name, X: x, Y: y})
	}
	for _, e := range g.Edges() {
		if e.SelfLoop() {
			continue
		}
		x1, y1 := toUnit(pos[e.A])
		x2, y2 := toUnit(pos[e.B])
		scene.Edges = append(scene.Edges, EdgeMark{
			A: e.A, B: e.B,
			X1: x1, Y1: y1, X2: x2, Y2: y2,
			Weight: e.Weight,
			Label:  FormatWeight(e.Weight),
		})
	}
	return scene
}

// FormatWeight renders a weight with the shortest exact decimal form.
func FormatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// toUnit maps layout space [-1, 1] to the unit square with y flipped for screens.
func toUnit(p ppinet.Position) (float64, float64) {
	return (p.X + 1) / 2, (1 - p.Y) / 2
}

// ParseHexColor parses #rgb or #rrggbb.
func ParseHexColor(s string) (color.NRGBA, error) {
	c := color.NRGBA{A: 0xff}
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return c, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return c, fmt.Errorf("invalid colour %q", s)
	}
	c.R = uint8(v >> 16)
	c.G = uint8(v >> 8)
	c.B = uint8(v)
	return c, nil
}
