package viewer

import (
	"image/color"
	"testing"

	"yashubustudio/ppinet/ppinet"
)

func TestBuildScene(t *testing.T) {
	g := ppinet.NewInteractionGraph()
	g.SetEdge("TP53", "MDM2", 0.99)
	g.SetEdge("MDM2", "MDM2", 0.5)
	g.SetEdge("BRCA1", "TP53", 0.8)
	pos := ppinet.Layout{
		"TP53":  {X: 0, Y: 0},
		"MDM2":  {X: 1, Y: 1},
		"BRCA1": {X: -1, Y: -1},
	}

	scene := BuildScene(g, pos, "Protein Interaction Network")
	if scene.Title != "Protein Interaction Network" {
		t.Errorf("title = %q", scene.Title)
	}
	if len(scene.Nodes) != 3 || scene.Nodes[0].Name != "BRCA1" || scene.Nodes[2].Name != "TP53" {
		t.Fatalf("nodes = %+v", scene.Nodes)
	}
	if n := scene.Nodes[0]; n.X != 0 || n.Y != 1 {
		t.Errorf("BRCA1 should map to the bottom-left corner, got %+v", n)
	}
	if len(scene.Edges) != 2 {
		t.Fatalf("self loop should not be drawn, edges = %+v", scene.Edges)
	}
	e := scene.Edges[0]
	if e.A != "TP53" || e.B != "MDM2" || e.Label != "0.99" {
		t.Errorf("first edge = %+v", e)
	}
	if e.MidX() != 0.75 || e.MidY() != 0.25 {
		t.Errorf("midpoint = (%v, %v)", e.MidX(), e.MidY())
	}
}

func TestFormatWeight(t *testing.T) {
	for in, want := range map[float64]string{0.5: "0.5", 0.999: "0.999", 1: "1", 0.123456: "0.123456"} {
		if got := FormatWeight(in); got != want {
			t.Errorf("FormatWeight(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: "#87ceeb", want: color.NRGBA{R: 0x87, G: 0xce, B: 0xeb, A: 0xff}},
		{in: "fff", want: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{in: " #0A0 ", want: color.NRGBA{G: 0xaa, A: 0xff}},
		{in: "skyblue", wantErr: true},
		{in: "#12345", wantErr: true},
		{in: "#gggggg", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseHexColor(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseHexColor(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}
