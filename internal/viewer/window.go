package viewer

import (
	"context"
	"image/color"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"yashubustudio/ppinet/ppinet"
)

const fyneAppID = "studio.yashubu.ppinet"

var (
	edgeColor  = color.NRGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}
	textColor  = color.NRGBA{A: 0xff}
	paperColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	defaultNodeColor = color.NRGBA{R: 0x87, G: 0xce, B: 0xeb, A: 0xff}
)

// Window renders the interaction network in a desktop window.
type Window struct {
	cfg ppinet.ViewConfig
}

// NewWindow returns a renderer drawing with cfg.
func NewWindow(cfg ppinet.ViewConfig) *Window {
	return &Window{cfg: cfg}
}

// Render shows the network and blocks until the window is closed.
func (w *Window) Render(ctx context.Context, g *ppinet.InteractionGraph, pos ppinet.Layout) error {
	a := fyneapp.NewWithID(fyneAppID)
	win := a.NewWindow(w.cfg.Title)
	win.Resize(fyne.NewSize(w.cfg.Width, w.cfg.Height))
	win.SetContent(NewNetworkView(BuildScene(g, pos, w.cfg.Title), w.cfg))

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			fyne.Do(win.Close)
		case <-done:
		}
	}()

	win.ShowAndRun()
	return ctx.Err()
}

// NewNetworkView returns the titled network drawing for scene.
func NewNetworkView(scene Scene, cfg ppinet.ViewConfig) fyne.CanvasObject {
	title := widget.NewLabelWithStyle(scene.Title, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	return container.NewBorder(title, nil, nil, nil, NewNetworkCanvas(scene, cfg))
}

// NewNetworkCanvas draws nodes as filled labelled circles and edges as lines with
// their weight at the midpoint. Shapes follow the container size.
func NewNetworkCanvas(scene Scene, cfg ppinet.ViewConfig) *fyne.Container {
	fill, err := ParseHexColor(cfg.NodeColor)
	if err != nil {
		fill = defaultNodeColor
	}
	l := &networkLayout{
		scene:  scene,
		radius: cfg.NodeRadius,
		paper:  canvas.NewRectangle(paperColor),
	}
	objects := []fyne.CanvasObject{l.paper}
	for range scene.Edges {
		line := canvas.NewLine(edgeColor)
		line.StrokeWidth = 1
		l.lines = append(l.lines, line)
		objects = append(objects, line)
	}
	for _, e := range scene.Edges {
		txt := canvas.NewText(e.Label, textColor)
		txt.TextSize = cfg.FontSize
		l.weights = append(l.weights, txt)
		objects = append(objects, txt)
	}
	for _, n := range scene.Nodes {
		circle := canvas.NewCircle(fill)
		l.circles = append(l.circles, circle)
		objects = append(objects, circle)

		txt := canvas.NewText(n.Name, textColor)
		txt.TextSize = cfg.FontSize
		txt.TextStyle = fyne.TextStyle{Bold: true}
		l.labels = append(l.labels, txt)
		objects = append(objects, txt)
	}
	return container.New(l, objects...)
}

type networkLayout struct {
	scene  Scene
	radius float32

	paper   *canvas.Rectangle
	lines   []*canvas.Line
	weights []*canvas.Text
	circles []*canvas.Circle
	labels  []*canvas.Text
}

// project maps unit-square coordinates into the drawable area, keeping a margin of
// one node radius on every side.
func (l *networkLayout) project(x, y float64, size fyne.Size) fyne.Position {
	w := size.Width - 2*l.radius
	h := size.Height - 2*l.radius
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return fyne.NewPos(l.radius+float32(x)*w, l.radius+float32(y)*h)
}

func (l *networkLayout) Layout(_ []fyne.CanvasObject, size fyne.Size) {
	l.paper.Move(fyne.NewPos(0, 0))
	l.paper.Resize(size)

	for i, e := range l.scene.Edges {
		line := l.lines[i]
		line.Position1 = l.project(e.X1, e.Y1, size)
		line.Position2 = l.project(e.X2, e.Y2, size)

		mid := l.project(e.MidX(), e.MidY(), size)
		txt := l.weights[i]
		ts := fyne.MeasureText(txt.Text, txt.TextSize, txt.TextStyle)
		txt.Move(fyne.NewPos(mid.X-ts.Width/2, mid.Y-ts.Height/2))
		txt.Resize(ts)
	}
	d := fyne.NewSize(2*l.radius, 2*l.radius)
	for i, n := range l.scene.Nodes {
		c := l.project(n.X, n.Y, size)
		l.circles[i].Move(fyne.NewPos(c.X-l.radius, c.Y-l.radius))
		l.circles[i].Resize(d)

		txt := l.labels[i]
		ts := fyne.MeasureText(txt.Text, txt.TextSize, txt.TextStyle)
		txt.Move(fyne.NewPos(c.X-ts.Width/2, c.Y-ts.Height/2))
		txt.Resize(ts)
	}
}

func (l *networkLayout) MinSize(_ []fyne.CanvasObject) fyne.Size {
	side := 4 * l.radius
	return fyne.NewSize(side, side)
}
