// Package ui holds the ebitenui overlays drawn on top of the game.
package ui

import (
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/houyi/common"
	"github.com/milk9111/houyi/progress"
	"github.com/milk9111/houyi/render"
	"github.com/milk9111/houyi/scene"
	"golang.org/x/image/font/basicfont"
)

const (
	contextWidth = 560
	buttonWidth  = 400
	buttonHeight = 40
)

var (
	white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	scrim = color.NRGBA{A: 204}
	idle  = color.NRGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}
	hover = color.NRGBA{R: 0x66, G: 0x66, B: 0x66, A: 0xff}
)

// pending is one outstanding question. Its channel carries at most one
// answer and is closed once the question is settled.
type pending struct {
	ch   chan progress.Choice
	done bool
}

func newPending() *pending {
	return &pending{ch: make(chan progress.Choice, 1)}
}

func (p *pending) resolve(c progress.Choice) bool {
	if p == nil || p.done {
		return false
	}
	p.done = true
	p.ch <- c
	close(p.ch)
	return true
}

// dismiss settles the question without an answer.
func (p *pending) dismiss() {
	if p == nil || p.done {
		return
	}
	p.done = true
	close(p.ch)
}

// ChoiceOverlay shows a modal prompt with one button per option.
type ChoiceOverlay struct {
	logger *log.Logger
	face   ebtext.Face
	ui     *ebitenui.UI
	ask    *pending
}

func NewChoiceOverlay(logger *log.Logger) *ChoiceOverlay {
	if logger == nil {
		logger = log.Default()
	}
	return &ChoiceOverlay{logger: logger, face: ebtext.NewGoXFace(basicfont.Face7x13)}
}

// Ask opens the overlay. A question still open is dismissed first.
func (o *ChoiceOverlay) Ask(p scene.Prompt) <-chan progress.Choice {
	o.ask.dismiss()
	o.ask = newPending()
	o.ui = o.build(p, o.ask)
	o.logger.Debug("choice overlay opened", "title", p.Title, "options", len(p.Options))
	return o.ask.ch
}

// Open reports whether a question is on screen.
func (o *ChoiceOverlay) Open() bool {
	return o != nil && o.ask != nil && !o.ask.done
}

// Dismiss closes the overlay without an answer.
func (o *ChoiceOverlay) Dismiss() {
	if o == nil {
		return
	}
	o.ask.dismiss()
	o.ui = nil
}

func (o *ChoiceOverlay) Update() {
	if !o.Open() || o.ui == nil {
		return
	}
	o.ui.Update()
}

func (o *ChoiceOverlay) Draw(screen *ebiten.Image) {
	if !o.Open() || o.ui == nil {
		return
	}
	o.ui.Draw(screen)
}

// MeasureText lets render.Wrap lay out text in the overlay font.
func (o *ChoiceOverlay) MeasureText(s string, _ float64) float64 {
	w, _ := ebtext.Measure(s, o.face, 0)
	return w
}

func (o *ChoiceOverlay) build(p scene.Prompt, ask *pending) *ebitenui.UI {
	face := o.face
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	panel := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(15),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)

	panel.AddChild(widget.NewText(
		widget.TextOpts.Text(p.Title, &face, white),
		widget.TextOpts.WidgetOpts(center),
	))
	for _, row := range render.Wrap(o, p.Context, 0, contextWidth) {
		panel.AddChild(widget.NewText(
			widget.TextOpts.Text(row, &face, white),
			widget.TextOpts.WidgetOpts(center),
		))
	}

	btnImg := &widget.ButtonImage{
		Idle:    imageui.NewNineSliceColor(idle),
		Hover:   imageui.NewNineSliceColor(hover),
		Pressed: imageui.NewNineSliceColor(hover),
	}
	btnText := &widget.ButtonTextColor{Idle: white}
	for _, opt := range p.Options {
		choice := opt.Choice
		panel.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(btnImg),
			widget.ButtonOpts.Text(opt.Label, &face, btnText),
			widget.ButtonOpts.WidgetOpts(center, widget.WidgetOpts.MinSize(buttonWidth, buttonHeight)),
			widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
				if ask.resolve(choice) {
					o.logger.Info("choice made", "choice", choice)
				}
			}),
		))
	}

	root := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(scrim)),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.MinSize(common.BaseWidth, common.BaseHeight)),
	)
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}
