package ui

import (
	"bytes"
	"fmt"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/envtester/chaos-invaders/shared/netconfig"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// MenuUI lets the player pick a kill method and iteration count and start a
// match.
type MenuUI struct {
	UI *ebitenui.UI

	OnStart func(method string, iterations int)

	method        int
	iterations    int
	maxIterations int

	methodBtn       *widget.Button
	iterationsLabel *widget.Label
	statusLabel     *widget.Label
	historyLabel    *widget.Label
	startBtn        *widget.Button

	titleFace  text.Face
	normalFace text.Face
	smallFace  text.Face
}

func NewMenuUI(method string, iterations, maxIterations int, onStart func(method string, iterations int)) *MenuUI {
	ui := &MenuUI{
		OnStart:       onStart,
		iterations:    iterations,
		maxIterations: maxIterations,
	}
	for i, m := range netconfig.KillMethods {
		if string(m) == method {
			ui.method = i
		}
	}
	ui.loadFonts()
	ui.buildUI()
	return ui
}

func (ui *MenuUI) loadFonts() {
	fontSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Fatalf("failed to load UI font: %v", err)
	}

	ui.titleFace = &text.GoTextFace{Source: fontSource, Size: 28}
	ui.normalFace = &text.GoTextFace{Source: fontSource, Size: 14}
	ui.smallFace = &text.GoTextFace{Source: fontSource, Size: 11}
}

func (ui *MenuUI) buildUI() {
	rootContainer := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(color.RGBA{10, 10, 18, 255})),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	contentContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(16)),
			widget.RowLayoutOpts.Spacing(10),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)

	titleLabel := widget.NewLabel(
		widget.LabelOpts.Text("CHAOS INVADERS", &ui.titleFace, &widget.LabelColor{
			Idle: color.RGBA{255, 48, 221, 255},
		}),
	)
	contentContainer.AddChild(titleLabel)

	contentContainer.AddChild(ui.buildMethodRow())
	contentContainer.AddChild(ui.buildIterationsRow())

	ui.startBtn = widget.NewButton(
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(160, 30)),
		widget.ButtonOpts.Image(&widget.ButtonImage{
			Idle:     image.NewNineSliceColor(color.RGBA{40, 100, 40, 255}),
			Hover:    image.NewNineSliceColor(color.RGBA{60, 140, 60, 255}),
			Pressed:  image.NewNineSliceColor(color.RGBA{30, 80, 30, 255}),
			Disabled: image.NewNineSliceColor(color.RGBA{40, 50, 40, 255}),
		}),
		widget.ButtonOpts.Text("Start", &ui.normalFace, &widget.ButtonTextColor{
			Idle:     color.RGBA{255, 255, 255, 255},
			Hover:    color.RGBA{200, 255, 200, 255},
			Pressed:  color.RGBA{150, 200, 150, 255},
			Disabled: color.RGBA{100, 100, 100, 255},
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			ui.Submit()
		}),
	)
	contentContainer.AddChild(ui.startBtn)

	ui.statusLabel = widget.NewLabel(
		widget.LabelOpts.Text("", &ui.smallFace, &widget.LabelColor{
			Idle: color.RGBA{255, 200, 100, 255},
		}),
	)
	contentContainer.AddChild(ui.statusLabel)

	ui.historyLabel = widget.NewLabel(
		widget.LabelOpts.Text("", &ui.smallFace, &widget.LabelColor{
			Idle: color.RGBA{160, 160, 180, 255},
		}),
	)
	contentContainer.AddChild(ui.historyLabel)

	rootContainer.AddChild(contentContainer)

	ui.UI = &ebitenui.UI{Container: rootContainer}
}

func (ui *MenuUI) buildMethodRow() *widget.Container {
	row := newRow()
	row.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("Kill method:", &ui.normalFace, &widget.LabelColor{
			Idle: color.RGBA{200, 200, 200, 255},
		}),
	))

	ui.methodBtn = ui.newSmallButton(ui.Method(), 110, func() {
		ui.method = (ui.method + 1) % len(netconfig.KillMethods)
		if textWidget := ui.methodBtn.Text(); textWidget != nil {
			textWidget.Label = ui.Method()
		}
	})
	row.AddChild(ui.methodBtn)
	return row
}

func (ui *MenuUI) buildIterationsRow() *widget.Container {
	row := newRow()
	row.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("Iterations:", &ui.normalFace, &widget.LabelColor{
			Idle: color.RGBA{200, 200, 200, 255},
		}),
	))

	row.AddChild(ui.newSmallButton("-", 28, func() { ui.stepIterations(-1) }))
	ui.iterationsLabel = widget.NewLabel(
		widget.LabelOpts.Text(fmt.Sprintf("%3d", ui.iterations), &ui.normalFace, &widget.LabelColor{
			Idle: color.RGBA{255, 255, 255, 255},
		}),
	)
	row.AddChild(ui.iterationsLabel)
	row.AddChild(ui.newSmallButton("+", 28, func() { ui.stepIterations(1) }))
	return row
}

func (ui *MenuUI) newSmallButton(label string, width int, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(width, 24)),
		widget.ButtonOpts.Image(&widget.ButtonImage{
			Idle:    image.NewNineSliceColor(color.RGBA{60, 60, 80, 255}),
			Hover:   image.NewNineSliceColor(color.RGBA{80, 80, 100, 255}),
			Pressed: image.NewNineSliceColor(color.RGBA{40, 40, 60, 255}),
		}),
		widget.ButtonOpts.Text(label, &ui.normalFace, &widget.ButtonTextColor{
			Idle:    color.RGBA{255, 255, 255, 255},
			Hover:   color.RGBA{255, 220, 255, 255},
			Pressed: color.RGBA{200, 150, 200, 255},
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

func newRow() *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(8),
		)),
	)
}

func (ui *MenuUI) stepIterations(delta int) {
	ui.iterations = clampIterations(ui.iterations+delta, ui.maxIterations)
	ui.iterationsLabel.Label = fmt.Sprintf("%3d", ui.iterations)
}

func clampIterations(n, limit int) int {
	if n < 1 {
		return 1
	}
	if limit > 0 && n > limit {
		return limit
	}
	return n
}

// Method returns the selected kill method.
func (ui *MenuUI) Method() string {
	return string(netconfig.KillMethods[ui.method])
}

func (ui *MenuUI) Iterations() int {
	return ui.iterations
}

// Submit fires OnStart with the current selection, unless a start is pending.
func (ui *MenuUI) Submit() {
	if ui.startBtn != nil && ui.startBtn.GetWidget().Disabled {
		return
	}
	if ui.OnStart != nil {
		ui.OnStart(ui.Method(), ui.iterations)
	}
}

func (ui *MenuUI) SetStatus(msg string) {
	if ui.statusLabel != nil {
		ui.statusLabel.Label = msg
	}
}

func (ui *MenuUI) SetHistory(msg string) {
	if ui.historyLabel != nil {
		ui.historyLabel.Label = msg
	}
}

func (ui *MenuUI) SetStarting(starting bool) {
	if ui.startBtn != nil {
		ui.startBtn.GetWidget().Disabled = starting
	}
}

func (ui *MenuUI) Update() {
	ui.UI.Update()
}
