package ui

import (
	"bytes"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/envtester/chaos-invaders/shared/messages"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// ResultsUI shows the victory summary table or the defeat banner.
type ResultsUI struct {
	UI *ebitenui.UI

	OnGoBack func()

	titleFace  text.Face
	normalFace text.Face
	monoFace   text.Face
}

// NewResultsUI builds the panel. A nil summary with victory=false shows defeat.
func NewResultsUI(victory bool, summary []messages.RecoveryData, onGoBack func()) *ResultsUI {
	ui := &ResultsUI{OnGoBack: onGoBack}
	ui.loadFonts()
	ui.buildUI(victory, summary)
	return ui
}

func (ui *ResultsUI) loadFonts() {
	fontSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Fatalf("failed to load UI font: %v", err)
	}
	monoSource, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		log.Fatalf("failed to load UI font: %v", err)
	}

	ui.titleFace = &text.GoTextFace{Source: fontSource, Size: 32}
	ui.normalFace = &text.GoTextFace{Source: fontSource, Size: 14}
	ui.monoFace = &text.GoTextFace{Source: monoSource, Size: 12}
}

func (ui *ResultsUI) buildUI(victory bool, summary []messages.RecoveryData) {
	rootContainer := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(color.RGBA{10, 10, 18, 255})),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	contentContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(16)),
			widget.RowLayoutOpts.Spacing(6),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)

	title, titleColor := "DEFEAT", color.RGBA{255, 60, 60, 255}
	if victory {
		title, titleColor = "VICTORY", color.RGBA{0, 255, 60, 255}
	}
	contentContainer.AddChild(widget.NewLabel(
		widget.LabelOpts.Text(title, &ui.titleFace, &widget.LabelColor{Idle: titleColor}),
	))

	if victory {
		for _, line := range SummaryLines(summary) {
			contentContainer.AddChild(widget.NewLabel(
				widget.LabelOpts.Text(line, &ui.monoFace, &widget.LabelColor{
					Idle: color.RGBA{220, 220, 220, 255},
				}),
			))
		}
	} else {
		contentContainer.AddChild(widget.NewLabel(
			widget.LabelOpts.Text("Your ship was destroyed.", &ui.normalFace, &widget.LabelColor{
				Idle: color.RGBA{200, 200, 200, 255},
			}),
		))
	}

	backButton := widget.NewButton(
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(140, 28)),
		widget.ButtonOpts.Image(&widget.ButtonImage{
			Idle:    image.NewNineSliceColor(color.RGBA{60, 60, 80, 255}),
			Hover:   image.NewNineSliceColor(color.RGBA{80, 80, 100, 255}),
			Pressed: image.NewNineSliceColor(color.RGBA{40, 40, 60, 255}),
		}),
		widget.ButtonOpts.Text("Back to menu", &ui.normalFace, &widget.ButtonTextColor{
			Idle:    color.RGBA{255, 255, 255, 255},
			Hover:   color.RGBA{255, 200, 200, 255},
			Pressed: color.RGBA{200, 150, 150, 255},
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if ui.OnGoBack != nil {
				ui.OnGoBack()
			}
		}),
	)
	contentContainer.AddChild(backButton)

	rootContainer.AddChild(contentContainer)

	ui.UI = &ebitenui.UI{Container: rootContainer}
}

// SummaryLines renders the victory table as fixed-width rows, header first.
func SummaryLines(summary []messages.RecoveryData) []string {
	lines := []string{fmt.Sprintf("%-20s %-8s %-10s %10s", "TARGET", "METHOD", "STATE", "RECOVERY")}
	if len(summary) == 0 {
		return append(lines, "no recovery measurements")
	}
	for _, r := range summary {
		name := r.Container.DisplayName()
		if len(name) > 20 {
			name = name[:19] + "~"
		}
		ttr := "-"
		if r.Recovered() {
			ttr = r.TimeToRecover.Round(time.Millisecond).String()
		}
		lines = append(lines, fmt.Sprintf("%-20s %-8s %-10s %10s", name, r.KillMethod, r.State, ttr))
	}
	return lines
}

func (ui *ResultsUI) Update() {
	ui.UI.Update()
}
