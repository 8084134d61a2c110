package ui

import (
	"bytes"
	"image/color"

	"github.com/automoto/farmstead/components"
	cfg "github.com/automoto/farmstead/config"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// SavePromptUI holds the ebitenui dialog shown on a save point
type SavePromptUI struct {
	UI *ebitenui.UI

	// Callbacks
	OnSave   func()
	OnCancel func()

	// Widget references for updates
	zoneLabel   *widget.Label
	resultLabel *widget.Label

	titleFace  text.Face
	normalFace text.Face
	smallFace  text.Face
}

// NewSavePromptUI creates the save dialog
func NewSavePromptUI(onSave, onCancel func()) *SavePromptUI {
	sui := &SavePromptUI{
		OnSave:   onSave,
		OnCancel: onCancel,
	}

	sui.loadFonts()
	sui.buildUI()

	return sui
}

func (sui *SavePromptUI) loadFonts() {
	fontSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic(err)
	}

	sui.titleFace = &text.GoTextFace{
		Source: fontSource,
		Size:   16,
	}
	sui.normalFace = &text.GoTextFace{
		Source: fontSource,
		Size:   12,
	}
	sui.smallFace = &text.GoTextFace{
		Source: fontSource,
		Size:   10,
	}
}

func (sui *SavePromptUI) buildUI() {
	// Root container dims the world behind the dialog
	rootContainer := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(cfg.BlackOverlay)),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	padding := widget.NewInsetsSimple(cfg.HUD.PromptPadding)
	dialog := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(color.RGBA{30, 30, 40, 255})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(padding),
			widget.RowLayoutOpts.Spacing(6),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(cfg.HUD.PromptWidth, 0),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)

	dialog.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("SAVE GAME?", &sui.titleFace, &widget.LabelColor{
			Idle: cfg.White,
		}),
	))

	sui.zoneLabel = widget.NewLabel(
		widget.LabelOpts.Text("", &sui.normalFace, &widget.LabelColor{
			Idle: color.RGBA{200, 200, 255, 255},
		}),
	)
	dialog.AddChild(sui.zoneLabel)

	dialog.AddChild(sui.buildButtonsContainer())

	sui.resultLabel = widget.NewLabel(
		widget.LabelOpts.Text("", &sui.smallFace, &widget.LabelColor{
			Idle: color.RGBA{255, 100, 100, 255},
		}),
	)
	dialog.AddChild(sui.resultLabel)

	rootContainer.AddChild(dialog)

	sui.UI = &ebitenui.UI{
		Container: rootContainer,
	}
}

func (sui *SavePromptUI) buildButtonsContainer() *widget.Container {
	container := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(10),
		)),
	)

	cancelButton := widget.NewButton(
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(80, 24)),
		widget.ButtonOpts.Image(sui.buttonImage()),
		widget.ButtonOpts.Text("Cancel", &sui.normalFace, &widget.ButtonTextColor{
			Idle:    color.RGBA{255, 255, 255, 255},
			Hover:   color.RGBA{255, 200, 200, 255},
			Pressed: color.RGBA{200, 150, 150, 255},
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if sui.OnCancel != nil {
				sui.OnCancel()
			}
		}),
	)
	container.AddChild(cancelButton)

	saveButton := widget.NewButton(
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(100, 24)),
		widget.ButtonOpts.Image(sui.saveButtonImage()),
		widget.ButtonOpts.Text("Save", &sui.normalFace, &widget.ButtonTextColor{
			Idle:    color.RGBA{255, 255, 255, 255},
			Hover:   color.RGBA{200, 255, 200, 255},
			Pressed: color.RGBA{150, 200, 150, 255},
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if sui.OnSave != nil {
				sui.OnSave()
			}
		}),
	)
	container.AddChild(saveButton)

	return container
}

func (sui *SavePromptUI) buttonImage() *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:    image.NewNineSliceColor(color.RGBA{60, 60, 80, 255}),
		Hover:   image.NewNineSliceColor(color.RGBA{80, 80, 100, 255}),
		Pressed: image.NewNineSliceColor(color.RGBA{40, 40, 60, 255}),
	}
}

func (sui *SavePromptUI) saveButtonImage() *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:    image.NewNineSliceColor(color.RGBA{40, 100, 40, 255}),
		Hover:   image.NewNineSliceColor(color.RGBA{60, 140, 60, 255}),
		Pressed: image.NewNineSliceColor(color.RGBA{30, 80, 30, 255}),
	}
}

// Update refreshes the labels from the prompt state and runs the UI
func (sui *SavePromptUI) Update(prompt *components.SavePromptData) {
	sui.zoneLabel.Label = PromptZoneLabel(prompt)
	sui.resultLabel.Label = prompt.Result
	sui.UI.Update()
}

// Draw renders the dialog
func (sui *SavePromptUI) Draw(screen *ebiten.Image) {
	sui.UI.Draw(screen)
}

// PromptZoneLabel names the save point in the dialog.
func PromptZoneLabel(prompt *components.SavePromptData) string {
	if prompt.Zone.Name == "" {
		return "Write your progress to disk."
	}
	return "Rest at the " + prompt.Zone.Name + " and write your progress to disk."
}
