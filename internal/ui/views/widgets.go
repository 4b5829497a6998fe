package views

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

var (
	accentColor = color.NRGBA{R: 232, G: 190, B: 66, A: 255}
	mutedColor  = color.NRGBA{R: 150, G: 150, B: 150, A: 255}
)

func newDigits(text string, size float32) *canvas.Text {
	digits := canvas.NewText(text, theme.Color(theme.ColorNameForeground))
	digits.TextStyle = fyne.TextStyle{Monospace: true, Bold: true}
	digits.TextSize = size
	digits.Alignment = fyne.TextAlignCenter
	return digits
}

func setText(text *canvas.Text, value string) {
	if text.Text == value {
		return
	}
	text.Text = value
	text.Refresh()
}

// stepper is a wrap-around number field with up and down buttons.
type stepper struct {
	value *widget.Label
	get   func() int
}

func newStepper(caption string, get func() int, step func(delta int)) (*stepper, fyne.CanvasObject) {
	control := &stepper{value: widget.NewLabel(""), get: get}
	control.value.Alignment = fyne.TextAlignCenter
	control.value.TextStyle = fyne.TextStyle{Monospace: true, Bold: true}
	control.refresh()

	up := widget.NewButtonWithIcon("", theme.MoveUpIcon(), func() {
		step(1)
		control.refresh()
	})
	down := widget.NewButtonWithIcon("", theme.MoveDownIcon(), func() {
		step(-1)
		control.refresh()
	})
	label := widget.NewLabel(caption)
	label.Alignment = fyne.TextAlignCenter
	return control, container.NewVBox(label, up, control.value, down)
}

func (control *stepper) refresh() {
	control.value.SetText(fmt.Sprintf("%02d", control.get()))
}

// shakeBox wraps content with side padding that an animation can skew.
type shakeBox struct {
	left  *canvas.Rectangle
	right *canvas.Rectangle
	pad   float32
}

func newShakeBox(content fyne.CanvasObject, pad float32) (*shakeBox, fyne.CanvasObject) {
	box := &shakeBox{
		left:  canvas.NewRectangle(color.Transparent),
		right: canvas.NewRectangle(color.Transparent),
		pad:   pad,
	}
	box.apply(0)
	return box, container.NewBorder(nil, nil, box.left, box.right, content)
}

func (box *shakeBox) apply(offset float32) {
	box.left.SetMinSize(fyne.NewSize(box.pad+offset, 1))
	box.right.SetMinSize(fyne.NewSize(box.pad-offset, 1))
}
