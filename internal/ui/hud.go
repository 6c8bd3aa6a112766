//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"mazes/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Source is what the HUD reads from.
type Source interface {
	Parameters() core.ParameterSnapshot
}

// HUD renders the parameter panel to the right of the grid view.
type HUD struct {
	src        Source
	width      int
	panel      *ebiten.Image
	pixel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot

	controls     []controlState
	intSetter    core.IntParameterSetter
	floatSetter  core.FloatParameterSetter
	panelOffsetX int
}

type controlState struct {
	control   core.ParameterControl
	value     float64
	hasValue  bool
	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

var (
	textColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor   = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	panelColor = color.RGBA{R: 16, G: 16, B: 20, A: 255}
)

// NewHUD constructs a HUD for src with the given panel width.
func NewHUD(src Source, width int) *HUD {
	h := &HUD{src: src, width: max(width, 0)}
	if h.width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if p, ok := src.(core.ParameterControlsProvider); ok {
		for _, c := range p.ParameterControls() {
			h.controls = append(h.controls, controlState{control: c})
		}
	}
	h.intSetter, _ = src.(core.IntParameterSetter)
	h.floatSetter, _ = src.(core.FloatParameterSetter)
	return h
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the snapshot and handles clicks on the +/- buttons.
// It reports whether the click landed on the panel.
func (h *HUD) Update(panelOffsetX int) bool {
	if h == nil {
		return false
	}
	h.panelOffsetX = panelOffsetX
	h.snapshot = h.src.Parameters()
	h.layout()
	for i := range h.controls {
		st := &h.controls[i]
		p, ok := h.snapshot.Lookup(st.control.Key)
		st.hasValue = false
		if !ok {
			continue
		}
		if v, err := strconv.ParseFloat(p.Value, 64); err == nil {
			st.value = v
			st.hasValue = true
		}
	}
	return h.handleInput()
}

func (h *HUD) handleInput() bool {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return false
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return false
	}
	px := mx - h.panelOffsetX
	for i := range h.controls {
		st := &h.controls[i]
		switch {
		case pointInRect(px, my, st.minusRect):
			h.adjust(st, -1)
		case pointInRect(px, my, st.plusRect):
			h.adjust(st, 1)
		}
	}
	return true
}

func (h *HUD) adjust(st *controlState, direction int) {
	if !st.hasValue {
		return
	}
	target := st.control.Clamp(st.value + float64(direction)*st.control.Step)
	switch st.control.Type {
	case core.ParamTypeInt:
		if h.intSetter != nil {
			h.intSetter.SetIntParameter(st.control.Key, int(math.Round(target)))
		}
	case core.ParamTypeFloat:
		if h.floatSetter != nil {
			h.floatSetter.SetFloatParameter(st.control.Key, math.Round(target*1000)/1000)
		}
	}
}

// Draw paints the panel at offsetX, height pixels tall.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(panelColor)

	face := basicfont.Face7x13
	y := panelPadding
	for _, group := range h.snapshot.Groups {
		y += lineHeight
		text.Draw(h.panel, group.Name, face, panelPadding, y, dimColor)
		for _, p := range group.Params {
			y += lineHeight
			text.Draw(h.panel, p.Label+": "+p.Value, face, panelPadding, y, textColor)
		}
		y += lineHeight / 2
	}
	for i := range h.controls {
		st := &h.controls[i]
		text.Draw(h.panel, st.control.Label, face, panelPadding, st.top+labelBaseline, textColor)
		h.drawButton(st.minusRect, "-", st.hasValue)
		h.drawButton(st.plusRect, "+", st.hasValue)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) layout() {
	rows := 0
	for _, g := range h.snapshot.Groups {
		rows += len(g.Params) + 2
	}
	top := panelPadding + rows*lineHeight
	for i := range h.controls {
		rowTop := top + i*buttonRow
		by := rowTop + (buttonRow-buttonSize)/2
		plus := image.Rect(h.width-panelPadding-buttonSize, by, h.width-panelPadding, by+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, by, plus.Min.X-buttonGap, by+buttonSize)
		h.controls[i].top = rowTop
		h.controls[i].minusRect = minus
		h.controls[i].plusRect = plus
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	b := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-b.Dx())/2
	y := rect.Min.Y + (rect.Dy()-b.Dy())/2 + b.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return image.Pt(x, y).In(rect)
}

const (
	panelPadding  = 12
	lineHeight    = 16
	buttonRow     = 32
	buttonSize    = 22
	buttonGap     = 6
	labelBaseline = 20
)
