package services

import (
	"fmt"
	"io"

	"github.com/fogleman/gg"
	"golang.org/x/exp/slices"

	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/memoria/models"
	"github.com/sisoputnfrba/tp-2025-1c-magiOS-nachos/utils/numeric"
)

const (
	mapColumns    = 8
	mapCellWidth  = 72
	mapCellHeight = 40
	mapMargin     = 10
	mapLegendRow  = 18
)

// Colores de los dueños, se reparten en orden alfabético.
var ownerPalette = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2",
	"#59a14f", "#edc948", "#b07aa1", "#ff9da7",
}

// DrawFrameMap dibuja la tabla de marcos: una celda por marco con el número de página virtual
// que contiene, coloreada según el espacio de direcciones dueño, y una leyenda abajo.
func DrawFrameMap(frames []models.Frame) *gg.Context {
	owners := ownerNames(frames)
	rows := numeric.DivRoundUp(max(len(frames), 1), mapColumns)

	width := 2*mapMargin + mapColumns*mapCellWidth
	height := 2*mapMargin + rows*mapCellHeight + len(owners)*mapLegendRow + mapMargin

	dc := gg.NewContext(width, height)
	dc.SetHexColor("#ffffff")
	dc.Clear()

	for _, frame := range frames {
		x := float64(mapMargin + (frame.Number%mapColumns)*mapCellWidth)
		y := float64(mapMargin + (frame.Number/mapColumns)*mapCellHeight)

		label := fmt.Sprintf("%d: libre", frame.Number)
		if frame.InUse && frame.Owner != nil {
			dc.SetHexColor(ownerColor(owners, frame.Owner.Name()))
			label = fmt.Sprintf("%d: vp %d", frame.Number, frame.VirtualPage)
		} else {
			dc.SetHexColor("#e0e0e0")
		}
		dc.DrawRectangle(x, y, mapCellWidth, mapCellHeight)
		dc.Fill()

		dc.SetHexColor("#333333")
		dc.SetLineWidth(1)
		dc.DrawRectangle(x, y, mapCellWidth, mapCellHeight)
		dc.Stroke()
		dc.DrawStringAnchored(label, x+mapCellWidth/2, y+mapCellHeight/2, 0.5, 0.5)
	}

	legendY := float64(mapMargin + rows*mapCellHeight + mapMargin)
	for i, owner := range owners {
		y := legendY + float64(i*mapLegendRow)
		dc.SetHexColor(ownerColor(owners, owner))
		dc.DrawRectangle(mapMargin, y, 12, 12)
		dc.Fill()
		dc.SetHexColor("#000000")
		dc.DrawStringAnchored(owner, mapMargin+18, y+6, 0, 0.5)
	}

	return dc
}

// WriteFrameMap escribe el mapa de marcos como PNG.
func (fm *FrameManager) WriteFrameMap(w io.Writer) error {
	return DrawFrameMap(fm.Frames()).EncodePNG(w)
}

// SaveFrameMap guarda el mapa de marcos como PNG en path.
func (fm *FrameManager) SaveFrameMap(path string) error {
	return DrawFrameMap(fm.Frames()).SavePNG(path)
}

func ownerNames(frames []models.Frame) []string {
	names := make([]string, 0, len(frames))
	for _, frame := range frames {
		if frame.InUse && frame.Owner != nil {
			names = append(names, frame.Owner.Name())
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}

func ownerColor(owners []string, name string) string {
	i, found := slices.BinarySearch(owners, name)
	if !found {
		return "#999999"
	}
	return ownerPalette[i%len(ownerPalette)]
}
