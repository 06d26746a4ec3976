package detector

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

var boxColor = color.RGBA{0, 255, 0, 0}

// Annotate draws detection boxes and label captions onto the frame in place.
func Annotate(frame *gocv.Mat, detections []Detection) {
	if frame == nil || frame.Empty() {
		return
	}

	for _, det := range detections {
		gocv.Rectangle(frame, det.Box, boxColor, 2)

		caption := fmt.Sprintf("%s %.2f", det.Label, det.Confidence)
		origin := image.Pt(det.Box.Min.X, det.Box.Min.Y-6)
		if origin.Y < 12 {
			origin.Y = det.Box.Min.Y + 14
		}
		gocv.PutText(frame, caption, origin, gocv.FontHersheySimplex, 0.5, boxColor, 1)
	}
}
