package display

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"gocv.io/x/gocv"

	"github.com/ayusman/safegate/internal/access"
)

var (
	grantedColor = color.RGBA{0, 255, 0, 0}
	deniedColor  = color.RGBA{0, 0, 255, 0} // BGR: red
	labelColor   = color.RGBA{255, 255, 255, 0}
)

// Overlay draws the three status lines onto the frame in place:
// access status, measured FPS, and the detected label list.
func Overlay(frame *gocv.Mat, status access.Status, fps float64, labels []string) {
	if frame == nil || frame.Empty() {
		return
	}

	statusColor := deniedColor
	if status == access.Granted {
		statusColor = grantedColor
	}

	gocv.PutText(frame, "Status: "+status.String(), image.Pt(10, 30),
		gocv.FontHersheySimplex, 0.7, statusColor, 2)
	gocv.PutText(frame, fmt.Sprintf("FPS: %.1f", fps), image.Pt(10, 60),
		gocv.FontHersheySimplex, 0.7, grantedColor, 2)
	gocv.PutText(frame, "Detected: "+strings.Join(labels, ", "), image.Pt(10, 90),
		gocv.FontHersheySimplex, 0.5, labelColor, 1)
}
