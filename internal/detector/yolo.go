package detector

import (
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"
)

// YOLODetector runs a YOLOv8-style ONNX model through the GoCV DNN module.
type YOLODetector struct {
	net        gocv.Net
	config     Config
	classNames []string
	inputSize  image.Point
	mu         sync.Mutex
}

// NewYOLO creates a new YOLO detector from the given configuration.
// The model file must exist; class names load from ClassNamesPath when set,
// otherwise DefaultClassNames is used.
func NewYOLO(cfg Config) (*YOLODetector, error) {
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", cfg.ModelPath)
	}

	net := gocv.ReadNetFromONNX(cfg.ModelPath)
	if net.Empty() {
		return nil, fmt.Errorf("failed to load model from %s", cfg.ModelPath)
	}

	net.SetPreferableBackend(gocv.NetBackendDefault)
	net.SetPreferableTarget(gocv.NetTargetCPU)

	classNames := DefaultClassNames
	if cfg.ClassNamesPath != "" {
		names, err := LoadClassNames(cfg.ClassNamesPath)
		if err != nil {
			net.Close()
			return nil, err
		}
		classNames = names
	}

	if cfg.InputSize <= 0 {
		cfg.InputSize = DefaultConfig().InputSize
	}

	return &YOLODetector{
		net:        net,
		config:     cfg,
		classNames: classNames,
		inputSize:  image.Pt(cfg.InputSize, cfg.InputSize),
	}, nil
}

// Detect runs the model on a single frame and returns labeled detections.
func (d *YOLODetector) Detect(frame *gocv.Mat) ([]Detection, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if frame == nil || frame.Empty() {
		return nil, fmt.Errorf("empty frame")
	}

	imgW := float32(frame.Cols())
	imgH := float32(frame.Rows())

	blob := gocv.BlobFromImage(*frame, 1.0/255.0, d.inputSize, gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.net.SetInput(blob, "")

	output := d.net.Forward("")
	defer output.Close()

	return d.parseOutput(output, imgW, imgH), nil
}

// parseOutput parses the YOLOv8 output tensor.
// Output shape is [1, 4+numClasses, N]: 4 bbox values followed by per-class
// scores, laid out column-major over N candidate detections.
func (d *YOLODetector) parseOutput(output gocv.Mat, imgW, imgH float32) []Detection {
	var detections []Detection
	var boxes []image.Rectangle
	var confidences []float32
	var classIDs []int

	rows := output.Cols() // candidate detections
	cols := output.Rows() // 4 bbox + class scores

	data, err := output.DataPtrFloat32()
	if err != nil {
		return nil
	}

	for i := 0; i < rows; i++ {
		maxScore := float32(0)
		maxClassID := 0

		for c := 4; c < cols; c++ {
			score := data[c*rows+i]
			if score > maxScore {
				maxScore = score
				maxClassID = c - 4
			}
		}

		if maxScore < d.config.ConfidenceThreshold {
			continue
		}

		// Box is center x, center y, width, height in input-blob coordinates.
		cx := data[0*rows+i]
		cy := data[1*rows+i]
		w := data[2*rows+i]
		h := data[3*rows+i]

		x1 := int((cx - w/2) * imgW / float32(d.config.InputSize))
		y1 := int((cy - h/2) * imgH / float32(d.config.InputSize))
		x2 := int((cx + w/2) * imgW / float32(d.config.InputSize))
		y2 := int((cy + h/2) * imgH / float32(d.config.InputSize))

		boxes = append(boxes, image.Rect(x1, y1, x2, y2))
		confidences = append(confidences, maxScore)
		classIDs = append(classIDs, maxClassID)
	}

	if len(boxes) == 0 {
		return detections
	}

	indices := gocv.NMSBoxes(boxes, confidences, d.config.ConfidenceThreshold, d.config.NMSThreshold)

	for _, idx := range indices {
		detections = append(detections, Detection{
			Label:      d.className(classIDs[idx]),
			Confidence: confidences[idx],
			Box:        boxes[idx],
		})
	}

	return detections
}

func (d *YOLODetector) className(id int) string {
	if id >= 0 && id < len(d.classNames) {
		return d.classNames[id]
	}
	return fmt.Sprintf("class_%d", id)
}

// Close releases the detector resources.
func (d *YOLODetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.net.Close()
}
