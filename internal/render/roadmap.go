// Package render draws a learning roadmap as a PNG: a header, a horizontal
// path with one node per step, a card per step, and a footer with the
// career outcomes.
package render

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/shahiilr/roadmap/internal/recommend"
)

const (
	canvasWidth  = 1600
	canvasHeight = 900

	headerHeight = 150
	footerHeight = 130
	nodeRadius   = 26
	cardWidth    = 170
	cardHeight   = 120
)

// Difficulty node colors: green / amber / red.
const (
	colorBeginner     = "#2ECC71"
	colorIntermediate = "#F39C12"
	colorAdvanced     = "#E74C3C"

	colorBackground = "#F7F9FB"
	colorHeader     = "#2C3E50"
	colorCard       = "#FFFFFF"
	colorCardBorder = "#D5DBDE"
	colorRoad       = "#95A5A6"
	colorText       = "#2C3E50"
	colorSubtle     = "#7F8C8D"
)

// Renderer draws roadmaps. A TTF font path is optional; without one the
// fixed-size basicfont face is used, which keeps rendering dependency-free.
type Renderer struct {
	titleFace font.Face
	bodyFace  font.Face
	smallFace font.Face
	logger    *zap.Logger
}

// New builds a renderer. fontPath may be empty.
func New(fontPath string, logger *zap.Logger) (*Renderer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Renderer{
		titleFace: basicfont.Face7x13,
		bodyFace:  basicfont.Face7x13,
		smallFace: basicfont.Face7x13,
		logger:    logger.Named("render"),
	}

	if fontPath != "" {
		title, err := loadFontFace(fontPath, 34)
		if err != nil {
			return nil, fmt.Errorf("load roadmap font: %w", err)
		}
		body, err := loadFontFace(fontPath, 16)
		if err != nil {
			return nil, fmt.Errorf("load roadmap font: %w", err)
		}
		small, err := loadFontFace(fontPath, 12)
		if err != nil {
			return nil, fmt.Errorf("load roadmap font: %w", err)
		}
		r.titleFace = title
		r.bodyFace = body
		r.smallFace = small
	}

	return r, nil
}

// Render draws the roadmap and returns the encoded PNG.
func (r *Renderer) Render(rm recommend.Roadmap) ([]byte, error) {
	if len(rm.LearningPath) == 0 {
		return nil, fmt.Errorf("render: roadmap has no steps")
	}

	dc := gg.NewContext(canvasWidth, canvasHeight)

	dc.SetHexColor(colorBackground)
	dc.Clear()

	r.drawHeader(dc, rm)
	r.drawPath(dc, rm.LearningPath)
	r.drawFooter(dc, rm)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("render: encode PNG: %w", err)
	}

	r.logger.Debug("roadmap rendered",
		zap.String("subject", rm.Subject),
		zap.Int("steps", len(rm.LearningPath)),
		zap.Int("bytes", buf.Len()),
	)
	return buf.Bytes(), nil
}

// RenderToFile draws the roadmap and writes the PNG to path.
func (r *Renderer) RenderToFile(rm recommend.Roadmap, path string) error {
	data, err := r.Render(rm)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("render: write %s: %w", path, err)
	}
	r.logger.Info("roadmap image saved",
		zap.String("subject", rm.Subject),
		zap.String("path", path),
	)
	return nil
}

func (r *Renderer) drawHeader(dc *gg.Context, rm recommend.Roadmap) {
	dc.SetHexColor(colorHeader)
	dc.DrawRectangle(0, 0, canvasWidth, headerHeight)
	dc.Fill()

	dc.SetFontFace(r.titleFace)
	dc.SetHexColor("#FFFFFF")
	title := rm.Subject
	if title == "" {
		title = "Learning Path"
	}
	dc.DrawStringAnchored("Learning Roadmap: "+title, canvasWidth/2, 55, 0.5, 0.5)

	if rm.Overview != "" {
		dc.SetFontFace(r.bodyFace)
		dc.SetHexColor("#BDC3C7")
		dc.DrawStringWrapped(rm.Overview, canvasWidth/2, 105, 0.5, 0.5,
			canvasWidth-300, 1.4, gg.AlignCenter)
	}
}

func (r *Renderer) drawPath(dc *gg.Context, steps []recommend.Step) {
	if len(steps) == 0 {
		return
	}

	roadY := float64(canvasHeight-footerHeight+headerHeight) / 2
	marginX := 120.0
	span := float64(canvasWidth) - 2*marginX

	// Spacing between nodes; a single step sits in the middle.
	gap := 0.0
	if len(steps) > 1 {
		gap = span / float64(len(steps)-1)
	} else {
		marginX += span / 2
	}

	// Road line behind the nodes.
	dc.SetHexColor(colorRoad)
	dc.SetLineWidth(8)
	dc.DrawLine(marginX, roadY, marginX+span, roadY)
	dc.Stroke()

	for i, step := range steps {
		x := marginX + gap*float64(i)

		// Cards alternate above and below the road.
		cardY := roadY - nodeRadius - 40 - cardHeight
		if i%2 == 1 {
			cardY = roadY + nodeRadius + 40
		}

		r.drawNode(dc, step, x, roadY, i+1)
		r.drawCard(dc, step, x, cardY)

		// Connector between node and card.
		dc.SetHexColor(colorRoad)
		dc.SetLineWidth(2)
		if i%2 == 1 {
			dc.DrawLine(x, roadY+nodeRadius, x, cardY)
		} else {
			dc.DrawLine(x, cardY+cardHeight, x, roadY-nodeRadius)
		}
		dc.Stroke()
	}
}

func (r *Renderer) drawNode(dc *gg.Context, step recommend.Step, x, y float64, number int) {
	dc.SetHexColor(difficultyColor(step.Difficulty))
	dc.DrawCircle(x, y, nodeRadius)
	dc.Fill()

	dc.SetHexColor("#FFFFFF")
	dc.SetFontFace(r.bodyFace)
	dc.DrawStringAnchored(fmt.Sprintf("%d", number), x, y, 0.5, 0.5)
}

func (r *Renderer) drawCard(dc *gg.Context, step recommend.Step, centerX, y float64) {
	x := centerX - cardWidth/2

	dc.SetHexColor(colorCard)
	dc.DrawRoundedRectangle(x, y, cardWidth, cardHeight, 8)
	dc.Fill()
	dc.SetHexColor(colorCardBorder)
	dc.SetLineWidth(1.5)
	dc.DrawRoundedRectangle(x, y, cardWidth, cardHeight, 8)
	dc.Stroke()

	dc.SetHexColor(colorText)
	dc.SetFontFace(r.bodyFace)
	dc.DrawStringWrapped(step.Title, centerX, y+14, 0.5, 0, cardWidth-16, 1.2, gg.AlignCenter)

	dc.SetFontFace(r.smallFace)
	dc.SetHexColor(colorSubtle)
	if step.Duration != "" {
		dc.DrawStringAnchored(step.Duration, centerX, y+cardHeight-38, 0.5, 0.5)
	}
	if step.Milestone != "" {
		dc.DrawStringWrapped(step.Milestone, centerX, y+cardHeight-28, 0.5, 0,
			cardWidth-16, 1.2, gg.AlignCenter)
	}
}

func (r *Renderer) drawFooter(dc *gg.Context, rm recommend.Roadmap) {
	y := float64(canvasHeight - footerHeight)

	dc.SetHexColor(colorHeader)
	dc.DrawRectangle(0, y, canvasWidth, footerHeight)
	dc.Fill()

	dc.SetFontFace(r.bodyFace)
	dc.SetHexColor("#FFFFFF")

	if rm.TotalDuration != "" {
		dc.DrawString("Total duration: "+rm.TotalDuration, 60, y+45)
	}
	if len(rm.Prerequisites) > 0 {
		dc.DrawString("Prerequisites: "+strings.Join(rm.Prerequisites, ", "), 60, y+80)
	}
	if len(rm.CareerOutcomes) > 0 {
		dc.SetHexColor("#BDC3C7")
		dc.DrawStringAnchored("Career outcomes: "+strings.Join(rm.CareerOutcomes, " / "),
			canvasWidth-60, y+45, 1, 0.5)
	}
}

func difficultyColor(difficulty string) string {
	switch strings.ToLower(difficulty) {
	case recommend.LevelBeginner:
		return colorBeginner
	case recommend.LevelIntermediate:
		return colorIntermediate
	case recommend.LevelAdvanced:
		return colorAdvanced
	default:
		return colorRoad
	}
}

// loadFontFace parses a TTF file at the given point size.
func loadFontFace(path string, points float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{Size: points}), nil
}
