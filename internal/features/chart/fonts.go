package chart

import (
	"os"
	"path/filepath"

	logging "nexachart/internal/infra/log"

	"github.com/fogleman/gg"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const (
	labelFontSize = 10.0
	titleFontSize = 12.0
)

// Fonts holds the faces used for axis labels and the chart title, already
// sized for the device pixel ratio.
type Fonts struct {
	Label font.Face
	Title font.Face
}

// fallbackFonts uses the fixed 7x13 face, which needs no font files.
func fallbackFonts() Fonts {
	return Fonts{Label: basicfont.Face7x13, Title: basicfont.Face7x13}
}

var fontCandidates = []string{
	"etc/fonts/Inter-Regular.ttf",
	"etc/fonts/InterVariable.ttf",
	"~/Library/Fonts/Inter-Regular.ttf",
	"/Library/Fonts/Arial.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
}

// FontAuto scans a list of common font locations.
const FontAuto = "auto"

// LoadFonts loads the TrueType font at path at label and title sizes scaled
// by dpr. FontAuto tries the usual system locations. An empty path, or a
// font that cannot be loaded, yields basicfont.
func LoadFonts(path string, dpr float64) Fonts {
	if path == "" {
		return fallbackFonts()
	}
	paths := []string{path}
	if path == FontAuto {
		paths = fontCandidates
	}

	for _, p := range paths {
		expanded := expandHome(p)
		if _, err := os.Stat(expanded); err != nil {
			continue
		}
		label, err := gg.LoadFontFace(expanded, labelFontSize*dpr)
		if err != nil {
			logging.LogWarn("Font file exists but failed to load",
				zap.String("path", expanded),
				zap.Error(err))
			continue
		}
		title, err := gg.LoadFontFace(expanded, titleFontSize*dpr)
		if err != nil {
			title = label
		}
		logging.LogDebug("Loaded chart font", zap.String("path", expanded), zap.Float64("dpr", dpr))
		return Fonts{Label: label, Title: title}
	}

	if path != FontAuto {
		logging.LogWarn("Configured font not usable, falling back to basic font", zap.String("path", path))
	}
	return fallbackFonts()
}

func expandHome(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
