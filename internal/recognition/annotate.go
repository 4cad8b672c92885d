package recognition

import (
	"image"
	"image/color"

	"github.com/ironsheep/pic2block/internal/imaging"
	"github.com/ironsheep/pic2block/internal/shapes"
)

// classColors are the overlay colours per class.
var classColors = map[shapes.Class]string{
	shapes.ClassRectangle:    "#1f77b4",
	shapes.ClassDiamond:      "#d62728",
	shapes.ClassInput:        "#2ca02c",
	shapes.ClassStartStop:    "#9467bd",
	shapes.ClassUnclassified: "#7f7f7f",
}

// ClassColor returns the overlay colour used for c.
func ClassColor(c shapes.Class) color.Color {
	hex, ok := classColors[c]
	if !ok {
		hex = classColors[shapes.ClassUnclassified]
	}
	col, err := imaging.ParseHexColor(hex)
	if err != nil {
		return color.Black
	}
	return col
}

// Annotate draws every shape of rep on a copy of img: the outline and centre
// in the colour of its class, labelled with the class name and the block text
// when there is one.
//
// img must be the image the report was made from, i.e. after resizing.
func Annotate(img image.Image, rep *Report) *image.NRGBA {
	overlays := make([]imaging.Overlay, 0, len(rep.Shapes))
	for _, s := range rep.Shapes {
		outline := make([]image.Point, len(s.Vertices))
		for i, v := range s.Vertices {
			outline[i] = image.Pt(v.X, v.Y)
		}
		overlays = append(overlays, imaging.Overlay{
			Outline: outline,
			Center:  image.Pt(s.Key.X, s.Key.Y),
			Label:   label(s),
			Color:   ClassColor(s.Class),
		})
	}
	return imaging.DrawOverlay(img, overlays)
}

func label(s ShapeReport) string {
	if s.Text == "" {
		return s.Class.String()
	}
	return s.Class.String() + ": " + s.Text
}

// AnnotateFile recognizes the image at path and returns the report together
// with the annotated image.
func (r *Recognizer) AnnotateFile(path string, opts Options) (*Report, *image.NRGBA, error) {
	img, scale, err := r.LoadImage(path, opts.MaxDimension)
	if err != nil {
		return nil, nil, err
	}
	rep, err := r.RecognizeImage(img, path, opts)
	if err != nil {
		return nil, nil, err
	}
	rep.Scale = scale
	return rep, Annotate(img, rep), nil
}
