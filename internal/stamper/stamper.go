// Package stamper writes handwriting-style dates into the fixed boxes of
// the igazolas form.
package stamper

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/abaddouh/igazolo/internal/fonts"
	"github.com/abaddouh/igazolo/internal/output"
)

// Ink is the dark blue used for every date.
var Ink = color.RGBA{0, 0, 139, 255}

// TemplateSource hands out a drawable copy of the base image.
type TemplateSource interface {
	Load() (*image.RGBA, error)
	Path() string
}

// FontSource picks the font used for all regions.
type FontSource interface {
	Resolve() (*fonts.Font, error)
}

// Options holds the rendering constants. The zero value is not useful; start
// from DefaultOptions.
type Options struct {
	Regions  []Region
	FontSize float64
	Ink      color.Color
	Padding  Padding
	Quality  int
	Prefix   string
}

func DefaultOptions() Options {
	return Options{
		Regions:  DefaultRegions(),
		FontSize: 100,
		Ink:      Ink,
		Padding:  Padding{Left: 15, Bottom: 5},
		Quality:  95,
		Prefix:   "igazolas",
	}
}

// Stamp is what was written into one region.
type Stamp struct {
	Region     Region
	Date       Date
	Text       string
	Background color.RGBA
	Placement  Placement
}

// Result is a rendered form.
type Result struct {
	Image    *image.RGBA
	From     Date
	To       Date
	Today    Date
	Font     string
	Stamps   []Stamp
	Filename string
	// Path is set once the image has been written to disk.
	Path     string
}

type Stamper struct {
	templates TemplateSource
	fonts     FontSource
	now       func() time.Time
	logger    *slog.Logger
	opts      Options
}

// New builds a Stamper. now is read once per run and supplies the date of
// the current_date region; pass a fixed function in tests.
func New(templates TemplateSource, fonts FontSource, now func() time.Time, logger *slog.Logger, opts Options) *Stamper {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Stamper{
		templates: templates,
		fonts:     fonts,
		now:       now,
		logger:    logger,
		opts:      opts,
	}
}

// OutputName returns igazolas_{month}_{day}.jpg for to, without zero padding.
func (s *Stamper) OutputName(to Date) string {
	return fmt.Sprintf("%s_%d_%d.jpg", s.opts.Prefix, int(to.Month), to.Day)
}

// Render draws the dates onto a copy of the template and returns it in memory.
func (s *Stamper) Render(from, to Date) (*Result, error) {
	today := DateOf(s.now())

	img, err := s.templates.Load()
	if err != nil {
		kind := KindIO
		if errors.Is(err, fs.ErrNotExist) {
			kind = KindMissingResource
		}
		return nil, &Error{Op: "load template", Kind: kind, Value: s.templates.Path(), Err: err}
	}
	if err := checkRegions(s.opts.Regions, img.Bounds()); err != nil {
		return nil, err
	}

	f, err := s.fonts.Resolve()
	if err != nil {
		return nil, &Error{Op: "resolve font", Kind: KindFont, Err: err}
	}
	face, err := f.Face(s.opts.FontSize)
	if err != nil {
		return nil, &Error{Op: "resolve font", Kind: KindFont, Value: f.Name, Err: err}
	}
	defer face.Close()

	res := &Result{
		Image:    img,
		From:     from,
		To:       to,
		Today:    today,
		Font:     f.Name,
		Filename: s.OutputName(to),
	}

	// Clear every box before drawing so no sample is taken from fresh ink.
	stamps := make([]Stamp, len(s.opts.Regions))
	for i, r := range s.opts.Regions {
		d := r.date(from, to, today)
		stamps[i] = Stamp{
			Region:     r,
			Date:       d,
			Text:       d.Short(),
			Background: ClearRegion(img, r.Box),
		}
	}

	ink := image.NewUniform(s.opts.Ink)
	for i := range stamps {
		st := &stamps[i]
		bounds, _ := font.BoundString(face, st.Text)
		st.Placement = Place(st.Region.Box, bounds, s.opts.Padding)

		d := &font.Drawer{
			Dst:  img,
			Src:  ink,
			Face: face,
			Dot:  fixed.P(st.Placement.Dot.X, st.Placement.Dot.Y),
		}
		d.DrawString(st.Text)

		s.logger.Debug("region stamped",
			"region", st.Region.Name,
			"text", st.Text,
			"dot", st.Placement.Dot,
			"glyphs", st.Placement.Glyphs)
	}
	res.Stamps = stamps

	s.logger.Info("form rendered",
		"from", from.String(),
		"to", to.String(),
		"today", today.String(),
		"font", f.Name)
	return res, nil
}

// StampFile parses one or two date arguments, renders the form and writes
// it next to the template. The template itself is never overwritten.
func (s *Stamper) StampFile(args []string) (*Result, error) {
	from, to, err := ParseRange(args)
	if err != nil {
		return nil, err
	}

	res, err := s.Render(from, to)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(filepath.Dir(s.templates.Path()), res.Filename)
	if same(path, s.templates.Path()) {
		return nil, &Error{
			Op:    "write output",
			Kind:  KindIO,
			Value: path,
			Err:   errors.New("output would overwrite the template"),
		}
	}
	if err := output.WriteJPEG(path, res.Image, s.opts.Quality); err != nil {
		return nil, &Error{Op: "write output", Kind: KindIO, Value: path, Err: err}
	}
	res.Path = path

	s.logger.Info("form written", "path", path)
	return res, nil
}

func same(a, b string) bool {
	aa, err1 := filepath.Abs(a)
	bb, err2 := filepath.Abs(b)
	if err1 != nil || err2 != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return aa == bb
}
