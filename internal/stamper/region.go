package stamper

import (
	"fmt"
	"image"
)

// Source selects which date a region displays.
type Source int

const (
	SourceFrom Source = iota
	SourceTo
	SourceToday
)

func (s Source) String() string {
	switch s {
	case SourceFrom:
		return "from"
	case SourceTo:
		return "to"
	case SourceToday:
		return "today"
	default:
		return fmt.Sprintf("source(%d)", int(s))
	}
}

// Region is a fixed box on the template that receives one date.
type Region struct {
	Name   string
	Box    image.Rectangle
	Source Source
}

// DefaultRegions returns the boxes of the igazolas template. The
// coordinates belong to that one scanned form and are not derived from
// image content.
func DefaultRegions() []Region {
	return []Region{
		{Name: "from_date", Box: image.Rect(1347, 750, 1966, 864), Source: SourceFrom},
		{Name: "to_date", Box: image.Rect(2386, 759, 2934, 862), Source: SourceTo},
		{Name: "current_date", Box: image.Rect(921, 1403, 1685, 1505), Source: SourceToday},
	}
}

func (r Region) date(from, to, today Date) Date {
	switch r.Source {
	case SourceTo:
		return to
	case SourceToday:
		return today
	default:
		return from
	}
}

func checkRegions(regions []Region, bounds image.Rectangle) error {
	for _, r := range regions {
		if r.Box.Empty() || !r.Box.In(bounds) {
			return &Error{
				Op:    "check regions",
				Kind:  KindInput,
				Value: r.Name,
				Err:   fmt.Errorf("region %v outside template %v", r.Box, bounds),
			}
		}
	}
	return nil
}
