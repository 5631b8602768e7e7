package pagepack

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// FontSpec names a glyph source to be encoded as one font size.
type FontSpec struct {
	Name   string
	Source GlyphSource
}

// FontSet is the ordered list of encoded font sizes, smallest first.
type FontSet struct {
	Tables []*FontTable
}

// BuildFontSet encodes every spec. Sizes are built concurrently; the result
// keeps the order of specs. Any failure aborts the whole set.
func BuildFontSet(specs []FontSpec) (*FontSet, error) {
	if len(specs) == 0 {
		return nil, errors.New("pagepack: BuildFontSet: no fonts specified")
	}

	for _, spec := range specs {
		if spec.Source == nil {
			return nil, fmt.Errorf("pagepack: BuildFontSet: font %q has no source", spec.Name)
		}
	}

	tables := make([]*FontTable, len(specs))

	var g errgroup.Group
	for i, spec := range specs {
		i, spec := i, spec
		g.Go(func() error {
			table, err := BuildFontTable(spec.Name, spec.Source)
			if err != nil {
				return fmt.Errorf("font %s: %w", spec.Name, err)
			}

			tables[i] = table
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &FontSet{Tables: tables}, nil
}

// Widths returns the pixel width of each table, index aligned with Tables.
func (s *FontSet) Widths() []int {
	widths := make([]int, len(s.Tables))
	for i, t := range s.Tables {
		widths[i] = t.Width
	}

	return widths
}

// Table returns the table at index.
func (s *FontSet) Table(index int) (*FontTable, bool) {
	if index < 0 || index >= len(s.Tables) {
		return nil, false
	}

	return s.Tables[index], true
}

// ForSize returns the first table that is pages pages tall.
func (s *FontSet) ForSize(pages int) (*FontTable, bool) {
	for _, t := range s.Tables {
		if t.Pages() == pages {
			return t, true
		}
	}

	return nil, false
}
