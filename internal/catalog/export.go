package catalog

import (
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
)

// ExportRow is one line of the catalog CSV.
type ExportRow struct {
	ID          string  `csv:"id"`
	Title       string  `csv:"title"`
	Genre       string  `csv:"genre"`
	License     string  `csv:"license"`
	Price       float64 `csv:"price"`
	Files       string  `csv:"files"`
	ReleaseDate string  `csv:"release_date"`
	Custom      bool    `csv:"custom"`
}

// ExportCSV writes the merged catalog, in source order, to w.
func (c *Catalog) ExportCSV(w io.Writer) error {
	builtin := make(map[string]bool)
	for _, b := range BuiltIn() {
		builtin[b.ID] = true
	}
	list := c.Beats()
	rows := make([]*ExportRow, 0, len(list))
	for _, b := range list {
		rows = append(rows, &ExportRow{
			ID:          b.ID,
			Title:       b.Title,
			Genre:       b.Genre,
			License:     b.License,
			Price:       b.Price,
			Files:       strings.Join(b.Files, "; "),
			ReleaseDate: b.ReleaseDate,
			Custom:      !builtin[b.ID],
		})
	}
	return errors.Wrap(gocsv.Marshal(rows, w), "catalog: export csv")
}
