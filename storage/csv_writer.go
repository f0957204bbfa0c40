package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"hotel-catalog/models"
	"hotel-catalog/services"
)

type csvColumn struct {
	name  string
	value func(it *models.CatalogItem, pd models.PriceDisplay) string
}

func money(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

// candidateColumns is the export layout. Prices are the ones a guest sees.
var candidateColumns = []csvColumn{
	{"id", func(it *models.CatalogItem, _ models.PriceDisplay) string { return it.ID }},
	{"kind", func(it *models.CatalogItem, _ models.PriceDisplay) string { return string(it.Kind) }},
	{"name", func(it *models.CatalogItem, _ models.PriceDisplay) string { return it.Name }},
	{"category", func(it *models.CatalogItem, _ models.PriceDisplay) string { return it.Category }},
	{"specialist", func(it *models.CatalogItem, _ models.PriceDisplay) string { return it.Specialist }},
	{"capacity", func(it *models.CatalogItem, _ models.PriceDisplay) string { return strconv.Itoa(it.Capacity) }},
	{"price", func(_ *models.CatalogItem, pd models.PriceDisplay) string { return money(pd.Original) }},
	{"effective_price", func(_ *models.CatalogItem, pd models.PriceDisplay) string { return money(pd.Effective) }},
	{"discount", func(_ *models.CatalogItem, pd models.PriceDisplay) string { return pd.Label }},
	{"image", func(it *models.CatalogItem, _ models.PriceDisplay) string {
		if len(it.Images) == 0 {
			return ""
		}
		return it.Images[0]
	}},
}

// CSVWriter exports candidate lists as CSV. It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	closer io.Closer
	writer *csv.Writer
	rows   int
}

// NewCSVWriter creates (or truncates) the CSV file at path, creating parent
// directories, and writes the header row.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	c, err := NewCSVWriterTo(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	c.closer = f
	return c, nil
}

// NewCSVWriterTo writes the export to w, which Close leaves open.
func NewCSVWriterTo(w io.Writer) (*CSVWriter, error) {
	header := make([]string, len(candidateColumns))
	for i, col := range candidateColumns {
		header[i] = col.name
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	cw.Flush()
	return &CSVWriter{writer: cw}, cw.Error()
}

// WriteCandidates appends one row per item.
func (c *CSVWriter) WriteCandidates(items []*models.CatalogItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	row := make([]string, len(candidateColumns))
	for _, it := range items {
		pd := services.Display(it)
		for i, col := range candidateColumns {
			row[i] = col.value(it, pd)
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row %s: %w", it.ID, err)
		}
		c.rows++
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Rows is the number of data rows written so far.
func (c *CSVWriter) Rows() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rows
}

// Close flushes pending rows and closes the file, if the writer owns one.
func (c *CSVWriter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		return fmt.Errorf("csv: flush: %w", err)
	}
	if c.closer != nil {
		return c.closer.Close()
	}
	return nil
}
