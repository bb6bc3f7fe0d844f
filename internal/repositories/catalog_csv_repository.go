package repositories

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"listino/internal/models"
)

// requiredColumns are the headers the price list file must carry. thumb_url
// is optional depending on the export variant.
var requiredColumns = []string{
	"sku",
	"descrizione",
	"marchio",
	"categoria1",
	"categoria2",
	"categoria3",
	"prezzo_vendita",
	"prezzo_pubblico",
	"link_icecat",
}

// CSVCatalogRepository reads the price list from a delimited file on disk.
type CSVCatalogRepository struct {
	path string
}

// NewCSVCatalogRepository creates a new instance of CSVCatalogRepository.
func NewCSVCatalogRepository(path string) *CSVCatalogRepository {
	return &CSVCatalogRepository{
		path: path,
	}
}

// GetAll parses the whole file. A missing file, a malformed record or a
// missing required column makes the catalog unavailable; individual rows
// without a SKU are skipped because they cannot be selected.
func (r *CSVCatalogRepository) GetAll() ([]models.Product, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, &models.CatalogUnavailableError{Err: fmt.Errorf("failed to open %s: %w", r.path, err)}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, &models.CatalogUnavailableError{Err: fmt.Errorf("failed to parse %s: %w", r.path, err)}
	}
	if len(records) == 0 {
		return nil, &models.CatalogUnavailableError{Err: fmt.Errorf("file %s has no header row", r.path)}
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, &models.CatalogUnavailableError{Err: fmt.Errorf("file %s is missing required column %q", r.path, name)}
		}
	}

	field := func(row []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	products := make([]models.Product, 0, len(records)-1)
	for _, row := range records[1:] {
		p := models.Product{
			SKU:           field(row, "sku"),
			Description:   field(row, "descrizione"),
			Brand:         field(row, "marchio"),
			Category1:     field(row, "categoria1"),
			Category2:     field(row, "categoria2"),
			Category3:     field(row, "categoria3"),
			SalePrice:     field(row, "prezzo_vendita"),
			PublicPrice:   field(row, "prezzo_pubblico"),
			DatasheetLink: field(row, "link_icecat"),
			ThumbnailURL:  field(row, "thumb_url"),
		}
		if p.SKU == "" {
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

// LastUpdated reports the file's modification date, matching the "ultimo
// aggiornamento" footer of the original list.
func (r *CSVCatalogRepository) LastUpdated() string {
	info, err := os.Stat(r.path)
	if err != nil {
		return ""
	}
	return info.ModTime().Format("02/01/2006")
}
