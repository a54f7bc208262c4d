package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"channelengine-sync/internal/repository/product"
)

type ProductWriter interface {
	Upsert(ctx context.Context, in product.UpsertInput) error
}

// CSVImporter reads a storefront catalog CSV export and upserts product,
// cover-image and stock rows.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

// Run parses CSV rows and upserts one product per row. It returns how many
// rows were imported; a malformed row aborts the run.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		in, err := parseRow(record, index)
		if err != nil {
			return imported, err
		}
		if in == nil {
			continue
		}

		if err := i.productRepo.Upsert(ctx, *in); err != nil {
			return imported, fmt.Errorf("upsert product %d: %w", in.ID, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) (*product.UpsertInput, error) {
	idStr := pick(record, index, "id")
	name := pick(record, index, "name")
	if idStr == "" && name == "" {
		return nil, nil
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid id %q for product %q", idStr, name)
	}
	if name == "" {
		return nil, fmt.Errorf("missing name for product id %d", id)
	}

	priceStr := pick(record, index, "price")
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q for product id %d", priceStr, id)
	}

	var quantity int
	if qStr := pick(record, index, "quantity"); qStr != "" {
		quantity, err = strconv.Atoi(qStr)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity %q for product id %d", qStr, id)
		}
	}

	var categoryID *int64
	if cStr := pick(record, index, "category_id"); cStr != "" {
		cid, err := strconv.ParseInt(cStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid category_id %q for product id %d", cStr, id)
		}
		categoryID = &cid
	}

	return &product.UpsertInput{
		ID:          id,
		Name:        name,
		Description: pick(record, index, "description"),
		Price:       price,
		Brand:       pick(record, index, "brand"),
		EAN:         pick(record, index, "ean"),
		Reference:   pick(record, index, "reference"),
		CategoryID:  categoryID,
		ImageURL:    pick(record, index, "image_url"),
		Quantity:    quantity,
	}, nil
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
