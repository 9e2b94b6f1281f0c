package commands

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"orderflow/internal/infra/shopify"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/usecase/shared"
)

const importChunkSize = 100

type ImportStockResult struct {
	Imported  int      `json:"imported"`
	Unmatched int      `json:"unmatched"`
	Sample    []string `json:"unmatched_sample,omitempty"`
}

type ImportCommands interface {
	ImportStock(ctx context.Context, shopDomain string, file io.Reader) (*ImportStockResult, error)
}

type importUseCaseImpl struct {
	uow     shared.UnitOfWork
	catalog CatalogSource
}

func NewImportUseCase(uow shared.UnitOfWork, catalog CatalogSource) ImportCommands {
	return &importUseCaseImpl{uow: uow, catalog: catalog}
}

type importRow struct {
	title string
	color string
	size  string
	qty   int
}

// ImportStock seeds stock rows from a CSV of (title, color, size, qty).
// Rows matching the same variant aggregate; unmatched rows are counted and a
// sample of them returned so the operator can fix the file.
func (u *importUseCaseImpl) ImportStock(ctx context.Context, shopDomain string, file io.Reader) (*ImportStockResult, error) {
	rows, err := parseImportCSV(file)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyImport
	}

	catalog, err := u.catalog.ListCatalog(ctx, shopDomain)
	if err != nil {
		return nil, err
	}

	result := &ImportStockResult{}
	quantities := make(map[string]int)
	var matched []string
	for _, row := range rows {
		variantID, ok := shopify.MatchVariant(catalog, row.title, row.color, row.size)
		if !ok {
			result.Unmatched++
			if len(result.Sample) < 10 {
				result.Sample = append(result.Sample,
					strings.TrimSpace(row.title+" "+row.color+" "+row.size))
			}
			continue
		}
		if _, seen := quantities[variantID]; !seen {
			matched = append(matched, variantID)
		}
		quantities[variantID] += row.qty
	}

	for start := 0; start < len(matched); start += importChunkSize {
		end := min(start+importChunkSize, len(matched))
		chunk := matched[start:end]

		err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			for _, variantID := range chunk {
				if err := tx.Inventory().SetStock(ctx, tx.DB(), shopDomain, variantID, quantities[variantID]); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		result.Imported += len(chunk)
	}
	return result, nil
}

func parseImportCSV(file io.Reader) ([]importRow, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows []importRow
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, errs.MarkAs(errs.Wrap(err, "read import csv"), ErrInvalidPayload)
		}
		if len(record) < 4 {
			continue
		}
		// tolerate a header row
		if first {
			first = false
			if _, err := strconv.Atoi(strings.TrimSpace(record[3])); err != nil {
				continue
			}
		}
		qty, err := strconv.Atoi(strings.TrimSpace(record[3]))
		if err != nil || qty < 0 {
			continue
		}
		title := strings.TrimSpace(record[0])
		if title == "" {
			continue
		}
		rows = append(rows, importRow{
			title: title,
			color: strings.TrimSpace(record[1]),
			size:  strings.TrimSpace(record[2]),
			qty:   qty,
		})
	}
}
