package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"bookstore-storefront/internal/domain"
)

type BookWriter interface {
	Upsert(ctx context.Context, b domain.Book) (*domain.Book, error)
}

// CSVImporter reads catalog CSV exports and inserts/updates books.
type CSVImporter struct {
	reader   *csv.Reader
	bookRepo BookWriter
}

func NewCSVImporter(r io.Reader, repo BookWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:   csvr,
		bookRepo: repo,
	}
}

// Run parses CSV rows and upserts one book per row.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	var imported int
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		book, err := parseRow(record, index)
		if err != nil {
			return imported, err
		}
		if book == nil {
			continue
		}

		if _, err := i.bookRepo.Upsert(ctx, *book); err != nil {
			return imported, fmt.Errorf("upsert book %q: %w", book.Title, err)
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

func parseRow(record []string, index map[string]int) (*domain.Book, error) {
	title := pick(record, index, "title")
	author := pick(record, index, "author")
	desc := pick(record, index, "description")
	priceStr := pick(record, index, "price")
	cover := pick(record, index, "cover_url")

	if title == "" && author == "" {
		return nil, nil
	}
	if title == "" {
		return nil, fmt.Errorf("row missing title (author %q)", author)
	}

	price, err := strconv.ParseInt(priceStr, 10, 64)
	if err != nil || price < 0 {
		return nil, fmt.Errorf("invalid price %q for %q", priceStr, title)
	}

	return &domain.Book{
		Title:       title,
		Author:      author,
		Description: desc,
		PriceAmount: price,
		CoverURL:    cover,
	}, nil
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
