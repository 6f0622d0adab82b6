package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// catalogRow una línea del catálogo: proveedor, categoría, ítem y precio unitario.
type catalogRow struct {
	Line     int
	Supplier string
	Category string
	Item     string
	Price    decimal.Decimal
}

// decoderFor devuelve el decodificador del charset del archivo; nil para UTF-8.
func decoderFor(charset string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.ReplaceAll(charset, "_", "-")) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "windows-1256", "cp1256":
		return charmap.Windows1256, nil
	case "iso-8859-1", "iso8859-1", "latin1":
		return charmap.ISO8859_1, nil
	case "iso-8859-6", "iso8859-6":
		return charmap.ISO8859_6, nil
	}
	return nil, fmt.Errorf("charset no soportado: %s", charset)
}

// parseCatalog lee el CSV (cabecera opcional supplier,category,item,price) y lo convierte a UTF-8.
func parseCatalog(r io.Reader, charset string) ([]catalogRow, error) {
	enc, err := decoderFor(charset)
	if err != nil {
		return nil, err
	}
	if enc != nil {
		r = transform.NewReader(r, enc.NewDecoder())
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 4
	cr.TrimLeadingSpace = true

	var rows []catalogRow
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(rec[0], "\ufeff")), "supplier") {
			continue
		}
		price, err := decimal.NewFromString(strings.TrimSpace(rec[3]))
		if err != nil || !price.IsPositive() {
			return nil, fmt.Errorf("línea %d: precio inválido %q", line, rec[3])
		}
		row := catalogRow{
			Line:     line,
			Supplier: strings.TrimSpace(rec[0]),
			Category: strings.TrimSpace(rec[1]),
			Item:     strings.TrimSpace(rec[2]),
			Price:    price,
		}
		if row.Supplier == "" || row.Category == "" || row.Item == "" {
			return nil, fmt.Errorf("línea %d: campos vacíos", line)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
