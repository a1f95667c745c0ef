package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"text/template"
)

type currency struct {
	Name  string
	Code  string
	Num   string
	Scale int
}

// main regenerates currency_data.go from currency_data.csv.
// It is invoked by go generate from the money package directory.
func main() {
	dir := filepath.Join("scripts", "currency")

	recs, err := readCSV(filepath.Join(dir, "currency_data.csv"))
	if err != nil {
		panic(fmt.Errorf("reading CSV file: %w", err))
	}

	currs, err := toCurrencies(recs)
	if err != nil {
		panic(fmt.Errorf("converting records: %w", err))
	}

	code, err := render(filepath.Join(dir, "currency_data.tmpl"), currs)
	if err != nil {
		panic(fmt.Errorf("generating Go code: %w", err))
	}

	if err := os.WriteFile("currency_data.go", code, 0o644); err != nil {
		panic(fmt.Errorf("writing to file: %w", err))
	}
}

func readCSV(filename string) ([][]string, error) {
	in, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() { _ = in.Close() }()

	reader := csv.NewReader(in)
	if _, err := reader.Read(); err != nil { // header
		return nil, err
	}
	return reader.ReadAll()
}

// toCurrencies converts records to currencies ordered by code, with the
// unknown currency XXX first so that it becomes the zero value.
func toCurrencies(recs [][]string) ([]currency, error) {
	currs := make([]currency, 0, len(recs))
	seen := make(map[string]bool, len(recs))
	for _, rec := range recs {
		if len(rec) != 4 {
			return nil, fmt.Errorf("record %q: want 4 fields, got %d", rec, len(rec))
		}
		scale, err := strconv.Atoi(rec[3])
		if err != nil || scale < 0 || scale > 3 {
			return nil, fmt.Errorf("record %q: invalid scale %q", rec, rec[3])
		}
		if seen[rec[1]] || seen[rec[2]] {
			return nil, fmt.Errorf("record %q: duplicate code", rec)
		}
		seen[rec[1]], seen[rec[2]] = true, true
		currs = append(currs, currency{Name: rec[0], Code: rec[1], Num: rec[2], Scale: scale})
	}
	if !seen["XXX"] {
		return nil, fmt.Errorf("currency XXX is missing")
	}
	slices.SortFunc(currs, func(a, b currency) int {
		switch {
		case a.Code == b.Code:
			return 0
		case a.Code == "XXX":
			return -1
		case b.Code == "XXX":
			return 1
		case a.Code < b.Code:
			return -1
		default:
			return 1
		}
	})
	return currs, nil
}

func render(filename string, currs []currency) ([]byte, error) {
	tmpl, err := template.New(filepath.Base(filename)).ParseFiles(filename)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := tmpl.Execute(&out, currs); err != nil {
		return nil, err
	}
	return format.Source(out.Bytes())
}
