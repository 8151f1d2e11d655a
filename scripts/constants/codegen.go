package main

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"go/format"
	"math/big"
	"os"
	"path/filepath"
	"text/template"
)

// bits is the binary logarithm of the denominator used for all constants.
const bits = 128

type constant struct {
	Name        string
	Description string
	Bits        int
	Num         string
	Den         string
}

func main() {
	// Open the input file and read its contents
	data, err := readCsvFile(filepath.Join("scripts", "constants", "constants_data.csv"))
	if err != nil {
		panic(fmt.Errorf("error reading CSV file: %v", err))
	}

	// Convert the CSV records to a list of constant objects
	consts, err := convertDataToConstants(data)
	if err != nil {
		panic(fmt.Errorf("error converting CSV records: %v", err))
	}

	// Generate Go code from the constant objects using a template
	code, err := generateGoCode(filepath.Join("scripts", "constants", "constants_data.tmpl"), consts)
	if err != nil {
		panic(fmt.Errorf("error generating Go code: %v", err))
	}

	// Write the generated Go code to a file
	err = writeToFile("constants_data.go", code)
	if err != nil {
		panic(fmt.Errorf("error writing to file: %v", err))
	}
}

func readCsvFile(filename string) ([][]string, error) {
	// Open the CSV file
	in, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() { _ = in.Close() }()

	// Read the CSV records
	reader := csv.NewReader(in)
	_, err = reader.Read() // header
	if err != nil {
		return nil, err
	}
	recs, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	return recs, nil
}

func convertDataToConstants(data [][]string) ([]constant, error) {
	den := new(big.Int).Lsh(big.NewInt(1), bits)
	consts := []constant{}
	for _, rec := range data {
		num, err := nearestNumerator(rec[2], den)
		if err != nil {
			return nil, fmt.Errorf("constant %v: %w", rec[0], err)
		}
		c := constant{
			Name:        rec[0],
			Description: rec[1],
			Bits:        bits,
			Num:         num.String(),
			Den:         den.String(),
		}
		consts = append(consts, c)
	}
	return consts, nil
}

// nearestNumerator returns the integer n such that n/den is nearest to
// the decimal value s, breaking ties to even.
func nearestNumerator(s string, den *big.Int) (*big.Int, error) {
	v, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("invalid decimal %q", s)
	}
	v.Mul(v, new(big.Rat).SetInt(den))

	// v = q + r/d with 0 <= r < d for positive v
	q, r := new(big.Int).QuoRem(v.Num(), v.Denom(), new(big.Int))
	r.Lsh(r, 1)
	switch r.Cmp(v.Denom()) {
	case 1:
		q.Add(q, big.NewInt(1))
	case 0:
		if q.Bit(0) == 1 {
			q.Add(q, big.NewInt(1))
		}
	}
	return q, nil
}

func generateGoCode(filename string, consts []constant) ([]byte, error) {
	// Create a new template object from the template file
	tmpl, err := template.New(filepath.Base(filename)).ParseFiles(filename)
	if err != nil {
		return nil, err
	}

	// Execute the template
	var output bytes.Buffer
	err = tmpl.Execute(&output, consts)
	if err != nil {
		return nil, err
	}

	// Format the output as Go code
	formatted, err := format.Source(output.Bytes())
	if err != nil {
		return nil, err
	}
	return formatted, nil
}

func writeToFile(filename string, content []byte) error {
	// Write the content to a file
	out, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()
	writer := bufio.NewWriter(out)
	_, err = writer.Write(content)
	if err != nil {
		return err
	}
	err = writer.Flush()
	if err != nil {
		return err
	}
	return nil
}
