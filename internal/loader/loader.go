// Package loader reads the line-oriented, whitespace-separated vector
// text files the benchmark harness operates on. This lives outside the
// hnsw package deliberately: the core index takes only a dimension and a
// contiguous float32 buffer, and has no file-format opinion of its own.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Vectors holds a parsed vector file: N rows of Dim float32 each, flattened
// row-major into Flat, exactly the shape hnsw.Index.Build expects.
type Vectors struct {
	Dim  int
	N    int
	Flat []float32
}

// Load reads a vector file from path. If the first line is two
// whitespace-separated integers ("count dim"), it is treated as a header
// and used to preallocate; otherwise dimension is inferred from the first
// data row and every subsequent row is required to match it.
func Load(path string) (*Vectors, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: open %s: %w", path, err)
	}
	defer f.Close()
	return parse(f)
}

func parse(r io.Reader) (*Vectors, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var flat []float32
	dim := -1
	rows := 0

	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)

		if first {
			first = false
			if len(fields) == 2 {
				if count, err1 := strconv.Atoi(fields[0]); err1 == nil {
					if d, err2 := strconv.Atoi(fields[1]); err2 == nil {
						dim = d
						flat = make([]float32, 0, count*d)
						continue
					}
				}
			}
		}

		if dim == -1 {
			dim = len(fields)
		}
		if len(fields) != dim {
			return nil, fmt.Errorf("loader: row %d has %d fields, expected dimension %d", rows, len(fields), dim)
		}

		for _, tok := range fields {
			v, err := strconv.ParseFloat(tok, 32)
			if err != nil {
				return nil, fmt.Errorf("loader: row %d: %w", rows, err)
			}
			flat = append(flat, float32(v))
		}
		rows++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("loader: scan: %w", err)
	}
	if dim <= 0 {
		return nil, fmt.Errorf("loader: no data rows found")
	}

	return &Vectors{Dim: dim, N: rows, Flat: flat}, nil
}

// LoadGroundTruth reads a ground-truth file: one line per query, each a
// whitespace-separated list of the true nearest-neighbor ids in rank
// order. Unlike Load, row lengths may vary (a query may have fewer than K
// labeled neighbors).
func LoadGroundTruth(path string) ([][]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: open %s: %w", path, err)
	}
	defer f.Close()

	var out [][]int
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		row := make([]int, len(fields))
		for i, tok := range fields {
			v, err := strconv.Atoi(tok)
			if err != nil {
				return nil, fmt.Errorf("loader: ground truth row %d: %w", len(out), err)
			}
			row[i] = v
		}
		out = append(out, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("loader: scan ground truth: %w", err)
	}
	return out, nil
}
