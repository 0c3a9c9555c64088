package frame

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary is a markdown-friendly description of a Table.
type Summary struct {
	Name string
	Rows int
	Cols []ColumnSummary
}

// ColumnSummary captures kind and statistics per column.
type ColumnSummary struct {
	Name    string
	Kind    Kind
	Unit    string
	NonNull int
	Missing int
	Unique  int
	// Numeric stats
	Min  float64
	Max  float64
	Mean float64
	Std  float64
	// Categorical top values
	TopValues []CategoryCount
}

type CategoryCount struct {
	Value string
	Count int
}

// Describe computes a Summary for every column of t.
func Describe(t *Table) (*Summary, error) {
	sum := &Summary{Name: t.Name, Rows: t.Nrow()}
	for _, name := range t.Names() {
		kind, err := t.Kind(name)
		if err != nil {
			return nil, err
		}
		keys, miss, err := t.Values(name)
		if err != nil {
			return nil, err
		}
		cs := ColumnSummary{Name: name, Kind: kind, Unit: t.Unit(name)}
		counts := map[string]int{}
		for i, k := range keys {
			if miss[i] {
				cs.Missing++
				continue
			}
			cs.NonNull++
			counts[k]++
		}
		cs.Unique = len(counts)
		switch kind {
		case Numeric:
			vals, err := t.Floats(name)
			if err != nil {
				return nil, err
			}
			present := make([]float64, 0, cs.NonNull)
			for _, v := range vals {
				if !math.IsNaN(v) {
					present = append(present, v)
				}
			}
			if len(present) > 0 {
				cs.Min = floats.Min(present)
				cs.Max = floats.Max(present)
				cs.Mean = stat.Mean(present, nil)
			}
			if len(present) > 1 {
				cs.Std = stat.StdDev(present, nil)
			}
		case Categorical:
			tops := make([]CategoryCount, 0, len(counts))
			for k, v := range counts {
				tops = append(tops, CategoryCount{Value: k, Count: v})
			}
			sort.Slice(tops, func(i, j int) bool {
				if tops[i].Count == tops[j].Count {
					return tops[i].Value < tops[j].Value
				}
				return tops[i].Count > tops[j].Count
			})
			if len(tops) > 8 {
				tops = tops[:8]
			}
			cs.TopValues = tops
		}
		sum.Cols = append(sum.Cols, cs)
	}
	return sum, nil
}

// Markdown renders a compact summary suitable for terminals or docs.
func (s *Summary) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if s.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", s.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", s.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(s.Cols)))

	b.WriteString("[SCHEMA]\n")
	for _, c := range s.Cols {
		total := c.NonNull + c.Missing
		missPct := 0.0
		if total > 0 {
			missPct = float64(c.Missing) * 100.0 / float64(total)
		}
		name := safeName(c.Name)
		if c.Unit != "" {
			name = fmt.Sprintf("%s [%s]", name, c.Unit)
		}
		b.WriteString(fmt.Sprintf("- %s: %s (non-null %d, missing %.1f%%)", name, c.Kind, c.NonNull, missPct))
		switch c.Kind {
		case Numeric:
			if c.NonNull > 0 {
				b.WriteString(fmt.Sprintf(" — min %.4g, max %.4g, mean %.4g, std %.4g", c.Min, c.Max, c.Mean, c.Std))
			}
		case Categorical:
			if len(c.TopValues) > 0 {
				b.WriteString(" — top: ")
				for i, kv := range c.TopValues {
					if i > 0 {
						b.WriteString(", ")
					}
					b.WriteString(fmt.Sprintf("%s(%d)", safeVal(kv.Value), kv.Count))
				}
				if c.Unique > len(c.TopValues) {
					b.WriteString(fmt.Sprintf("; unique=%d", c.Unique))
				}
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
