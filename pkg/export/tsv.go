package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-goannotate/pkg/aggregate"
)

// LongHeader is the column set of the long-form summary
var LongHeader = []string{
	"go_id", "go_name", "go_domain", "tax_id", "annotation_type", "size", "gene_ids", "gene_symbols",
}

// WideHeader is the column set of the one-row-per-term summary
var WideHeader = []string{
	"go_id", "go_name", "go_domain", "tax_id",
	"direct_size", "direct_gene_ids", "direct_gene_symbols",
	"inferred_size", "inferred_gene_ids", "inferred_gene_symbols",
}

func newTSVWriter(w io.Writer) *csv.Writer {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	return cw
}

// WriteLong writes rows in long form and returns the number of data rows
func WriteLong(w io.Writer, taxID int, rows []aggregate.Row) (int, error) {
	cw := newTSVWriter(w)
	if err := cw.Write(LongHeader); err != nil {
		return 0, err
	}

	tax := strconv.Itoa(taxID)
	record := make([]string, len(LongHeader))
	for _, r := range rows {
		record[0] = r.TermID
		record[1] = r.Name
		record[2] = r.Domain.String()
		record[3] = tax
		record[4] = r.Kind.String()
		record[5] = strconv.Itoa(r.Size())
		record[6] = joinIDs(r.GeneIDs)
		record[7] = strings.Join(r.Symbols, "|")
		if err := cw.Write(record); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	return len(rows), cw.Error()
}

// WriteWide writes one row per term with both kinds side by side
func WriteWide(w io.Writer, taxID int, rows []aggregate.WideRow) (int, error) {
	cw := newTSVWriter(w)
	if err := cw.Write(WideHeader); err != nil {
		return 0, err
	}

	tax := strconv.Itoa(taxID)
	for _, r := range rows {
		record := []string{
			r.TermID, r.Name, r.Domain.String(), tax,
			strconv.Itoa(len(r.DirectGeneIDs)), joinIDs(r.DirectGeneIDs), strings.Join(r.DirectSymbols, "|"),
			strconv.Itoa(len(r.InferredGeneIDs)), joinIDs(r.InferredGeneIDs), strings.Join(r.InferredSymbols, "|"),
		}
		if err := cw.Write(record); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	return len(rows), cw.Error()
}

func joinIDs(ids []int64) string {
	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(strconv.FormatInt(id, 10))
	}
	return b.String()
}
