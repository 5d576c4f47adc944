package source

import (
	"errors"
	"strconv"

	"github.com/dd0wney/cluso-goannotate/pkg/annotation"
)

// gene2go columns: tax_id GeneID GO_ID Evidence Qualifier GO_term PubMed Category
const gene2goMinFields = 5

// gene_info columns: tax_id GeneID Symbol LocusTag Synonyms ...
const geneInfoMinFields = 3

// ReadAnnotations loads gene2go records for one organism. "-" qualifiers
// become empty strings.
func ReadAnnotations(path string, taxID int) ([]annotation.Record, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, inputErr("gene2go", path, 0, err)
	}
	defer rc.Close()

	records := make([]annotation.Record, 0, 1024)
	err = scanTSV(rc, func(_ int, f []string) error {
		if len(f) < gene2goMinFields {
			return malformed("expected at least %d columns, got %d", gene2goMinFields, len(f))
		}
		tax, err := strconv.Atoi(f[0])
		if err != nil {
			return malformed("tax_id %q", f[0])
		}
		if tax != taxID {
			return nil
		}
		gene, err := strconv.ParseInt(f[1], 10, 64)
		if err != nil {
			return malformed("GeneID %q", f[1])
		}
		records = append(records, annotation.Record{
			OrganismID: tax,
			GeneID:     gene,
			TermID:     f[2],
			Evidence:   na(f[3]),
			Qualifier:  na(f[4]),
		})
		return nil
	})
	if err != nil {
		return nil, wrapScanErr("gene2go", path, err)
	}
	return records, nil
}

// ReadGenes loads the gene directory entries for one organism
func ReadGenes(path string, taxID int) ([]annotation.Gene, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, inputErr("gene_info", path, 0, err)
	}
	defer rc.Close()

	genes := make([]annotation.Gene, 0, 1024)
	err = scanTSV(rc, func(_ int, f []string) error {
		if len(f) < geneInfoMinFields {
			return malformed("expected at least %d columns, got %d", geneInfoMinFields, len(f))
		}
		tax, err := strconv.Atoi(f[0])
		if err != nil {
			return malformed("tax_id %q", f[0])
		}
		if tax != taxID {
			return nil
		}
		gene, err := strconv.ParseInt(f[1], 10, 64)
		if err != nil {
			return malformed("GeneID %q", f[1])
		}
		genes = append(genes, annotation.Gene{OrganismID: tax, ID: gene, Symbol: na(f[2])})
		return nil
	})
	if err != nil {
		return nil, wrapScanErr("gene_info", path, err)
	}
	return genes, nil
}

func wrapScanErr(source, path string, err error) error {
	var le *lineError
	if errors.As(err, &le) {
		return inputErr(source, path, le.line, le.err)
	}
	return inputErr(source, path, 0, err)
}
