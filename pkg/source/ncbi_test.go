package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-goannotate/pkg/annotation"
)

const sampleGene2Go = `#tax_id	GeneID	GO_ID	Evidence	Qualifier	GO_term	PubMed	Category
9606	1	GO:0000001	IDA	enables	some term	123	Function
9606	2	GO:0000002	IEA	NOT located_in	other term	-	Component
10090	3	GO:0000001	EXP	-	mouse	-	Process
9606	4	GO:0000003	-	-	no evidence	-	Process
`

const sampleGeneInfo = `#tax_id	GeneID	Symbol	LocusTag	Synonyms	dbXrefs	chromosome	map_location	description	type_of_gene
9606	1	A1BG	-	A1B|ABG	MIM:138670	19	19q13.43	alpha-1-B glycoprotein	protein-coding
9606	2	-	-	-	-	12	12p13.31	unnamed	protein-coding
10090	3	Mus1	-	-	-	1	-	mouse gene	protein-coding
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeGzip(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

func TestReadAnnotations(t *testing.T) {
	records, err := ReadAnnotations(writeFile(t, "gene2go", sampleGene2Go), 9606)
	require.NoError(t, err)

	assert.Equal(t, []annotation.Record{
		{OrganismID: 9606, GeneID: 1, TermID: "GO:0000001", Evidence: "IDA", Qualifier: "enables"},
		{OrganismID: 9606, GeneID: 2, TermID: "GO:0000002", Evidence: "IEA", Qualifier: "NOT located_in"},
		{OrganismID: 9606, GeneID: 4, TermID: "GO:0000003", Evidence: "", Qualifier: ""},
	}, records)
	assert.Equal(t, annotation.Negative, records[1].Polarity())
}

func TestReadAnnotations_Gzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gene2go.gz")
	writeGzip(t, path, sampleGene2Go)

	records, err := ReadAnnotations(path, 10090)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(3), records[0].GeneID)
}

func TestReadAnnotations_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
		line    int
	}{
		{"short row", "#header\n9606\t1\tGO:1\n", 2},
		{"bad tax", "x\t1\tGO:1\tIDA\t-\n", 1},
		{"bad gene", "9606\tabc\tGO:1\tIDA\t-\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadAnnotations(writeFile(t, "gene2go", tt.content), 9606)
			var ie *InputError
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, "gene2go", ie.Source)
			assert.Equal(t, tt.line, ie.Line)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestReadAnnotations_OtherOrganismMalformedGeneIgnored(t *testing.T) {
	// rows for other organisms are not decoded past tax_id
	records, err := ReadAnnotations(writeFile(t, "gene2go", "10090\tabc\tGO:1\tIDA\t-\n"), 9606)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestReadGenes(t *testing.T) {
	genes, err := ReadGenes(writeFile(t, "gene_info", sampleGeneInfo), 9606)
	require.NoError(t, err)
	assert.Equal(t, []annotation.Gene{
		{OrganismID: 9606, ID: 1, Symbol: "A1BG"},
		{OrganismID: 9606, ID: 2, Symbol: ""},
	}, genes)
}

func TestReadGenes_Missing(t *testing.T) {
	_, err := ReadGenes(filepath.Join(t.TempDir(), "nope.gz"), 9606)
	require.Error(t, err)
	assert.True(t, IsInputError(err))
	assert.Contains(t, err.Error(), "gene_info")
}

func TestOpen_CorruptGzip(t *testing.T) {
	_, err := Open(writeFile(t, "bad.gz", "not gzip"))
	assert.Error(t, err)
}
