package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-goannotate/pkg/config"
)

// leaf is_a mid is_a root; grouping is excluded by subset.
const testOBO = `format-version: 1.2

[Term]
id: GO:0000001
name: leaf process
namespace: biological_process
is_a: GO:0000002 ! mid process

[Term]
id: GO:0000002
name: mid process
namespace: biological_process
is_a: GO:0000003 ! root process

[Term]
id: GO:0000003
name: root process
namespace: biological_process

[Term]
id: GO:0000004
name: grouping term
namespace: biological_process
subset: goantislim_grouping
is_a: GO:0000003

[Term]
id: GO:0005575
name: cellular_component
namespace: cellular_component
`

const testGene2Go = `#tax_id	GeneID	GO_ID	Evidence	Qualifier	GO_term	PubMed	Category
9606	1	GO:0000001	IDA	involved_in	leaf process	1	Process
9606	2	GO:0000002	IEA	involved_in	mid process	-	Process
9606	1	GO:0000003	IDA	NOT involved_in	root process	2	Process
9606	3	GO:0000004	IDA	involved_in	grouping term	3	Process
9606	4	GO:0005575	IMP	located_in	cellular_component	4	Component
10090	9	GO:0000001	IDA	involved_in	leaf process	5	Process
`

const testGeneInfo = `#tax_id	GeneID	Symbol	LocusTag	Synonyms	dbXrefs	chromosome	map_location	description	type_of_gene
9606	1	AAA	-	-	-	1	-	gene one	protein-coding
9606	2	BBB	-	-	-	2	-	gene two	protein-coding
9606	3	CCC	-	-	-	3	-	gene three	protein-coding
9606	4	DDD	-	-	-	4	-	gene four	protein-coding
`

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// testConfig writes the fixtures and returns a validated config whose
// outputs go to a fresh directory.
func testConfig(t *testing.T, obo string) *config.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Inputs.Ontology = writeTestFile(t, dir, "go-basic.obo", obo)
	cfg.Inputs.Gene2Go = writeTestFile(t, dir, "gene2go", testGene2Go)
	cfg.Inputs.GeneInfo = writeTestFile(t, dir, "gene_info", testGeneInfo)
	cfg.Output.Dir = filepath.Join(dir, "out")
	require.NoError(t, cfg.Validate())
	return cfg
}

func readOutput(t *testing.T, cfg *config.Config, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(cfg.Output.Dir, name))
	require.NoError(t, err)
	return string(data)
}
