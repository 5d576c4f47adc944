package source

import (
	"bufio"
	"io"
	"strings"

	"golang.org/x/exp/mmap"

	"github.com/dd0wney/cluso-goannotate/pkg/ontology"
)

const (
	stanzaNone = iota
	stanzaTerm
	stanzaOther
)

// OpenOntology parses an OBO 1.2 file. Plain files are memory-mapped;
// names ending in .gz are streamed through gzip.
func OpenOntology(path string) (*ontology.RawGraph, error) {
	if strings.HasSuffix(path, ".gz") {
		rc, err := Open(path)
		if err != nil {
			return nil, inputErr("ontology", path, 0, err)
		}
		defer rc.Close()
		return parseOBO(rc, path)
	}

	reader, err := mmap.Open(path)
	if err != nil {
		return nil, inputErr("ontology", path, 0, err)
	}
	defer reader.Close()
	return parseOBO(io.NewSectionReader(reader, 0, int64(reader.Len())), path)
}

// ParseOBO reads [Term] stanzas from r. Obsolete terms are skipped, as are
// [Typedef] and [Instance] stanzas. Only is_a and relationship tags yield
// edges; relation filtering happens in the graph builder.
func ParseOBO(r io.Reader) (*ontology.RawGraph, error) {
	return parseOBO(r, "")
}

func parseOBO(r io.Reader, path string) (*ontology.RawGraph, error) {
	p := &oboParser{raw: &ontology.RawGraph{}}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	line := 0
	for scanner.Scan() {
		line++
		if err := p.line(scanner.Text()); err != nil {
			return nil, inputErr("ontology", path, line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, inputErr("ontology", path, line+1, err)
	}
	if err := p.flush(); err != nil {
		return nil, inputErr("ontology", path, line, err)
	}
	if len(p.raw.Terms) == 0 {
		return nil, inputErr("ontology", path, 0, malformed("no [Term] stanzas"))
	}
	return p.raw, nil
}

type oboParser struct {
	raw    *ontology.RawGraph
	stanza int

	term     ontology.RawTerm
	edges    []ontology.RawEdge
	obsolete bool
}

func (p *oboParser) line(text string) error {
	text = strings.TrimSpace(text)
	if text == "" || text[0] == '!' {
		return nil
	}

	if text[0] == '[' {
		if !strings.HasSuffix(text, "]") {
			return malformed("stanza header %q", text)
		}
		if err := p.flush(); err != nil {
			return err
		}
		if text == "[Term]" {
			p.stanza = stanzaTerm
		} else {
			p.stanza = stanzaOther
		}
		return nil
	}

	tag, value, ok := strings.Cut(text, ":")
	if !ok {
		return malformed("tag-value pair %q", text)
	}
	if p.stanza != stanzaTerm {
		// header or non-term stanza
		return nil
	}

	tag = strings.TrimSpace(tag)
	value = tagValue(value)

	switch tag {
	case "id":
		p.term.ID = value
	case "name":
		p.term.Name = value
	case "namespace":
		p.term.Namespace = value
	case "subset":
		p.term.Subsets = append(p.term.Subsets, value)
	case "is_obsolete":
		p.obsolete = value == "true"
	case "is_a":
		target := firstField(value)
		if target == "" {
			return malformed("empty is_a")
		}
		p.edges = append(p.edges, ontology.RawEdge{To: target, Relation: "is_a"})
	case "relationship":
		fields := strings.Fields(value)
		if len(fields) < 2 {
			return malformed("relationship %q", value)
		}
		p.edges = append(p.edges, ontology.RawEdge{To: fields[1], Relation: fields[0]})
	}
	return nil
}

// flush commits the term stanza being read, if any
func (p *oboParser) flush() error {
	defer p.reset()
	if p.stanza != stanzaTerm {
		return nil
	}
	if p.term.ID == "" {
		return malformed("[Term] stanza without id")
	}
	if p.obsolete {
		return nil
	}

	p.raw.Terms = append(p.raw.Terms, p.term)
	for _, e := range p.edges {
		e.From = p.term.ID
		p.raw.Edges = append(p.raw.Edges, e)
	}
	return nil
}

func (p *oboParser) reset() {
	p.stanza = stanzaNone
	p.term = ontology.RawTerm{}
	p.edges = nil
	p.obsolete = false
}

// tagValue strips the trailing "! comment" and "{modifier}" from an OBO
// value. Backslash-escaped '!' and '{' are kept.
func tagValue(v string) string {
	if i := unescaped(v, '!'); i >= 0 {
		v = v[:i]
	}
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "}") {
		if i := unescaped(v, '{'); i >= 0 {
			v = strings.TrimSpace(v[:i])
		}
	}
	return v
}

func unescaped(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case c:
			return i
		}
	}
	return -1
}

func firstField(s string) string {
	if f := strings.Fields(s); len(f) > 0 {
		return f[0]
	}
	return ""
}
