package model

// Namespace identifies the authority behind a resolved identifier.
type Namespace string

const (
	NamespaceHGNC         Namespace = "hgnc"
	NamespaceUniProt      Namespace = "uniprot"
	NamespaceEnsembl      Namespace = "ensembl"
	NamespaceEntrez       Namespace = "ncbigene"
	NamespaceChEBI        Namespace = "chebi"
	NamespaceExpasy       Namespace = "expasy"
	NamespaceReactome     Namespace = "reactome"
	NamespaceWikiPathways Namespace = "wikipathways"
	NamespaceKEGG         Namespace = "kegg"

	// NamespaceHGNCMultiple tags a resolution where one identifier matched
	// several HGNC entries. The result keeps every candidate; callers must
	// decide how to materialize them.
	NamespaceHGNCMultiple Namespace = "hgnc_multiple_entry"
)

// Unknown is the sentinel display name for entities whose record carries no
// usable name.
const Unknown = "unknown"

// Gene is a gene-authority lookup result.
type Gene struct {
	Identifier string `json:"identifier"` // e.g. "hgnc:11766"
	Symbol     string `json:"symbol"`     // e.g. "TGFB1"
}

// Chemical is a chemical-authority lookup result.
type Chemical struct {
	Identifier string `json:"identifier"` // e.g. "28499"
	Name       string `json:"name"`       // normalized display name
}

// ResolvedIdentifier is the canonical (namespace, name, identifier) triple
// produced by identifier resolution. Candidates is populated exactly when
// Namespace is NamespaceHGNCMultiple and preserves the full match list.
type ResolvedIdentifier struct {
	Namespace  Namespace `json:"namespace"`
	Name       string    `json:"name"`
	Identifier string    `json:"identifier"`
	Candidates []Gene    `json:"candidates,omitempty"`
}

// Ambiguous reports whether the resolution matched more than one entry.
func (r ResolvedIdentifier) Ambiguous() bool {
	return r.Namespace == NamespaceHGNCMultiple
}

// Interaction is one typed relation extracted from a source file. Subject
// and Object reference records by their source-local ids until the graph is
// assembled. Attributes carries the interaction type tags plus any
// source-specific extras.
type Interaction struct {
	Subject    string `json:"subject"`
	Object     string `json:"object"`
	Attributes Record `json:"attributes,omitempty"`
}

// PathwayInfo is the pathway-level metadata attached to a graph when it is
// built.
type PathwayInfo struct {
	Identifier string `json:"identifier"` // e.g. "WP1871" or "path:hsa04350"
	Title      string `json:"title"`
	Source     string `json:"source"` // kegg, wikipathways, or reactome
	Organism   string `json:"organism,omitempty"`
	Version    string `json:"version,omitempty"`
}

// Name returns the best human-readable handle for the pathway.
func (p PathwayInfo) Name() string {
	if p.Title != "" {
		return p.Title
	}
	if p.Identifier != "" {
		return p.Identifier
	}
	return Unknown
}
