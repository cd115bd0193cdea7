// Package resolve maps raw entity records onto canonical
// (namespace, name, identifier) triples. The precedence rules favor
// gene-symbol authorities: any record that can be tied to an HGNC entry is
// normalized to it, accession-style identifiers keep their own namespace
// when the lookup misses, and entities nothing recognizes stay under their
// source namespace rather than being dropped.
package resolve

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/openpathway/pathway-analyzer/pkg/logging"
	"github.com/openpathway/pathway-analyzer/pkg/model"
	"github.com/openpathway/pathway-analyzer/pkg/uri"
)

// UnresolvedIdentifierError reports a record carrying no recognizable
// identifier hint at all.
type UnresolvedIdentifierError struct {
	Name string
	Keys []string
}

func (e *UnresolvedIdentifierError) Error() string {
	return fmt.Sprintf("no resolution rule matched entity %q (record keys: %s)", e.Name, strings.Join(e.Keys, ", "))
}

// Outcomes tallies how resolutions concluded across a run.
type Outcomes struct {
	Resolved  int `json:"resolved"`  // validated against the preferred authority
	Kept      int `json:"kept"`      // lookup missed, original identifier kept
	Ambiguous int `json:"ambiguous"` // multiple candidates, tagged result
	CatchAll  int `json:"catchAll"`  // last-resort source-namespace fallback
	Failed    int `json:"failed"`    // no branch matched
}

// Total returns the number of resolutions attempted.
func (o Outcomes) Total() int {
	return o.Resolved + o.Kept + o.Ambiguous + o.CatchAll + o.Failed
}

// Resolver maps raw entity records to canonical identifier triples. The
// lookup services are injected at construction; apart from outcome tallies
// the resolver holds no state, and it never mutates input records, so
// resolving the same record twice yields the same triple.
type Resolver struct {
	genes     GeneLookup
	chemicals ChemicalLookup
	outcomes  Outcomes
	log       *slog.Logger
}

// NewResolver wires a resolver with its lookup services.
func NewResolver(genes GeneLookup, chemicals ChemicalLookup) *Resolver {
	return &Resolver{
		genes:     genes,
		chemicals: chemicals,
		log:       logging.New("resolve"),
	}
}

// Outcomes returns the resolution tallies accumulated so far.
func (r *Resolver) Outcomes() Outcomes { return r.outcomes }

// Resolve maps one raw record onto its canonical identifier triple.
// Branch order: HGNC symbol, Entrez, UniProt, and Ensembl hints, then the
// accession namespaces derived from the record's resource URI (ChEBI,
// Reactome, Enzyme Commission), then the generic external-database
// catch-all. A record matching no branch is an error, never silently
// dropped.
func (r *Resolver) Resolve(rec model.Record) (model.ResolvedIdentifier, error) {
	name := DisplayName(rec)

	switch {
	case rec.Has(model.HintHGNCSymbol):
		symbol := rec.Get(model.HintHGNCSymbol)
		return r.validate(single(r.genes.ByHGNCSymbol(symbol)), model.NamespaceHGNC, symbol), nil

	case rec.Has(model.HintEntrez):
		id := rec.Get(model.HintEntrez)
		return r.validate(single(r.genes.ByEntrezID(id)), model.NamespaceEntrez, id), nil

	case rec.Has(model.HintUniProt):
		id := rec.Get(model.HintUniProt)
		return r.validate(r.genes.ByUniProtID(id), model.NamespaceUniProt, id), nil

	case rec.Has(model.HintEnsembl):
		id := rec.Get(model.HintEnsembl)
		return r.validate(single(r.genes.ByEnsemblID(id)), model.NamespaceEnsembl, id), nil
	}

	// No bridge-database hint: fall back to the namespace encoded in the
	// record's resource URI.
	var parts uri.Parts
	rawURI := rec.Get(model.KeyURI)
	if rawURI == "" {
		rawURI = rec.Get(model.KeyReactomeURI)
	}
	if rawURI != "" {
		p, err := uri.Parse(rawURI)
		if err != nil {
			return model.ResolvedIdentifier{}, err
		}
		parts = p

		switch parts.Namespace {
		case string(model.NamespaceEntrez):
			return r.validate(single(r.genes.ByEntrezID(parts.Identifier)), model.NamespaceEntrez, parts.Identifier), nil

		case string(model.NamespaceUniProt):
			return r.validate(r.genes.ByUniProtID(parts.Identifier), model.NamespaceUniProt, parts.Identifier), nil

		case string(model.NamespaceEnsembl):
			return r.validate(single(r.genes.ByEnsemblID(parts.Identifier)), model.NamespaceEnsembl, parts.Identifier), nil
		}
	}

	switch {
	case isChEBI(parts) || rec.Has(model.HintChEBI):
		// The URI identifier only applies when the URI itself addresses
		// ChEBI; a record whose URI is its source's own node address still
		// resolves through the bridge-database hint.
		identifier := rec.Get(model.HintChEBI)
		if isChEBI(parts) {
			identifier = parts.Identifier
		}
		return r.chemical(identifier, rec), nil

	case rec.Has(model.KeyReactomeURI):
		return r.reactome(rec)

	case strings.Contains(rawURI, "ec-code"):
		// Authoritative, no lookup involved.
		ec := name
		if ec == model.Unknown {
			ec = parts.Identifier
		}
		r.outcomes.Resolved++
		return model.ResolvedIdentifier{Namespace: model.NamespaceExpasy, Name: ec, Identifier: ec}, nil

	case rec.Has(model.HintWikidata) || (rec.Has(model.KeyDB) && rec.Has(model.KeyIdentifier)):
		// Only a generic external-database identifier is present. One more
		// shot at the symbol table with the display name before keeping the
		// entity under its source namespace.
		if g := r.genes.ByHGNCSymbol(name); g != nil {
			r.outcomes.Resolved++
			return model.ResolvedIdentifier{Namespace: model.NamespaceHGNC, Name: g.Symbol, Identifier: g.Identifier}, nil
		}
		r.log.Warn("keeping unrecognized entity under source namespace", "name", name)
		r.outcomes.CatchAll++
		return model.ResolvedIdentifier{Namespace: model.NamespaceWikiPathways, Name: name, Identifier: name}, nil
	}

	r.outcomes.Failed++
	return model.ResolvedIdentifier{}, &UnresolvedIdentifierError{Name: name, Keys: rec.Keys()}
}

// DisplayName resolves the human-readable name independently of namespace
// resolution: an explicit display name wins, then the name field collapsed
// to its representative member, then the unknown sentinel.
func DisplayName(rec model.Record) string {
	if v := rec.Get(model.KeyDisplayName); v != "" {
		return v
	}
	if v := rec.Get(model.KeyName); v != "" {
		return v
	}
	return model.Unknown
}

// single adapts an optional lookup result to the list shape validate takes.
func single(g *model.Gene) []model.Gene {
	if g == nil {
		return nil
	}
	return []model.Gene{*g}
}

// validate normalizes a gene query result. Misses retry the alias table for
// HGNC symbol queries and then degrade to the original identifier under its
// original namespace. Multi-candidate results are tagged and preserved in
// full, never truncated to one match.
func (r *Resolver) validate(matches []model.Gene, ns model.Namespace, original string) model.ResolvedIdentifier {
	if len(matches) == 0 && ns == model.NamespaceHGNC {
		if g := r.genes.ByHGNCAlias(original); g != nil {
			matches = []model.Gene{*g}
		}
	}

	switch len(matches) {
	case 0:
		r.log.Warn("no gene entry found, keeping original identifier", "identifier", original, "namespace", ns)
		r.outcomes.Kept++
		return model.ResolvedIdentifier{Namespace: ns, Name: original, Identifier: original}

	case 1:
		r.outcomes.Resolved++
		return model.ResolvedIdentifier{Namespace: model.NamespaceHGNC, Name: matches[0].Symbol, Identifier: matches[0].Identifier}
	}

	r.log.Warn("identifier matches multiple gene entries", "identifier", original, "matches", len(matches))
	r.outcomes.Ambiguous++
	candidates := make([]model.Gene, len(matches))
	copy(candidates, matches)
	return model.ResolvedIdentifier{
		Namespace:  model.NamespaceHGNCMultiple,
		Name:       original,
		Identifier: joinIdentifiers(candidates),
		Candidates: candidates,
	}
}

func joinIdentifiers(genes []model.Gene) string {
	ids := make([]string, len(genes))
	for i, g := range genes {
		ids[i] = g.Identifier
	}
	return strings.Join(ids, ",")
}

// isChEBI reports whether URI parts address a ChEBI chemical, either
// through the chebi namespace itself or an OBO-style identifier.
func isChEBI(parts uri.Parts) bool {
	if strings.Contains(strings.ToLower(parts.Namespace), "chebi") {
		return true
	}
	return parts.Namespace == "obo" && strings.Contains(parts.Identifier, "CHEBI")
}

// chemical normalizes a ChEBI entity. An explicit display name is validated
// against the chemical service; stale names retry by bare identifier, and
// entities the service does not know keep the bare identifier as name. The
// namespace is authoritative either way.
func (r *Resolver) chemical(identifier string, rec model.Record) model.ResolvedIdentifier {
	name := DisplayName(rec)
	validated := false

	if rec.Has(model.KeyDisplayName) {
		if c := r.chemicals.ByName(name); c != nil {
			validated = true
		} else {
			identifier = strings.ReplaceAll(identifier, "CHEBI:", "")
			if c := r.chemicals.ByID(identifier); c != nil {
				name = c.Name
				validated = true
			} else {
				// Outdated entry: the bare identifier doubles as the name.
				name = identifier
			}
		}
	}

	if validated {
		r.outcomes.Resolved++
	} else {
		r.log.Warn("chemical entry not validated", "identifier", identifier, "name", name)
		r.outcomes.Kept++
	}
	return model.ResolvedIdentifier{Namespace: model.NamespaceChEBI, Name: name, Identifier: identifier}
}

// reactome keeps the source's own stable identifier, taken from an explicit
// field or from the fragment of the Reactome resource URI.
func (r *Resolver) reactome(rec model.Record) (model.ResolvedIdentifier, error) {
	identifier := rec.Get(model.KeyReactomeID)
	if identifier == "" {
		parts, err := uri.Parse(rec.Get(model.KeyReactomeURI))
		if err != nil {
			return model.ResolvedIdentifier{}, err
		}
		identifier = uri.Fragment(parts.Identifier)
	}

	r.log.Debug("adding reactome identifier", "identifier", identifier)
	r.outcomes.Resolved++
	return model.ResolvedIdentifier{Namespace: model.NamespaceReactome, Name: DisplayName(rec), Identifier: identifier}, nil
}
