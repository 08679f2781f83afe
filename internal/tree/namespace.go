package tree

// DeclareNamespace binds prefix ("" for the default namespace) to uri
// directly on element id. It does not touch descendants; in-scope
// resolution walks the ancestor chain at lookup time.
func (d *Document) DeclareNamespace(id NodeID, prefix, uri string) {
	r := d.rec(id)
	for i, decl := range r.nsDecls {
		if decl.prefix == prefix {
			r.nsDecls[i].uri = uri
			return
		}
	}
	r.nsDecls = append(r.nsDecls, nsDecl{prefix: prefix, uri: uri})
	r.nsCache = nil // in-scope set becomes stale for the namespace axis
}

// NSDecl is one prefix->URI binding declared directly on an element.
type NSDecl struct {
	Prefix string
	URI    string
}

// OwnNamespaceDecls returns the bindings declared directly on element id,
// in declaration order, without walking ancestors. Serialization uses
// this instead of InScopeNamespaces to avoid re-emitting an inherited
// binding at every descendant.
func (d *Document) OwnNamespaceDecls(id NodeID) []NSDecl {
	r := d.rec(id)
	out := make([]NSDecl, len(r.nsDecls))
	for i, decl := range r.nsDecls {
		out[i] = NSDecl{Prefix: decl.prefix, URI: decl.uri}
	}
	return out
}

// LookupPrefix resolves prefix to a URI in the in-scope bindings of
// element id, walking the ancestor chain. The "xml" prefix always
// resolves to NSReservedXML, even if never explicitly declared.
func (d *Document) LookupPrefix(id NodeID, prefix string) (string, bool) {
	if prefix == "xml" {
		return NSReservedXML, true
	}
	for cur := id; cur != NilID; cur = d.rec(cur).parent {
		if d.rec(cur).kind != Element {
			continue
		}
		for _, decl := range d.rec(cur).nsDecls {
			if decl.prefix == prefix {
				return decl.uri, decl.uri != ""
			}
		}
	}
	return "", false
}

// InScopeNamespaces returns the effective prefix->URI bindings visible at
// element id, nearest declaration wins.
func (d *Document) InScopeNamespaces(id NodeID) map[string]string {
	out := map[string]string{"xml": NSReservedXML}
	var chain []NodeID
	for cur := id; cur != NilID; cur = d.rec(cur).parent {
		if d.rec(cur).kind == Element {
			chain = append(chain, cur)
		}
	}
	for i := len(chain) - 1; i >= 0; i-- {
		for _, decl := range d.rec(chain[i]).nsDecls {
			if decl.uri == "" {
				delete(out, decl.prefix)
			} else {
				out[decl.prefix] = decl.uri
			}
		}
	}
	return out
}

// namespaceNodes returns (creating and memoizing them if needed) the
// namespace-axis nodes for element id: "xml" first, then the other
// in-scope prefixes in sorted order.
func (d *Document) namespaceNodes(id NodeID) []NodeID {
	r := d.rec(id)
	if r.kind != Element {
		return nil
	}
	if r.nsCache != nil {
		return r.nsCache
	}
	inscope := d.InScopeNamespaces(id)
	// Deterministic order: "xml" first, then the rest by prefix so
	// repeated queries are stable; ordering among namespace nodes is
	// otherwise implementation-defined.
	prefixes := make([]string, 0, len(inscope))
	for p := range inscope {
		if p != "xml" {
			prefixes = append(prefixes, p)
		}
	}
	sortStrings(prefixes)
	prefixes = append([]string{"xml"}, prefixes...)

	ids := make([]NodeID, 0, len(prefixes))
	for _, p := range prefixes {
		nsID := d.newNode(Namespace, ExpandedName{Local: p}, inscope[p])
		nr := d.rec(nsID)
		nr.parent = id
		nr.detached = false
		ids = append(ids, nsID)
	}
	r = d.rec(id) // newNode may have reallocated the arena
	r.nsCache = ids
	return ids
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
