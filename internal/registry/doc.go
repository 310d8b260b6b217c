// Package registry handles module and collection discovery and dependency
// resolution. Scan walks a registry root for descriptor files and builds an
// immutable Catalog; the resolver expands module and collection IDs into
// dependency-closed, topologically ordered sets. A JSON index cache keyed on
// directory mtimes speeds up repeated discovery for search and list.
package registry
