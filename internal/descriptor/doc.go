// Package descriptor handles parsing and validation of module and collection
// descriptor files. A module directory carries a module.json or module.yaml
// describing the pack (name, version, tags, dependencies); a collection
// directory carries a collection.json or collection.yaml listing member
// module IDs. Module descriptors are validated against an embedded JSON Schema.
package descriptor
