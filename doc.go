// Package tabtools provides tools for projecting flat tabular data into
// potentially nested JSON documents described by a JSON Schema.
//
// tabtools answers the question "which location in the output document does
// this column belong to?" for tabular-to-document conversion pipelines. Given
// a JSON Schema and an optional set of user-supplied projections, it builds a
// lookup table from normalized candidate field names to the type and location
// information needed to place parsed values correctly.
//
// # Overview
//
// The library consists of these packages:
//
//   - ptr: JSON document pointers (RFC 6901) with array-append support
//   - collate: caseless, accent-insensitive text collation for field matching
//   - schema: JSON Schema document model, structural build, and $ref indexing
//   - shape: schema shape inference yielding types and required-ness for
//     every reachable document location
//   - projection: the projection table resolver
//   - parse: parse configuration and a CSV-to-document parser driven by the
//     projection table
//
// # Quick Start
//
// Resolve a projection table from a schema and overrides:
//
//	import "github.com/erraggy/tabtools/projection"
//
//	table, err := projection.Build(schemaDoc, overrides)
//	if err != nil {
//		log.Fatal(err)
//	}
//	info, ok := table.Lookup(collate.String("Foo Bar"))
//
// Parse a CSV file into JSON documents:
//
//	import "github.com/erraggy/tabtools/parse"
//
//	cfg, err := parse.LoadConfig("parse-config.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	table, err := cfg.ResolveProjections()
//	if err != nil {
//		log.Fatal(err)
//	}
//	p := parse.NewCSVParser(table)
//	err = p.Parse(os.Stdin, func(doc map[string]any) error {
//		return json.NewEncoder(os.Stdout).Encode(doc)
//	})
//
// # Design
//
// Field-name matching is collation-based: every candidate name inserted into
// the projection table is normalized with NFD, full Unicode default case
// folding, then NFKC recomposition, so that headers like "Foo_Bar", "foo bar",
// and "FOOBAR" all resolve to the same nested location. Consumers must apply
// the same collation to raw headers before lookup; see the collate package.
//
// Schema build or index failures are fatal configuration errors surfaced as
// structured errors in the taberrors package. Everything else degrades
// gracefully: projections pointing outside the schema's known shape produce
// entries with no type information plus a warning, never an error.
package tabtools
