// Package info describes the schema and physical layout of a graph archive.
//
// A graph archive stores vertices and edges as fixed-size chunks of columnar
// files. This package never reads those files; it describes where they live.
//
// # Core Types
//
//   - [VertexInfo]: one vertex label, its chunk size and property groups
//   - [EdgeInfo]: one (src, edge, dst) triple, its chunk sizes, adjacency
//     lists and property groups
//   - [GraphInfo]: a named set of vertex and edge infos under one prefix
//   - [PropertyGroup], [AdjacentList], [Property]: schema atoms
//   - [Version]: the format version tag ("gar/v1")
//
// All of them are immutable. Methods that look like mutation ([VertexInfo.AddPropertyGroup],
// [EdgeInfo.AddAdjacentList], [GraphInfo.AddVertex], ...) return a new value
// and leave the receiver untouched, so infos can be shared freely between
// goroutines and readers.
//
// # Layout
//
// Paths are built by concatenating an entity prefix with fixed segments:
//
//	vertex property chunk   <prefix><group>/chunk<i>
//	adjacency list chunk    <prefix><type>/adj_list/part<p>/chunk<i>
//	adjacency offset chunk  <prefix><type>/offset/chunk<i>
//	edge property chunk     <prefix><type>/<group>/part<p>/chunk<i>
//	vertex count            <prefix>vertex_count
//	edge count              <prefix><type>/adj_list/edge_count<p>
//
// where <group> is a property group's directory token and <type> one of
// ordered_by_source, unordered_by_source, ordered_by_dest, unordered_by_dest.
// A group without an explicit prefix uses its property names sorted and
// joined with "_" ("firstName_gender_lastName/"), so equal groups resolve to
// one directory whatever the declaration order. Writers that join names in
// declaration order produce a different directory; documents exchanged with
// them should carry explicit group prefixes.
//
// These strings are a durable on-disk contract shared with other readers and
// writers; changing them requires a new format version.
//
// # Validation
//
// Constructors reject only structurally impossible input (empty labels,
// non-positive chunk sizes, missing version). Everything else, such as
// duplicate property names across groups or an edge without adjacency lists,
// is reported by Validate and IsValidated. A validated info never turns
// invalid through an Add* call: the offending call fails instead.
//
// # Persistence
//
// Infos serialize to YAML documents (Dump, Parse*Info) and can be written to
// or read from anything implementing [FileWriter] and [FileReader] (Save,
// Load*Info), such as the backends of package storage. A saved graph is one
// document per member next to the graph document:
//
//	ldbc.graph.yml
//	person.vertex.yml
//	person_knows_person.edge.yml
package info
