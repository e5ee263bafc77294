// symbols/symbol_table.go - Main symbol table entry point
//
// The package is split into focused files:
// - symbol_table_core.go: the four table levels and their entries
// - symbol_table_operations.go: insertion with duplicate detection
// - symbol_table_builder.go: the visitor that builds a namespace table
// - symbol_table_resolution.go: path lookup and sorted iteration
// - symbol_table_render.go: text rendering used by the CLI
// - symbol_table_attach.go: rebuilding a table from exported or stored rows

package symbols
