package config

// SourceFileExt is the extension written by the external parser.
const SourceFileExt = ".ast.yaml"

// SourceFileExtensions are all recognized AST document extensions. JSON
// documents are read by the same YAML decoder.
var SourceFileExtensions = []string{".ast.yaml", ".ast.yml", ".ast.json"}

// Config file names searched by FindConfig, in order.
var ConfigFileNames = []string{"classc.yaml", "classc.yml", "classc.toml"}

// Duplicate symbol policies.
const (
	DuplicatesWarn  = "warn"
	DuplicatesError = "error"
)

// Export formats of the symbol table.
const (
	FormatText      = "text"
	FormatYAML      = "yaml"
	FormatJSON      = "json"
	FormatProto     = "proto"
	FormatProtoJSON = "protojson"
)

var OutputFormats = []string{FormatText, FormatYAML, FormatJSON, FormatProto, FormatProtoJSON}

// Version is reported by "classc version". Overridden at link time.
var Version = "0.1.0-dev"
