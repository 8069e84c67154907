package model

// Format identifies the source syntax of a configuration file.
type Format string

const (
	FormatYAML       Format = "yaml"
	FormatJSON       Format = "json"
	FormatProperties Format = "properties"
	FormatEnv        Format = "env"
)

// SourceFile is one discovered configuration file awaiting normalization.
type SourceFile struct {
	Path   string
	Format Format
}
