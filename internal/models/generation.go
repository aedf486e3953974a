package models

// GeneratedFile represents a rendered autogen_bindings.go file
type GeneratedFile struct {
	PackageName string // name of the package
	FilePath    string // path where the file should be written
	Content     string // formatted Go source
	Controllers int    // controllers registered by the file
	Bindings    int    // parameter bindings registered by the file
}

// GeneratedFileName is the name of the file written into each annotated package
const GeneratedFileName = "autogen_bindings.go"
