package models

// PackageBindings represents every annotated controller found in a package
type PackageBindings struct {
	PackageName string               // name of the Go package
	PackagePath string               // file system path to the package
	ImportPath  string               // import path, empty when unresolved
	Controllers []ControllerBindings // controllers with at least one binding
}

// BindingCount returns the number of bound parameters in the package
func (p *PackageBindings) BindingCount() int {
	count := 0
	for _, c := range p.Controllers {
		count += c.BindingCount()
	}
	return count
}

// HasBindings reports whether anything in the package needs registering
func (p *PackageBindings) HasBindings() bool {
	return p.BindingCount() > 0
}
