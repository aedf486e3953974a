package cli

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/toyz/bindmeta/internal/models"
	"github.com/toyz/bindmeta/internal/utils"
)

// Manifest lists every binding a run found, for tools that do not load the
// generated code
type Manifest struct {
	Module   string            `yaml:"module,omitempty"`
	Packages []ManifestPackage `yaml:"packages"`
}

// ManifestPackage is one annotated package
type ManifestPackage struct {
	Package     string               `yaml:"package"`
	ImportPath  string               `yaml:"import_path,omitempty"`
	Controllers []ManifestController `yaml:"controllers"`
}

// ManifestController is one controller type
type ManifestController struct {
	Name    string           `yaml:"name"`
	Methods []ManifestMethod `yaml:"methods"`
}

// ManifestMethod is one annotated method
type ManifestMethod struct {
	Name     string          `yaml:"name"`
	Exported bool            `yaml:"exported"`
	Params   []ManifestParam `yaml:"params"`
}

// ManifestParam is one bound parameter
type ManifestParam struct {
	Index     int    `yaml:"index"`
	GoName    string `yaml:"go_name"`
	GoType    string `yaml:"go_type"`
	Kind      string `yaml:"kind"`
	Name      string `yaml:"name,omitempty"`
	ParseJSON bool   `yaml:"parse_json,omitempty"`
	Required  bool   `yaml:"required,omitempty"`
	Position  string `yaml:"position"`
}

// BuildManifest converts parsed packages into a manifest. Packages without
// bindings are left out, unbound parameters too.
func BuildManifest(module string, packages []*models.PackageBindings) Manifest {
	manifest := Manifest{Module: module, Packages: []ManifestPackage{}}

	for _, pkg := range packages {
		if pkg == nil || !pkg.HasBindings() {
			continue
		}

		mp := ManifestPackage{
			Package:    pkg.PackageName,
			ImportPath: pkg.ImportPath,
		}
		for _, controller := range pkg.Controllers {
			mc := ManifestController{Name: controller.Name}
			for _, method := range controller.Methods {
				mm := ManifestMethod{Name: method.Name, Exported: method.Exported}
				for _, slot := range method.Bound() {
					mm.Params = append(mm.Params, ManifestParam{
						Index:     slot.Index,
						GoName:    slot.GoName,
						GoType:    slot.GoType,
						Kind:      slot.Binding.Kind.String(),
						Name:      slot.Binding.Name,
						ParseJSON: slot.Binding.ParseJSON,
						Required:  slot.Binding.Required,
						Position:  slot.Binding.Position(),
					})
				}
				mc.Methods = append(mc.Methods, mm)
			}
			mp.Controllers = append(mp.Controllers, mc)
		}
		manifest.Packages = append(manifest.Packages, mp)
	}

	return manifest
}

// Encode renders the manifest as YAML
func (m Manifest) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteManifest writes the manifest to path
func WriteManifest(path string, manifest Manifest) error {
	content, err := manifest.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return utils.WrapWriteError(fmt.Sprintf("manifest %s", path), err)
	}
	return nil
}

// ReadManifest loads a manifest written by WriteManifest
func ReadManifest(path string) (Manifest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, err
	}
	var manifest Manifest
	if err := yaml.Unmarshal(content, &manifest); err != nil {
		return Manifest{}, utils.WrapParseError(fmt.Sprintf("manifest %s", path), err)
	}
	return manifest, nil
}
