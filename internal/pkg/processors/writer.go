package processors

import (
	"api-commonizer/internal/pkg/api"
	"api-commonizer/internal/pkg/common"
	"os"
	"path/filepath"
	"strings"

	cp "github.com/otiai10/copy"
	"golang.org/x/exp/slices"
)

// CommonizedRoot reads the whole merge tree and assembles the common API
// description. Nodes that resolved absent are left out; an absent root means
// nothing could be commonized at all.
func CommonizedRoot(tree *MergeTree) (*api.Root, bool) {
	root, resolution := tree.Root.Common()
	if resolution != Resolved {
		return nil, false
	}
	for _, name := range sortedMapKeys(tree.Root.Modules) {
		if m, ok := commonizedModule(tree.Root.Modules[name]); ok {
			root.Modules = append(root.Modules, m)
		}
	}
	return root, true
}

func commonizedModule(node *ModuleNode) (*api.Module, bool) {
	module, resolution := node.Common()
	if resolution != Resolved {
		return nil, false
	}
	for _, name := range sortedMapKeys(node.Packages) {
		if p, ok := commonizedPackage(node.Packages[name]); ok {
			module.Packages = append(module.Packages, p)
		}
	}
	return module, true
}

func commonizedPackage(node *PackageNode) (*api.Package, bool) {
	pkg, resolution := node.Common()
	if resolution != Resolved {
		return nil, false
	}
	for _, key := range sortedMapKeys(node.Properties) {
		if p, res := node.Properties[key].Common(); res == Resolved {
			pkg.Properties = append(pkg.Properties, p)
		}
	}
	for _, key := range sortedMapKeys(node.Functions) {
		if f, res := node.Functions[key].Common(); res == Resolved {
			pkg.Functions = append(pkg.Functions, f)
		}
	}
	for _, name := range sortedMapKeys(node.Classes) {
		if c, ok := commonizedClass(node.Classes[name]); ok {
			pkg.Classes = append(pkg.Classes, c)
		}
	}
	for _, name := range sortedMapKeys(node.TypeAliases) {
		if a, res := node.TypeAliases[name].Common(); res == Resolved {
			pkg.TypeAliases = append(pkg.TypeAliases, a)
		}
	}
	return pkg, true
}

func commonizedClass(node *ClassNode) (*api.Class, bool) {
	class, resolution := node.Common()
	if resolution != Resolved {
		return nil, false
	}
	for _, key := range sortedMapKeys(node.Constructors) {
		if c, res := node.Constructors[key].Common(); res == Resolved {
			class.Constructors = append(class.Constructors, c)
		}
	}
	return class, true
}

// WriteOutput stores the merged description next to the native resources of
// the first target: files under `native/` are copied over, except those
// prefixed with `!`.
func WriteOutput(root *api.Root, sourceDir string, outPath string) error {
	outDir := filepath.Dir(outPath)
	if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
		return common.NewSystemError(err)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return common.NewSystemError(err)
	}
	defer f.Close()
	if err := api.EncodeManifest(f, root); err != nil {
		return common.NewSystemError(err)
	}

	nativePath := filepath.Join(sourceDir, "native")
	if _, err := os.Stat(nativePath); err == nil {
		err := cp.Copy(nativePath, filepath.Join(outDir, "native"), cp.Options{
			Skip: func(info os.FileInfo, src, dest string) (bool, error) {
				_, fName := filepath.Split(src)
				return strings.HasPrefix(fName, "!"), nil
			},
		})
		if err != nil {
			return common.NewSystemError(err)
		}
	}
	return nil
}

func sortedMapKeys[K ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
