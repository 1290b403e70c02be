// Package fileperm provides a linter that flags hardcoded file permission
// literals where a pkg/fileutil constant exists.
package fileperm

import (
	"go/ast"
	"go/token"
	"strconv"

	"golang.org/x/tools/go/analysis"
)

// Analyzer is a custom analysis pass that checks for hardcoded file permissions
var Analyzer = &analysis.Analyzer{
	Name: "fileperm",
	Doc:  "checks for hardcoded file permission literals instead of using fileutil constants",
	Run:  run,
}

// permConstants maps the permissions used in this module to their constants.
var permConstants = map[int64]string{
	0o600: "fileutil.ReadWriteUserPermission",
	0o644: "fileutil.ReadWriteUserReadOthers",
	0o755: "fileutil.ReadWriteExecuteUserReadExecuteOthers",
}

// permFuncs are the calls whose last argument is a permission, as in
// os.WriteFile, afero.WriteFile, fs.MkdirAll and fs.OpenFile.
var permFuncs = map[string]bool{
	"WriteFile": true,
	"MkdirAll":  true,
	"Mkdir":     true,
	"OpenFile":  true,
	"Chmod":     true,
}

func run(pass *analysis.Pass) (interface{}, error) {
	for _, file := range pass.Files {
		ast.Inspect(file, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok || len(call.Args) < 2 {
				return true
			}
			fun, ok := call.Fun.(*ast.SelectorExpr)
			if !ok || !permFuncs[fun.Sel.Name] {
				return true
			}

			lit, ok := call.Args[len(call.Args)-1].(*ast.BasicLit)
			if !ok || lit.Kind != token.INT {
				return true
			}
			perm, err := strconv.ParseInt(lit.Value, 0, 64)
			if err != nil {
				return true
			}
			if name, known := permConstants[perm]; known {
				pass.Reportf(lit.Pos(), "use %s instead of hardcoded %s in %s", name, lit.Value, fun.Sel.Name)
			}
			return true
		})
	}
	return nil, nil
}
