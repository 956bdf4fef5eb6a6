package eval

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/forgelang/forge/lang/ast"
)

// resolveLoad turns a LoadStmt into the list of file paths it should
// evaluate, in deterministic order.
func (it *Interp) resolveLoad(s *ast.LoadStmt) ([]string, error) {
	dir := filepath.Join(it.BaseDir, s.Folder)

	if !s.Target.All {
		return []string{filepath.Join(dir, s.Target.File)}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, ent := range entries {
		if ent.IsDir() || !strings.HasSuffix(ent.Name(), ".forge") {
			continue
		}
		files = append(files, filepath.Join(dir, ent.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func readFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
