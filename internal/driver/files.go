package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// CollectInputs expands args into a sorted list of comment files.
// Directories are walked recursively and filtered by extension; files named
// explicitly are taken as they are.
func CollectInputs(args, extensions []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", arg, err)
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		dirFiles, err := listCommentFiles(arg, extensions)
		if err != nil {
			return nil, err
		}
		for _, p := range dirFiles {
			add(p)
		}
	}
	sort.Strings(files)
	return files, nil
}

// listCommentFiles возвращает отсортированный список файлов с подходящими расширениями
func listCommentFiles(dir string, extensions []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// скрытые каталоги (.git, .cache) пропускаем
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if hasExtension(path, extensions) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func hasExtension(path string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// OutputPath maps an input file to its rendered counterpart under outDir,
// keeping the layout relative to baseDir and replacing the extension.
func OutputPath(input, baseDir, outDir, suffix string) (string, error) {
	rel := filepath.Base(input)
	if baseDir != "" {
		absIn, err := filepath.Abs(input)
		if err != nil {
			return "", err
		}
		absBase, err := filepath.Abs(baseDir)
		if err != nil {
			return "", err
		}
		if r, err := filepath.Rel(absBase, absIn); err == nil && !strings.HasPrefix(r, "..") {
			rel = r
		}
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + suffix
	return filepath.Join(outDir, rel), nil
}
