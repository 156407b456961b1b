package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

// grammarSeeds покрывают каждое ключевое слово и пограничные случаи разбора.
var grammarSeeds = []string{
	"",
	"plain text only",
	"Intro.\n\n@param[in] x The x.\n@param y\n@return\n",
	"@param[inout] buf Buffer\n  continues here\n@returns value\n",
	"@see # nvim_get_autocmds()\n@brief Short.\n@note Careful.\n",
	"@deprecated\n@nodoc\n",
	"mail me at a@b.c\n@unknown tag\n",
	"@brief\n",
	"@param 1bad\n",
	"@param[in]x\n",
	"line\rbroken\n",
	"crlf line\r\n@note ok\r\n",
	"@return\n\ntrailing words",
	"\t @param\tx\tdesc\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range grammarSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	for _, root := range []string{
		filepath.Join("..", "cdoc", "testdata"),
		filepath.Join("..", "cdocfmt", "testdata"),
	} {
		if _, err := os.Stat(root); err != nil {
			continue
		}
		// проходим по testdata, добавляем тела комментариев
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".txt" {
				return nil
			}
			// #nosec G304 -- path comes from repository testdata walk
			src, err := os.ReadFile(path)
			if err != nil {
				return nil
			}
			f.Add(clampSeed(src))
			return nil
		})
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
