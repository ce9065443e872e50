// External process boundary: the content-search subprocess invoked
// for COUNT_WORD and LIST_WORD. Any line-match tool honouring grep's
// exit-code/stdout conventions could stand in for it.
package docindex

import (
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// joinDocumentPath joins folder and a record's relative path.
func joinDocumentPath(folder, path string) string {
	return filepath.Join(folder, path)
}

// countKeyword runs "grep -c <keyword> <path>" and parses its stdout
// as a count. Returns -1 if the subprocess could not be run or its
// stdout wasn't a bare integer.
func countKeyword(path, keyword string) int32 {
	out, err := exec.Command("grep", "-c", keyword, path).Output()
	if err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			return -1
		}
	}
	n, perr := strconv.Atoi(strings.TrimSpace(string(out)))
	if perr != nil {
		return -1
	}
	return int32(n)
}

// keywordExists runs "grep -q <keyword> <path>" and reports whether
// its exit status was 0 (a hit).
func keywordExists(path, keyword string) bool {
	err := exec.Command("grep", "-q", keyword, path).Run()
	return err == nil
}
