package tests

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chopinballadeno4/static-program-analysis/internal/config"
)

// TestFunctional runs .tip files through the compiled tip binary and
// compares its output against a sibling .want file. This tests the
// actual binary, not the library — what a user running the CLI sees.
func TestFunctional(t *testing.T) {
	projectRoot, err := filepath.Abs("..")
	if err != nil {
		t.Fatalf("failed to get project root: %v", err)
	}

	binaryPath := filepath.Join(projectRoot, "tip-test-binary")
	defer os.Remove(binaryPath)

	t.Log("building fresh binary...")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/tip")
	cmd.Dir = projectRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build binary: %v\n%s", err, output)
	}

	var testFiles []string
	err = filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !config.HasSourceExt(path) {
			return nil
		}
		wantFile := strings.TrimSuffix(path, config.SourceFileExt) + ".want"
		if _, err := os.Stat(wantFile); err == nil {
			testFiles = append(testFiles, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("failed to walk directory: %v", err)
	}

	if len(testFiles) == 0 {
		t.Skip("no test files with .want found")
	}

	for _, testFile := range testFiles {
		testFile := testFile
		testName := strings.TrimSuffix(filepath.Base(testFile), filepath.Ext(testFile))

		t.Run(testName, func(t *testing.T) {
			absPath, err := filepath.Abs(testFile)
			if err != nil {
				t.Fatalf("failed to get absolute path: %v", err)
			}

			wantFile := strings.TrimSuffix(testFile, filepath.Ext(testFile)) + ".want"
			wantBytes, err := os.ReadFile(wantFile)
			if err != nil {
				t.Fatalf("failed to read .want file: %v", err)
			}
			want := strings.TrimSpace(string(wantBytes))

			cmd := exec.Command(binaryPath, "--no-color", absPath)
			cmd.Dir = projectRoot
			var stdout, stderr bytes.Buffer
			cmd.Stdout = &stdout
			cmd.Stderr = &stderr
			_ = cmd.Run()

			stdoutStr := strings.TrimSpace(stdout.String())
			stderrStr := strings.TrimSpace(stderr.String())
			if stderrStr != "" {
				stderrStr = strings.ReplaceAll(stderrStr, projectRoot+"/", "")
			}

			var got string
			switch {
			case stdoutStr != "" && stderrStr != "":
				got = stdoutStr + "\n" + stderrStr
			case stdoutStr != "":
				got = stdoutStr
			default:
				got = stderrStr
			}
			got = strings.TrimSpace(strings.ReplaceAll(got, "\r\n", "\n"))
			want = strings.TrimSpace(strings.ReplaceAll(want, "\r\n", "\n"))

			if got != want {
				t.Errorf("output mismatch:\n--- want ---\n%s\n--- got ---\n%s", want, got)
			}
		})
	}
}
