package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtensionMechanism(t *testing.T) {
	tempDir := t.TempDir()

	// ath-hello prints the environment it receives.
	helloCmdSource := fmt.Sprintf(`
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("args=%%v\n", os.Args[1:])
}
`, EnvConfig, EnvConfig, EnvVerbose, EnvVerbose)

	helloCmdPath := filepath.Join(tempDir, "ath-hello")
	srcFile := helloCmdPath + ".go"
	if err := os.WriteFile(srcFile, []byte(helloCmdSource), 0644); err != nil {
		t.Fatalf("Failed to write ath-hello source: %v", err)
	}
	cmd := exec.Command("go", "build", "-o", helloCmdPath, srcFile)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to compile ath-hello: %v", err)
	}

	athBinaryPath := filepath.Join(tempDir, "ath")
	cmd = exec.Command("go", "build", "-o", athBinaryPath, "../ath")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to compile ath binary: %v", err)
	}

	configPath := filepath.Join(tempDir, "ath.yaml")
	athCmd := exec.Command(athBinaryPath, "-config", configPath, "-v", "hello", "world")
	athCmd.Env = []string{"PATH=" + tempDir + string(os.PathListSeparator) + os.Getenv("PATH")}

	var stdout, stderr bytes.Buffer
	athCmd.Stdout = &stdout
	athCmd.Stderr = &stderr
	if err := athCmd.Run(); err != nil {
		t.Fatalf("ath command failed: %v\nStdout: %s\nStderr: %s", err, stdout.String(), stderr.String())
	}

	output := stdout.String()
	for _, want := range []string{
		EnvConfig + "=" + configPath,
		EnvVerbose + "=true",
		"args=[world]",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, but got:\n%s", want, output)
		}
	}
}

func TestIsCommand(t *testing.T) {
	for _, c := range Commands {
		if !IsCommand(c.Name()) {
			t.Errorf("IsCommand(%q) = false", c.Name())
		}
	}
	if IsCommand("hello") {
		t.Error("IsCommand(hello) = true")
	}
}

func TestCompletionCoversCommands(t *testing.T) {
	sub := Completion().Sub
	for _, c := range Commands {
		if _, ok := sub[c.Name()]; !ok {
			t.Errorf("command %q has no completion", c.Name())
		}
	}
}
