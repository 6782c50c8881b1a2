package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
)

type generator struct {
	name    string
	bin     string
	args    []string
	install string
	skipFn  func() bool
}

func GenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Run code generators (templ, tailwind) in parallel",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(generators())
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "css",
		Short: "Compile Tailwind CSS",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen([]generator{tailwind()})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "templ",
		Short: "Generate Go code from .templ files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen([]generator{templGen()})
		},
	})
	return cmd
}

func generators() []generator {
	return []generator{tailwind(), templGen()}
}

func tailwind() generator {
	return generator{
		name:    "tailwindcss",
		bin:     "tailwindcss",
		args:    []string{"-i", "assets/css/input.css", "-o", "assets/css/output.css", "--minify"},
		install: "# tailwindcss: https://tailwindcss.com/blog/standalone-cli",
		skipFn:  skipTailwind,
	}
}

func templGen() generator {
	return generator{
		name:    "templ",
		bin:     "templ",
		args:    []string{"generate", "-path", "internal/ui"},
		install: "go install github.com/a-h/templ/cmd/templ@latest",
		skipFn:  skipTempl,
	}
}

func runGen(gens []generator) error {
	var missing []generator
	for _, g := range gens {
		if _, err := exec.LookPath(g.bin); err != nil {
			missing = append(missing, g)
		}
	}
	if len(missing) > 0 {
		var bins []string
		for _, g := range missing {
			bins = append(bins, g.bin)
		}
		fmt.Println("Missing binaries:", bins)
		fmt.Println("Install with:")
		for _, g := range missing {
			fmt.Println("  " + g.install)
		}
		return fmt.Errorf("missing required binaries: %v", bins)
	}

	start := time.Now()
	var wg sync.WaitGroup
	errCh := make(chan error, len(gens))

	for _, g := range gens {
		wg.Add(1)
		go func(g generator) {
			defer wg.Done()

			if g.skipFn != nil && g.skipFn() {
				fmt.Printf("[%s] skipped\n", g.name)
				return
			}

			genStart := time.Now()
			cmd := exec.Command(g.bin, g.args...)
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr
			err := cmd.Run()
			if err != nil {
				errCh <- fmt.Errorf("%s: %w", g.name, err)
				return
			}

			fmt.Printf("[%s] done (%s)\n", g.name, time.Since(genStart).Round(time.Millisecond))
		}(g)
	}

	wg.Wait()
	close(errCh)

	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Println("error:", err)
		}
		return fmt.Errorf("generation failed")
	}

	fmt.Printf("done (%s)\n", time.Since(start).Round(time.Millisecond))
	return nil
}

// skipTailwind reports whether output.css is newer than every file Tailwind scans for classes
func skipTailwind() bool {
	inputs := []string{"assets/css/input.css"}
	_ = filepath.WalkDir("internal/ui", func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".templ") || strings.HasSuffix(path, ".go") {
			inputs = append(inputs, path)
		}
		return nil
	})
	jsFiles, _ := filepath.Glob("assets/js/*.js")
	inputs = append(inputs, jsFiles...)
	return isUpToDate("assets/css/output.css", inputs)
}

// skipTempl reports whether every _templ.go is newer than its .templ source
func skipTempl() bool {
	var templFiles []string
	_ = filepath.WalkDir("internal/ui", func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".templ") {
			templFiles = append(templFiles, path)
		}
		return nil
	})

	for _, templFile := range templFiles {
		outFile := strings.TrimSuffix(templFile, ".templ") + "_templ.go"
		if !isUpToDate(outFile, []string{templFile}) {
			return false
		}
	}
	return true
}

func isUpToDate(output string, inputs []string) bool {
	outInfo, err := os.Stat(output)
	if err != nil {
		return false
	}
	outMod := outInfo.ModTime()

	for _, input := range inputs {
		inInfo, err := os.Stat(input)
		if err != nil {
			continue
		}
		if inInfo.ModTime().After(outMod) {
			return false
		}
	}
	return true
}
