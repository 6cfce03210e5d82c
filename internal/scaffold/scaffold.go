// Package scaffold creates the .code2tutorial directory for a project.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jorge-barreto/code2tutorial/internal/cache"
	"github.com/jorge-barreto/code2tutorial/internal/config"
	"github.com/jorge-barreto/code2tutorial/internal/state"
	"github.com/jorge-barreto/code2tutorial/internal/ux"
)

var gitignore = fmt.Sprintf(`# generated by code2tutorial init
%s
%s
state.json
timing.json
*.log
`, cache.JSONFile, cache.SQLiteFile)

// Init writes the default config and a .gitignore for the run artifacts.
// An existing config is only replaced when force is set.
func Init(targetDir string, force bool) error {
	dir := state.Dir(targetDir)
	configPath := config.Path(targetDir)
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
	}

	if err := config.Save(configPath, config.Default()); err != nil {
		return fmt.Errorf("writing %s: %w", config.FileName, err)
	}
	ignorePath := filepath.Join(dir, ".gitignore")
	if err := os.WriteFile(ignorePath, []byte(gitignore), 0644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	fmt.Fprintf(ux.Out, "\n%s%s✓ Initialized %s/%s\n\n", ux.Bold, ux.Green, state.DirName, ux.Reset)
	fmt.Fprintf(ux.Out, "  Created:\n")
	fmt.Fprintf(ux.Out, "    %s%s/%s%s  run configuration\n", ux.Cyan, state.DirName, config.FileName, ux.Reset)
	fmt.Fprintf(ux.Out, "    %s%s/.gitignore%s   keeps cache and run records out of git\n\n", ux.Cyan, state.DirName, ux.Reset)
	fmt.Fprintf(ux.Out, "  Next steps:\n")
	fmt.Fprintf(ux.Out, "    1. Set %sllmProvider%s and %sapiKey%s in the config\n", ux.Cyan, ux.Reset, ux.Cyan, ux.Reset)
	fmt.Fprintf(ux.Out, "    2. Run %scode2tutorial doctor%s to check the setup\n", ux.Cyan, ux.Reset)
	fmt.Fprintf(ux.Out, "    3. Run %scode2tutorial --dir <src> --dry-run%s to preview\n\n", ux.Cyan, ux.Reset)
	return nil
}
