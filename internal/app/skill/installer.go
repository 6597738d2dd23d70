package skill

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// installItems is the fixed list of files and directories that make up
// the skill. Missing items are skipped with a warning, not an error.
var installItems = []string{
	"SKILL.md",
	"README.md",
	"LICENSE",
	"requirements.txt",
	"skill.json",
	"scripts",
}

// executableExts marks which copied script files get the executable bit.
var executableExts = map[string]bool{
	".py": true,
	".sh": true,
}

// Installer copies the skill files into the target directory.
type Installer struct {
	SourceDir string
	TargetDir string
	Progress  bool
	Out       io.Writer
}

// NewInstaller creates an Installer writing status output to out.
func NewInstaller(sourceDir, targetDir string, out io.Writer) *Installer {
	if out == nil {
		out = os.Stdout
	}
	return &Installer{
		SourceDir: sourceDir,
		TargetDir: targetDir,
		Progress:  true,
		Out:       out,
	}
}

// Run performs the installation: create the target, copy each item
// (overwriting existing copies), then mark script files executable.
func (i *Installer) Run() error {
	fmt.Fprintf(i.Out, "📦 Installing %s skill...\n", Name)
	fmt.Fprintf(i.Out, "   From: %s\n", i.SourceDir)
	fmt.Fprintf(i.Out, "   To:   %s\n\n", i.TargetDir)

	if err := os.MkdirAll(i.TargetDir, 0o755); err != nil {
		return fmt.Errorf("create target directory: %w", err)
	}

	var bar *mpb.Bar
	var container *mpb.Progress
	if i.Progress {
		container = mpb.New(
			mpb.WithOutput(os.Stderr),
			mpb.WithRefreshRate(120*time.Millisecond),
		)
		bar = container.AddBar(int64(len(installItems)),
			mpb.PrependDecorators(
				decor.Name("installing ", decor.WC{W: 11}),
				decor.CountersNoUnit("(%d/%d)", decor.WCSyncWidth),
			),
			mpb.AppendDecorators(decor.NewPercentage("%d", decor.WCSyncSpace)),
		)
	}

	for _, item := range installItems {
		src := filepath.Join(i.SourceDir, item)
		dst := filepath.Join(i.TargetDir, item)

		if err := i.copyItem(item, src, dst); err != nil {
			return err
		}
		if bar != nil {
			bar.Increment()
		}
	}
	if container != nil {
		container.Wait()
	}

	if err := i.markScriptsExecutable(); err != nil {
		return err
	}

	fmt.Fprintf(i.Out, "\n✅ Installation complete!\n")
	return nil
}

func (i *Installer) copyItem(item, src, dst string) error {
	info, err := os.Stat(src)
	if os.IsNotExist(err) {
		fmt.Fprintf(i.Out, "   ⚠️  Skipped: %s (not found)\n", item)
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}

	if info.IsDir() {
		if err := os.RemoveAll(dst); err != nil {
			return fmt.Errorf("remove existing %s: %w", dst, err)
		}
		if err := copyDir(src, dst); err != nil {
			return fmt.Errorf("copy directory %s: %w", item, err)
		}
		fmt.Fprintf(i.Out, "   ✅ Copied: %s/\n", item)
		return nil
	}

	if err := copyFile(src, dst, info.Mode()); err != nil {
		return fmt.Errorf("copy %s: %w", item, err)
	}
	fmt.Fprintf(i.Out, "   ✅ Copied: %s\n", item)
	return nil
}

// markScriptsExecutable chmods the known script types under scripts/.
func (i *Installer) markScriptsExecutable() error {
	scriptsDir := filepath.Join(i.TargetDir, "scripts")
	entries, err := os.ReadDir(scriptsDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read scripts directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !executableExts[filepath.Ext(entry.Name())] {
			continue
		}
		path := filepath.Join(scriptsDir, entry.Name())
		if err := os.Chmod(path, 0o755); err != nil {
			return fmt.Errorf("chmod %s: %w", path, err)
		}
	}
	return nil
}

func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func copyDir(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(path, target, info.Mode())
	})
}
