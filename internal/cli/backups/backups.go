package backups

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mitchellh/go-ps"

	"github.com/mholecek/worktrack/internal/backup"
	"github.com/mholecek/worktrack/internal/cli"
	apperrors "github.com/mholecek/worktrack/internal/errors"
)

type CreateCmd struct{}

func (c *CreateCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.Path())
	backupPath, err := mgr.Create(ctx.Store)
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.Path())
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Println("No backups found.")
		fmt.Printf("Backups are stored in: %s\n", mgr.Dir())
		return nil
	}

	fmt.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), backup.MaxBackups)
	for _, b := range backups {
		sizeKB := float64(b.Size) / 1024.0
		timestamp := b.Timestamp.Format("2006-01-02 15:04:05")
		filename := filepath.Base(b.Path)
		fmt.Printf("  %s  %s  (%.1f KB)\n", timestamp, filename, sizeKB)
	}
	fmt.Printf("\nBackup directory: %s\n", mgr.Dir())

	return nil
}

type RestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *RestoreCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.Path())

	backupPath, err := mgr.Resolve(c.BackupFile)
	if err != nil {
		return err
	}

	// Validate before touching anything so a corrupt file never clears data.
	snap, err := mgr.Load(backupPath)
	if err != nil {
		return fmt.Errorf("restore aborted: %w", err)
	}

	if others := otherWorktrackProcesses(); len(others) > 0 {
		fmt.Println("⚠️  WARNING: Other worktrack processes appear to be running:")
		for _, pid := range others {
			fmt.Printf("    pid %d\n", pid)
		}
		fmt.Println("    Concurrent access during restore can cause data corruption.")
	}

	if !c.Yes {
		var confirmed bool
		prompt := huh.NewConfirm().
			Title("Restore from backup?").
			Description(fmt.Sprintf("This will replace all current data with %s.\nA backup of the current data is created first.", filepath.Base(backupPath))).
			Affirmative("Restore").
			Negative("Cancel").
			Value(&confirmed)
		if err := prompt.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Restore cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	err = backup.RestoreSnapshot(ctx.Store, snap)
	var partial *apperrors.PartialRestoreError
	if errors.As(err, &partial) {
		fmt.Printf("⚠️  Restore finished with %d failed record(s); see the log for details.\n", partial.Failed)
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	fmt.Println("✓ Data restored successfully!")
	return nil
}

// otherWorktrackProcesses lists pids of other running worktrack binaries.
// Best-effort: on platforms where the process list is unavailable it returns
// nothing and the restore proceeds with only the interactive confirmation.
func otherWorktrackProcesses() []int {
	procs, err := ps.Processes()
	if err != nil {
		return nil
	}

	self := os.Getpid()
	var pids []int
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		name := strings.TrimSuffix(p.Executable(), ".exe")
		if name == "worktrack" {
			pids = append(pids, p.Pid())
		}
	}
	return pids
}
