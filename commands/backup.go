package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carlsburger/gastrocore/backup"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Run and restore system backups",
}

var backupRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Create a snapshot, archive it and copy it offsite",
	Run: func(cmd *cobra.Command, args []string) {
		runner, err := newBackupRunner(cmd)
		if err != nil {
			fail(err)
			return
		}
		archive, err := runner.Run(cmd.Context())
		if err != nil {
			fail(err)
			return
		}
		fmt.Printf("Backup written to %s (%d bytes, sha256 %s)\n",
			archive.Path, archive.Size, archive.Checksum)
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <archive>",
	Short: "Restore the system from a local archive",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runner, err := newBackupRunner(cmd)
		if err != nil {
			fail(err)
			return
		}
		if err := runner.Restore(cmd.Context(), args[0]); err != nil {
			fail(err)
			return
		}
		fmt.Println("Restore uploaded, the server is applying it")
	},
}

// newBackupRunner assembles the backup workflow; the offsite copy is
// skipped when no bucket is configured.
func newBackupRunner(cmd *cobra.Command) (*backup.Runner, error) {
	client, cfg, err := newClient()
	if err != nil {
		return nil, err
	}
	log := newLogger(cfg)
	dir, _ := cmd.Flags().GetString("dir")

	runner := &backup.Runner{
		Service:  client.Backups,
		Archiver: backup.Archiver{Dir: dir},
		Reporter: newReporter(cfg, log),
		Log:      log,
	}
	if cfg.Backup.Bucket != "" {
		store, err := backup.ConnectStore(cmd.Context(), cfg.Backup.Bucket, cfg.Backup.Prefix)
		if err != nil {
			return nil, err
		}
		runner.Offsite = store
	}
	return runner, nil
}

func init() {
	backupRunCmd.Flags().String("dir", "backups", "directory for local archives")
	backupRestoreCmd.Flags().String("dir", "backups", "directory for local archives")

	backupCmd.AddCommand(backupRunCmd)
	backupCmd.AddCommand(backupRestoreCmd)
}
