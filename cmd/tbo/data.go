package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"tbo-go/internal/tbo"
)

// export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the store as JSON or CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		a, err := newApp("export")
		if err != nil {
			return err
		}
		defer a.Close()

		if output == "-" {
			return a.Export(context.Background(), format, os.Stdout)
		}
		if output == "" {
			output = tbo.ExportFileName(format, time.Now())
		}

		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		if err := a.Export(context.Background(), format, f); err != nil {
			f.Close()
			os.Remove(output)
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("writing %s: %w", output, err)
		}

		fmt.Fprintf(os.Stderr, "Exported to %s\n", output)
		return nil
	},
}

// import command
var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace the store with an exported JSON file",
	Long:  "Replace the store with an exported JSON file. The current contents are archived first.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("import")
		if err != nil {
			return err
		}
		defer a.Close()

		var r io.Reader = os.Stdin
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()
			r = f
		}

		snapshot, err := a.ImportFile(context.Background(), r, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d bookmark(s), %d folder(s), %d tag(s)\n",
			len(snapshot.Bookmarks), len(snapshot.Folders), len(snapshot.Tags))
		return nil
	},
}

// clear command
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every bookmark, folder and tag",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return errors.New("clear removes everything; rerun with --yes to confirm")
		}

		a, err := newApp("clear")
		if err != nil {
			return err
		}
		defer a.Close()

		name, err := a.Clear(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("Store cleared. Previous contents archived as %s\n", name)
		return nil
	},
}

// stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show store statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("stats")
		if err != nil {
			return err
		}
		defer a.Close()

		stats, err := a.Service().GetStats(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("Bookmarks: %d\n", stats.TotalBookmarks)
		fmt.Printf("Folders:   %d\n", stats.TotalFolders)
		fmt.Printf("Tags:      %d\n", stats.TotalTags)

		if len(stats.FolderCounts) > 0 {
			fmt.Println("\nPer folder:")
			ids := make([]string, 0, len(stats.FolderCounts))
			for id := range stats.FolderCounts {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			for _, id := range ids {
				fmt.Printf("  %-36s  %d\n", id, stats.FolderCounts[id])
			}
		}

		if len(stats.RecentBookmarks) > 0 {
			fmt.Println("\nRecent:")
			printBookmarks(stats.RecentBookmarks)
		}
		return nil
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View import, clear and restore history",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp("history")
		if err != nil {
			return err
		}
		defer a.Close()

		ops, err := a.History(context.Background(), limit)
		if err != nil {
			return err
		}

		if len(ops) == 0 {
			fmt.Println("No operations recorded.")
			return nil
		}

		for _, op := range ops {
			duration := ""
			if op.FinishedAt != nil {
				duration = op.FinishedAt.Sub(op.StartedAt).Truncate(time.Millisecond).String()
			}
			fmt.Printf("#%d  %-10s  %s  %-8s  %-10s  %s\n",
				op.ID,
				op.Operation,
				op.StartedAt.Local().Format("2006-01-02 15:04:05"),
				op.Status,
				duration,
				op.Parameters,
			)
		}
		return nil
	},
}

// archive command
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage snapshots taken before destructive operations",
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived snapshots, oldest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("archive-list")
		if err != nil {
			return err
		}
		defer a.Close()

		names, err := a.ListArchives()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("No archived snapshots.")
			return nil
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var archiveRestoreCmd = &cobra.Command{
	Use:   "restore NAME",
	Short: "Replace the store with an archived snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("restore")
		if err != nil {
			return err
		}
		defer a.Close()

		passphrase := func() (string, error) {
			return readPassphrase("Archive passphrase: ", false)
		}
		if err := a.RestoreArchive(context.Background(), args[0], passphrase); err != nil {
			return err
		}
		fmt.Printf("Restored %s\n", args[0])
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("format", "f", "json", "Export format: json or csv")
	exportCmd.Flags().StringP("output", "o", "", "Output file; - for stdout (default: dated file name)")
	clearCmd.Flags().Bool("yes", false, "Confirm clearing the store")
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of operations to show")

	archiveCmd.AddCommand(archiveListCmd)
	archiveCmd.AddCommand(archiveRestoreCmd)
}
