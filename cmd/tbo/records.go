package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tbo-go/internal/model"
	"tbo-go/internal/tbo"
)

// bookmark command
var bookmarkCmd = &cobra.Command{
	Use:   "bookmark",
	Short: "Manage bookmarks",
}

var bookmarkAddCmd = &cobra.Command{
	Use:   "add URL",
	Short: "Save a bookmark",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		b := model.Bookmark{URL: args[0]}
		b.ID, _ = f.GetString("id")
		b.TweetID, _ = f.GetString("tweet-id")
		b.Author, _ = f.GetString("author")
		b.Content, _ = f.GetString("content")
		b.FolderID, _ = f.GetString("folder")
		b.Tags, _ = f.GetStringSlice("tag")
		b.Notes, _ = f.GetString("notes")

		a, err := newApp("bookmark-add")
		if err != nil {
			return err
		}
		defer a.Close()

		saved, err := a.Service().SaveBookmark(context.Background(), b)
		if err != nil {
			return err
		}
		fmt.Printf("Saved bookmark %s\n", saved.ID)
		return nil
	},
}

var bookmarkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bookmarks, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		folder, _ := cmd.Flags().GetString("folder")

		a, err := newApp("bookmark-list")
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := context.Background()
		var bookmarks []model.Bookmark
		if folder != "" {
			bookmarks, err = a.Service().GetBookmarksByFolder(ctx, folder)
		} else {
			bookmarks, err = a.Service().GetAllBookmarks(ctx)
		}
		if err != nil {
			return err
		}
		printBookmarks(bookmarks)
		return nil
	},
}

var bookmarkDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a bookmark",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("bookmark-delete")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().DeleteBookmark(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted bookmark %s\n", args[0])
		return nil
	},
}

// folder command
var folderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Manage folders",
}

var folderCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := model.Folder{Name: args[0]}
		f.Color, _ = cmd.Flags().GetString("color")
		if parent, _ := cmd.Flags().GetString("parent"); parent != "" {
			f.ParentID = &parent
		}

		a, err := newApp("folder-create")
		if err != nil {
			return err
		}
		defer a.Close()

		created, err := a.Service().CreateFolder(context.Background(), f)
		if err != nil {
			return err
		}
		fmt.Printf("Created folder %s (%s)\n", created.Name, created.ID)
		return nil
	},
}

var folderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List folders",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("folder-list")
		if err != nil {
			return err
		}
		defer a.Close()

		folders, err := a.Service().GetAllFolders(context.Background())
		if err != nil {
			return err
		}
		for _, f := range folders {
			parent := "-"
			if f.ParentID != nil {
				parent = *f.ParentID
			}
			fmt.Printf("%-36s  %s  parent:%-36s  %s\n", f.ID, f.Color, parent, f.Name)
		}
		return nil
	},
}

var folderUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Rename, recolor or move a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("folder-update")
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := context.Background()
		folders, err := a.Service().GetAllFolders(ctx)
		if err != nil {
			return err
		}

		var current *model.Folder
		for i := range folders {
			if folders[i].ID == args[0] {
				current = &folders[i]
				break
			}
		}
		if current == nil {
			return fmt.Errorf("folder %s: %w", args[0], tbo.ErrNotFound)
		}

		flags := cmd.Flags()
		if flags.Changed("name") {
			current.Name, _ = flags.GetString("name")
		}
		if flags.Changed("color") {
			current.Color, _ = flags.GetString("color")
		}
		if flags.Changed("parent") {
			parent, _ := flags.GetString("parent")
			current.ParentID = nil
			if parent != "" {
				current.ParentID = &parent
			}
		}

		updated, err := a.Service().UpdateFolder(ctx, *current)
		if err != nil {
			return err
		}
		fmt.Printf("Updated folder %s (%s)\n", updated.Name, updated.ID)
		return nil
	},
}

var folderDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a folder; its bookmarks move to the default folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("folder-delete")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().DeleteFolder(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted folder %s\n", args[0])
		return nil
	},
}

// tag command
var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage tags",
}

var tagCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t := model.Tag{Name: args[0]}
		t.Color, _ = cmd.Flags().GetString("color")

		a, err := newApp("tag-create")
		if err != nil {
			return err
		}
		defer a.Close()

		created, err := a.Service().CreateTag(context.Background(), t)
		if err != nil {
			return err
		}
		fmt.Printf("Created tag %s (%s)\n", created.Name, created.ID)
		return nil
	},
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tags",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("tag-list")
		if err != nil {
			return err
		}
		defer a.Close()

		tags, err := a.Service().GetAllTags(context.Background())
		if err != nil {
			return err
		}
		for _, t := range tags {
			fmt.Printf("%-36s  %s  %s\n", t.ID, t.Color, t.Name)
		}
		return nil
	},
}

// search command
var searchCmd = &cobra.Command{
	Use:   "search [QUERY]",
	Short: "Search content, author, notes and tags",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		a, err := newApp("search")
		if err != nil {
			return err
		}
		defer a.Close()

		results, err := a.Service().SearchBookmarks(context.Background(), query)
		if err != nil {
			return err
		}
		printBookmarks(results)
		return nil
	},
}

func printBookmarks(bookmarks []model.Bookmark) {
	if len(bookmarks) == 0 {
		fmt.Println("No bookmarks.")
		return
	}
	for _, b := range tbo.SortByRecent(bookmarks) {
		fmt.Printf("%s  %s  @%-15s  [%s]  %s\n",
			b.ID,
			model.Time(b.CreatedAt).Format("2006-01-02 15:04"),
			b.Author,
			b.FolderID,
			summary(b.Content, 60),
		)
	}
}

// summary flattens s to one line of at most n runes.
func summary(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func init() {
	bookmarkCmd.AddCommand(bookmarkAddCmd)
	bookmarkCmd.AddCommand(bookmarkListCmd)
	bookmarkCmd.AddCommand(bookmarkDeleteCmd)
	bookmarkAddCmd.Flags().String("id", "", "Bookmark id; an existing id is replaced")
	bookmarkAddCmd.Flags().String("tweet-id", "", "Tweet id")
	bookmarkAddCmd.Flags().String("author", "", "Author handle")
	bookmarkAddCmd.Flags().String("content", "", "Tweet text")
	bookmarkAddCmd.Flags().String("folder", "", "Folder id (default folder when empty)")
	bookmarkAddCmd.Flags().StringSlice("tag", nil, "Tag name, repeatable")
	bookmarkAddCmd.Flags().String("notes", "", "Notes")
	bookmarkListCmd.Flags().String("folder", "", "Only bookmarks in this folder")

	folderCmd.AddCommand(folderCreateCmd)
	folderCmd.AddCommand(folderListCmd)
	folderCmd.AddCommand(folderUpdateCmd)
	folderCmd.AddCommand(folderDeleteCmd)
	folderCreateCmd.Flags().String("color", "", "Color as #RRGGBB")
	folderCreateCmd.Flags().String("parent", "", "Parent folder id")
	folderUpdateCmd.Flags().String("name", "", "New name")
	folderUpdateCmd.Flags().String("color", "", "New color as #RRGGBB")
	folderUpdateCmd.Flags().String("parent", "", "New parent folder id; empty moves it to the top level")

	tagCmd.AddCommand(tagCreateCmd)
	tagCmd.AddCommand(tagListCmd)
	tagCreateCmd.Flags().String("color", "", "Color as #RRGGBB")
}
