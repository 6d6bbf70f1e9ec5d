// Package readings holds the reflection-of-the-day and literature browser
// commands.
package readings

import (
	"context"
	"fmt"
	"time"

	"anchor/internal/cli"
	"anchor/internal/models"
	"anchor/internal/reflection"
	"anchor/internal/utils"
)

type ReflectionCmd struct {
	BaseURL string `help:"Reflection content host." default:"${reflection_url}"`
}

func (c *ReflectionCmd) Run(ctx *cli.Context) error {
	client := reflection.NewClient(c.BaseURL)
	r := client.Daily(context.Background(), utils.DayOfYear(time.Now()))

	fmt.Printf("%s\n\n", r.Title)
	fmt.Printf("\"%s\" - %s\n\n", r.Quote, r.Source)
	fmt.Println(r.Reflection)
	if r.Thought != "" {
		fmt.Printf("\nThought for today: %s\n", r.Thought)
	}
	return nil
}

type LitCmd struct {
	Bookmark struct {
		Add    BookmarkAddCmd    `cmd:"" help:"Bookmark a literature section."`
		Remove BookmarkRemoveCmd `cmd:"" help:"Remove a bookmark."`
		List   BookmarkListCmd   `cmd:"" default:"1" help:"List bookmarks."`
	} `cmd:"" help:"Manage literature bookmarks."`
	View   ViewCmd   `cmd:"" help:"Record a section as viewed."`
	Recent RecentCmd `cmd:"" help:"List recently viewed sections."`
}

type BookmarkAddCmd struct {
	Section string `arg:"" help:"Section identifier."`
	Title   string `help:"Section title." default:""`
	URL     string `help:"Section URL." default:""`
}

func (c *BookmarkAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.AddBookmark(models.Bookmark{
		SectionID: c.Section,
		Title:     c.Title,
		URL:       c.URL,
		DateAdded: time.Now(),
	}); err != nil {
		return err
	}
	fmt.Printf("Bookmarked %s.\n", c.Section)
	return nil
}

type BookmarkRemoveCmd struct {
	Section string `arg:"" help:"Section identifier."`
}

func (c *BookmarkRemoveCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.RemoveBookmark(c.Section); err != nil {
		return err
	}
	fmt.Printf("Removed bookmark %s.\n", c.Section)
	return nil
}

type BookmarkListCmd struct{}

func (c *BookmarkListCmd) Run(ctx *cli.Context) error {
	bookmarks, err := ctx.Store.AllBookmarks()
	if err != nil {
		return err
	}
	if len(bookmarks) == 0 {
		fmt.Println("No bookmarks yet.")
		return nil
	}
	for _, b := range bookmarks {
		title := b.Title
		if title == "" {
			title = b.SectionID
		}
		fmt.Printf("  %-12s %s\n", b.SectionID, title)
	}
	return nil
}

type ViewCmd struct {
	Section string `arg:"" help:"Section identifier."`
	Title   string `help:"Section title." default:""`
	URL     string `help:"Section URL." default:""`
}

func (c *ViewCmd) Run(ctx *cli.Context) error {
	return ctx.Store.TouchRecent(models.RecentView{
		SectionID: c.Section,
		Title:     c.Title,
		URL:       c.URL,
		ViewedAt:  time.Now(),
	})
}

type RecentCmd struct{}

func (c *RecentCmd) Run(ctx *cli.Context) error {
	recents, err := ctx.Store.RecentViews()
	if err != nil {
		return err
	}
	if len(recents) == 0 {
		fmt.Println("Nothing viewed recently.")
		return nil
	}
	for _, r := range recents {
		title := r.Title
		if title == "" {
			title = r.SectionID
		}
		fmt.Printf("  %-12s %s\n", r.SectionID, title)
	}
	return nil
}
