package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/search"
	"github.com/mmcdole/marquee/internal/store"
)

// projectionFlags are the view options shared by list and search
type projectionFlags struct {
	genre  string
	sort   bool
	asJSON bool
}

func (p *projectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&p.genre, "genre", "g", "", "only shows in this genre (fuzzy matched, \"all\" for none)")
	cmd.Flags().BoolVarP(&p.sort, "sort", "s", false, "sort by rating, dropping unrated shows")
	cmd.Flags().BoolVar(&p.asJSON, "json", false, "write entries as JSON in the catalog's shape")
}

func (p *projectionFlags) print(w io.Writer, entries []domain.Entry, snap store.State) error {
	if p.asJSON {
		return printJSON(w, entries)
	}
	return printEntries(w, entries, snap)
}

func (a *app) newListCommand() *cobra.Command {
	var (
		pages   int
		country bool
		proj    projectionFlags
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List shows from the catalog index",
		Long: `List shows from the catalog index, one page of 250 at a time.

With --country the schedule listing for the configured country is used
instead; it is not paginated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if pages < 1 {
				return fmt.Errorf("--pages must be at least 1")
			}
			ctx := cmd.Context()

			if country {
				a.store.FetchCountryShows(ctx, domain.ModeInit)
				if err := a.store.LastError(); err != nil {
					return err
				}
			} else if err := a.fetchPages(ctx, pages); err != nil {
				return err
			}

			entries, err := a.project(cmd, proj)
			if err != nil {
				return err
			}
			return proj.print(cmd.OutOrStdout(), entries, a.store.Snapshot())
		},
	}

	cmd.Flags().IntVarP(&pages, "pages", "p", 1, "number of index pages to load")
	cmd.Flags().BoolVarP(&country, "country", "c", false, "list the configured country's schedule")
	proj.register(cmd)
	return cmd
}

func (a *app) newSearchCommand() *cobra.Command {
	var proj projectionFlags

	cmd := &cobra.Command{
		Use:   "search QUERY...",
		Short: "Search shows by title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := domain.Query{Text: strings.Join(args, " ")}
			if err := query.Validate(); err != nil {
				return err
			}

			a.store.SearchShows(cmd.Context(), domain.ModeInit, query)
			if err := a.store.LastError(); err != nil {
				return err
			}

			entries, err := a.project(cmd, proj)
			if err != nil {
				return err
			}
			return proj.print(cmd.OutOrStdout(), entries, a.store.Snapshot())
		},
	}

	proj.register(cmd)
	return cmd
}

func (a *app) newShowCommand() *cobra.Command {
	var open bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show details, cast and episode counts for one show",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			entry, err := a.client.GetShow(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get show %s: %w", args[0], err)
			}

			detail, err := a.store.SelectItem(ctx, entry)
			if err != nil {
				return fmt.Errorf("failed to load details for %s: %w", entry.Name(), err)
			}
			if err := printDetail(cmd.OutOrStdout(), detail); err != nil {
				return err
			}

			if open {
				return a.opener.Open(entry.Show().URL)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&open, "open", false, "open the show's page in the browser")
	return cmd
}

func (a *app) newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the default settings",
		Long: `Write a configuration file with the default settings to the --config
path, or to config.yaml in the default config directory.`,
		Args: cobra.NoArgs,
		// The file may not exist yet, so skip the shared setup
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.configFile
			if path == "" {
				path = filepath.Join(adapter.DefaultConfigDir(), "config.yaml")
			}

			_, err := os.Stat(path)
			switch {
			case err == nil && !force:
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			case err != nil && !errors.Is(err, fs.ErrNotExist):
				return fmt.Errorf("failed to check %s: %w", path, err)
			}

			if err := adapter.SaveConfig(adapter.DefaultConfig(), path); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return err
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	cmd.AddCommand(initCmd)
	return cmd
}

// fetchPages loads the first page and appends up to pages-1 more
func (a *app) fetchPages(ctx context.Context, pages int) error {
	a.store.FetchShows(ctx, domain.ModeInit)
	if err := a.store.LastError(); err != nil {
		return err
	}

	for i := 1; i < pages; i++ {
		a.store.FetchShows(ctx, domain.ModeMore)
		if err := a.store.LastError(); err != nil {
			return err
		}
	}
	return nil
}

// project applies the genre filter and rating sort. Unset flags fall back to
// the ui section of the config.
func (a *app) project(cmd *cobra.Command, proj projectionFlags) ([]domain.Entry, error) {
	if cmd.Flags().Changed("genre") {
		genre, ok := search.ResolveGenre(proj.genre, a.store.Genres())
		if !ok {
			return nil, fmt.Errorf("no genre matches %q", proj.genre)
		}
		a.store.SetGenreFilter(genre)
	}

	sortByRating := a.cfg.UI.SortByRating
	if cmd.Flags().Changed("sort") {
		sortByRating = proj.sort
	}

	entries := a.store.FilteredResults()
	if sortByRating {
		entries = store.SortByRating(entries)
	}
	return entries, nil
}

func printEntries(w io.Writer, entries []domain.Entry, snap store.State) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tYEAR\tRATING\tGENRES\tNETWORK")
	for _, e := range entries {
		show := e.Show()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID(), show.Name, show.Year(), show.Rating, strings.Join(show.Genres, ", "), show.NetworkName())
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d of %d shows, page %d of %d\n",
		len(entries), len(snap.Results), snap.CurrentPage, snap.TotalPages)
	return err
}

func printJSON(w io.Writer, entries []domain.Entry) error {
	if entries == nil {
		entries = []domain.Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

func printDetail(w io.Writer, d domain.Detail) error {
	show := d.Info.Show()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Name:\t%s\n", show.Name)
	fmt.Fprintf(tw, "ID:\t%s\n", show.ID)
	if show.Premiered != "" {
		fmt.Fprintf(tw, "Premiered:\t%s\n", show.Premiered)
	}
	if show.Status != "" {
		fmt.Fprintf(tw, "Status:\t%s\n", show.Status)
	}
	if n := show.NetworkName(); n != "" {
		fmt.Fprintf(tw, "Network:\t%s\n", n)
	}
	fmt.Fprintf(tw, "Genres:\t%s\n", strings.Join(show.Genres, ", "))
	fmt.Fprintf(tw, "Rating:\t%s\n", show.Rating)
	fmt.Fprintf(tw, "Seasons:\t%d\n", d.SeasonCount)
	fmt.Fprintf(tw, "Episodes:\t%d\n", d.EpisodeCount)
	fmt.Fprintf(tw, "Cast:\t%s\n", d.CastSummary)
	if show.URL != "" {
		fmt.Fprintf(tw, "URL:\t%s\n", show.URL)
	}
	return tw.Flush()
}
