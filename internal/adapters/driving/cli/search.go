package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/scrybe-labs/scrybe-cli/internal/adapters/driven/urlstate"
	"github.com/scrybe-labs/scrybe-cli/internal/core/domain"
	"github.com/scrybe-labs/scrybe-cli/internal/core/services"
)

var (
	searchSources   string
	searchJSON      bool
	searchState     string
	searchShowState bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the archive",
	Long: `Runs one search across transcript segments, video titles, and video
descriptions, and prints the per-source results.

Sections fail independently: if one source errors, the others still
report their matches.

A search can be shared and replayed: --show-state prints the view as
URL query parameters, and --state restores it, including re-fetching
transcript segments down to the recorded depth.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchSources, "sources", "titles,descriptions,segments",
		"comma-separated sources to search (titles, descriptions, segments)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringVar(&searchState, "state", "",
		"restore a search from shareable state parameters (see --show-state)")
	searchCmd.Flags().BoolVar(&searchShowState, "show-state", false,
		"print the shareable state of this search")
	rootCmd.AddCommand(searchCmd)
}

// newSearchOrchestrator builds a one-shot orchestrator over the wired
// archive client, tuned from configuration. The negative debounce makes
// SetInput dispatch synchronously, which is what a single CLI invocation
// wants.
func newSearchOrchestrator() (*services.Orchestrator, error) {
	if archiveClient == nil {
		return nil, errors.New("archive client not configured")
	}

	cfg := services.OrchestratorConfig{DebounceInterval: -1}
	if configStore != nil {
		cfg.SegmentPageSize = configStore.GetInt("search.segment_page_size")
		cfg.CappedLimit = configStore.GetInt("search.capped_limit")
		cfg.Language = configStore.GetString("search.language")
	}

	orch := services.NewOrchestrator(archiveClient, cfg)
	if historyStore != nil {
		orch.SetHistoryStore(historyStore)
	}
	return orch, nil
}

func parseSources(raw string) ([]domain.SourceType, error) {
	var out []domain.SourceType
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		t, ok := domain.ParseSourceType(name)
		if !ok {
			return nil, fmt.Errorf("unknown source %q (valid: titles, descriptions, segments)", name)
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil, errors.New("no sources selected")
	}
	return out, nil
}

// resolveSearchInput merges the positional query, the --sources flag,
// and a --state restore into the text, source set, and segment depth
// hint for this invocation. Restored sources win over the flag default;
// a restored view never needs the flag repeated.
func resolveSearchInput(args []string) (text string, sources []domain.SourceType, depth int, err error) {
	if len(args) == 1 {
		text = args[0]
	}

	if searchState != "" {
		if text != "" {
			return "", nil, 0, errors.New("a query argument and --state are mutually exclusive")
		}
		st, err := urlstate.Decode(searchState)
		if err != nil {
			return "", nil, 0, fmt.Errorf("invalid --state: %w", err)
		}
		text = st.Text
		sources = st.Sources
		depth = st.Depth
	}

	if text == "" {
		return "", nil, 0, errors.New("a query argument or --state is required")
	}
	if len(sources) == 0 {
		sources, err = parseSources(searchSources)
		if err != nil {
			return "", nil, 0, err
		}
	}
	return text, sources, depth, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	text, sources, depth, err := resolveSearchInput(args)
	if err != nil {
		return err
	}

	orch, err := newSearchOrchestrator()
	if err != nil {
		return err
	}
	defer orch.Stop()

	agg, sections, err := services.SearchOnce(cmd.Context(), orch, text, sources)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if depth > 0 {
		if err := restoreSegmentDepth(cmd.Context(), orch, depth); err != nil {
			return fmt.Errorf("restoring segment depth: %w", err)
		}
		agg = orch.Aggregate()
		sections = orch.Sections()
	}

	state := ""
	if searchShowState {
		segDepth := sections[domain.SourceSegments].Count()
		state = urlstate.FromQuery(orch.Query(), segDepth).Encode()
	}

	if searchJSON {
		return outputSearchJSON(cmd, agg, sections, state)
	}
	if err := outputSearchText(cmd, orch, sections); err != nil {
		return err
	}
	if state != "" {
		cmd.Printf("State: %s\n", state)
	}
	return nil
}

// restoreSegmentDepth replays load-more fetches until the segment
// section holds at least depth items again. Depth is a hint, not a
// cursor: fetching proceeds from the accumulated count, and a failed
// page or a server hasMore=false ends the replay with whatever loaded.
func restoreSegmentDepth(ctx context.Context, orch *services.Orchestrator, depth int) error {
	updates := orch.Updates()
	for {
		st := orch.Section(domain.SourceSegments)
		if st.Phase != domain.PhaseLoaded || !st.HasMore || st.Count() >= depth {
			return nil
		}
		before := st.Count()

		orch.LoadMoreSegments()
		for {
			st = orch.Section(domain.SourceSegments)
			if st.Settled() && !st.IsFetchingMore {
				break
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-updates:
			}
		}

		// No growth means the page failed or came back empty; either way
		// another round could not make progress.
		if st.Count() <= before {
			return nil
		}
	}
}

// searchOutput is the JSON shape of a one-shot search.
type searchOutput struct {
	Query    string                    `json:"query"`
	Sections map[string]sectionJSON    `json:"sections"`
	Counts   map[domain.SourceType]int `json:"counts"`
	State    string                    `json:"state,omitempty"`
}

type sectionJSON struct {
	Phase      string              `json:"phase"`
	TotalCount int                 `json:"total_count"`
	Error      string              `json:"error,omitempty"`
	Items      []domain.ResultItem `json:"items,omitempty"`
}

func outputSearchJSON(cmd *cobra.Command, agg domain.AggregateStatus, sections map[domain.SourceType]domain.SectionState, state string) error {
	out := searchOutput{
		Query:    agg.QueryText,
		Sections: make(map[string]sectionJSON, len(sections)),
		Counts:   agg.PerSourceCounts,
		State:    state,
	}
	for t, st := range sections {
		s := sectionJSON{
			Phase:      string(st.Phase),
			TotalCount: st.TotalCount,
			Items:      st.Items,
		}
		if st.Err != nil {
			s.Error = st.Err.Error()
		}
		out.Sections[string(t)] = s
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchText(cmd *cobra.Command, orch *services.Orchestrator, sections map[domain.SourceType]domain.SectionState) error {
	if sentence, _ := orch.Announcement(); sentence != "" {
		cmd.Println(sentence)
		cmd.Println()
	}

	width := 0
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
		}
	}

	for _, t := range domain.ActiveSourceTypes() {
		st, ok := sections[t]
		if !ok || st.Phase == domain.PhaseIdle {
			continue
		}

		if st.Phase == domain.PhaseError {
			cmd.Printf("%s: error: %v\n\n", t.Label(), st.Err)
			continue
		}
		if len(st.Items) == 0 {
			continue
		}

		cmd.Printf("%s matches:\n", titleCase(t.Label()))
		for i, item := range st.Items {
			switch v := item.(type) {
			case domain.Segment:
				cmd.Printf("  [%d] %s (%s)\n", i+1, v.VideoTitle, v.Timestamp())
				cmd.Printf("      %s\n", clip(v.Text, width))
			case domain.VideoMatch:
				cmd.Printf("  [%d] %s\n", i+1, v.Title)
				if v.Snippet != "" {
					cmd.Printf("      %s\n", clip(v.Snippet, width))
				}
			}
		}
		cmd.Println()
	}
	return nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// clip truncates s to fit the terminal width, leaving room for the
// indent. Zero width means no terminal, so no truncation.
func clip(s string, width int) string {
	if width <= 10 {
		return s
	}
	max := width - 8
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
