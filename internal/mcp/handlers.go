// ABOUTME: MCP tool handler implementations for the talk recommender server
// ABOUTME: Query errors become tool errors; nothing here panics on bad input
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/harper/talk-recommender/internal/core"
	"github.com/harper/talk-recommender/internal/logging"
	"github.com/harper/talk-recommender/internal/models"
	"github.com/harper/talk-recommender/internal/stats"
	"github.com/harper/talk-recommender/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

// maxSuggestions bounds the "did you mean" list on unknown keys
const maxSuggestions = 5

// Options configures the tool handlers
type Options struct {
	DefaultCount int
	ExploreCount int
	Build        core.BuildOptions
	Logger       *slog.Logger
}

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	engine *core.Engine
	source storage.Source
	opts   Options
	log    *slog.Logger

	// corpus pairs the served index with its metadata; both are replaced together
	corpus   atomic.Pointer[storage.Corpus]
	reloadMu sync.Mutex // serializes reloads
}

// NewHandlers creates handlers serving engine; source is used by reload_corpus
func NewHandlers(engine *core.Engine, source storage.Source, meta []models.TalkMetadata, opts Options) *Handlers {
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	if opts.Build.Logger == nil {
		opts.Build.Logger = opts.Logger
	}
	h := &Handlers{
		engine: engine,
		source: source,
		opts:   opts,
		log:    opts.Logger,
	}
	h.corpus.Store(&storage.Corpus{Index: engine.Current(), Metadata: meta})
	return h
}

// snapshot returns the index and metadata currently served
func (h *Handlers) snapshot() *storage.Corpus {
	return h.corpus.Load()
}

type recommendation struct {
	models.Recommendation
	Title string `json:"title,omitempty"`
}

// RecommendTalks handles the recommend_talks tool
func (h *Handlers) RecommendTalks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	talk, err := request.RequireString("talk")
	if err != nil {
		return mcp.NewToolResultError("talk argument is required and must be a string"), nil
	}
	count := request.GetInt("count", h.opts.DefaultCount)

	c := h.snapshot()
	if c.Index == nil {
		return mcp.NewToolResultError(core.ErrIndexNotReady.Error()), nil
	}

	recs, err := c.Index.RecommendScored(talk, count)
	if err != nil {
		var notFound *core.KeyNotFoundError
		if errors.As(err, &notFound) {
			msg := fmt.Sprintf("no talk matches %q", talk)
			if s := suggest(c.Index.KnownKeys(), notFound.Canonical); len(s) > 0 {
				msg += "; did you mean: " + strings.Join(s, ", ")
			}
			return mcp.NewToolResultError(msg), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("recommendation failed: %v", err)), nil
	}

	titles := titlesOf(c.Metadata)
	out := make([]recommendation, len(recs))
	for i, r := range recs {
		out[i] = recommendation{Recommendation: r, Title: titles[r.Key]}
	}

	h.log.Debug("recommend_talks", "talk", talk, "count", count, "results", len(out))
	return jsonResult(map[string]interface{}{
		"query":           talk,
		"key":             core.Normalize(talk),
		"recommendations": out,
	})
}

// ListTalks handles the list_talks tool
func (h *Handlers) ListTalks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := request.GetString("filter", "")

	c := h.snapshot()
	if c.Index == nil {
		return mcp.NewToolResultError(core.ErrIndexNotReady.Error()), nil
	}
	keys := FilterKeys(c.Index.KnownKeys(), filter)

	titles := titlesOf(c.Metadata)
	talks := make([]map[string]interface{}, 0, len(keys))
	for _, key := range keys {
		entry := map[string]interface{}{
			"key":          key,
			"display_name": core.DisplayName(key),
		}
		if title := titles[key]; title != "" {
			entry["title"] = title
		}
		talks = append(talks, entry)
	}

	return jsonResult(map[string]interface{}{
		"count": len(talks),
		"talks": talks,
	})
}

// ExploreTalks handles the explore_talks tool
func (h *Handlers) ExploreTalks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("metric")
	if err != nil {
		return mcp.NewToolResultError("metric argument is required and must be a string"), nil
	}
	metric, err := stats.ParseMetric(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	count := request.GetInt("count", h.opts.ExploreCount)

	meta := h.snapshot().Metadata
	if len(meta) == 0 {
		return mcp.NewToolResultError("no talk metadata loaded"), nil
	}

	rows, err := stats.Rank(meta, metric, count)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]interface{}{
		"metric":  metric,
		"heading": metric.Describe(),
		"rows":    rows,
	})
}

// IndexInfo handles the index_info tool
func (h *Handlers) IndexInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c := h.snapshot()
	if c.Index == nil {
		return mcp.NewToolResultError(core.ErrIndexNotReady.Error()), nil
	}

	return jsonResult(map[string]interface{}{
		"index":    c.Index.Stats(),
		"metadata": len(c.Metadata),
	})
}

// ReloadCorpus handles the reload_corpus tool
func (h *Handlers) ReloadCorpus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.source == nil {
		return mcp.NewToolResultError("no corpus source configured"), nil
	}

	st, err := h.Reload(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reload failed, previous index still serving: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"success": true,
		"index":   st,
	})
}

// Reload rebuilds the index from the source and swaps it in
func (h *Handlers) Reload(ctx context.Context) (core.IndexStats, error) {
	h.reloadMu.Lock()
	defer h.reloadMu.Unlock()

	corpus, err := storage.LoadCorpus(ctx, h.source, h.opts.Build)
	if err != nil {
		h.log.Error("corpus reload failed", "error", err)
		return core.IndexStats{}, err
	}

	h.corpus.Store(corpus)
	h.engine.Swap(corpus.Index)

	st := corpus.Index.Stats()
	h.log.Info("corpus reloaded", "id", st.ID, "documents", st.Documents)
	return st, nil
}

func titlesOf(meta []models.TalkMetadata) map[string]string {
	titles := make(map[string]string, len(meta))
	for _, m := range meta {
		if _, seen := titles[m.Key]; !seen {
			titles[m.Key] = m.Title
		}
	}
	return titles
}

// FilterKeys returns the keys containing filter, compared after normalization
func FilterKeys(keys []string, filter string) []string {
	needle := core.Normalize(strings.TrimSpace(filter))
	if needle == "" {
		return keys
	}
	out := make([]string, 0)
	for _, key := range keys {
		if strings.Contains(key, needle) {
			out = append(out, key)
		}
	}
	return out
}

// suggest returns known keys sharing a word with the canonical query
func suggest(keys []string, canonical string) []string {
	words := strings.Fields(canonical)
	scored := map[string]int{}
	for _, key := range keys {
		for _, w := range words {
			if len(w) > 2 && strings.Contains(key, w) {
				scored[key]++
			}
		}
	}

	out := make([]string, 0, len(scored))
	for key := range scored {
		out = append(out, key)
	}
	sort.Slice(out, func(i, j int) bool {
		if scored[out[i]] != scored[out[j]] {
			return scored[out[i]] > scored[out[j]]
		}
		return out[i] < out[j]
	})
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

func jsonResult(response interface{}) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
