// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package eligibility

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sirseerhq/hacktoberfest-checker/internal/config"
	"github.com/sirseerhq/hacktoberfest-checker/internal/github"
	"github.com/sirseerhq/hacktoberfest-checker/internal/metadata"
)

// Outcomes reported to a Recorder for every evaluated search item.
const (
	OutcomeEligible = "eligible"
	OutcomeExcluded = "excluded"
	OutcomeInvalid  = "invalid"
)

// Results reported to a Recorder for every check.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

const defaultConcurrency = 4

// PRRecord is one pull request that passed the rules, in the shape the
// CLI and the HTTP API emit it.
type PRRecord struct {
	Number                int    `json:"number"`
	Title                 string `json:"title"`
	CreatedAt             string `json:"created_at"`
	URL                   string `json:"url"`
	RepoName              string `json:"repo_name"`
	User                  User   `json:"user"`
	Open                  bool   `json:"open"`
	IsPending             bool   `json:"is_pending"`
	HasHacktoberfestLabel bool   `json:"has_hacktoberfest_label"`
	Merged                bool   `json:"merged"`
	Approved              bool   `json:"approved"`
	RepoMustHaveTopic     bool   `json:"repo_must_have_topic"`
	// Only set when RepoMustHaveTopic is true.
	RepoHasHacktoberfestTopic *bool `json:"repo_has_hacktoberfest_topic,omitempty"`
}

// User is the author of a pull request.
type User struct {
	Login string `json:"login"`
	URL   string `json:"url"`
}

// Result is the outcome of a check: the accepted records in search order
// and the summary of what the check did.
type Result struct {
	Records []PRRecord
	Summary *metadata.Summary
}

// Recorder receives per check and per item outcomes, typically to update
// metrics.
type Recorder interface {
	CheckCompleted(result string)
	PREvaluated(outcome string)
}

type nopRecorder struct{}

func (nopRecorder) CheckCompleted(string) {}
func (nopRecorder) PREvaluated(string)    {}

// Checker evaluates a user's pull requests against the eligibility rules.
type Checker struct {
	client      github.Client
	rules       Rules
	eventStart  time.Time
	eventEnd    time.Time
	pageSize    int
	concurrency int
	now         func() time.Time
	log         *zap.SugaredLogger
	recorder    Recorder
}

// Option configures a Checker.
type Option func(*Checker)

// WithClock replaces time.Now as the source of the evaluation time.
func WithClock(now func() time.Time) Option {
	return func(c *Checker) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Checker) {
		if log != nil {
			c.log = log
		}
	}
}

// WithRecorder sets the Recorder notified of outcomes.
func WithRecorder(r Recorder) Option {
	return func(c *Checker) {
		if r != nil {
			c.recorder = r
		}
	}
}

// NewChecker creates a Checker that queries GitHub through client using the
// rules and limits in cfg.
func NewChecker(client github.Client, cfg *config.Config, opts ...Option) *Checker {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	c := &Checker{
		client:      client,
		rules:       NewRules(cfg.Rules),
		eventStart:  cfg.Rules.EventStart,
		eventEnd:    cfg.Rules.EventEnd,
		pageSize:    cfg.GitHub.PageSize,
		concurrency: cfg.Rules.Concurrency,
		now:         time.Now,
		log:         zap.NewNop().Sugar(),
		recorder:    nopRecorder{},
	}
	if c.concurrency <= 0 {
		c.concurrency = defaultConcurrency
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FindPRs returns the user's eligible pull requests in search order.
func (c *Checker) FindPRs(ctx context.Context, username string) ([]PRRecord, error) {
	result, err := c.Check(ctx, username)
	if err != nil {
		return nil, err
	}
	return result.Records, nil
}

// Check runs a full check for username. It returns either every eligible
// record or an error; never a partial list.
func (c *Checker) Check(ctx context.Context, username string) (*Result, error) {
	result, err := c.check(ctx, username)
	if err != nil {
		c.recorder.CheckCompleted(ResultError)
		return nil, err
	}
	c.recorder.CheckCompleted(ResultOK)
	return result, nil
}

func (c *Checker) check(ctx context.Context, username string) (*Result, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}

	tracker := metadata.New(username, c.now)
	ctx = github.WithCallObserver(ctx, tracker)

	query := github.BuildSearchQuery(username, c.eventStart, c.eventEnd)
	c.log.Debugw("searching pull requests", "username", username, "query", query)

	page, err := c.client.SearchPullRequests(ctx, query, github.SearchOptions{PageSize: c.pageSize})
	if err != nil {
		return nil, fmt.Errorf("failed to search pull requests for %s: %w", username, err)
	}

	tracker.RecordSearch(len(page.Items), page.HasNextPage)
	if page.HasNextPage {
		c.log.Warnw("search returned more results than one page, later pages are ignored",
			"username", username,
			"total_count", page.TotalCount,
			"page_items", len(page.Items))
	}

	now := c.now()
	evaluated := make([]*PRRecord, len(page.Items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, item := range page.Items {
		g.Go(func() error {
			record, err := c.evaluate(gctx, item, now, tracker)
			if err != nil {
				return err
			}
			evaluated[i] = record
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]PRRecord, 0, len(evaluated))
	for _, r := range evaluated {
		if r != nil {
			records = append(records, *r)
		}
	}

	summary := tracker.Summary(len(records))
	c.log.Infow("check completed",
		"username", username,
		"check_id", summary.CheckID,
		"items_seen", summary.Results.ItemsSeen,
		"returned", summary.Results.Returned,
		"api_calls", summary.Results.APICallCount,
		"truncated", summary.Results.Truncated,
		"duration", summary.Results.Duration)

	return &Result{Records: records, Summary: summary}, nil
}

// evaluate applies the rules to one search item. A nil record means the
// item was dropped or excluded.
func (c *Checker) evaluate(ctx context.Context, item github.SearchItem, now time.Time, tracker *metadata.Tracker) (*PRRecord, error) {
	tracker.UpdatePRStats(item.CreatedAt)

	if c.rules.IsInvalid(item.Labels) {
		c.log.Debugw("dropping pull request with invalid label", "repo", item.FullName(), "number", item.Number)
		tracker.RecordDropped()
		c.recorder.PREvaluated(OutcomeInvalid)
		return nil, nil
	}

	record := &PRRecord{
		Number:    item.Number,
		Title:     item.Title,
		CreatedAt: FormatDate(item.CreatedAt),
		URL:       item.URL,
		RepoName:  item.FullName(),
		User: User{
			Login: item.Author.Login,
			URL:   item.Author.URL,
		},
		Open:                  item.State == "open",
		IsPending:             c.rules.IsPending(item.CreatedAt, now),
		HasHacktoberfestLabel: c.rules.HasAcceptedLabel(item.Labels),
	}

	if !c.rules.UsesNewRules(item.CreatedAt) {
		c.recorder.PREvaluated(OutcomeEligible)
		return record, nil
	}

	merged, err := c.client.IsMerged(ctx, item.Owner, item.Repo, item.Number)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate %s#%d: %w", item.FullName(), item.Number, err)
	}
	reviews, err := c.client.ListReviews(ctx, item.Owner, item.Repo, item.Number)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate %s#%d: %w", item.FullName(), item.Number, err)
	}

	record.Merged = merged
	record.Approved = hasApproval(reviews)
	if record.Merged || record.Approved {
		c.recorder.PREvaluated(OutcomeEligible)
		return record, nil
	}

	topics, err := c.client.ListTopics(ctx, item.Owner, item.Repo)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate %s#%d: %w", item.FullName(), item.Number, err)
	}

	hasTopic := c.rules.HasRequiredTopic(topics)
	record.RepoMustHaveTopic = true
	record.RepoHasHacktoberfestTopic = &hasTopic

	if !hasTopic {
		c.log.Debugw("excluding pull request from repository without topic", "repo", item.FullName(), "number", item.Number)
		tracker.RecordExcluded()
		c.recorder.PREvaluated(OutcomeExcluded)
		return nil, nil
	}

	c.recorder.PREvaluated(OutcomeEligible)
	return record, nil
}

func hasApproval(reviews []github.Review) bool {
	for _, r := range reviews {
		if r.State == github.ReviewStateApproved {
			return true
		}
	}
	return false
}
