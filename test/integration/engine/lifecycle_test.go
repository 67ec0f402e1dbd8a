// ABOUTME: Integration tests for the capability lifecycle against on-disk fixtures
// ABOUTME: Scan, recommend, feedback, and rescan through the real store and collector
package engine_test

import (
	"context"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/toolscout/toolscout/internal/capability"
	"github.com/toolscout/toolscout/internal/engine"
	"github.com/toolscout/toolscout/internal/events"
	"github.com/toolscout/toolscout/internal/recommend"
	"github.com/toolscout/toolscout/internal/store"
)

// writeFiles lays a file tree under root
func writeFiles(root string, files map[string]string) {
	for rel, content := range files {
		path := filepath.Join(root, rel)
		Expect(os.MkdirAll(filepath.Dir(path), 0755)).To(Succeed())
		Expect(os.WriteFile(path, []byte(content), 0644)).To(Succeed())
	}
}

func devtoolsPlugin() map[string]string {
	return map[string]string{
		"devtools/.claude-plugin/plugin.json": `{
			"name": "devtools",
			"version": "1.0.0",
			"description": "Developer tools",
			"keywords": ["development"]
		}`,
		"devtools/commands/deploy.md": `---
name: deploy
description: Deploy services to AWS production infrastructure
keywords: [deploy, aws, production, infrastructure]
---
# Deploy
`,
		"devtools/skills/tdd/SKILL.md": `---
name: tdd
description: Test-driven development workflow guidance
triggers: [write tests first]
keywords: [testing, tdd]
---
`,
		"devtools/hooks/hooks.json": `{
			"hooks": {"PostToolUse": [{"matcher": "Edit", "command": "lint.sh"}]}
		}`,
	}
}

var _ = Describe("Capability lifecycle", func() {
	var (
		ctx      context.Context
		location string
		home     string
		eng      *engine.Engine
		st       *store.Store
		audit    *events.JSONLWriter
	)

	BeforeEach(func() {
		ctx = context.Background()
		location = GinkgoT().TempDir()
		home = GinkgoT().TempDir()
		writeFiles(location, devtoolsPlugin())

		st = store.New(filepath.Join(home, "index.json"))
		var err error
		audit, err = events.NewJSONLWriter(filepath.Join(home, "events.jsonl"))
		Expect(err).NotTo(HaveOccurred())

		eng = engine.New(engine.Options{
			Store:     st,
			Audit:     audit,
			Locations: []string{location},
		})
	})

	Describe("Scan", func() {
		It("indexes every component type in the plugin", func() {
			idx, err := eng.Scan(ctx, nil, engine.ModeFull)
			Expect(err).NotTo(HaveOccurred())

			Expect(idx.Get("devtools:deploy")).NotTo(BeNil())
			Expect(idx.Get("devtools:tdd")).NotTo(BeNil())
			Expect(idx.Get("devtools:posttooluse")).NotTo(BeNil())
			Expect(idx.TotalCapabilities).To(Equal(3))
		})

		It("persists the index so a second engine sees it", func() {
			_, err := eng.Scan(ctx, nil, engine.ModeFull)
			Expect(err).NotTo(HaveOccurred())

			other := engine.New(engine.Options{Store: st, Locations: []string{location}})
			idx, err := other.Index()
			Expect(err).NotTo(HaveOccurred())
			Expect(idx.TotalCapabilities).To(Equal(3))
		})

		It("records scan statistics", func() {
			idx, err := eng.Scan(ctx, nil, engine.ModeFull)
			Expect(err).NotTo(HaveOccurred())

			Expect(idx.Statistics.Scanned).To(Equal(1))
			Expect(idx.Statistics.ScanDuration).To(BeNumerically(">", 0))
			Expect(idx.LastScan).NotTo(BeZero())
		})

		It("prunes entries whose source vanished", func() {
			_, err := eng.Scan(ctx, nil, engine.ModeFull)
			Expect(err).NotTo(HaveOccurred())

			Expect(os.RemoveAll(filepath.Join(location, "devtools", "skills"))).To(Succeed())

			idx, err := eng.Scan(ctx, nil, engine.ModeFull)
			Expect(err).NotTo(HaveOccurred())
			Expect(idx.Get("devtools:tdd")).To(BeNil())
			Expect(idx.Get("devtools:deploy")).NotTo(BeNil())
		})

		It("tolerates a malformed sibling plugin", func() {
			writeFiles(location, map[string]string{
				"broken/.claude-plugin/plugin.json": `{not json`,
			})

			idx, err := eng.Scan(ctx, nil, engine.ModeFull)
			Expect(err).NotTo(HaveOccurred())
			Expect(idx.Statistics.Skipped).To(Equal(1))
			Expect(idx.Statistics.Errors).To(HaveLen(1))
			Expect(idx.Get("devtools:deploy")).NotTo(BeNil())
		})
	})

	Describe("Recommend", func() {
		BeforeEach(func() {
			_, err := eng.Scan(ctx, nil, engine.ModeFull)
			Expect(err).NotTo(HaveOccurred())
		})

		It("surfaces the deploy command for a deployment task", func() {
			rec, err := eng.Recommend(ctx, "deploy to aws production", recommend.Constraints{})
			Expect(err).NotTo(HaveOccurred())

			Expect(rec.Tier).NotTo(Equal(recommend.TierInsufficient))
			Expect(rec.Candidates).NotTo(BeEmpty())
			Expect(rec.Candidates[0].Capability.ID).To(Equal("devtools:deploy"))
			Expect(rec.Candidates[0].Reasons).NotTo(BeEmpty())
		})

		It("asks clarifying questions for an unmatched task", func() {
			rec, err := eng.Recommend(ctx, "compose a symphony", recommend.Constraints{})
			Expect(err).NotTo(HaveOccurred())

			Expect(rec.Tier).To(Equal(recommend.TierInsufficient))
			Expect(rec.Candidates).To(BeEmpty())
			Expect(rec.Questions).NotTo(BeEmpty())
		})

		It("honors plugin exclusions", func() {
			rec, err := eng.Recommend(ctx, "deploy to aws production", recommend.Constraints{
				ExcludedPlugins: []string{"devtools"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Tier).To(Equal(recommend.TierInsufficient))
		})

		It("honors a preferred type", func() {
			rec, err := eng.Recommend(ctx, "tdd testing workflow", recommend.Constraints{
				PreferredType: capability.TypeSkill,
			})
			Expect(err).NotTo(HaveOccurred())
			for _, cand := range rec.Candidates {
				Expect(cand.Capability.Type).To(Equal(capability.TypeSkill))
			}
		})
	})

	Describe("Feedback", func() {
		BeforeEach(func() {
			_, err := eng.Scan(ctx, nil, engine.ModeFull)
			Expect(err).NotTo(HaveOccurred())
		})

		It("raises the ranking of an accepted capability over rescans", func() {
			before, err := eng.Recommend(ctx, "deploy to aws production", recommend.Constraints{})
			Expect(err).NotTo(HaveOccurred())
			baseline := before.Candidates[0].Score

			for i := 0; i < 3; i++ {
				Expect(eng.Accepted("devtools:deploy", "deploy to aws production")).To(Succeed())
				Expect(eng.Completed("devtools:deploy", true)).To(Succeed())
			}

			// Descriptive fields refresh, learned fields survive
			_, err = eng.Scan(ctx, nil, engine.ModeFull)
			Expect(err).NotTo(HaveOccurred())

			after, err := eng.Recommend(ctx, "deploy to aws production", recommend.Constraints{})
			Expect(err).NotTo(HaveOccurred())
			Expect(after.Candidates[0].Score).To(BeNumerically(">", baseline))
			Expect(after.Candidates[0].Capability.UsageCount).To(Equal(3))
		})

		It("lowers confidence on rejection", func() {
			Expect(eng.Rejected("devtools:deploy", "deploy to aws production")).To(Succeed())

			idx, err := eng.Index()
			Expect(err).NotTo(HaveOccurred())
			Expect(idx.Get("devtools:deploy").ConfidenceBoost).To(BeNumerically("<", 0))
		})

		It("folds failures into the success rate", func() {
			Expect(eng.Completed("devtools:deploy", false)).To(Succeed())

			idx, err := eng.Index()
			Expect(err).NotTo(HaveOccurred())
			Expect(idx.Get("devtools:deploy").SuccessRate).To(BeNumerically("<", 1.0))
		})

		It("rejects feedback for unknown capabilities", func() {
			Expect(eng.Accepted("ghost:missing", "")).NotTo(Succeed())
		})
	})

	Describe("Audit trail", func() {
		It("records scans and feedback as queryable events", func() {
			_, err := eng.Scan(ctx, nil, engine.ModeFull)
			Expect(err).NotTo(HaveOccurred())
			Expect(eng.Accepted("devtools:deploy", "deploy to aws production")).To(Succeed())

			scans, err := audit.Query(events.Filters{Kind: events.KindScan})
			Expect(err).NotTo(HaveOccurred())
			Expect(scans).To(HaveLen(1))

			accepted, err := audit.Query(events.Filters{CapabilityID: "devtools:deploy"})
			Expect(err).NotTo(HaveOccurred())
			Expect(accepted).To(HaveLen(1))
			Expect(accepted[0].Kind).To(Equal(events.KindAccepted))
			Expect(accepted[0].Query).To(Equal("deploy to aws production"))
		})
	})

	Describe("Resilience", func() {
		It("rebuilds when the stored index is corrupt", func() {
			Expect(os.WriteFile(filepath.Join(home, "index.json"), []byte("{corrupt"), 0644)).To(Succeed())

			rec, err := eng.Recommend(ctx, "deploy to aws production", recommend.Constraints{})
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Candidates).NotTo(BeEmpty())
		})

		It("keeps serving a stale snapshot when the rescan location vanishes", func() {
			short := engine.New(engine.Options{
				Store:     st,
				Locations: []string{location},
				Staleness: time.Nanosecond,
			})
			_, err := short.Scan(ctx, nil, engine.ModeFull)
			Expect(err).NotTo(HaveOccurred())

			Expect(os.RemoveAll(location)).To(Succeed())

			// Location gone: the refresh marks it not-OK, prior entries
			// are retained, recommendations still flow.
			rec, err := short.Recommend(ctx, "deploy to aws production", recommend.Constraints{})
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Candidates).NotTo(BeEmpty())
		})
	})
})
