package generate_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"permgen/citest/testutil"
	"permgen/internal/config"
	"permgen/internal/generate"
	"permgen/internal/lint"
)

var _ = Describe("Generation pass", func() {
	var ws *testutil.Workspace

	BeforeEach(func() {
		var err error
		ws, err = testutil.NewWorkspace()
		Expect(err).NotTo(HaveOccurred())

		_, err = ws.WriteData(testutil.DefaultData)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if ws != nil {
			ws.Cleanup()
		}
	})

	Describe("with every target present", func() {
		BeforeEach(func() {
			_, err := ws.WriteClaudeSettings(testutil.ClaudeTemplate)
			Expect(err).NotTo(HaveOccurred())
			_, err = ws.WriteOpencodeConfig(testutil.OpencodeConfig)
			Expect(err).NotTo(HaveOccurred())
			_, err = ws.EnsureCodexDir()
			Expect(err).NotTo(HaveOccurred())
		})

		It("should splice every target", func() {
			res, err := generate.Run(generate.Options{WorkDir: ws.Root})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Root).To(Equal(ws.Root))
			Expect(res.Changes).To(HaveLen(3))
			Expect(res.Updated()).To(Equal(3))

			settings, err := ws.ReadFile("dot_claude/settings.json.tmpl")
			Expect(err).NotTo(HaveOccurred())
			Expect(settings).To(ContainSubstring(`"Bash(git status:*)"`))
			Expect(settings).To(ContainSubstring(`"Bash(git log:*)"`))
			Expect(settings).To(ContainSubstring("{{/* PERMISSIONS:START */}}"))
			// The template directive outside the block stays put
			Expect(settings).To(ContainSubstring(`{{- $model := .claudeModel | default "sonnet" }}`))

			rules, err := ws.ReadFile("dot_codex/rules/default.rules")
			Expect(err).NotTo(HaveOccurred())
			Expect(rules).To(ContainSubstring("prefix_rule(\n"))
			Expect(rules).To(ContainSubstring(`pattern = ["git", [`))
			Expect(rules).To(ContainSubstring(`decision = "forbidden",`))

			oc, err := ws.ReadFile("dot_config/opencode/opencode.json")
			Expect(err).NotTo(HaveOccurred())
			Expect(oc).To(ContainSubstring(`"*": "ask"`))
			Expect(oc).To(ContainSubstring(`"git status": "allow"`))
			Expect(oc).To(ContainSubstring(`"rm -rf *": "deny"`))
			Expect(oc).To(ContainSubstring("// managed by chezmoi"))
			Expect(oc).To(ContainSubstring(`"autoupdate": false`))

			// Atomic writes leave no temp files behind
			Expect(ws.Exists("dot_claude/settings.json.tmpl.tmp")).To(BeFalse())
			Expect(ws.Exists("dot_codex/rules/default.rules.tmp")).To(BeFalse())
			Expect(ws.Exists("dot_config/opencode/opencode.json.tmp")).To(BeFalse())
		})

		It("should change nothing on a second pass", func() {
			_, err := generate.Run(generate.Options{WorkDir: ws.Root})
			Expect(err).NotTo(HaveOccurred())

			targets := []string{
				"dot_claude/settings.json.tmpl",
				"dot_codex/rules/default.rules",
				"dot_config/opencode/opencode.json",
			}
			first := make(map[string]string)
			for _, rel := range targets {
				content, err := ws.ReadFile(rel)
				Expect(err).NotTo(HaveOccurred())
				first[rel] = content
			}

			res, err := generate.Run(generate.Options{WorkDir: ws.Root})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Updated()).To(BeZero())
			for _, change := range res.Changes {
				Expect(change.Outcome).To(Equal(generate.Unchanged))
			}

			for _, rel := range targets {
				content, err := ws.ReadFile(rel)
				Expect(err).NotTo(HaveOccurred())
				Expect(content).To(Equal(first[rel]), rel)
			}
		})

		It("should report diffs without touching files on a dry run", func() {
			res, err := generate.Run(generate.Options{WorkDir: ws.Root, DryRun: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Updated()).To(Equal(3))
			for _, change := range res.Changes {
				Expect(change.Diff).To(ContainSubstring("--- " + change.Path))
				Expect(change.Diff).To(ContainSubstring("+++ " + change.Path))
			}

			settings, err := ws.ReadFile("dot_claude/settings.json.tmpl")
			Expect(err).NotTo(HaveOccurred())
			Expect(settings).To(Equal(testutil.ClaudeTemplate))
			Expect(ws.Exists("dot_codex/rules/default.rules")).To(BeFalse())

			oc, err := ws.ReadFile("dot_config/opencode/opencode.json")
			Expect(err).NotTo(HaveOccurred())
			Expect(oc).To(Equal(testutil.OpencodeConfig))
		})
	})

	Describe("with no targets present", func() {
		It("should skip everything and succeed", func() {
			res, err := generate.Run(generate.Options{WorkDir: ws.Root})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Changes).To(HaveLen(3))
			for _, change := range res.Changes {
				Expect(change.Outcome).To(Equal(generate.Skipped))
			}
		})
	})

	Describe("with a malformed target", func() {
		BeforeEach(func() {
			_, err := ws.WriteClaudeSettings(testutil.ClaudeTemplate)
			Expect(err).NotTo(HaveOccurred())
			_, err = ws.EnsureCodexDir()
			Expect(err).NotTo(HaveOccurred())
			_, err = ws.WriteOpencodeConfig(`{"permission": "locked"}`)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should abort the run and keep earlier writes", func() {
			res, err := generate.Run(generate.Options{WorkDir: ws.Root})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("opencode:"))

			// claude and codex finished before the failure
			Expect(res.Changes).To(HaveLen(2))
			settings, err := ws.ReadFile("dot_claude/settings.json.tmpl")
			Expect(err).NotTo(HaveOccurred())
			Expect(settings).To(ContainSubstring(`"Bash(git status:*)"`))
			Expect(ws.Exists("dot_codex/rules/default.rules")).To(BeTrue())

			// the malformed target is untouched
			oc, err := ws.ReadFile("dot_config/opencode/opencode.json")
			Expect(err).NotTo(HaveOccurred())
			Expect(oc).To(Equal(`{"permission": "locked"}`))
		})
	})
})

var _ = Describe("Source document check", func() {
	var ws *testutil.Workspace

	BeforeEach(func() {
		var err error
		ws, err = testutil.NewWorkspace()
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if ws != nil {
			ws.Cleanup()
		}
	})

	loadConfig := func() config.Config {
		paths, err := generate.ResolvePaths(generate.Options{WorkDir: ws.Root})
		Expect(err).NotTo(HaveOccurred())
		cfg, err := config.Load(paths.Data)
		Expect(err).NotTo(HaveOccurred())
		return cfg
	}

	It("should pass the default fixture", func() {
		_, err := ws.WriteData(testutil.DefaultData)
		Expect(err).NotTo(HaveOccurred())

		Expect(lint.Check(loadConfig())).To(BeEmpty())
	})

	It("should flag unsound entries loaded from disk", func() {
		_, err := ws.WriteData("bash:\n  allow:\n    - git status | grep clean\nopencode:\n  bash:\n    default: aks\n")
		Expect(err).NotTo(HaveOccurred())

		findings := lint.Check(loadConfig())
		Expect(lint.HasErrors(findings)).To(BeTrue())
		Expect(findings).To(HaveLen(2))
		Expect(findings[0].Group).To(Equal("bash.allow"))
		Expect(findings[0].Message).To(ContainSubstring("prefix matching"))
		Expect(findings[1].Group).To(Equal("opencode.bash.default"))
		Expect(findings[1].Message).To(ContainSubstring(`did you mean "ask"`))
	})
})
