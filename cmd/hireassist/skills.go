package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSkillsCmd(opts *rootOptions) *cobra.Command {
	var jd jdFlags

	cmd := &cobra.Command{
		Use:   "skills",
		Short: "Extract skill tags from a job description",
		Long:  "Send a job description to the backend and print the extracted skill tags. Blank text clears the tags without a request.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !jd.set() {
				return fmt.Errorf("one of --text, --jd-file or --jd-url is required")
			}
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			if err := a.requireSession(); err != nil {
				return err
			}

			desc, err := jd.load(cmd, a)
			if err != nil {
				return err
			}
			a.workspace.SetJobDescription(desc.Text)
			if err := a.workspace.Blur(cmd.Context()); err != nil {
				return err
			}

			skills := a.workspace.Skills
			if err := skills.LastError(); err != nil {
				return fmt.Errorf("skill extraction failed: %w", err)
			}
			a.printer.PrintSkills(skills.Skills(), skills.Extracting())
			return nil
		},
	}

	jd.register(cmd)
	return cmd
}
