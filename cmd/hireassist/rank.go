package main

import (
	"fmt"

	"github.com/jonathan/hiring-assistant/internal/config"
	"github.com/jonathan/hiring-assistant/internal/workspace"
	"github.com/spf13/cobra"
)

type rankOptions struct {
	jd         jdFlags
	drops      []string
	show       int
	permissive bool
	probe      bool
	jobID      string
}

func newRankCmd(opts *rootOptions) *cobra.Command {
	ro := &rankOptions{}

	cmd := &cobra.Command{
		Use:   "rank [files...]",
		Short: "Upload resumes and rank them against a job description",
		Long: `Queue resumes, upload them one at a time and print the ranked analysis.

Files named as arguments are treated as picked; directories passed with --drop
are expanded like a drag-and-drop of their contents. The batch is all or
nothing: if any upload fails no results are kept.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRank(cmd, opts, ro, args)
		},
	}

	ro.jd.register(cmd)
	cmd.Flags().StringSliceVar(&ro.drops, "drop", nil, "Directory or files to add as a drop (repeatable)")
	cmd.Flags().IntVar(&ro.show, "show", 0, "Open the detailed analysis of the Nth result (1-based)")
	cmd.Flags().BoolVar(&ro.permissive, "permissive", false, "Accept any regular file regardless of type and size")
	cmd.Flags().BoolVar(&ro.probe, "probe", false, "Open PDF and DOCX files locally before queueing")
	cmd.Flags().StringVar(&ro.jobID, "job-id", "", "Job identifier sent with each upload")
	return cmd
}

func runRank(cmd *cobra.Command, opts *rootOptions, ro *rankOptions, args []string) error {
	if len(args) == 0 && len(ro.drops) == 0 {
		return fmt.Errorf("no resumes given: pass files or --drop")
	}

	a, err := opts.newApp(cmd, func(c *config.Config) {
		c.Permissive = c.Permissive || ro.permissive
		c.ProbeFiles = c.ProbeFiles || ro.probe
		if ro.jobID != "" {
			c.JobID = ro.jobID
		}
	})
	if err != nil {
		return err
	}
	if err := a.requireSession(); err != nil {
		return err
	}
	w := a.workspace

	if ro.jd.set() {
		desc, err := ro.jd.load(cmd, a)
		if err != nil {
			return err
		}
		w.SetJobDescription(desc.Text)
		if err := w.Blur(cmd.Context()); err != nil {
			return err
		}
		a.printer.PrintSkills(w.Skills.Skills(), false)
	}

	a.queueFiles(args, ro.drops)
	if w.Queue.Len() > 0 {
		a.printer.PrintQueue(w.Queue.Files(), false)
	}

	if err := a.upload(cmd); err != nil {
		return err
	}

	a.printer.PrintResults(w.Results.All(), false)
	if ro.show > 0 {
		return a.showResult(ro.show)
	}
	return nil
}

// queueFiles adds picked files and drops. Rejections are reported but do not
// stop the accepted siblings from being queued.
func (a *app) queueFiles(picked, drops []string) {
	q := a.workspace.Queue
	if len(picked) > 0 {
		if _, err := q.AddPicked(picked...); err != nil {
			a.printer.PrintNotice(err.Error())
		}
	}
	if len(drops) > 0 {
		q.DragEnter()
		if _, err := q.Drop(drops...); err != nil {
			a.printer.PrintNotice(err.Error())
		}
	}
}

// upload runs the batch, printing one line per completed file.
func (a *app) upload(cmd *cobra.Command) error {
	w := a.workspace
	total := w.Queue.Len()

	err := w.Upload(cmd.Context(), func(o workspace.Outcome) {
		status := "done"
		if o.Err != nil {
			status = "failed"
		}
		_, _ = fmt.Fprintf(a.out, "  [%d/%d] %s ... %s\n", o.Index+1, total, o.File.Name, status)
	})
	if notice := w.Notice(); notice != "" {
		a.printer.PrintNotice(notice)
	}
	return err
}

// showResult opens the detail view of the 1-based result n.
func (a *app) showResult(n int) error {
	r, err := a.workspace.Results.Select(n - 1)
	if err != nil {
		return err
	}
	a.printer.PrintAnalysis(r)
	return nil
}
