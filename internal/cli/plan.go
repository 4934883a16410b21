package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"clipmerge/internal/config"
	"clipmerge/internal/paths"
	"clipmerge/internal/plan"
	"clipmerge/internal/probe"
	"clipmerge/internal/tools"
)

var planFlags requestFlags

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan [clips...]",
		Short: "Compile and print the processing graph without running ffmpeg",
		RunE:  runPlan,
	}

	addRequestFlags(cmd, &planFlags)

	return cmd
}

func runPlan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	pp, err := paths.Resolve(outDir)
	if err != nil {
		return err
	}

	cfg, err := config.Load(pp.ConfigFile)
	if err != nil {
		return err
	}

	req, err := buildRequest(cmd, args, planFlags, cfg)
	if err != nil {
		return err
	}

	ffprobePath, err := tools.Lookup("ffprobe")
	if err != nil {
		return err
	}
	prober := probe.New(ffprobePath, nil)

	_, p, err := probeAndCompile(ctx, prober, req)
	if err != nil {
		return err
	}

	if outputJSON {
		return writePlanJSON(cmd, p)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "inputs: %d, nodes: %d, output: %s/%s, %.2fs\n",
		len(p.Inputs), len(p.Nodes), p.FinalVideo, p.FinalAudio, p.OutputSeconds)

	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NODE\tFILTER\tINPUTS\tOUTPUTS")
	for _, node := range p.Nodes {
		filter := node.Filter
		if node.Args != "" {
			filter += "=" + node.Args
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			node.ID,
			filter,
			strings.Join(node.Inputs, ","),
			strings.Join(node.Outputs, ","),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nfilter_complex:\n%s\n", p.FilterComplex())
	return nil
}

func writePlanJSON(cmd *cobra.Command, p *plan.MergePlan) error {
	type nodeJSON struct {
		ID      string   `json:"id"`
		Filter  string   `json:"filter"`
		Args    string   `json:"args,omitempty"`
		Inputs  []string `json:"inputs"`
		Outputs []string `json:"outputs"`
	}

	payload := struct {
		Inputs        []string   `json:"inputs"`
		Nodes         []nodeJSON `json:"nodes"`
		FinalVideo    string     `json:"final_video"`
		FinalAudio    string     `json:"final_audio"`
		Seconds       float64    `json:"duration_seconds"`
		FilterComplex string     `json:"filter_complex"`
	}{
		Inputs:        p.Inputs,
		FinalVideo:    p.FinalVideo,
		FinalAudio:    p.FinalAudio,
		Seconds:       p.OutputSeconds,
		FilterComplex: p.FilterComplex(),
	}
	for _, node := range p.Nodes {
		payload.Nodes = append(payload.Nodes, nodeJSON{
			ID:      node.ID,
			Filter:  node.Filter,
			Args:    node.Args,
			Inputs:  node.Inputs,
			Outputs: node.Outputs,
		})
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
