package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"clipmerge/internal/probe"
	"clipmerge/internal/tools"
)

var probeConcurrency int

func newProbeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe <clips...>",
		Short: "Inspect clip durations and stream layout with ffprobe",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runProbe,
	}

	cmd.Flags().IntVar(&probeConcurrency, "concurrency", 4, "Concurrent ffprobe processes")

	return cmd
}

func runProbe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	ffprobePath, err := tools.Lookup("ffprobe")
	if err != nil {
		return err
	}

	prober := probe.New(ffprobePath, nil)
	results, err := prober.ProbeAll(ctx, args, probeConcurrency)
	if err != nil {
		return err
	}

	if outputJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CLIP\tDURATION\tAUDIO\tVIDEO\tSIZE")
	for _, res := range results {
		size := "-"
		if res.Width > 0 && res.Height > 0 {
			size = fmt.Sprintf("%dx%d", res.Width, res.Height)
		}
		fmt.Fprintf(w, "%s\t%.2fs\t%s\t%s\t%s\n",
			res.Path, res.Duration, audioMark(res.HasAudio), res.VideoCodec, size)
	}
	return w.Flush()
}
