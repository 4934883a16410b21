package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"clipmerge/internal/config"
	"clipmerge/internal/engine"
	"clipmerge/internal/logx"
	"clipmerge/internal/paths"
	"clipmerge/internal/plan"
	"clipmerge/internal/probe"
	"clipmerge/internal/tools"
	"clipmerge/internal/tui"
)

var (
	mergeFlags       requestFlags
	mergeNoProgress  bool
	mergeConcurrency int
)

func newMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge [clips...]",
		Short: "Probe, normalize, and merge clips into a single output file",
		RunE:  runMerge,
	}

	addRequestFlags(cmd, &mergeFlags)
	cmd.Flags().BoolVar(&mergeNoProgress, "no-progress", false, "Disable interactive progress output")
	cmd.Flags().IntVar(&mergeConcurrency, "probe-concurrency", 4, "Concurrent ffprobe processes")

	return cmd
}

func runMerge(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	mode := tui.DetectMode(cmd.OutOrStdout(), mergeNoProgress, outputJSON)

	var status *tui.StatusWriter
	if mode == tui.ModeTUI {
		status = tui.NewStatusWriter(cmd.OutOrStdout())
		defer status.Stop()
		status.Update("loading configuration")
	}

	pp, err := paths.Resolve(outDir)
	if err != nil {
		return err
	}
	if err := pp.EnsureDirs(); err != nil {
		return err
	}

	cfg, err := config.Load(pp.ConfigFile)
	if err != nil {
		return err
	}

	req, err := buildRequest(cmd, args, mergeFlags, cfg)
	if err != nil {
		return err
	}

	if status != nil {
		status.Update("locating ffmpeg and ffprobe")
	}
	ffprobePath, err := tools.Lookup("ffprobe")
	if err != nil {
		return err
	}
	ffmpegPath, err := tools.Lookup("ffmpeg")
	if err != nil {
		return err
	}

	logger, logCloser, err := logx.New(pp.LogsDir)
	if err != nil {
		return err
	}
	defer logCloser.Close()
	logger.Printf("merge: %d clip(s), transition=%s, audio=%s", len(req.Clips), req.Opts.Transition, req.Opts.AudioPolicy)

	outputPath := resolveOutputPath(pp, req)
	prober := probe.New(ffprobePath, nil)
	eng := engine.New(ffmpegPath, pp.LogsDir, nil)

	if mode == tui.ModeTUI {
		status.Stop()
		return runMergeTUI(ctx, cmd, req, prober, eng, outputPath, logger)
	}
	return runMergePlain(ctx, cmd, req, prober, eng, outputPath, logger, mode)
}

func resolveOutputPath(pp paths.WorkPaths, req mergeRequest) string {
	name := req.OutputName
	if name == "" {
		// Extension carries the leading dot.
		name = "merged" + req.Encode.Extension
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(pp.Root, name)
}

// probeAndCompile runs the probing phase and builds the plan. Returned
// probe results line up with req.Clips.
func probeAndCompile(ctx context.Context, prober *probe.Prober, req mergeRequest) ([]probe.Result, *plan.MergePlan, error) {
	clipPaths := make([]string, len(req.Clips))
	for i, clip := range req.Clips {
		clipPaths[i] = clip.Path
	}

	results, err := prober.ProbeAll(ctx, clipPaths, mergeConcurrency)
	if err != nil {
		return nil, nil, err
	}

	probes := make([]plan.ClipProbe, len(results))
	for i, res := range results {
		probes[i] = plan.ClipProbe{Duration: res.Duration, HasAudio: res.HasAudio}
	}

	p, err := plan.Compile(req.Clips, probes, req.Opts)
	if err != nil {
		return results, nil, err
	}
	return results, p, nil
}

func runMergeTUI(ctx context.Context, cmd *cobra.Command, req mergeRequest, prober *probe.Prober, eng *engine.Engine, outputPath string, logger *log.Logger) error {
	model := tui.NewProgressModel("merge", []tui.Column{
		{Header: "INDEX", Width: 5},
		{Header: "CLIP", Width: 36},
		{Header: "DURATION", Width: 8},
		{Header: "AUDIO", Width: 5},
		{Header: "STATUS", Width: 8},
	})
	for i, clip := range req.Clips {
		model.AddRow(rowKey(i), []string{
			fmt.Sprintf("%03d", i+1),
			filepath.Base(clip.Path),
			"-",
			"-",
			"pending",
		})
	}

	var outErr error
	err := tui.RunWithWork(cmd.OutOrStdout(), model, func(send func(tea.Msg)) {
		for i := range req.Clips {
			send(tui.RowUpdateMsg{Key: rowKey(i), Fields: map[string]string{"STATUS": "probing"}})
		}

		results, p, err := probeAndCompile(ctx, prober, req)
		for i, res := range results {
			fields := map[string]string{"STATUS": "probed"}
			if res.Duration > 0 {
				fields["DURATION"] = fmt.Sprintf("%.1fs", res.Duration)
				fields["AUDIO"] = audioMark(res.HasAudio)
			}
			send(tui.RowUpdateMsg{Key: rowKey(i), Fields: fields})
		}
		if err != nil {
			outErr = err
			send(tui.ErrorMsg{Err: err})
			return
		}
		logger.Printf("plan compiled: %d node(s), %.1fs output", len(p.Nodes), p.OutputSeconds)

		_, err = eng.Execute(ctx, p, engine.Options{
			OutputPath: outputPath,
			Encode:     req.Encode,
			OnProgress: func(prog engine.Progress) {
				send(tui.MergeProgressMsg{Percent: prog.Percent, OutTime: prog.OutTime, Speed: prog.Speed})
			},
		})
		if err != nil {
			outErr = err
			send(tui.ErrorMsg{Err: err})
			return
		}
		for i := range req.Clips {
			send(tui.RowUpdateMsg{Key: rowKey(i), Fields: map[string]string{"STATUS": "merged"}})
		}
	})
	if err != nil {
		logger.Printf("merge failed: %v", err)
		return err
	}
	if outErr != nil {
		logger.Printf("merge failed: %v", outErr)
		return outErr
	}

	logger.Printf("merge complete: %s", outputPath)
	fmt.Fprintf(cmd.OutOrStdout(), "merged %d clip(s) -> %s\n", len(req.Clips), outputPath)
	return nil
}

func runMergePlain(ctx context.Context, cmd *cobra.Command, req mergeRequest, prober *probe.Prober, eng *engine.Engine, outputPath string, logger *log.Logger, mode tui.OutputMode) error {
	results, p, err := probeAndCompile(ctx, prober, req)
	if err != nil {
		logger.Printf("merge failed: %v", err)
		return err
	}
	logger.Printf("plan compiled: %d node(s), %.1fs output", len(p.Nodes), p.OutputSeconds)

	if mode == tui.ModePlain {
		for i, res := range results {
			fmt.Fprintf(cmd.OutOrStdout(), "probed %03d %s (%.1fs, audio=%s)\n", i+1, res.Path, res.Duration, audioMark(res.HasAudio))
		}
		eng.SetStdout(cmd.OutOrStdout())
	}

	if _, err := eng.Execute(ctx, p, engine.Options{OutputPath: outputPath, Encode: req.Encode}); err != nil {
		logger.Printf("merge failed: %v", err)
		return err
	}
	logger.Printf("merge complete: %s", outputPath)

	if mode == tui.ModeJSON {
		return writeMergeJSON(cmd, results, p, outputPath)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "merged %d clip(s) -> %s\n", len(req.Clips), outputPath)
	return nil
}

func writeMergeJSON(cmd *cobra.Command, results []probe.Result, p *plan.MergePlan, outputPath string) error {
	payload := struct {
		Output  string         `json:"output"`
		Seconds float64        `json:"duration_seconds"`
		Nodes   int            `json:"nodes"`
		Clips   []probe.Result `json:"clips"`
	}{
		Output:  outputPath,
		Seconds: p.OutputSeconds,
		Nodes:   len(p.Nodes),
		Clips:   results,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func rowKey(i int) string {
	return fmt.Sprintf("clip:%03d", i+1)
}

func audioMark(hasAudio bool) string {
	if hasAudio {
		return "yes"
	}
	return "no"
}
