package cmd

import (
	"os"
	"time"

	"github.com/reelctl/reelctl/engine/backend"
	"github.com/reelctl/reelctl/inline"
	"github.com/reelctl/reelctl/open"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(probeCmd)
	addInlineFlags(probeCmd)
	probeCmd.Flags().StringP("format", "f", string(inline.FormatText), "Output format (text, json, yaml, toml)")
	lo.Must0(probeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(inline.Formats, func(f inline.Format, _ int) string { return string(f) }), cobra.ShellCompDirectiveNoFileComp
	}))

	rootCmd.AddCommand(snapshotCmd)
	addInlineFlags(snapshotCmd)
	snapshotCmd.Flags().StringP("output", "O", "", "Snapshot file; defaults to the snapshot directory")
	snapshotCmd.Flags().Bool("open", false, "Open the snapshot with the default image viewer")
}

func addInlineFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("option", "o", nil, "Media option, e.g. start=90 (may be repeated)")
	cmd.Flags().DurationP("timeout", "t", 30*time.Second, "How long to wait for video output, 0 waits until playback ends")
}

func inlineOptions(cmd *cobra.Command, mrl string) *inline.Options {
	return &inline.Options{
		Out:          os.Stdout,
		MRL:          mrl,
		MediaOptions: lo.Must(cmd.Flags().GetStringSlice("option")),
		Timeout:      lo.Must(cmd.Flags().GetDuration("timeout")),
	}
}

var probeCmd = &cobra.Command{
	Use:     "probe <media>",
	Short:   "Print the video metadata of a file or URL",
	Long:    "Play the media until video output appears, print its size, subtitle tracks and length, then exit.",
	Args:    cobra.ExactArgs(1),
	Example: "  reelctl probe film.mkv -f json",
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		format, err := inline.ParseFormat(lo.Must(cmd.Flags().GetString("format")))
		handleErr(err)

		eng, err := backend.Configured()
		handleErr(err)

		options := inlineOptions(cmd, args[0])
		options.Format = format
		handleErr(inline.Run(eng, options))
	},
}

var snapshotCmd = &cobra.Command{
	Use:     "snapshot <media>",
	Short:   "Save a frame of a file or URL",
	Long:    "Play the media until video output appears, save the current frame as png, print where it went, then exit.",
	Args:    cobra.ExactArgs(1),
	Example: "  reelctl snapshot film.mkv -o start=600 -O frame.png",
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		eng, err := backend.Configured()
		handleErr(err)

		options := inlineOptions(cmd, args[0])
		options.Snapshot = mo.Some(lo.Must(cmd.Flags().GetString("output")))
		if lo.Must(cmd.Flags().GetBool("open")) {
			options.OnSnapshot = open.Start
		}
		handleErr(inline.Run(eng, options))
	},
}
