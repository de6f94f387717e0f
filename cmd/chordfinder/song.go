package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/handiism/chordfinder/internal/instrument"
	ioutils "github.com/handiism/chordfinder/internal/io"
	"github.com/handiism/chordfinder/internal/song"
	"github.com/handiism/chordfinder/internal/tablature"
	"github.com/handiism/chordfinder/internal/watch"
)

type songOptions struct {
	format string
	out    string
	watch  bool
	tag    bool
	backup bool
}

func newSongCmd(root *rootOptions) *cobra.Command {
	opts := &songOptions{}

	cmd := &cobra.Command{
		Use:   "song FILE",
		Short: "Add fingerings to a chord sheet",
		Long: `Read a chords-over-lyrics sheet and write it back with the easiest
fingering of every chord on the selected instrument.

FILE is a plain text sheet, or an MP3 file whose lyrics tag holds the
sheet. With --tag the chord fingerings are also stored in the MP3 file.

Formats:
  annotated  every chord is followed by its fingering, Am(X02210)
  legend     the sheet unchanged, followed by a diagram of each chord
  chordpro   ChordPro with [Am] markers inside the lyrics

Examples:
  chordfinder song sheet.txt
  chordfinder song sheet.txt --format chordpro --out sheet.cho
  chordfinder song track.mp3 --instrument ukulele --tag --backup
  chordfinder song sheet.txt --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSong(cmd, root.app, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: annotated, legend or chordpro (default from settings)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "write to a file instead of stdout")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "render again whenever FILE changes")
	cmd.Flags().BoolVar(&opts.tag, "tag", false, "store the fingerings in the MP3 file")
	cmd.Flags().BoolVar(&opts.backup, "backup", false, "copy the MP3 file to FILE.bak before tagging")
	return cmd
}

func runSong(cmd *cobra.Command, a *app, opts *songOptions, path string) error {
	inst, err := a.instrument()
	if err != nil {
		return err
	}

	name := a.settings.TablatureFormat
	if opts.format != "" {
		name = opts.format
	}
	format, err := tablature.ParseFormat(name)
	if err != nil {
		return err
	}
	renderer := tablature.NewRenderer(format, a.cache.BestOn(inst))

	isMP3 := strings.EqualFold(filepath.Ext(path), ".mp3")
	if opts.tag && !isMP3 {
		return fmt.Errorf("--tag needs an MP3 file, got %s", path)
	}

	render := func(ctx context.Context) error {
		s, err := loadSong(path, isMP3)
		if err != nil {
			return err
		}

		out := s.Render(renderer)
		if opts.out == "" {
			fmt.Fprint(cmd.OutOrStdout(), out)
		} else if err := ioutils.WriteFile(ctx, opts.out, []byte(out)); err != nil {
			return err
		}

		if opts.tag {
			if err := tagSong(ctx, a, s, inst, path, opts.backup); err != nil {
				return err
			}
		}
		a.logger.Debug("song rendered",
			zap.String("path", path),
			zap.Stringer("format", format),
			zap.Int("chords", len(s.Chords())),
		)
		return nil
	}

	if err := render(cmd.Context()); err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}

	a.logger.Info("watching for changes", zap.String("path", path))
	w := watch.New(path, watch.WithLogger(a.logger))
	return w.Run(cmd.Context(), func(string) {
		if err := render(cmd.Context()); err != nil {
			a.logger.Warn("render failed", zap.String("path", path), zap.Error(err))
		}
	})
}

func loadSong(path string, isMP3 bool) (*song.Song, error) {
	if isMP3 {
		return song.ReadMP3(path)
	}
	return song.ReadText(path)
}

func tagSong(ctx context.Context, a *app, s *song.Song, inst *instrument.Instrument, path string, backup bool) error {
	if backup {
		copyPath, err := ioutils.BackupFile(ctx, path)
		if err != nil {
			return fmt.Errorf("backup %s: %w", path, err)
		}
		a.logger.Info("backup written", zap.String("path", copyPath))
	}

	fingerings := s.Fingerings(a.cache, inst)
	if err := song.WriteFingerings(path, inst.ID, fingerings); err != nil {
		return fmt.Errorf("tag %s: %w", path, err)
	}
	a.logger.Info("fingerings tagged",
		zap.String("path", path),
		zap.String("instrument", inst.ID),
		zap.Int("chords", len(fingerings)),
	)
	return nil
}
