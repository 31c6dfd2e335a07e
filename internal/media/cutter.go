package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"autocut/internal/services"
	"autocut/internal/timeline"
)

// Cut renders the timeline's keep segments into the output file through a
// single ffmpeg filter_complex graph: every segment is trimmed from the
// source, faded per its crossfade annotations, and concatenated.
func (s *Service) Cut(ctx context.Context, input string, tl timeline.Timeline, output string) error {
	if len(tl.Segments) == 0 {
		return services.Wrap(services.ErrInput, "media", "cut", "timeline has no segments to keep", nil)
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return services.Wrap(services.ErrCollaborator, "media", "cut", "ensure output dir", err)
	}

	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", input,
		"-filter_complex", buildFilterGraph(tl.Segments),
		"-map", "[outv]",
		"-map", "[outa]",
		"-c:v", "libx264",
		"-preset", "medium",
		"-crf", "23",
		"-pix_fmt", "yuv420p",
		"-profile:v", "high",
		"-level", "4.0",
		"-c:a", "aac",
		"-b:a", "128k",
		"-movflags", "+faststart",
		output,
	}
	if _, err := s.run(ctx, s.ffmpegBinary, args...); err != nil {
		return services.Wrap(services.ErrCollaborator, "media", "cut", "", err)
	}
	return nil
}

// buildFilterGraph emits trim/atrim chains per segment plus a final concat.
func buildFilterGraph(segments []timeline.Segment) string {
	parts := make([]string, 0, 2*len(segments)+1)
	labels := make([]string, 0, 2*len(segments))

	for i, seg := range segments {
		start := seconds(seg.Span.StartMS)
		duration := seconds(seg.Span.EndMS - seg.Span.StartMS)

		video := fmt.Sprintf("[0:v]trim=start=%s:duration=%s,setpts=PTS-STARTPTS", start, duration)
		audio := fmt.Sprintf("[0:a]atrim=start=%s:duration=%s,asetpts=PTS-STARTPTS", start, duration)

		if seg.FadeInMS > 0 {
			d := seconds(seg.FadeInMS)
			video += fmt.Sprintf(",fade=t=in:st=0:d=%s", d)
			audio += fmt.Sprintf(",afade=t=in:st=0:d=%s", d)
		}
		if seg.FadeOutMS > 0 {
			st := seconds(seg.Span.EndMS - seg.Span.StartMS - seg.FadeOutMS)
			d := seconds(seg.FadeOutMS)
			video += fmt.Sprintf(",fade=t=out:st=%s:d=%s", st, d)
			audio += fmt.Sprintf(",afade=t=out:st=%s:d=%s", st, d)
		}

		parts = append(parts, video+fmt.Sprintf("[v%d]", i))
		parts = append(parts, audio+fmt.Sprintf("[a%d]", i))
		labels = append(labels, fmt.Sprintf("[v%d][a%d]", i, i))
	}

	concat := fmt.Sprintf("%sconcat=n=%d:v=1:a=1[outv][outa]", strings.Join(labels, ""), len(segments))
	parts = append(parts, concat)
	return strings.Join(parts, ";")
}

// seconds formats a millisecond count as a fractional-second ffmpeg value.
func seconds(ms int64) string {
	return fmt.Sprintf("%d.%03d", ms/1000, ms%1000)
}
