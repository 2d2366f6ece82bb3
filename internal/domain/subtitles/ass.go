package subtitles

import (
	"fmt"
	"strings"
	"time"

	"github.com/forPelevin/hoopcut/internal/textutil"
	"github.com/forPelevin/hoopcut/internal/types"
)

// Caption is the text burned into one clip: a short title at the top and the
// play-by-play line at the bottom.
type Caption struct {
	Title string
	Text  string
}

func HighlightCaption(ev types.HighlightEvent) Caption {
	return Caption{
		Title: fmt.Sprintf("%s · %s %s", textutil.Title(string(ev.Category)), ev.Period, ev.Clock),
		Text:  ev.Text,
	}
}

func StintCaption(iv types.OnCourtInterval) Caption {
	return Caption{Title: fmt.Sprintf("%s · %s - %s", iv.Period, iv.StartClock, iv.EndClock)}
}

// RenderCaptionASS renders c as an ASS script covering a clip of length dur.
func RenderCaptionASS(c Caption, dur time.Duration) string {
	var b strings.Builder
	b.WriteString(assHeader())
	b.WriteString("\n\n[Events]\n")
	b.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")
	if t := sanitizeASS(c.Title); t != "" {
		writeDialogue(&b, "Title", dur, t)
	}
	if t := sanitizeASS(c.Text); t != "" {
		// Long play descriptions wrap onto two lines at most.
		writeDialogue(&b, "Play", dur, strings.Join(wrap(t, 48, 2), `\N`))
	}
	return b.String()
}

func writeDialogue(b *strings.Builder, style string, dur time.Duration, text string) {
	b.WriteString("Dialogue: 0,0:00:00.00,")
	b.WriteString(assTime(dur))
	b.WriteString(",")
	b.WriteString(style)
	b.WriteString(",,0,0,0,,")
	b.WriteString(text)
	b.WriteString("\n")
}

func wrap(s string, width, maxLines int) []string {
	var lines []string
	cur := ""
	for _, w := range strings.Fields(s) {
		switch {
		case cur == "":
			cur = w
		case len([]rune(cur))+1+len([]rune(w)) <= width:
			cur += " " + w
		default:
			lines = append(lines, cur)
			cur = w
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	if len(lines) > maxLines {
		rest := strings.Join(lines[maxLines-1:], " ")
		lines = append(lines[:maxLines-1], rest)
	}
	return lines
}

func assHeader() string {
	return strings.TrimSpace(`
[Script Info]
ScriptType: v4.00+
PlayResX: 1920
PlayResY: 1080
ScaledBorderAndShadow: yes

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: Title, Inter, 54, &H00FFFFFF, &H00FFD200, &H00000000, &H64000000, 1,0,0,0,100,100,0,0,1,4,2,8, 60,60,40,1
Style: Play, Inter, 44, &H00FFFFFF, &H00FFD200, &H00000000, &H64000000, 0,0,0,0,100,100,0,0,1,4,2,2, 80,80,60,1
`)
}

func assTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hs := int(d / time.Hour)
	d -= time.Duration(hs) * time.Hour
	ms := int(d / time.Minute)
	d -= time.Duration(ms) * time.Minute
	s := int(d / time.Second)
	d -= time.Duration(s) * time.Second
	cs := int(d / (10 * time.Millisecond))
	return fmt.Sprintf("%d:%02d:%02d.%02d", hs, ms, s, cs)
}

func sanitizeASS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "{", "(")
	s = strings.ReplaceAll(s, "}", ")")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
