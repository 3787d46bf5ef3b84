// Package report assembles video metadata, summary, and transcript
// into a paginated PDF document.
package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"

	"ytbrief/sanitize"
	"ytbrief/youtube"
)

// ErrRender indicates the rendering backend rejected the content or
// the output could not be persisted.
var ErrRender = errors.New("report: render failed")

// Document is a rendered, request-scoped PDF. The pipeline run owns it
// exclusively; Remove releases it once the caller is done.
type Document struct {
	// Path is the location of the PDF file.
	Path string
	// Size is the file size in bytes.
	Size int64

	dir string
}

// Remove deletes the document's backing storage. Idempotent.
func (d *Document) Remove() error {
	if d == nil || d.dir == "" {
		return nil
	}
	err := os.RemoveAll(d.dir)
	d.dir = ""
	return err
}

// fontChoice is one entry of the ordered font fallback chain.
type fontChoice struct {
	family string
	load   func(pdf *fpdf.Fpdf) error
}

// Renderer lays out report PDFs.
type Renderer struct {
	// ChunkSize is the transcript block size (default DefaultChunkSize).
	ChunkSize int
	// FontPath optionally points at a UTF-8 TTF font tried before the
	// built-in Helvetica.
	FontPath string
	// OutputDir receives rendered documents. Empty means a fresh
	// directory under the system temp dir per render.
	OutputDir string
}

// NewRenderer returns a Renderer with defaults.
func NewRenderer() *Renderer {
	return &Renderer{ChunkSize: DefaultChunkSize}
}

// Render produces the four-section report: title, video details,
// summary (omitted when empty), and the chunked full transcript.
// Every text field passes through sanitization before layout.
func (r *Renderer) Render(details *youtube.VideoDetails, transcript, summary string) (*Document, error) {
	if details == nil {
		return nil, fmt.Errorf("%w: no video details", ErrRender)
	}
	if transcript == "" {
		return nil, fmt.Errorf("%w: no transcript", ErrRender)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	family := r.selectFont(pdf)
	pdf.AddPage()

	// Title.
	title := sanitize.Clean(details.Title)
	pdf.SetFont(family, "B", 16)
	pdf.MultiCell(0, 10, title, "", "C", false)
	pdf.Ln(10)

	// Video details.
	pdf.SetFont(family, "B", 12)
	pdf.CellFormat(0, 10, "Video Details", "", 1, "L", false, 0, "")
	pdf.SetFont(family, "", 12)
	pdf.MultiCell(0, 8, sanitize.Clean(r.detailLines(details)), "", "L", false)
	pdf.Ln(10)

	// Summary, omitted entirely when absent.
	if summary != "" {
		pdf.SetFont(family, "B", 12)
		pdf.CellFormat(0, 10, "Summary", "", 1, "L", false, 0, "")
		pdf.SetFont(family, "", 12)
		pdf.MultiCell(0, 8, sanitize.Clean(summary), "", "L", false)
		pdf.Ln(10)
	}

	// Full transcript, laid out in bounded blocks.
	pdf.SetFont(family, "B", 12)
	pdf.CellFormat(0, 10, "Full Transcription", "", 1, "L", false, 0, "")
	pdf.SetFont(family, "", 12)
	for _, chunk := range Chunks(sanitize.Clean(transcript), r.ChunkSize) {
		pdf.MultiCell(0, 8, chunk, "", "L", false)
		pdf.Ln(5)
	}

	if pdf.Err() {
		return nil, fmt.Errorf("%w: %v", ErrRender, pdf.Error())
	}

	return r.persist(pdf, title)
}

// detailLines formats the metadata block with a long-form date and
// thousands separators.
func (r *Renderer) detailLines(d *youtube.VideoDetails) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Channel: %s\n", d.ChannelTitle)
	if !d.PublishedAt.IsZero() {
		fmt.Fprintf(&b, "Published: %s\n", d.PublishedAt.Format("January 2, 2006"))
	}
	fmt.Fprintf(&b, "Views: %s\n", humanize.Comma(d.ViewCount))
	fmt.Fprintf(&b, "Likes: %s\n", humanize.Comma(d.LikeCount))
	fmt.Fprintf(&b, "Comments: %s", humanize.Comma(d.CommentCount))
	return b.String()
}

// selectFont walks the ordered fallback chain and returns the first
// family that loads. The built-in Helvetica terminates the chain and
// cannot fail.
func (r *Renderer) selectFont(pdf *fpdf.Fpdf) string {
	chain := []fontChoice{}
	if r.FontPath != "" {
		chain = append(chain, fontChoice{
			family: "CustomUTF8",
			load: func(pdf *fpdf.Fpdf) error {
				if _, err := os.Stat(r.FontPath); err != nil {
					return err
				}
				pdf.AddUTF8Font("CustomUTF8", "", r.FontPath)
				pdf.AddUTF8Font("CustomUTF8", "B", r.FontPath)
				return pdf.Error()
			},
		})
	}
	chain = append(chain, fontChoice{family: "Helvetica"})

	for _, choice := range chain {
		if choice.load == nil {
			return choice.family
		}
		if err := choice.load(pdf); err == nil {
			return choice.family
		}
		// A failed UTF-8 font load poisons the document error state;
		// clear it so the fallback can proceed.
		pdf.ClearError()
	}
	return "Helvetica"
}

// persist writes the document into the output directory and returns
// the owned Document.
func (r *Renderer) persist(pdf *fpdf.Fpdf, title string) (*Document, error) {
	dir := r.OutputDir
	owned := ""
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "ytbrief-report-"+uuid.NewString())
		owned = dir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	path := filepath.Join(dir, reportFilename(title))
	if err := pdf.OutputFileAndClose(path); err != nil {
		if owned != "" {
			os.RemoveAll(owned)
		}
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		if owned != "" {
			os.RemoveAll(owned)
		}
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	return &Document{Path: path, Size: info.Size(), dir: owned}, nil
}

// reportFilename derives a filesystem-safe name from the video title.
func reportFilename(title string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		case r == ' ':
			return '_'
		}
		return -1
	}, title)

	if len(safe) > 80 {
		safe = safe[:80]
	}
	if safe == "" {
		safe = "report"
	}
	return safe + "_transcript.pdf"
}
