// package formatter provides functions to export the photo index to various formats (JSON, CSV, Markdown, plain text, YAML)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/pictx/internal/models"
	"github.com/desertthunder/pictx/internal/shared"
	"gopkg.in/yaml.v3"
)

// Format names an export encoding.
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "txt"
	FormatYAML     Format = "yaml"
)

// Formats lists the supported formats in help order.
var Formats = []Format{FormatJSON, FormatCSV, FormatMarkdown, FormatText, FormatYAML}

// ParseFormat accepts a format name or its common aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, s)
}

// Extension is the file extension for f, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatText:
		return ".txt"
	default:
		return "." + string(f)
	}
}

// IndexExport is a snapshot of the photo index with the base URL its paths resolve against.
type IndexExport struct {
	BaseURL string
	Source  string
	Photos  []models.PhotoDescriptor
}

// Resolve joins a site-relative path onto the base URL. Absolute URLs and an empty base pass through.
func (e *IndexExport) Resolve(ref string) string {
	if e.BaseURL == "" {
		return ref
	}
	base, err := url.Parse(e.BaseURL)
	if err != nil {
		return ref
	}
	rel, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(rel).String()
}

// Export encodes the snapshot in format f.
func Export(export *IndexExport, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return ExportToJSON(export)
	case FormatCSV:
		return ExportToCSV(export)
	case FormatMarkdown:
		return ExportToMarkdown(export)
	case FormatText:
		return ExportToText(export)
	case FormatYAML:
		return ExportToYAML(export)
	}
	return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, f)
}

// ExportToJSON produces the bulk listing payload shape: {"photos": [...]}.
func ExportToJSON(export *IndexExport) ([]byte, error) {
	photos := export.Photos
	if photos == nil {
		photos = []models.PhotoDescriptor{}
	}

	data, err := json.MarshalIndent(models.PhotoListing{Photos: photos}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// ExportToYAML produces the same document as [ExportToJSON] in YAML.
func ExportToYAML(export *IndexExport) ([]byte, error) {
	photos := export.Photos
	if photos == nil {
		photos = []models.PhotoDescriptor{}
	}

	data, err := yaml.Marshal(models.PhotoListing{Photos: photos})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return data, nil
}

// ExportToCSV converts the index to CSV format with columns: Position, Title, URL, Full URL
func ExportToCSV(export *IndexExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Position", "Title", "URL", "Full URL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, photo := range export.Photos {
		record := []string{
			strconv.Itoa(i),
			photo.Title,
			export.Resolve(photo.URL),
			export.Resolve(photo.FullURL),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders a linked thumbnail per photo.
func ExportToMarkdown(export *IndexExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Gallery\n\n")
	if export.BaseURL != "" {
		buf.WriteString(fmt.Sprintf("**Site**: %s\n", export.BaseURL))
	}
	if export.Source != "" {
		buf.WriteString(fmt.Sprintf("**Source**: %s\n", export.Source))
	}
	buf.WriteString(fmt.Sprintf("**Photos**: %d\n\n", len(export.Photos)))

	buf.WriteString("## Photos\n\n")
	for i, photo := range export.Photos {
		title := markdownEscape(displayTitle(photo))
		buf.WriteString(fmt.Sprintf("%d. [![%s](%s)](%s) %s\n", i+1, title, export.Resolve(photo.URL), export.Resolve(photo.FullURL), title))
	}

	return buf.Bytes(), nil
}

// ExportToText converts the index to plain text format
func ExportToText(export *IndexExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Photos: %d\n", len(export.Photos)))
	if export.Source != "" {
		buf.WriteString(fmt.Sprintf("Source: %s\n", export.Source))
	}
	buf.WriteString("\n")

	for i, photo := range export.Photos {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, displayTitle(photo), export.Resolve(photo.FullURL)))
	}

	return buf.Bytes(), nil
}

// WriteExport writes the snapshot to path, defaulting to photos{ext} in the working directory.
func WriteExport(export *IndexExport, f Format, path string) (string, error) {
	if path == "" {
		path = "photos" + f.Extension()
	}

	data, err := Export(export, f)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", f, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

func displayTitle(p models.PhotoDescriptor) string {
	if p.Title != "" {
		return p.Title
	}
	return "Untitled"
}

var markdownReplacer = strings.NewReplacer(`[`, `\[`, `]`, `\]`, `*`, `\*`, `_`, `\_`)

func markdownEscape(s string) string { return markdownReplacer.Replace(s) }
