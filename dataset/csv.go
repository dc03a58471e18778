package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

// ============================================================================
// CSV — Parses the posts export into []Post
// ============================================================================
// Unlike a best-effort import, every problem is fatal: a missing required
// column, a row with the wrong number of fields, a blank categorical cell or
// a counter that is not a non-negative integer aborts with a *LoadError
// naming the line.
// ============================================================================

// ParseCSV reads posts from CSV. source labels errors.
func ParseCSV(r io.Reader, source string) ([]Post, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, loadErr(source, 1, "", fmt.Errorf("%w: empty file", ErrMalformed))
	}
	if err != nil {
		return nil, csvErr(source, err)
	}

	idx, missing := columnIndex(headers)
	if missing != "" {
		return nil, loadErr(source, 1, missing, ErrMissingColumn)
	}

	var posts []Post
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvErr(source, err)
		}
		line, _ := reader.FieldPos(0)

		p, err := parseRow(row, idx)
		if err != nil {
			var ce *cellError
			if errors.As(err, &ce) {
				return nil, loadErr(source, line, ce.column, ce.err)
			}
			return nil, loadErr(source, line, "", err)
		}
		posts = append(posts, p)
	}

	if len(posts) == 0 {
		return nil, loadErr(source, 0, "", ErrNoRows)
	}
	return posts, nil
}

func parseRow(row []string, idx map[string]int) (Post, error) {
	text := func(key string) string {
		return strings.TrimSpace(row[idx[key]])
	}
	count := func(key string) (int64, error) {
		raw := text(key)
		meta, _ := Column(key)
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, &cellError{column: meta.Header, err: fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, raw)}
		}
		return n, nil
	}

	likes, err := count("likes")
	if err != nil {
		return Post{}, err
	}
	shares, err := count("shares")
	if err != nil {
		return Post{}, err
	}
	comments, err := count("comments")
	if err != nil {
		return Post{}, err
	}
	views, err := count("views")
	if err != nil {
		return Post{}, err
	}

	p := NewPost(
		text("platform"),
		text("region"),
		text("content_type"),
		text("engagement_level"),
		text("hashtag"),
		likes, shares, comments, views,
	)
	if err := checkPost(p); err != nil {
		return Post{}, err
	}
	return p, nil
}

func csvErr(source string, err error) *LoadError {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return loadErr(source, pe.Line, "", fmt.Errorf("%w: %v", ErrMalformed, pe.Err))
	}
	return loadErr(source, 0, "", fmt.Errorf("%w: %v", ErrMalformed, err))
}

// WriteCSV writes posts with the canonical header.
func WriteCSV(w io.Writer, posts []Post) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Headers()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, p := range posts {
		row := []string{
			p.Platform, p.Region, p.ContentType, p.EngagementLevel, p.Hashtag,
			strconv.FormatInt(p.Likes, 10),
			strconv.FormatInt(p.Shares, 10),
			strconv.FormatInt(p.Comments, 10),
			strconv.FormatInt(p.Views, 10),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ============================================================================
// CSV SOURCES
// ============================================================================

// FileSource reads a CSV file from disk.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return s.Path }

func (s FileSource) Posts(ctx context.Context) ([]Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, loadErr(s.Path, 0, "", ErrSourceNotFound)
		}
		return nil, loadErr(s.Path, 0, "", err)
	}
	defer f.Close()
	return ParseCSV(f, s.Path)
}

// ReaderSource reads CSV from an io.Reader (stdin, HTTP body, tests).
type ReaderSource struct {
	Label  string
	Reader io.Reader
}

func (s ReaderSource) Name() string { return s.Label }

func (s ReaderSource) Posts(ctx context.Context) ([]Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Reader == nil {
		return nil, loadErr(s.Label, 0, "", ErrSourceNotFound)
	}
	return ParseCSV(s.Reader, s.Label)
}
