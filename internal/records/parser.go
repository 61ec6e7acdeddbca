package records

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/vvka-141/sparkify/internal/files/filesystem"
	"github.com/vvka-141/sparkify/pkg/sparkify"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parser reads data files through a filesystem provider.
type Parser struct {
	fsProvider filesystem.FileSystemProvider
}

// NewParser panics if fsProvider is nil.
func NewParser(fsProvider filesystem.FileSystemProvider) *Parser {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Parser{fsProvider: fsProvider}
}

func (p *Parser) ParseCatalogFile(path string) (CatalogRecord, error) {
	data, err := p.fsProvider.ReadFile(path)
	if err != nil {
		return CatalogRecord{}, fmt.Errorf("read %s: %w", path, err)
	}
	return DecodeCatalog(path, data)
}

func (p *Parser) ParseActivityFile(path string) (ActivityBatch, error) {
	data, err := p.fsProvider.ReadFile(path)
	if err != nil {
		return ActivityBatch{}, fmt.Errorf("read %s: %w", path, err)
	}
	return DecodeActivity(path, data)
}

// DecodeCatalog decodes a single catalog object. Trailing data is an error.
func DecodeCatalog(path string, data []byte) (CatalogRecord, error) {
	fields, err := decodeObject(bytes.TrimPrefix(data, utf8BOM))
	if err != nil {
		return CatalogRecord{}, fmt.Errorf("%s: %w: %w", path, sparkify.ErrParse, err)
	}

	o := &object{fields: fields, where: path}
	rec := CatalogRecord{
		SongID:          o.String("song_id"),
		Title:           o.String("title"),
		ArtistID:        o.String("artist_id"),
		ArtistName:      o.String("artist_name"),
		Year:            o.Int32("year"),
		Duration:        o.Decimal("duration"),
		ArtistLocation:  o.OptionalText("artist_location"),
		ArtistLatitude:  o.OptionalDecimal("artist_latitude"),
		ArtistLongitude: o.OptionalDecimal("artist_longitude"),
	}
	if o.err != nil {
		return CatalogRecord{}, o.err
	}
	return rec, nil
}

// DecodeActivity accepts a JSON array of objects or one object per line.
// Blank lines are skipped.
func DecodeActivity(path string, data []byte) (ActivityBatch, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	batch := ActivityBatch{Path: path}

	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		var elements []json.RawMessage
		if err := json.Unmarshal(trimmed, &elements); err != nil {
			return ActivityBatch{}, fmt.Errorf("%s: %w: %w", path, sparkify.ErrParse, err)
		}
		for i, element := range elements {
			row, err := decodeActivityRow(fmt.Sprintf("%s element %d", path, i), element)
			if err != nil {
				return ActivityBatch{}, err
			}
			row.Line = i + 1
			batch.Rows = append(batch.Rows, row)
		}
		return batch, nil
	}

	for i, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		row, err := decodeActivityRow(fmt.Sprintf("%s line %d", path, i+1), line)
		if err != nil {
			return ActivityBatch{}, err
		}
		row.Line = i + 1
		batch.Rows = append(batch.Rows, row)
	}
	return batch, nil
}

func decodeActivityRow(where string, data []byte) (ActivityRow, error) {
	fields, err := decodeObject(data)
	if err != nil {
		return ActivityRow{}, fmt.Errorf("%s: %w: %w", where, sparkify.ErrParse, err)
	}

	o := &object{fields: fields, where: where}
	row := ActivityRow{
		Page: o.String("page"),
		TS:   o.Int64("ts"),
	}
	if o.err == nil && row.IsPlay() {
		row.UserID = o.UserID("userId", true)
		row.FirstName = o.String("firstName")
		row.LastName = o.String("lastName")
		row.Gender = o.String("gender")
		row.Level = o.String("level")
		row.SessionID = o.Int32("sessionId")
		row.Song = o.OptionalText("song")
		row.Artist = o.OptionalText("artist")
		row.Length = o.OptionalDecimal("length")
		row.Location = o.OptionalText("location")
		row.UserAgent = o.OptionalText("userAgent")
	}
	if o.err != nil {
		return ActivityRow{}, o.err
	}
	return row, nil
}

// decodeObject decodes exactly one JSON object keeping numbers as json.Number.
func decodeObject(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, fmt.Errorf("expected a JSON object, got null")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after JSON object")
	}
	return fields, nil
}
