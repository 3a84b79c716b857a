// Package report encodes analysis reports for downstream sinks.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/kacperjurak/goramancore/pkg/models"
)

// Format names a report encoding.
type Format string

const (
	JSON    Format = "json"
	YAML    Format = "yaml"
	MsgPack Format = "msgpack"
)

// ParseFormat maps a format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case JSON, YAML, MsgPack:
		return f, nil
	}
	return "", fmt.Errorf("unknown report format %q", s)
}

// Encode writes r to w in the given format.
func Encode(w io.Writer, r models.Report, format Format) error {
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case MsgPack:
		enc := msgpack.NewEncoder(w)
		enc.UseCompactInts(true)
		return enc.Encode(r)
	}
	return fmt.Errorf("unknown report format %q", format)
}

// Decode reads a report previously written by Encode.
func Decode(rd io.Reader, format Format) (models.Report, error) {
	var r models.Report
	var err error
	switch format {
	case JSON:
		err = json.NewDecoder(rd).Decode(&r)
	case YAML:
		err = yaml.NewDecoder(rd).Decode(&r)
	case MsgPack:
		err = msgpack.NewDecoder(rd).Decode(&r)
	default:
		err = fmt.Errorf("unknown report format %q", format)
	}
	return r, err
}

// WriteFile encodes r into path, or to stdout when path is empty or "-".
func WriteFile(path string, r models.Report, format Format) error {
	if path == "" || path == "-" {
		return Encode(os.Stdout, r, format)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, r, format); err != nil {
		f.Close()
		return fmt.Errorf("encode report %s: %w", path, err)
	}
	return f.Close()
}
