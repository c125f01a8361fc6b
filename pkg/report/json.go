package report

import (
	"context"
	"encoding/json"
	"io"

	derrors "github.com/obqo/decycle/pkg/errors"
)

// WriteJSON writes the report as indented JSON.
func WriteJSON(ctx context.Context, w io.Writer, rep Report) error {
	cw := &countingWriter{w: w}
	enc := json.NewEncoder(cw)
	enc.SetIndent("", "  ")
	err := enc.Encode(rep)
	if err != nil {
		err = derrors.Wrap(derrors.ErrCodeReportIO, err, "encode JSON report")
	}
	notifyWritten(ctx, "json", cw, err)
	return err
}

// MarshalJSON returns the report as JSON bytes.
func MarshalJSON(rep Report) ([]byte, error) {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return nil, derrors.Wrap(derrors.ErrCodeReportIO, err, "encode JSON report")
	}
	return data, nil
}
