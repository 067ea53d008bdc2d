package catalog

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"io"
	"strings"

	"trackerimport/internal/importerr"
)

const deflatePrefix = "deflate:"

// decodePayload decodes a FileInfo.Data string: base64, optionally
// prefixed with "deflate:" in which case the base64-decoded bytes are
// further inflated (spec §6). The deflate reader is a scoped resource
// and is closed on every return path (spec §9).
func decodePayload(data string) ([]byte, error) {
	deflated := false
	if strings.HasPrefix(data, deflatePrefix) {
		deflated = true
		data = data[len(deflatePrefix):]
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, importerr.Wrap(importerr.MalformedLibrary, "invalid base64 payload", err)
	}
	if !deflated {
		return raw, nil
	}

	zr := flate.NewReader(bytes.NewReader(raw))
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, importerr.Wrap(importerr.MalformedLibrary, "invalid deflate stream", err)
	}
	return out, nil
}
