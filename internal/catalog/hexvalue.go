package catalog

import (
	"encoding/json"
	"strconv"
	"strings"

	"trackerimport/internal/importerr"
)

// HexUint16 unmarshals a JSON value that may be a plain integer or a
// "0x..."-prefixed hex string, as spec §6 requires for FileInfo.start_addr.
type HexUint16 uint16

func (h *HexUint16) UnmarshalJSON(b []byte) error {
	var asInt int64
	if err := json.Unmarshal(b, &asInt); err == nil {
		*h = HexUint16(asInt)
		return nil
	}

	var asString string
	if err := json.Unmarshal(b, &asString); err != nil {
		return importerr.Wrap(importerr.MalformedLibrary, "start_addr must be an integer or a hex string", err)
	}
	trimmed := strings.TrimPrefix(strings.TrimPrefix(asString, "0x"), "0X")
	v, err := strconv.ParseUint(trimmed, 16, 16)
	if err != nil {
		return importerr.Wrap(importerr.MalformedLibrary, "start_addr hex string is invalid: "+asString, err)
	}
	*h = HexUint16(v)
	return nil
}

func (h HexUint16) MarshalJSON() ([]byte, error) {
	return json.Marshal(uint16(h))
}
