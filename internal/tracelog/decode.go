package tracelog

import (
	"database/sql"
	"encoding/json"
	"strings"
)

// DecodePayload best-effort decodes a serialized payload column. Valid JSON
// comes back as json.RawMessage so it re-serializes structured; anything that
// fails to parse is returned as its raw original string rather than failing
// the lookup. Null columns decode to nil.
func DecodePayload(raw sql.NullString) any {
	if !raw.Valid || strings.TrimSpace(raw.String) == "" {
		return nil
	}
	if json.Valid([]byte(raw.String)) {
		return json.RawMessage(raw.String)
	}
	return raw.String
}
