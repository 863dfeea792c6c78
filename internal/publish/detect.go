package publish

import (
	"bytes"

	"github.com/emrgen/sitepress/internal/compress"
	"github.com/emrgen/sitepress/internal/model"
)

// needsPublish is the only gate before writing a published twin. A missing
// hash on either side forces a publish; kinds with a cheaper field fallback
// check that before calling.
func needsPublish(draftHash, publishedHash string) bool {
	if draftHash == "" || publishedHash == "" {
		return true
	}
	return draftHash != publishedHash
}

// layerChanged compares a draft layer with its published twin. When both rows
// carry a content hash the hashes decide; otherwise the contents are decoded
// through the codecs named on the rows and compared byte for byte.
func layerChanged(draft, twin *model.Layer) bool {
	if draft.ContentHash != "" && twin.ContentHash != "" {
		return draft.ContentHash != twin.ContentHash
	}

	draftContent, err := compress.ForName(draft.Compression).Decode([]byte(draft.Content))
	if err != nil {
		return true
	}
	twinContent, err := compress.ForName(twin.Compression).Decode([]byte(twin.Content))
	if err != nil {
		return true
	}

	return !bytes.Equal(draftContent, twinContent)
}

// valueSetChanged compares the full value sets of an item's two states. A
// differing field count, a value for a new field, or a changed value all mark
// the item for publishing.
func valueSetChanged(draft, published []*model.Value) bool {
	if len(draft) != len(published) {
		return true
	}

	byField := make(map[string]string, len(published))
	for _, v := range published {
		byField[v.FieldID] = v.ContentHash
	}

	for _, v := range draft {
		hash, ok := byField[v.FieldID]
		if !ok || needsPublish(v.ContentHash, hash) {
			return true
		}
	}

	return false
}
