package parser

import (
	"strings"

	"github.com/akshaytechonsy/postdeck/internal/domain"
)

// Parse extracts post fields from one raw artifact body. It is total: any
// input yields a record, with empty strings for fields whose line is absent.
// The caller fills ID and CreatedAt from the artifact descriptor.
//
// Convention: one field per line, fixed prefixes, remainder trimmed. A
// repeated prefix overwrites the earlier value (last occurrence wins).
// Lines matching no prefix are ignored.
func Parse(raw string) domain.PostRecord {
	rec := domain.PostRecord{FullContent: raw}

	prefixes := []struct {
		prefix string
		dst    *string
	}{
		{"Caption:", &rec.Caption},
		{"Hashtags:", &rec.Hashtags},
		{"Source:", &rec.Source},
		{"Image URL:", &rec.ImageURL},
		{"Title:", &rec.NewsTitle},
	}

	for _, line := range strings.Split(raw, "\n") {
		for _, p := range prefixes {
			if rest, ok := strings.CutPrefix(line, p.prefix); ok {
				*p.dst = strings.TrimSpace(rest)
				break
			}
		}
	}
	return rec
}
