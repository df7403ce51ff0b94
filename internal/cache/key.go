package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strconv"
	"strings"

	"github.com/stwalsh4118/estate/api/internal/models"
)

const keyPrefix = "estate:query:"

// QueryKey derives a deterministic cache key for one query against one catalog snapshot.
// Map entries are written in sorted order and floats in shortest exact form, so equal
// queries always share a key and infinite bounds are representable.
func QueryKey(kind models.ItemKind, version, locale string, q models.Query) string {
	var b strings.Builder

	b.WriteString(string(kind))
	b.WriteByte('|')
	b.WriteString(version)
	b.WriteByte('|')
	b.WriteString(locale)

	fields := make([]string, 0, len(q.Criteria.Ranges))
	for f := range q.Criteria.Ranges {
		fields = append(fields, string(f))
	}
	slices.Sort(fields)
	for _, f := range fields {
		r := q.Criteria.Ranges[models.NumericField(f)]
		b.WriteString("|r:")
		b.WriteString(f)
		b.WriteByte('=')
		b.WriteString(strconv.FormatFloat(r.Min, 'g', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(r.Max, 'g', -1, 64))
	}

	fields = fields[:0]
	for f, values := range q.Criteria.Selected {
		if len(values) > 0 {
			fields = append(fields, string(f))
		}
	}
	slices.Sort(fields)
	for _, f := range fields {
		values := slices.Clone(q.Criteria.Selected[models.CategoricalField(f)])
		slices.Sort(values)
		values = slices.Compact(values)
		b.WriteString("|s:")
		b.WriteString(f)
		for _, v := range values {
			b.WriteByte('=')
			b.WriteString(strconv.Quote(v))
		}
	}

	b.WriteString("|q:")
	b.WriteString(strconv.Quote(strings.TrimSpace(q.Criteria.Query)))
	b.WriteString("|o:")
	b.WriteString(string(q.Sort.Field))
	b.WriteByte(',')
	b.WriteString(string(q.Sort.Direction))
	b.WriteString("|p:")
	b.WriteString(strconv.Itoa(q.Page.Index))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(q.Page.Size))

	sum := sha256.Sum256([]byte(b.String()))
	return keyPrefix + hex.EncodeToString(sum[:])
}
