// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package report

import (
	"encoding/binary"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"

	"weeklyreport/internal/models"
	"weeklyreport/internal/style"
)

// bucketMillis is the width of the time bucket folded into cache keys.
const bucketMillis = 3_600_000

// CacheKey fingerprints a request. Equal inputs, style and language within
// the same wall-clock hour produce the same key; anything else differs.
// Every field is length-prefixed so item boundaries can't collide.
func CacheKey(in models.Inputs, styleKey, lang string, now time.Time) string {
	in = in.Normalize()
	d := xxhash.New()

	for _, list := range [][]string{in.Completed, in.Problems, in.Plans} {
		writeUint(d, uint64(len(list)))
		for _, item := range list {
			writeField(d, item)
		}
	}
	writeField(d, style.NormalizeKey(styleKey))
	writeField(d, style.NormalizeLanguage(lang))
	writeUint(d, uint64(now.UnixMilli()/bucketMillis))

	return strconv.FormatUint(d.Sum64(), 16)
}

func writeField(d *xxhash.Digest, s string) {
	writeUint(d, uint64(len(s)))
	_, _ = d.WriteString(s)
}

func writeUint(d *xxhash.Digest, v uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	_, _ = d.Write(buf[:])
}
