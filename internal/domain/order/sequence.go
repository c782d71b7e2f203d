package order

import (
	"fmt"
	"regexp"
	"strconv"
)

// Stitching order numbers look like ST-001; retail bills are bare
// integers. Both sequences are max(existing)+1 within their own kind,
// so a deleted number is never reused and gaps are never filled.
//
// The computation reads the full existing number set from the store
// before assigning; two submissions racing on a stale read can mint
// the same number. There is no global lock around assignment; the
// unique index on the column is the only backstop.

var stitchingOrderNoPattern = regexp.MustCompile(`^ST-(\d+)$`)

// NextStitchingOrderNo returns the next ST-NNN identifier given every
// existing stitching order number. Numbers that do not match the
// pattern are ignored.
func NextStitchingOrderNo(existing []string) string {
	maxSeq := int64(0)
	for _, no := range existing {
		m := stitchingOrderNoPattern.FindStringSubmatch(no)
		if m == nil {
			continue
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			continue
		}
		if n > maxSeq {
			maxSeq = n
		}
	}
	return fmt.Sprintf("ST-%03d", maxSeq+1)
}

// NextBillNo returns the next retail bill number given every existing
// bill number.
func NextBillNo(existing []int64) int64 {
	maxNo := int64(0)
	for _, n := range existing {
		if n > maxNo {
			maxNo = n
		}
	}
	return maxNo + 1
}
